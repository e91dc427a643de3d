// Package services holds the core request pipeline: intake validation,
// response sanitization, and the orchestrator that composes them with the
// inference and catalog adapters.
package services

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/ewilliams-labs/vibematch/internal/core/domain"
	"github.com/ewilliams-labs/vibematch/internal/core/ports"
)

// Orchestrator runs the single request/response cycle exposed to the HTTP
// layer: Intake → Inferring → Sanitizing → (MatchingTrack | Skipped) → Responding.
type Orchestrator struct {
	inference ports.VibeInferrer
	catalog   ports.TrackCatalog
	logger    *log.Logger
}

// NewOrchestrator constructs an Orchestrator.
func NewOrchestrator(inference ports.VibeInferrer, catalog ports.TrackCatalog, logger *log.Logger) *Orchestrator {
	if logger == nil {
		logger = log.Default()
	}
	return &Orchestrator{
		inference: inference,
		catalog:   catalog,
		logger:    logger,
	}
}

// AnalyzeImages runs the full pipeline for one request. Any failure before
// sanitization completes returns a classified error and no partial record.
// Failures while matching the track degrade to the sentinel song summary and
// the request still succeeds: the vibe is already computed at that point.
func (o *Orchestrator) AnalyzeImages(ctx context.Context, raw []any) (domain.VibeAnalysis, error) {
	logger := o.logger.With("analysis_id", uuid.NewString())

	refs, err := ValidateImages(raw)
	if err != nil {
		return domain.VibeAnalysis{}, fmt.Errorf("service: %w", err)
	}
	logger.Debug("intake complete", "images", len(refs))

	rawText, err := o.inference.Infer(ctx, refs)
	if err != nil {
		return domain.VibeAnalysis{}, fmt.Errorf("service: inference failed: %w", err)
	}

	record, err := SanitizeVibe(rawText)
	if err != nil {
		return domain.VibeAnalysis{}, fmt.Errorf("service: %w", err)
	}

	analysis := domain.VibeAnalysis{
		Aesthetic:       record.Aesthetic,
		Mood:            record.Mood,
		RecommendedSong: domain.NoMatchSummary(),
	}

	if !record.Song.Complete() {
		logger.Debug("vibe record has no song candidate, skipping catalog lookup")
		return analysis, nil
	}

	match, err := o.catalog.Match(ctx, record.Song.Title, record.Song.Artist)
	switch {
	case err != nil:
		// Catalog and auth failures never fail the request; the song field
		// degrades to the sentinel.
		logger.Warn("catalog lookup failed, using sentinel",
			"kind", ports.KindOf(err),
			"title", record.Song.Title,
			"artist", record.Song.Artist,
			"err", err)
	case match == nil:
		logger.Info("no catalog match",
			"title", record.Song.Title,
			"artist", record.Song.Artist)
	default:
		analysis.RecommendedSong = domain.SummaryFromMatch(*match)
	}

	return analysis, nil
}
