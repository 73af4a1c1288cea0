// Package service orchestrates the label-to-record pipeline: language
// detection, remote analysis, decoding, fallback synthesis, persistence,
// and event notification.
package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/foodlens/foodlensgo/internal/analysis"
	"github.com/foodlens/foodlensgo/internal/models"
)

// RecordStore is the persistence dependency of the scan pipeline.
type RecordStore interface {
	Save(record *models.ProductRecord) error
	Reconcile(record *models.ProductRecord) *models.ProductRecord
}

// EventSink receives scan lifecycle events for connected clients.
type EventSink interface {
	Broadcast(event interface{})
}

// Preferences are the per-scan user options.
type Preferences struct {
	Offline bool `json:"offline"`
}

// ScanEvent is pushed to clients when a scan has been persisted.
type ScanEvent struct {
	Type        string `json:"type"`
	RecordID    string `json:"recordId"`
	Name        string `json:"name"`
	HealthScore int    `json:"healthScore"`
}

// Scanner runs the scan pipeline end to end.
type Scanner struct {
	store    RecordStore
	analyzer analysis.Analyzer
	events   EventSink
	offline  bool
}

// NewScanner wires the pipeline. analyzer may be nil (offline-only install);
// events may be nil when no push channel exists.
func NewScanner(store RecordStore, analyzer analysis.Analyzer, events EventSink, offline bool) *Scanner {
	return &Scanner{store: store, analyzer: analyzer, events: events, offline: offline}
}

// SubmitScan turns raw label text into a persisted, renderable record.
//
// Analysis failures never fail the scan: transport and decode errors fall
// back to a generated record. When the service explicitly reports an error,
// the fallback record is still persisted and returned together with the
// service's message as a *analysis.ServiceError so the caller can show it.
// The store is never touched before a complete record exists in memory, so
// an abandoned call cannot leave a half-written record.
func (s *Scanner) SubmitScan(ctx context.Context, rawText string, prefs Preferences) (*models.ProductRecord, error) {
	record, svcErr := s.analyze(ctx, rawText, prefs)

	if err := ctx.Err(); err != nil {
		// Caller abandoned the scan; nothing was written.
		return nil, err
	}

	if err := s.store.Save(record); err != nil {
		return nil, fmt.Errorf("failed to persist scan: %w", err)
	}
	record = s.store.Reconcile(record)

	if s.events != nil {
		score := 0
		if record.HealthScore != nil {
			score = *record.HealthScore
		}
		s.events.Broadcast(ScanEvent{
			Type:        "scan_complete",
			RecordID:    record.ID,
			Name:        record.Name,
			HealthScore: score,
		})
	}

	if svcErr != nil {
		return record, svcErr
	}
	return record, nil
}

// analyze produces a complete in-memory record, falling back to the
// generator on any analysis failure.
func (s *Scanner) analyze(ctx context.Context, rawText string, prefs Preferences) (*models.ProductRecord, *analysis.ServiceError) {
	if prefs.Offline || s.offline || s.analyzer == nil {
		return analysis.GenerateFallback(rawText), nil
	}

	language := analysis.DetectLanguage(rawText)

	raw, err := s.analyzer.Analyze(ctx, rawText, language)
	if err != nil {
		log.Printf("⚠️  Analysis transport failure, generating fallback: %v", err)
		return analysis.GenerateFallback(rawText), nil
	}

	record, err := analysis.Decode(raw)
	if err != nil {
		var svcErr *analysis.ServiceError
		if errors.As(err, &svcErr) {
			log.Printf("⚠️  Analysis service reported: %s", svcErr.Message)
			return analysis.GenerateFallback(rawText), svcErr
		}
		log.Printf("⚠️  Undecodable analysis response, generating fallback: %v", err)
		return analysis.GenerateFallback(rawText), nil
	}

	return record, nil
}
