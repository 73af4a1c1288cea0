package service

import (
	"context"
	"errors"
	"testing"

	"github.com/foodlens/foodlensgo/internal/analysis"
	"github.com/foodlens/foodlensgo/internal/models"
)

type fakeStore struct {
	saved *models.ProductRecord
	err   error
}

func (f *fakeStore) Save(record *models.ProductRecord) error {
	if f.err != nil {
		return f.err
	}
	f.saved = record
	return nil
}

func (f *fakeStore) Reconcile(record *models.ProductRecord) *models.ProductRecord {
	record.EnsureCollections()
	return record
}

type fakeAnalyzer struct {
	response string
	err      error
	called   bool
}

func (f *fakeAnalyzer) Analyze(ctx context.Context, rawText, language string) (string, error) {
	f.called = true
	return f.response, f.err
}

func (f *fakeAnalyzer) Close() {}

type fakeSink struct {
	events []interface{}
}

func (f *fakeSink) Broadcast(event interface{}) { f.events = append(f.events, event) }

func TestSubmitScanHappyPath(t *testing.T) {
	st := &fakeStore{}
	an := &fakeAnalyzer{response: `{
		"product_name": "Organic Milk",
		"ingredients": [{"name": "Milk"}],
		"processing_level": "minimally",
		"natural_percentage": 90
	}`}
	sink := &fakeSink{}
	scanner := NewScanner(st, an, sink, false)

	record, err := scanner.SubmitScan(context.Background(), "Organic Milk ingredients: milk", Preferences{})
	if err != nil {
		t.Fatalf("scan failed: %v", err)
	}

	if record.Name != "Organic Milk" {
		t.Errorf("name = %q", record.Name)
	}
	if record.HealthScore == nil || *record.HealthScore != 87 {
		t.Errorf("score = %v, want 87", record.HealthScore)
	}
	if st.saved == nil {
		t.Error("record not persisted")
	}
	if len(sink.events) != 1 {
		t.Errorf("got %d events, want 1", len(sink.events))
	}
}

func TestSubmitScanOfflinePreferenceBypassesAnalyzer(t *testing.T) {
	st := &fakeStore{}
	an := &fakeAnalyzer{response: "should not be used"}
	scanner := NewScanner(st, an, nil, false)

	record, err := scanner.SubmitScan(context.Background(), "Crunchy Oat Bar", Preferences{Offline: true})
	if err != nil {
		t.Fatalf("scan failed: %v", err)
	}
	if an.called {
		t.Error("analyzer must not be called in offline mode")
	}
	if record.Name != "Crunchy Oat Bar" {
		t.Errorf("fallback name = %q", record.Name)
	}
	if st.saved == nil {
		t.Error("fallback record not persisted")
	}
}

func TestSubmitScanTransportFailureFallsBack(t *testing.T) {
	st := &fakeStore{}
	an := &fakeAnalyzer{err: errors.New("connection refused")}
	scanner := NewScanner(st, an, nil, false)

	record, err := scanner.SubmitScan(context.Background(), "Mystery Snack Mix", Preferences{})
	if err != nil {
		t.Fatalf("transport failure must not surface: %v", err)
	}
	if record == nil || len(record.Ingredients) == 0 {
		t.Error("expected synthesized fallback record")
	}
}

func TestSubmitScanServiceErrorSurfacesAndFallsBack(t *testing.T) {
	st := &fakeStore{}
	an := &fakeAnalyzer{response: `{"error": "not a food label"}`}
	scanner := NewScanner(st, an, nil, false)

	record, err := scanner.SubmitScan(context.Background(), "parking ticket text", Preferences{})

	var svcErr *analysis.ServiceError
	if !errors.As(err, &svcErr) {
		t.Fatalf("expected ServiceError, got %v", err)
	}
	if svcErr.Message != "not a food label" {
		t.Errorf("message = %q", svcErr.Message)
	}
	if record == nil {
		t.Fatal("caller must still receive a usable record")
	}
	if st.saved == nil {
		t.Error("fallback record must still be persisted")
	}
}

func TestSubmitScanAbandonedBeforePersist(t *testing.T) {
	st := &fakeStore{}
	an := &fakeAnalyzer{response: `{"ingredients": []}`}
	scanner := NewScanner(st, an, nil, false)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := scanner.SubmitScan(ctx, "anything", Preferences{})
	if err == nil {
		t.Fatal("expected context error")
	}
	if st.saved != nil {
		t.Error("abandoned scan must not write to the store")
	}
}

func TestSubmitScanStoreFailureSurfaces(t *testing.T) {
	st := &fakeStore{err: errors.New("disk full")}
	an := &fakeAnalyzer{response: `{"ingredients": []}`}
	scanner := NewScanner(st, an, nil, false)

	_, err := scanner.SubmitScan(context.Background(), "anything", Preferences{})
	if err == nil {
		t.Fatal("store failure must surface, not report success")
	}
}
