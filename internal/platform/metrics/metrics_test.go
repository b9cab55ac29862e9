package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestInstrumentHandler_LabelsByRoutePattern(t *testing.T) {
	m := New()

	r := chi.NewRouter()
	r.Use(m.InstrumentHandler)
	r.Post("/add", func(w http.ResponseWriter, req *http.Request) {
		http.Redirect(w, req, "/", http.StatusFound)
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/add", nil))

	if got := testutil.ToFloat64(m.httpRequests.WithLabelValues("POST", "/add", "302")); got != 1 {
		t.Fatalf("expected 1 request counted, got %v", got)
	}
}

func TestDomainCounters(t *testing.T) {
	m := New()

	m.EntryAdded()
	m.SubmissionIgnored()
	m.SubmissionIgnored()

	if got := testutil.ToFloat64(m.entriesAdded); got != 1 {
		t.Fatalf("entries added = %v", got)
	}
	if got := testutil.ToFloat64(m.submissionsIgnored); got != 2 {
		t.Fatalf("submissions ignored = %v", got)
	}
}

func TestInstancesDoNotShareState(t *testing.T) {
	a, b := New(), New()
	a.EntryAdded()

	if got := testutil.ToFloat64(b.entriesAdded); got != 0 {
		t.Fatalf("second instance saw %v entries", got)
	}
}

func TestHandlerExposesRegistry(t *testing.T) {
	m := New()
	m.EntryAdded()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	body, _ := io.ReadAll(rec.Body)
	if !strings.Contains(string(body), "medication_log_medications_entries_added_total 1") {
		t.Fatalf("metric not exposed:\n%s", body)
	}
}
