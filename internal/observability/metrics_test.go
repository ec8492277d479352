package observability

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/mood-journal/mood-journal/internal/mood"
)

func TestMetricsHandlerExposesPrometheusMetrics(t *testing.T) {
	metrics := NewMetrics()
	metrics.ObserveClassification("joy")

	rr := httptest.NewRecorder()
	metrics.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), `moodjournal_classifications_total{label="joy"} 1`) {
		t.Fatalf("expected classification counter in body, got: %s", rr.Body.String())
	}
}

func TestMetricsMiddlewareRecordsRequest(t *testing.T) {
	metrics := NewMetrics()

	handler := metrics.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	routeCtx := chi.NewRouteContext()
	routeCtx.RoutePatterns = append(routeCtx.RoutePatterns, "/test")

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusTeapot {
		t.Fatalf("expected status %d, got %d", http.StatusTeapot, rr.Code)
	}

	metricsRR := httptest.NewRecorder()
	metrics.Handler().ServeHTTP(metricsRR, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	body := metricsRR.Body.String()
	if !strings.Contains(body, `moodjournal_http_requests_total{code="418",route="/test"} 1`) {
		t.Fatalf("expected request counter, got: %s", body)
	}
	if !strings.Contains(body, `moodjournal_http_request_duration_seconds_bucket{route="/test"`) {
		t.Fatalf("expected duration histogram, got: %s", body)
	}
}

type fixedClassifier struct {
	result mood.Result
}

func (f fixedClassifier) Classify(ctx context.Context, text string) mood.Result {
	return f.result
}

func TestInstrumentedClassifierCountsOutcomes(t *testing.T) {
	metrics := NewMetrics()
	classifier := InstrumentClassifier(fixedClassifier{result: mood.Result{Label: mood.LabelUnknown}}, metrics)

	for i := 0; i < 3; i++ {
		classifier.Classify(context.Background(), "text")
	}

	rr := httptest.NewRecorder()
	metrics.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if !strings.Contains(rr.Body.String(), `moodjournal_classifications_total{label="unknown"} 3`) {
		t.Fatalf("expected unknown counter at 3, got: %s", rr.Body.String())
	}
}
