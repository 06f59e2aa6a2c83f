package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

func TestCollector_RecordsAndServes(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordPage(200, 12*time.Millisecond)
	c.RecordPage(500, 3*time.Millisecond)
	c.RecordAPICall("explore", nil)
	c.RecordAPICall("explore", errors.New("boom"))

	rec := httptest.NewRecorder()
	Handler(reg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	body := rec.Body.String()
	for _, want := range []string{
		`bookbrust_page_requests_total{status_code="200"} 1`,
		`bookbrust_page_requests_total{status_code="500"} 1`,
		`bookbrust_api_requests_total{resource="explore"} 2`,
		`bookbrust_api_failures_total 1`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("metrics output missing %q", want)
		}
	}
}
