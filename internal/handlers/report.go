package handlers

import (
	"net/http"
	"time"

	"github.com/shrimpsizemoose/poangtavla/internal/metrics"
)

// ReportHandler serves one precomputed report. The pipeline is a batch
// transform, so the grids are rendered once at startup and served as-is.
type ReportHandler struct {
	report string
	html   string
}

func NewReportHandler(report, html string) *ReportHandler {
	return &ReportHandler{
		report: report,
		html:   html,
	}
}

func (h *ReportHandler) HandleReport(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	defer func() {
		metrics.APIRequestDuration.WithLabelValues(
			r.URL.Path,
			r.Method,
			"200",
		).Observe(time.Since(start).Seconds())
	}()

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte(h.report))
}

func (h *ReportHandler) HandleReportHTML(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	defer func() {
		metrics.APIRequestDuration.WithLabelValues(
			r.URL.Path,
			r.Method,
			"200",
		).Observe(time.Since(start).Seconds())
	}()

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(h.html))
}
