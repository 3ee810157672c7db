package handler

import (
	"net/http"

	"github.com/vasool/collection-engine/internal/service"
	"github.com/vasool/collection-engine/pkg/response"
)

type ReportHandler struct {
	service *service.ReportService
}

func NewReportHandler(service *service.ReportService) *ReportHandler {
	return &ReportHandler{service: service}
}

// Financials handles GET /reports/financials
func (h *ReportHandler) Financials(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	report, err := h.service.Financials(r.Context(), p)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, report)
}
