package handler

import (
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/vasool/collection-engine/internal/domain"
	"github.com/vasool/collection-engine/internal/service"
	"github.com/vasool/collection-engine/pkg/response"
)

type LoanHandler struct {
	service   *service.LoanService
	validator *validator.Validate
}

func NewLoanHandler(service *service.LoanService) *LoanHandler {
	return &LoanHandler{
		service:   service,
		validator: validator.New(),
	}
}

// Create handles POST /loans
func (h *LoanHandler) Create(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	var request domain.CreateLoanRequest
	if !decodeAndValidate(w, r, h.validator, &request) {
		return
	}

	loan, err := h.service.Create(r.Context(), p, &request)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Created(w, loan)
}
