package handler

import (
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/vasool/collection-engine/internal/domain"
	"github.com/vasool/collection-engine/internal/service"
	"github.com/vasool/collection-engine/pkg/response"
)

type CustomerHandler struct {
	customers *service.CustomerService
	loans     *service.LoanService
	validator *validator.Validate
}

func NewCustomerHandler(customers *service.CustomerService, loans *service.LoanService) *CustomerHandler {
	return &CustomerHandler{
		customers: customers,
		loans:     loans,
		validator: validator.New(),
	}
}

// Create handles POST /customers
func (h *CustomerHandler) Create(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	var request domain.CreateCustomerRequest
	if !decodeAndValidate(w, r, h.validator, &request) {
		return
	}

	customer, err := h.customers.Create(r.Context(), p, &request)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Created(w, customer)
}

// List handles GET /customers
func (h *CustomerHandler) List(w http.ResponseWriter, r *http.Request) {
	if _, ok := principal(w, r); !ok {
		return
	}

	customers, err := h.customers.List(r.Context())
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, customers)
}

// ActiveLoans handles GET /customers/{id}/loans
func (h *CustomerHandler) ActiveLoans(w http.ResponseWriter, r *http.Request) {
	if _, ok := principal(w, r); !ok {
		return
	}

	customerID, err := pathID(r, "id")
	if err != nil {
		response.FromError(w, err)
		return
	}

	loans, err := h.loans.ListActiveByCustomer(r.Context(), customerID)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, loans)
}
