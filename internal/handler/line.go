package handler

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/vasool/collection-engine/internal/domain"
	"github.com/vasool/collection-engine/internal/service"
	"github.com/vasool/collection-engine/pkg/response"
)

type LineHandler struct {
	service   *service.LineService
	validator *validator.Validate
}

func NewLineHandler(service *service.LineService) *LineHandler {
	return &LineHandler{
		service:   service,
		validator: validator.New(),
	}
}

// Create handles POST /lines
func (h *LineHandler) Create(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	var request domain.CreateLineRequest
	if !decodeAndValidate(w, r, h.validator, &request) {
		return
	}

	line, err := h.service.Create(r.Context(), p, &request)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Created(w, line)
}

// List handles GET /lines
func (h *LineHandler) List(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	lines, err := h.service.List(r.Context(), p)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, lines)
}

// AssignAgent handles POST /lines/{id}/agent
func (h *LineHandler) AssignAgent(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	lineID, err := pathID(r, "id")
	if err != nil {
		response.FromError(w, err)
		return
	}

	var request domain.AssignAgentRequest
	if !decodeAndValidate(w, r, h.validator, &request) {
		return
	}
	agentID, err := uuid.Parse(request.AgentID)
	if err != nil {
		response.BadRequest(w, "agent_id is not a valid id")
		return
	}

	if err := h.service.AssignAgent(r.Context(), p, lineID, agentID); err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, map[string]string{"line_id": lineID.String(), "agent_id": agentID.String()})
}

// AddCustomer handles POST /lines/{id}/customers
func (h *LineHandler) AddCustomer(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	lineID, err := pathID(r, "id")
	if err != nil {
		response.FromError(w, err)
		return
	}

	var request domain.AddLineCustomerRequest
	if !decodeAndValidate(w, r, h.validator, &request) {
		return
	}
	customerID, err := uuid.Parse(request.CustomerID)
	if err != nil {
		response.BadRequest(w, "customer_id is not a valid id")
		return
	}

	sequence, err := h.service.AddCustomer(r.Context(), p, lineID, customerID)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Created(w, domain.AddLineCustomerResponse{SequenceOrder: sequence})
}

// ListCustomers handles GET /lines/{id}/customers
func (h *LineHandler) ListCustomers(w http.ResponseWriter, r *http.Request) {
	if _, ok := principal(w, r); !ok {
		return
	}

	lineID, err := pathID(r, "id")
	if err != nil {
		response.FromError(w, err)
		return
	}

	stops, err := h.service.ListCustomers(r.Context(), lineID)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, stops)
}

// Reorder handles POST /lines/{id}/reorder
func (h *LineHandler) Reorder(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	lineID, err := pathID(r, "id")
	if err != nil {
		response.FromError(w, err)
		return
	}

	var request domain.ReorderLineRequest
	if !decodeAndValidate(w, r, h.validator, &request) {
		return
	}

	order := make([]uuid.UUID, 0, len(request.Order))
	for _, raw := range request.Order {
		id, parseErr := uuid.Parse(raw)
		if parseErr != nil {
			response.BadRequest(w, "order contains an invalid id")
			return
		}
		order = append(order, id)
	}

	if err := h.service.Reorder(r.Context(), p, lineID, order); err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, map[string]int{"customers": len(order)})
}

// ToggleLock handles PATCH /lines/{id}/lock
func (h *LineHandler) ToggleLock(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	lineID, err := pathID(r, "id")
	if err != nil {
		response.FromError(w, err)
		return
	}

	locked, err := h.service.ToggleLock(r.Context(), p, lineID)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, domain.ToggleLockResponse{ID: lineID, IsLocked: locked})
}
