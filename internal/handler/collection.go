package handler

import (
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/vasool/collection-engine/internal/domain"
	"github.com/vasool/collection-engine/internal/service"
	"github.com/vasool/collection-engine/pkg/response"
)

type CollectionHandler struct {
	service   *service.CollectionService
	validator *validator.Validate
}

func NewCollectionHandler(service *service.CollectionService) *CollectionHandler {
	return &CollectionHandler{
		service:   service,
		validator: validator.New(),
	}
}

// Submit handles POST /collections
func (h *CollectionHandler) Submit(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	var request domain.SubmitCollectionRequest
	if !decodeAndValidate(w, r, h.validator, &request) {
		return
	}

	collection, err := h.service.Submit(r.Context(), p, &request)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Created(w, domain.SubmitCollectionResponse{
		ID:     collection.ID,
		Status: collection.Status,
	})
}

// ListPending handles GET /collections?status=pending
func (h *CollectionHandler) ListPending(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	if status := r.URL.Query().Get("status"); status != "" && status != domain.CollectionStatusPending {
		response.BadRequest(w, "only status=pending is supported")
		return
	}

	pending, err := h.service.ListPending(r.Context(), p)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, pending)
}

// Review handles PATCH /collections/{id}
func (h *CollectionHandler) Review(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	id, err := pathID(r, "id")
	if err != nil {
		response.FromError(w, err)
		return
	}

	var request domain.ReviewCollectionRequest
	if !decodeAndValidate(w, r, h.validator, &request) {
		return
	}

	collection, err := h.service.Review(r.Context(), p, id, request.Status)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, domain.ReviewCollectionResponse{
		ID:     collection.ID,
		Status: collection.Status,
	})
}
