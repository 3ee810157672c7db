package handler

import (
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/vasool/collection-engine/internal/domain"
	"github.com/vasool/collection-engine/internal/service"
	"github.com/vasool/collection-engine/pkg/response"
)

type UserHandler struct {
	service   *service.UserService
	validator *validator.Validate
}

func NewUserHandler(service *service.UserService) *UserHandler {
	return &UserHandler{
		service:   service,
		validator: validator.New(),
	}
}

// Create handles POST /users
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	var request domain.CreateUserRequest
	if !decodeAndValidate(w, r, h.validator, &request) {
		return
	}

	user, err := h.service.Create(r.Context(), p, &request)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Created(w, user)
}

// Team handles GET /users/team
func (h *UserHandler) Team(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	team, err := h.service.Team(r.Context(), p)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, team)
}
