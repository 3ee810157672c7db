package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/vasool/collection-engine/internal/domain"
	"github.com/vasool/collection-engine/internal/middleware"
	apperrors "github.com/vasool/collection-engine/pkg/errors"
	"github.com/vasool/collection-engine/pkg/response"
)

// decodeAndValidate parses the JSON body into dst and runs struct
// validation. Writes the 400 itself and reports success to the caller.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, v *validator.Validate, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		response.BadRequest(w, "invalid JSON body")
		return false
	}
	if err := v.Struct(dst); err != nil {
		response.BadRequest(w, err.Error())
		return false
	}
	return true
}

// principal pulls the authenticated identity from the request context.
// Writes the 401 itself when the middleware did not run.
func principal(w http.ResponseWriter, r *http.Request) (domain.Principal, bool) {
	p, ok := middleware.PrincipalFrom(r.Context())
	if !ok {
		response.Unauthorized(w, "not authenticated")
	}
	return p, ok
}

// pathID parses the named mux var as a UUID.
func pathID(r *http.Request, name string) (uuid.UUID, error) {
	raw := mux.Vars(r)[name]
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, apperrors.InvalidInput("%s is not a valid id", name)
	}
	return id, nil
}
