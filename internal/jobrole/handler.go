package handler

import (
	"errors"
	"net/http"

	"careerboard/internal/access"
	"careerboard/internal/jobrole/model"
	"careerboard/internal/jobrole/service"
	"careerboard/middleware"
	"careerboard/pkg/request"
	"careerboard/pkg/response"
	"careerboard/pkg/validator"
)

type JobRoleHandler struct {
	Service   *service.JobRoleService
	Validator *validator.Validator
}

func NewJobRoleHandler(service *service.JobRoleService, v *validator.Validator) *JobRoleHandler {
	return &JobRoleHandler{Service: service, Validator: v}
}

func (h *JobRoleHandler) ListJobRoles(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.CallerFrom(r.Context())
	if !ok {
		response.Error(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	skip, limit, err := request.Pagination(r)
	if err != nil {
		writeError(w, err)
		return
	}

	roles, err := h.Service.List(r.Context(), caller, skip, limit)
	if err != nil {
		writeError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, roles)
}

func (h *JobRoleHandler) CreateJobRole(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.CallerFrom(r.Context())
	if !ok {
		response.Error(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	var req model.JobRoleCreate
	if err := request.Decode(r, h.Validator, validator.JobRoleCreate, &req); err != nil {
		writeError(w, err)
		return
	}

	role, err := h.Service.Create(r.Context(), caller, req)
	if err != nil {
		writeError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, role)
}

func writeError(w http.ResponseWriter, err error) {
	var inv *request.InvalidError
	switch {
	case errors.As(err, &inv):
		response.Error(w, http.StatusUnprocessableEntity, inv.Violations)
	case errors.Is(err, access.ErrUnknownOwner):
		response.Error(w, http.StatusNotFound, "User not found")
	default:
		response.InternalError(w, "Job role request failed", err)
	}
}
