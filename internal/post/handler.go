package handler

import (
	"errors"
	"net/http"

	"careerboard/internal/access"
	"careerboard/internal/post/model"
	"careerboard/internal/post/service"
	"careerboard/middleware"
	"careerboard/pkg/request"
	"careerboard/pkg/response"
	"careerboard/pkg/validator"
)

type PostHandler struct {
	Service   *service.PostService
	Validator *validator.Validator
}

func NewPostHandler(service *service.PostService, v *validator.Validator) *PostHandler {
	return &PostHandler{Service: service, Validator: v}
}

func (h *PostHandler) ListPosts(w http.ResponseWriter, r *http.Request) {
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

	posts, err := h.Service.List(r.Context(), caller, skip, limit)
	if err != nil {
		writeError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, posts)
}

func (h *PostHandler) GetPost(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.CallerFrom(r.Context())
	if !ok {
		response.Error(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	id, err := request.PathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	post, err := h.Service.Get(r.Context(), caller, id)
	if err != nil {
		writeError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, post)
}

func (h *PostHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.CallerFrom(r.Context())
	if !ok {
		response.Error(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	var req model.PostCreate
	if err := request.Decode(r, h.Validator, validator.PostCreate, &req); err != nil {
		writeError(w, err)
		return
	}

	post, err := h.Service.Create(r.Context(), caller, req)
	if err != nil {
		writeError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, post)
}

func (h *PostHandler) UpdatePost(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.CallerFrom(r.Context())
	if !ok {
		response.Error(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	id, err := request.PathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req model.PostUpdate
	if err := request.Decode(r, h.Validator, validator.PostUpdate, &req); err != nil {
		writeError(w, err)
		return
	}

	post, err := h.Service.Update(r.Context(), caller, id, req)
	if err != nil {
		writeError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, post)
}

func writeError(w http.ResponseWriter, err error) {
	var inv *request.InvalidError
	switch {
	case errors.As(err, &inv):
		response.Error(w, http.StatusUnprocessableEntity, inv.Violations)
	case errors.Is(err, access.ErrNotFound):
		response.Error(w, http.StatusNotFound, "Post not found")
	case errors.Is(err, access.ErrForbidden):
		response.Error(w, http.StatusBadRequest, "Not enough permissions")
	case errors.Is(err, access.ErrUnknownOwner):
		response.Error(w, http.StatusNotFound, "User not found")
	default:
		response.InternalError(w, "Post request failed", err)
	}
}
