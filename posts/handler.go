package posts

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/user/periferia-go/apperror"
	"github.com/user/periferia-go/auth"
)

// validate is the shared request validator for post DTOs.
var validate = validator.New()

// PostHandler handles HTTP requests for posts.
type PostHandler struct {
	service PostService
}

// NewPostHandler creates a new PostHandler.
func NewPostHandler(service PostService) *PostHandler {
	return &PostHandler{service: service}
}

// RegisterRoutes registers the post API routes on the given router. The
// router group is mounted under /api/posts in main, with the auth middleware
// already applied.
func (h *PostHandler) RegisterRoutes(router chi.Router) {
	router.Get("/", h.list)
	router.Post("/", h.create)
	router.Put("/{id}", h.update)
	router.Delete("/{id}", h.delete)
	router.Post("/{id}/like", h.like)
}

// list godoc
// @Summary List posts
// @Description Returns all posts ordered by creation time descending, with the owner's alias and like count.
// @Tags Posts
// @Produce json
// @Security BearerAuth
// @Success 200 {array} posts.PostView "Posts"
// @Failure 401 {object} apperror.ErrorResponse "Invalid or missing token"
// @Failure 500 {object} apperror.ErrorResponse "Internal server error"
// @Router /api/posts [get]
func (h *PostHandler) list(w http.ResponseWriter, r *http.Request) {
	views, err := h.service.List(r.Context())
	if err != nil {
		auth.WriteError(w, r, err)
		return
	}
	auth.WriteJSON(w, http.StatusOK, views)
}

// create godoc
// @Summary Create a post
// @Description Persists a new post owned by the authenticated user.
// @Tags Posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param postBody body posts.CreatePostRequest true "Post message"
// @Success 201 {object} posts.Post "Created post"
// @Failure 400 {object} apperror.ErrorResponse "Missing message"
// @Failure 401 {object} apperror.ErrorResponse "Invalid or missing token"
// @Failure 404 {object} apperror.ErrorResponse "Owner not found"
// @Failure 500 {object} apperror.ErrorResponse "Internal server error"
// @Router /api/posts [post]
func (h *PostHandler) create(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		auth.WriteError(w, r, apperror.NewAuthError("user not authenticated", nil))
		return
	}

	var req CreatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		auth.WriteError(w, r, apperror.NewBadRequestError("invalid request body", err))
		return
	}
	defer r.Body.Close()

	if err := validate.Struct(req); err != nil {
		auth.WriteError(w, r, apperror.NewBadRequestError("message is required", err))
		return
	}

	post, err := h.service.Create(r.Context(), userID, req.Message)
	if err != nil {
		auth.WriteError(w, r, err)
		return
	}

	auth.WriteJSON(w, http.StatusCreated, post)
}

// update godoc
// @Summary Edit a post
// @Description Replaces the message of a post owned by the authenticated user.
// @Tags Posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Param postBody body posts.UpdatePostRequest true "New message"
// @Success 200 {object} posts.MessageResponse "Post updated"
// @Failure 400 {object} apperror.ErrorResponse "Missing message or invalid id"
// @Failure 401 {object} apperror.ErrorResponse "Invalid or missing token"
// @Failure 403 {object} apperror.ErrorResponse "Not the owner"
// @Failure 404 {object} apperror.ErrorResponse "Post not found"
// @Failure 500 {object} apperror.ErrorResponse "Internal server error"
// @Router /api/posts/{id} [put]
func (h *PostHandler) update(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		auth.WriteError(w, r, apperror.NewAuthError("user not authenticated", nil))
		return
	}

	postID, err := postIDParam(r)
	if err != nil {
		auth.WriteError(w, r, err)
		return
	}

	var req UpdatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		auth.WriteError(w, r, apperror.NewBadRequestError("invalid request body", err))
		return
	}
	defer r.Body.Close()

	if err := validate.Struct(req); err != nil {
		auth.WriteError(w, r, apperror.NewBadRequestError("message is required", err))
		return
	}

	if err := h.service.Update(r.Context(), userID, postID, req.Message); err != nil {
		auth.WriteError(w, r, err)
		return
	}

	auth.WriteJSON(w, http.StatusOK, MessageResponse{Message: "post updated"})
}

// delete godoc
// @Summary Delete a post
// @Description Removes a post owned by the authenticated user, along with its likes.
// @Tags Posts
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Success 204 "Post deleted"
// @Failure 400 {object} apperror.ErrorResponse "Invalid id"
// @Failure 401 {object} apperror.ErrorResponse "Invalid or missing token"
// @Failure 403 {object} apperror.ErrorResponse "Not the owner"
// @Failure 404 {object} apperror.ErrorResponse "Post not found"
// @Failure 500 {object} apperror.ErrorResponse "Internal server error"
// @Router /api/posts/{id} [delete]
func (h *PostHandler) delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		auth.WriteError(w, r, apperror.NewAuthError("user not authenticated", nil))
		return
	}

	postID, err := postIDParam(r)
	if err != nil {
		auth.WriteError(w, r, err)
		return
	}

	if err := h.service.Delete(r.Context(), userID, postID); err != nil {
		auth.WriteError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// like godoc
// @Summary Like a post
// @Description Registers a like by the authenticated user. Liking twice is rejected.
// @Tags Posts
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Success 200 {object} posts.MessageResponse "Like registered"
// @Failure 400 {object} apperror.ErrorResponse "Already liked or invalid id"
// @Failure 401 {object} apperror.ErrorResponse "Invalid or missing token"
// @Failure 404 {object} apperror.ErrorResponse "Post or user not found"
// @Failure 500 {object} apperror.ErrorResponse "Internal server error"
// @Router /api/posts/{id}/like [post]
func (h *PostHandler) like(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		auth.WriteError(w, r, apperror.NewAuthError("user not authenticated", nil))
		return
	}

	postID, err := postIDParam(r)
	if err != nil {
		auth.WriteError(w, r, err)
		return
	}

	if err := h.service.Like(r.Context(), userID, postID); err != nil {
		auth.WriteError(w, r, err)
		return
	}

	auth.WriteJSON(w, http.StatusOK, MessageResponse{Message: "like registered"})
}

// postIDParam parses the {id} route parameter.
func postIDParam(r *http.Request) (int, error) {
	postID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		return 0, apperror.NewBadRequestError("invalid post id", err)
	}
	return postID, nil
}
