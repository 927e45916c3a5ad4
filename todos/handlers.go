// HTTP handlers for the to-do endpoints. The id path parameter is parsed
// before the access layer ever sees it, and the caller identity always comes
// from the bearer middleware's context, never from the request body.
package todos

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/user/todos-go/apperror"
	"github.com/user/todos-go/auth"
)

// Handler handles HTTP requests for to-dos.
type Handler struct {
	service  *Service
	validate *validator.Validate
}

// NewHandler creates a new Handler.
func NewHandler(service *Service) *Handler {
	return &Handler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the to-do API routes on a chi.Router. The router
// passed in is expected to already carry the JWT middleware.
func (h *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", h.handleList)
	router.Post("/", h.handleCreate)
	router.Get("/{id}", h.handleGet)
	router.Patch("/{id}", h.handleRename)
	router.Patch("/{id}/isCompleted", h.handleToggle)
	router.Delete("/{id}", h.handleDelete)
}

// callerID extracts the authenticated user id from the request context.
func callerID(w http.ResponseWriter, r *http.Request) (int, bool) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		auth.WriteError(w, r, apperror.NewAuthError("no authenticated user in request context", nil))
		return 0, false
	}
	return userID, true
}

// todoID parses the {id} path parameter. Malformed ids are rejected here so
// the access layer only ever sees canonical identifiers.
func todoID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		auth.WriteError(w, r, apperror.NewValidationError("id must be a valid UUID", err))
		return uuid.Nil, false
	}
	return id, true
}

// handleList godoc
// @Summary List todos
// @Description Returns all to-dos of the authenticated user.
// @Tags Todos
// @Produce json
// @Security BearerAuth
// @Success 200 {array} todos.Todo "The caller's to-dos"
// @Failure 401 {object} apperror.ErrorResponse "Unauthorized"
// @Failure 500 {object} apperror.ErrorResponse "Internal Server Error"
// @Router /api/todos [get]
func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	todos, err := h.service.List(r.Context(), userID)
	if err != nil {
		auth.WriteError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, todos)
}

// handleCreate godoc
// @Summary Create a todo
// @Description Creates a new to-do for the authenticated user.
// @Tags Todos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param todoBody body todos.CreateTodoRequest true "Title for the new to-do"
// @Success 200 {object} todos.Todo "Created to-do"
// @Failure 400 {object} apperror.ErrorResponse "Bad Request - Missing or empty title"
// @Failure 401 {object} apperror.ErrorResponse "Unauthorized"
// @Failure 500 {object} apperror.ErrorResponse "Internal Server Error"
// @Router /api/todos [post]
func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	var req CreateTodoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		auth.WriteError(w, r, apperror.NewBadRequestError("invalid request body: "+err.Error(), nil))
		return
	}
	defer r.Body.Close()

	if err := h.validate.Struct(req); err != nil {
		auth.WriteError(w, r, apperror.NewValidationError("title is required", err))
		return
	}

	todo, err := h.service.Create(r.Context(), userID, req.Title)
	if err != nil {
		auth.WriteError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, todo)
}

// handleGet godoc
// @Summary Get a todo
// @Description Returns one of the authenticated user's to-dos by id.
// @Tags Todos
// @Produce json
// @Security BearerAuth
// @Param id path string true "Todo id (UUID)"
// @Success 200 {object} todos.Todo "The to-do"
// @Failure 400 {object} apperror.ErrorResponse "Bad Request - Malformed id"
// @Failure 401 {object} apperror.ErrorResponse "Unauthorized"
// @Failure 404 {object} apperror.ErrorResponse "Not Found - No such to-do for this user"
// @Failure 500 {object} apperror.ErrorResponse "Internal Server Error"
// @Router /api/todos/{id} [get]
func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	id, ok := todoID(w, r)
	if !ok {
		return
	}

	todo, err := h.service.Get(r.Context(), userID, id)
	if err != nil {
		auth.WriteError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, todo)
}

// handleRename godoc
// @Summary Rename a todo
// @Description Sets a new title on one of the authenticated user's to-dos.
// @Tags Todos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Todo id (UUID)"
// @Param todoBody body todos.UpdateTitleRequest true "New title"
// @Success 200 {object} todos.Todo "Updated to-do"
// @Failure 400 {object} apperror.ErrorResponse "Bad Request - Malformed id or missing title"
// @Failure 401 {object} apperror.ErrorResponse "Unauthorized"
// @Failure 404 {object} apperror.ErrorResponse "Not Found - No such to-do for this user"
// @Failure 500 {object} apperror.ErrorResponse "Internal Server Error"
// @Router /api/todos/{id} [patch]
func (h *Handler) handleRename(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	id, ok := todoID(w, r)
	if !ok {
		return
	}

	var req UpdateTitleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		auth.WriteError(w, r, apperror.NewBadRequestError("invalid request body: "+err.Error(), nil))
		return
	}
	defer r.Body.Close()

	if err := h.validate.Struct(req); err != nil {
		auth.WriteError(w, r, apperror.NewValidationError("title is required", err))
		return
	}

	todo, err := h.service.Rename(r.Context(), userID, id, req.Title)
	if err != nil {
		auth.WriteError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, todo)
}

// handleToggle godoc
// @Summary Toggle completion
// @Description Flips the isCompleted flag of one of the authenticated user's to-dos.
// @Tags Todos
// @Produce json
// @Security BearerAuth
// @Param id path string true "Todo id (UUID)"
// @Success 200 {object} todos.Todo "Updated to-do"
// @Failure 400 {object} apperror.ErrorResponse "Bad Request - Malformed id"
// @Failure 401 {object} apperror.ErrorResponse "Unauthorized"
// @Failure 404 {object} apperror.ErrorResponse "Not Found - No such to-do for this user"
// @Failure 500 {object} apperror.ErrorResponse "Internal Server Error"
// @Router /api/todos/{id}/isCompleted [patch]
func (h *Handler) handleToggle(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	id, ok := todoID(w, r)
	if !ok {
		return
	}

	todo, err := h.service.ToggleCompleted(r.Context(), userID, id)
	if err != nil {
		auth.WriteError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, todo)
}

// handleDelete godoc
// @Summary Delete a todo
// @Description Deletes one of the authenticated user's to-dos. Responds with `true` on success.
// @Tags Todos
// @Produce json
// @Security BearerAuth
// @Param id path string true "Todo id (UUID)"
// @Success 200 {boolean} boolean "true"
// @Failure 400 {object} apperror.ErrorResponse "Bad Request - Malformed id"
// @Failure 401 {object} apperror.ErrorResponse "Unauthorized"
// @Failure 404 {object} apperror.ErrorResponse "Not Found - No such to-do for this user"
// @Failure 500 {object} apperror.ErrorResponse "Internal Server Error"
// @Router /api/todos/{id} [delete]
func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	id, ok := todoID(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), userID, id); err != nil {
		auth.WriteError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, true)
}

// writeJSON serializes data to JSON with the given status.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			http.Error(w, `{"error":"failed to encode response"}`, http.StatusInternalServerError)
		}
	}
}
