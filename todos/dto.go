// Data Transfer Objects for the to-do endpoints.
package todos

// CreateTodoRequest is the payload for creating a to-do.
type CreateTodoRequest struct {
	Title string `json:"title" validate:"required" example:"buy milk"`
}

// UpdateTitleRequest is the payload for renaming a to-do.
type UpdateTitleRequest struct {
	Title string `json:"title" validate:"required" example:"buy bread"`
}
