// Package todos implements the owner-scoped to-do list: every operation is
// bound to the authenticated caller, and a to-do is visible and mutable only
// through its owner. The Store interface carries the persistence contract;
// the Service enforces the access semantics on top of it.
package todos

import (
	"time"

	"github.com/google/uuid"
)

// Todo represents a single to-do item. The owner is set once at creation
// from the authenticated caller and never reassigned. JSON field names keep
// the wire format of the API (isCompleted, idUser).
type Todo struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Completed bool      `json:"isCompleted"`
	OwnerID   int       `json:"idUser"`
	CreatedAt time.Time `json:"created_at"`
}
