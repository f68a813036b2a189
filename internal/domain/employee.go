package domain

import "github.com/google/uuid"

// Employee is the persisted employee record.
type Employee struct {
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
}

// AddEmployeeRequest is the create payload. Both names are mandatory;
// requests missing either are rejected before reaching the service.
type AddEmployeeRequest struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
}

// UpdateEmployeeRequest is the update payload.
type UpdateEmployeeRequest struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
}
