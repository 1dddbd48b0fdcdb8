package employee

import "time"

// Employee is the minimal identity the reconciliation pipeline needs: the
// badge number punches carry and a display name. Anything richer lives with
// the external HR collaborator.
type Employee struct {
	ID             string    `json:"id"`
	EmployeeNumber string    `json:"employee_number"`
	Name           string    `json:"name"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
