package employee

import "context"

type EmployeeRepository interface {
	// GetWithType returns the employee with its employee type joined in.
	// A missing employee yields ErrEmployeeNotFound; an employee whose type
	// row is gone comes back with Type == nil.
	GetWithType(ctx context.Context, id string) (Employee, error)

	// ListActiveIDs returns the ids of all employees with active
	// employment status, ordered by employee code.
	ListActiveIDs(ctx context.Context) ([]string, error)
}
