package employee

import "context"

type EmployeeRepository interface {
	FindByNumber(ctx context.Context, employeeNumber string) (Employee, error)
	Create(ctx context.Context, newEmployee Employee) (Employee, error)
	List(ctx context.Context) ([]Employee, error)
}
