package employee

import "context"

type EmployeeRepository interface {
	GetByID(ctx context.Context, id int64) (Employee, error)
	GetByIDs(ctx context.Context, ids []int64) ([]Employee, error)
	Create(ctx context.Context, newEmployee Employee) (Employee, error)

	// ListTracked returns approved employees with the user role. An empty
	// department means every department.
	ListTracked(ctx context.Context, department string) ([]Employee, error)
	ListPending(ctx context.Context) ([]Employee, error)

	Approve(ctx context.Context, id int64, approvedBy int64) (Employee, error)
	Delete(ctx context.Context, id int64) error

	// CountManaged counts user-role employees assigned to a department.
	CountManaged(ctx context.Context) (int64, error)
	CountApprovedBy(ctx context.Context, adminID int64) (int64, error)
}
