package signup

import (
	"context"

	"github.com/cmlabs-hris/inzone-backend-go/internal/domain/employee"
)

type SignupService interface {
	ListPending(ctx context.Context) ([]employee.EmployeeResponse, error)
	ListApproved(ctx context.Context) ([]employee.EmployeeResponse, error)

	// HandleRequest approves or declines a pending signup and notifies the employee
	HandleRequest(ctx context.Context, req HandleRequestRequest) (HandleRequestResponse, error)

	// AdminStats summarises the admin's workload for the current month
	AdminStats(ctx context.Context, req AdminStatsRequest) (AdminStatsResponse, error)
}
