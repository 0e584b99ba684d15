package signup

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/inzone-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/inzone-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/inzone-backend-go/internal/domain/signup"
	"github.com/cmlabs-hris/inzone-backend-go/internal/pkg/clock"
	"github.com/cmlabs-hris/inzone-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/inzone-backend-go/internal/pkg/email"
	"github.com/cmlabs-hris/inzone-backend-go/internal/pkg/worktime"
	"golang.org/x/sync/errgroup"
)

type SignupServiceImpl struct {
	tx database.Transactor
	employee.EmployeeRepository
	signup.DeclineLogRepository
	attendanceRepo attendance.AttendanceRepository
	emailService   email.EmailService
	policy         worktime.Policy
	clock          clock.Clock
}

// ListPending implements signup.SignupService.
func (s *SignupServiceImpl) ListPending(ctx context.Context) ([]employee.EmployeeResponse, error) {
	list, err := s.EmployeeRepository.ListPending(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending signups: %w", err)
	}
	return employee.NewEmployeeResponses(list), nil
}

// ListApproved implements signup.SignupService.
func (s *SignupServiceImpl) ListApproved(ctx context.Context) ([]employee.EmployeeResponse, error) {
	list, err := s.EmployeeRepository.ListTracked(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("failed to list approved employees: %w", err)
	}
	return employee.NewEmployeeResponses(list), nil
}

// HandleRequest implements signup.SignupService.
func (s *SignupServiceImpl) HandleRequest(ctx context.Context, req signup.HandleRequestRequest) (signup.HandleRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return signup.HandleRequestResponse{}, err
	}

	emp, err := s.EmployeeRepository.GetByID(ctx, req.EmployeeID)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return signup.HandleRequestResponse{}, employee.ErrEmployeeNotFound
		}
		return signup.HandleRequestResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}

	switch signup.Action(req.Action) {
	case signup.ActionApprove:
		if emp.Approved {
			return signup.HandleRequestResponse{}, employee.ErrAlreadyApproved
		}
		if _, err := s.EmployeeRepository.Approve(ctx, emp.ID, req.AdminID); err != nil {
			return signup.HandleRequestResponse{}, fmt.Errorf("failed to approve employee: %w", err)
		}
		slog.Info("Signup approved", "employee_id", emp.ID, "admin_id", req.AdminID)

		if err := s.emailService.SendSignupApproved(emp.Email, emp.FirstName); err != nil {
			slog.Error("Failed to send approval email", "employee_id", emp.ID, "error", err)
		}

	case signup.ActionDecline:
		if emp.Approved {
			return signup.HandleRequestResponse{}, signup.ErrNotPending
		}

		err := s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
			if _, err := s.DeclineLogRepository.Create(txCtx, signup.DeclineLog{
				EmployeeID: emp.ID,
				DeclinedBy: req.AdminID,
				Email:      emp.Email,
				FirstName:  emp.FirstName,
				LastName:   emp.LastName,
				DeclinedAt: s.clock.Now(),
			}); err != nil {
				return fmt.Errorf("failed to log decline: %w", err)
			}
			if err := s.EmployeeRepository.Delete(txCtx, emp.ID); err != nil {
				return fmt.Errorf("failed to remove declined employee: %w", err)
			}
			return nil
		})
		if err != nil {
			return signup.HandleRequestResponse{}, err
		}
		slog.Info("Signup declined", "employee_id", emp.ID, "admin_id", req.AdminID)

		if err := s.emailService.SendSignupDeclined(emp.Email, emp.FirstName); err != nil {
			slog.Error("Failed to send decline email", "employee_id", emp.ID, "error", err)
		}

	default:
		return signup.HandleRequestResponse{}, signup.ErrInvalidAction
	}

	return signup.HandleRequestResponse{
		EmployeeID: emp.ID,
		Action:     req.Action,
		Message:    fmt.Sprintf("User %sd", req.Action),
	}, nil
}

// AdminStats implements signup.SignupService.
func (s *SignupServiceImpl) AdminStats(ctx context.Context, req signup.AdminStatsRequest) (signup.AdminStatsResponse, error) {
	if err := req.Validate(); err != nil {
		return signup.AdminStatsResponse{}, err
	}

	now := s.policy.Local(s.clock.Now())
	var resp signup.AdminStatsResponse

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		n, err := s.EmployeeRepository.CountManaged(gCtx)
		if err != nil {
			return fmt.Errorf("failed to count managed employees: %w", err)
		}
		resp.ManagedEmployees = n
		return nil
	})

	g.Go(func() error {
		n, err := s.attendanceRepo.CountByStatusAndMonth(gCtx, attendance.StatusPresent, now.Year(), int(now.Month()))
		if err != nil {
			return fmt.Errorf("failed to count check-ins: %w", err)
		}
		resp.TotalCheckInsMonth = n
		return nil
	})

	g.Go(func() error {
		n, err := s.EmployeeRepository.CountApprovedBy(gCtx, req.AdminID)
		if err != nil {
			return fmt.Errorf("failed to count approvals: %w", err)
		}
		resp.ApprovalsHandled = n
		return nil
	})

	g.Go(func() error {
		n, err := s.DeclineLogRepository.CountByDecliner(gCtx, req.AdminID)
		if err != nil {
			return fmt.Errorf("failed to count declines: %w", err)
		}
		resp.DeclinesHandled = n
		return nil
	})

	if err := g.Wait(); err != nil {
		return signup.AdminStatsResponse{}, err
	}

	return resp, nil
}

func NewSignupService(
	tx database.Transactor,
	employeeRepo employee.EmployeeRepository,
	declineLogRepo signup.DeclineLogRepository,
	attendanceRepo attendance.AttendanceRepository,
	emailService email.EmailService,
	policy worktime.Policy,
	clk clock.Clock,
) signup.SignupService {
	return &SignupServiceImpl{
		tx:                   tx,
		EmployeeRepository:   employeeRepo,
		DeclineLogRepository: declineLogRepo,
		attendanceRepo:       attendanceRepo,
		emailService:         emailService,
		policy:               policy,
		clock:                clk,
	}
}
