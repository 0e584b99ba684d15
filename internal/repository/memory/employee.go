package memory

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"time"

	"github.com/cmlabs-hris/inzone-backend-go/internal/domain/employee"
)

type employeeRepository struct {
	mu        sync.RWMutex
	employees map[int64]employee.Employee
}

func NewEmployeeRepository(seed ...employee.Employee) employee.EmployeeRepository {
	r := &employeeRepository{employees: make(map[int64]employee.Employee)}
	for _, e := range seed {
		r.employees[e.ID] = e
	}
	return r
}

// GetByID implements employee.EmployeeRepository.
func (r *employeeRepository) GetByID(ctx context.Context, id int64) (employee.Employee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

// GetByIDs implements employee.EmployeeRepository.
func (r *employeeRepository) GetByIDs(ctx context.Context, ids []int64) ([]employee.Employee, error) {
	return r.collect(func(e employee.Employee) bool {
		return slices.Contains(ids, e.ID)
	}), nil
}

// Create implements employee.EmployeeRepository.
func (r *employeeRepository) Create(ctx context.Context, newEmployee employee.Employee) (employee.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.employees[newEmployee.ID]; ok {
		return employee.Employee{}, employee.ErrEmployeeIDExists
	}

	now := time.Now()
	if newEmployee.RequestedAt.IsZero() {
		newEmployee.RequestedAt = now
	}
	newEmployee.CreatedAt = now
	newEmployee.UpdatedAt = now
	r.employees[newEmployee.ID] = newEmployee
	return newEmployee, nil
}

// ListTracked implements employee.EmployeeRepository.
func (r *employeeRepository) ListTracked(ctx context.Context, department string) ([]employee.Employee, error) {
	return r.collect(func(e employee.Employee) bool {
		return e.IsTracked() && (department == "" || e.Department == department)
	}), nil
}

// ListPending implements employee.EmployeeRepository.
func (r *employeeRepository) ListPending(ctx context.Context) ([]employee.Employee, error) {
	return r.collect(func(e employee.Employee) bool {
		return e.Role == employee.RoleUser && !e.Approved
	}), nil
}

// Approve implements employee.EmployeeRepository.
func (r *employeeRepository) Approve(ctx context.Context, id int64, approvedBy int64) (employee.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	e.Approved = true
	e.ApprovedBy = &approvedBy
	e.UpdatedAt = time.Now()
	r.employees[id] = e
	return e, nil
}

// Delete implements employee.EmployeeRepository.
func (r *employeeRepository) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.employees[id]; !ok {
		return employee.ErrEmployeeNotFound
	}
	delete(r.employees, id)
	return nil
}

// CountManaged implements employee.EmployeeRepository.
func (r *employeeRepository) CountManaged(ctx context.Context) (int64, error) {
	return int64(len(r.collect(func(e employee.Employee) bool {
		return e.Role == employee.RoleUser && e.Department != ""
	}))), nil
}

// CountApprovedBy implements employee.EmployeeRepository.
func (r *employeeRepository) CountApprovedBy(ctx context.Context, adminID int64) (int64, error) {
	return int64(len(r.collect(func(e employee.Employee) bool {
		return e.ApprovedBy != nil && *e.ApprovedBy == adminID
	}))), nil
}

func (r *employeeRepository) collect(match func(employee.Employee) bool) []employee.Employee {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]employee.Employee, 0)
	for _, e := range r.employees {
		if match(e) {
			out = append(out, e)
		}
	}
	slices.SortFunc(out, func(a, b employee.Employee) int {
		return cmp.Compare(a.ID, b.ID)
	})
	return out
}
