package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/inzone-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/inzone-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const employeeColumns = `
	id, first_name, last_name, email, department, post, role, profile_pic,
	approved, approved_by, requested_at, created_at, updated_at`

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var e employee.Employee
	err := row.Scan(
		&e.ID, &e.FirstName, &e.LastName, &e.Email, &e.Department, &e.Post, &e.Role, &e.ProfilePic,
		&e.Approved, &e.ApprovedBy, &e.RequestedAt, &e.CreatedAt, &e.UpdatedAt,
	)
	return e, err
}

func (e *employeeRepositoryImpl) queryEmployees(ctx context.Context, query string, args ...interface{}) ([]employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query employees: %w", err)
	}
	defer rows.Close()

	employees := make([]employee.Employee, 0)
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, emp)
	}

	return employees, rows.Err()
}

// GetByID implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) GetByID(ctx context.Context, id int64) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE id = $1`

	emp, err := scanEmployee(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee by id %d: %w", id, err)
	}

	return emp, nil
}

// GetByIDs implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) GetByIDs(ctx context.Context, ids []int64) ([]employee.Employee, error) {
	if len(ids) == 0 {
		return []employee.Employee{}, nil
	}

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE id = ANY($1) ORDER BY id ASC`
	return e.queryEmployees(ctx, query, ids)
}

// Create implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) Create(ctx context.Context, newEmployee employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		INSERT INTO employees (
			id, first_name, last_name, email, department, post, role, profile_pic, approved, approved_by
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING ` + employeeColumns

	emp, err := scanEmployee(q.QueryRow(ctx, query,
		newEmployee.ID,
		newEmployee.FirstName,
		newEmployee.LastName,
		newEmployee.Email,
		newEmployee.Department,
		string(newEmployee.Post),
		string(newEmployee.Role),
		newEmployee.ProfilePic,
		newEmployee.Approved,
		newEmployee.ApprovedBy,
	))
	if err != nil {
		if isUniqueViolation(err) {
			return employee.Employee{}, employee.ErrEmployeeIDExists
		}
		return employee.Employee{}, fmt.Errorf("failed to create employee: %w", err)
	}

	return emp, nil
}

// ListTracked implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) ListTracked(ctx context.Context, department string) ([]employee.Employee, error) {
	query := `SELECT ` + employeeColumns + `
		FROM employees
		WHERE role = 'user' AND approved = TRUE
		  AND ($1 = '' OR department = $1)
		ORDER BY id ASC
	`
	return e.queryEmployees(ctx, query, department)
}

// ListPending implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) ListPending(ctx context.Context) ([]employee.Employee, error) {
	query := `SELECT ` + employeeColumns + `
		FROM employees
		WHERE role = 'user' AND approved = FALSE
		ORDER BY requested_at ASC, id ASC
	`
	return e.queryEmployees(ctx, query)
}

// Approve implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) Approve(ctx context.Context, id int64, approvedBy int64) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		UPDATE employees
		SET approved = TRUE, approved_by = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + employeeColumns

	emp, err := scanEmployee(q.QueryRow(ctx, query, id, approvedBy))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to approve employee %d: %w", id, err)
	}

	return emp, nil
}

// Delete implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) Delete(ctx context.Context, id int64) error {
	q := GetQuerier(ctx, e.db)

	tag, err := q.Exec(ctx, `DELETE FROM employees WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete employee %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}

	return nil
}

// CountManaged implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) CountManaged(ctx context.Context) (int64, error) {
	q := GetQuerier(ctx, e.db)

	var total int64
	err := q.QueryRow(ctx, `SELECT COUNT(*) FROM employees WHERE role = 'user' AND department <> ''`).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to count managed employees: %w", err)
	}

	return total, nil
}

// CountApprovedBy implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) CountApprovedBy(ctx context.Context, adminID int64) (int64, error) {
	q := GetQuerier(ctx, e.db)

	var total int64
	err := q.QueryRow(ctx, `SELECT COUNT(*) FROM employees WHERE approved_by = $1`, adminID).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to count approvals: %w", err)
	}

	return total, nil
}
