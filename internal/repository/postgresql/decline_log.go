package postgresql

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/inzone-backend-go/internal/domain/signup"
	"github.com/cmlabs-hris/inzone-backend-go/internal/pkg/database"
	"github.com/google/uuid"
)

type declineLogRepository struct {
	db *database.DB
}

func NewDeclineLogRepository(db *database.DB) signup.DeclineLogRepository {
	return &declineLogRepository{db: db}
}

// Create implements signup.DeclineLogRepository.
func (r *declineLogRepository) Create(ctx context.Context, entry signup.DeclineLog) (signup.DeclineLog, error) {
	q := GetQuerier(ctx, r.db)

	id, err := uuid.NewV7()
	if err != nil {
		return signup.DeclineLog{}, fmt.Errorf("failed to generate decline log id: %w", err)
	}
	entry.ID = id.String()

	query := `
		INSERT INTO decline_logs (id, employee_id, declined_by, email, first_name, last_name)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING declined_at
	`

	err = q.QueryRow(ctx, query,
		entry.ID, entry.EmployeeID, entry.DeclinedBy, entry.Email, entry.FirstName, entry.LastName,
	).Scan(&entry.DeclinedAt)
	if err != nil {
		return signup.DeclineLog{}, fmt.Errorf("failed to create decline log: %w", err)
	}

	return entry, nil
}

// CountByDecliner implements signup.DeclineLogRepository.
func (r *declineLogRepository) CountByDecliner(ctx context.Context, adminID int64) (int64, error) {
	q := GetQuerier(ctx, r.db)

	var total int64
	err := q.QueryRow(ctx, `SELECT COUNT(*) FROM decline_logs WHERE declined_by = $1`, adminID).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to count declines: %w", err)
	}

	return total, nil
}
