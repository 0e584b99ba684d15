package memory

import (
	"context"
	"sync"
	"time"

	"github.com/cmlabs-hris/inzone-backend-go/internal/domain/signup"
	"github.com/google/uuid"
)

type declineLogRepository struct {
	mu      sync.RWMutex
	entries []signup.DeclineLog
}

func NewDeclineLogRepository() signup.DeclineLogRepository {
	return &declineLogRepository{}
}

// Create implements signup.DeclineLogRepository.
func (r *declineLogRepository) Create(ctx context.Context, entry signup.DeclineLog) (signup.DeclineLog, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return signup.DeclineLog{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	entry.ID = id.String()
	if entry.DeclinedAt.IsZero() {
		entry.DeclinedAt = time.Now()
	}
	r.entries = append(r.entries, entry)
	return entry, nil
}

// CountByDecliner implements signup.DeclineLogRepository.
func (r *declineLogRepository) CountByDecliner(ctx context.Context, adminID int64) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var n int64
	for _, e := range r.entries {
		if e.DeclinedBy == adminID {
			n++
		}
	}
	return n, nil
}
