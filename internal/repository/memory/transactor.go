package memory

import (
	"context"

	"github.com/cmlabs-hris/inzone-backend-go/internal/pkg/database"
)

type transactor struct{}

// NewTransactor returns a Transactor that runs fn directly. Each memory
// repository call is atomic on its own.
func NewTransactor() database.Transactor {
	return transactor{}
}

// WithinTransaction implements database.Transactor.
func (transactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
