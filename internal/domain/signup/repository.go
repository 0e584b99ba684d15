package signup

import "context"

type DeclineLogRepository interface {
	Create(ctx context.Context, entry DeclineLog) (DeclineLog, error)
	CountByDecliner(ctx context.Context, adminID int64) (int64, error)
}
