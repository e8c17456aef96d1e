package reconcile

import "context"

// TransactionManager scopes ticket insertion and peer-card registration to
// a single transactional boundary. Satisfied by shared/db.TransactionManager.
type TransactionManager interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
