package session

import (
	"context"

	domain "vendorportal/internal/domain/session"
)

// Store persists the single local session. At most one session exists per
// portal process; Get returns sql.ErrNoRows when none is active.
type Store interface {
	Get(ctx context.Context) (domain.Session, error)
	Save(ctx context.Context, s domain.Session) error
	Clear(ctx context.Context) error
	Active(ctx context.Context) (bool, error)
}
