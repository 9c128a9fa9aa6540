package domain

import "context"

// AttemptRepository stores scoring summaries
type AttemptRepository interface {
	CreateAttempt(ctx context.Context, attempt *Attempt) error
	ListRecentAttempts(ctx context.Context, limit int) ([]*Attempt, error)
}
