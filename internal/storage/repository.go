package storage

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("storage: not found")

// Journal archives finished days. The planner writes to it and never restores
// session state from it.
type Journal interface {
	SaveDay(ctx context.Context, in DayRecord) error
	GetDay(ctx context.Context, id string) (DayRecord, error)
	DeleteDay(ctx context.Context, id string) error
	ListDays(ctx context.Context, filter DayListFilter) ([]DayRecord, error)
}
