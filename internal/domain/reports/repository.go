package reports

import (
	"context"
)

// Repository defines report data access interface.
type Repository interface {
	// GetProductionEntries returns committed stock entries of work orders in
	// the filter period, ordered by posting date, posting time and printer.
	GetProductionEntries(ctx context.Context, filter ProductionRegisterFilter) ([]*Row, error)
}
