package reports

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"textile/internal/core/apperror"
	"textile/pkg/logger"
)

var tracer = otel.Tracer("textile/reports")

// Service provides report generation operations.
type Service struct {
	repo  Repository
	prefs PreferencesSource
}

// NewService creates a new reports service.
func NewService(repo Repository, prefs PreferencesSource) *Service {
	return &Service{repo: repo, prefs: prefs}
}

// GetProductionRegister generates the print production register.
func (s *Service) GetProductionRegister(ctx context.Context, filter ProductionRegisterFilter) (*ProductionRegister, error) {
	if filter.FromDate.IsZero() || filter.ToDate.IsZero() {
		return nil, apperror.NewValidation("from_date and to_date are required")
	}
	if filter.FromDate.After(filter.ToDate) {
		return nil, apperror.NewInvalidDateRange(filter.FromDate, filter.ToDate)
	}

	ctx, span := tracer.Start(ctx, "reports.production_register")
	defer span.End()

	filter.Normalize()

	prefs, err := s.prefs.Preferences(ctx)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("resolve preferences: %w", err)
	}

	register := newProductionRegister(filter, prefs)
	span.SetAttributes(attribute.Int("report.group_levels", len(register.groupBy)-1))

	rows, err := s.repo.GetProductionEntries(ctx, filter)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("get production entries: %w", err)
	}

	register.prepareRows(rows)
	data := register.groupRows(rows)

	span.SetAttributes(
		attribute.Int("report.entries", len(rows)),
		attribute.Int("report.rows", len(data)),
	)
	logger.Debug(ctx, "production register generated",
		"from_date", filter.FromDate.Format("2006-01-02"),
		"to_date", filter.ToDate.Format("2006-01-02"),
		"group_by", register.groupBy[1:],
		"entries", len(rows),
		"rows", len(data),
	)

	if data == nil {
		data = []*Row{}
	}

	return &ProductionRegister{
		Columns: register.columns(),
		Rows:    data,
	}, nil
}
