package reports

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"textile/internal/core/apperror"
)

type fakeRepo struct {
	rows   []*Row
	err    error
	calls  int
	filter ProductionRegisterFilter
}

func (r *fakeRepo) GetProductionEntries(_ context.Context, filter ProductionRegisterFilter) ([]*Row, error) {
	r.calls++
	r.filter = filter
	return r.rows, r.err
}

func day(d int) time.Time {
	return time.Date(2024, 5, d, 0, 0, 0, 0, time.UTC)
}

func fixtureRows() []*Row {
	return []*Row{
		detailRow("STE-1", "CUST-A", "Alpha", "FAB-1", "Poplin", "PRC-1", "Pigment", "10"),
		detailRow("STE-2", "CUST-B", "Beta", "FAB-1", "Poplin", "PRC-2", "Sublimation", "5"),
		detailRow("STE-3", "CUST-A", "Alpha", "FAB-2", "Jersey", "PRC-1", "Pigment", "2.5"),
	}
}

func newTestService(repo Repository) *Service {
	return NewService(repo, NewDefaultsPreferences(StaticDefaults{
		DefaultItemNamingBy:   NamingByNamingSeries,
		DefaultCustMasterName: NamingByNamingSeries,
	}, false))
}

func TestService_GetProductionRegister_Validation(t *testing.T) {
	tests := []struct {
		name     string
		filter   ProductionRegisterFilter
		wantCode string
	}{
		{"missing dates", ProductionRegisterFilter{}, apperror.CodeValidation},
		{"missing to date", ProductionRegisterFilter{FromDate: day(1)}, apperror.CodeValidation},
		{"inverted range", ProductionRegisterFilter{FromDate: day(10), ToDate: day(1)}, apperror.CodeInvalidDateRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeRepo{rows: fixtureRows()}

			_, err := newTestService(repo).GetProductionRegister(context.Background(), tt.filter)

			require.Error(t, err)
			assert.True(t, apperror.HasCode(err, tt.wantCode))
			assert.Zero(t, repo.calls)
		})
	}
}

func TestService_GetProductionRegister_Ungrouped(t *testing.T) {
	repo := &fakeRepo{rows: fixtureRows()}

	report, err := newTestService(repo).GetProductionRegister(context.Background(), ProductionRegisterFilter{
		FromDate:    day(1),
		ToDate:      day(31),
		PrintOrders: []string{"PO-0001, PO-0002"},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, repo.calls)
	assert.Equal(t, []string{"PO-0001", "PO-0002"}, repo.filter.PrintOrders)

	require.Len(t, report.Rows, 3)
	for i, want := range []string{"STE-1", "STE-2", "STE-3"} {
		r := report.Rows[i]
		assert.Equal(t, want, r.Value(FieldReference))
		assert.Equal(t, ReferenceTypeStockEntry, r.Value(FieldReferenceType))
		assert.Equal(t, 1, r.Value(FieldDisableItemFormatter))
		assert.False(t, r.Has(FieldIsGroupTotal))
	}

	names := fieldNames(report.Columns)
	assert.Contains(t, names, FieldStockEntry)
	assert.Contains(t, names, FieldCustomerName)
	assert.NotContains(t, names, FieldReference)
}

func TestService_GetProductionRegister_SameDayRange(t *testing.T) {
	repo := &fakeRepo{}

	report, err := newTestService(repo).GetProductionRegister(context.Background(), ProductionRegisterFilter{
		FromDate: day(3),
		ToDate:   day(3),
	})
	require.NoError(t, err)

	assert.NotNil(t, report.Rows)
	assert.Empty(t, report.Rows)
	assert.NotEmpty(t, report.Columns)
}

func TestService_GetProductionRegister_TotalsOnly(t *testing.T) {
	repo := &fakeRepo{rows: fixtureRows()}

	report, err := newTestService(repo).GetProductionRegister(context.Background(), ProductionRegisterFilter{
		FromDate:   day(1),
		ToDate:     day(31),
		GroupBy:    [MaxGroupLevels]string{"Group by Customer"},
		TotalsOnly: true,
	})
	require.NoError(t, err)

	require.Len(t, report.Rows, 3)
	assert.Equal(t, GrandTotalLabel, report.Rows[0].Value(FieldReference))
	assert.Equal(t, "CUST-A", report.Rows[1].Value(FieldReference))
	assert.Equal(t, "Alpha", report.Rows[1].Value(FieldCustomerName))
	assert.True(t, decimal.RequireFromString("12.5").Equal(report.Rows[1].Decimal(FieldQty)))
	assert.Equal(t, "CUST-B", report.Rows[2].Value(FieldReference))
	for _, r := range report.Rows {
		assert.Equal(t, true, r.Value(FieldIsGroupTotal))
		assert.Equal(t, 1, r.Value(FieldDisableItemFormatter))
	}

	assert.Equal(t, FieldReference, report.Columns[0].FieldName)
	assert.NotContains(t, fieldNames(report.Columns), FieldStockEntry)
}

func TestService_GetProductionRegister_RepoError(t *testing.T) {
	repo := &fakeRepo{err: apperror.NewDatabase(errors.New("timeout"))}

	_, err := newTestService(repo).GetProductionRegister(context.Background(), ProductionRegisterFilter{
		FromDate: day(1),
		ToDate:   day(2),
	})

	require.Error(t, err)
	assert.True(t, apperror.HasCode(err, apperror.CodeDatabase))
}
