package v1

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"textile/internal/core/apperror"
	"textile/internal/domain/reports"
	"textile/internal/infrastructure/http/v1/middleware"
	"textile/pkg/logger"
)

type stubRepo struct {
	filter reports.ProductionRegisterFilter
	err    error
}

func (r *stubRepo) GetProductionEntries(_ context.Context, filter reports.ProductionRegisterFilter) ([]*reports.Row, error) {
	r.filter = filter
	if r.err != nil {
		return nil, r.err
	}
	return []*reports.Row{
		reports.NewRow().
			Set(reports.FieldStockEntry, "STE-00001").
			Set(reports.FieldCustomer, "CUST-0001").
			Set(reports.FieldCustomerName, "Indigo House").
			Set(reports.FieldQty, decimal.RequireFromString("12.5")),
		reports.NewRow().
			Set(reports.FieldStockEntry, "STE-00002").
			Set(reports.FieldCustomer, "CUST-0002").
			Set(reports.FieldCustomerName, "Loom & Co").
			Set(reports.FieldQty, decimal.RequireFromString("7.5")),
	}, nil
}

type stubPinger struct{ err error }

func (p stubPinger) Ping(context.Context) error { return p.err }

func newTestRouter(repo reports.Repository, db stubPinger) http.Handler {
	service := reports.NewService(repo, reports.NewDefaultsPreferences(reports.StaticDefaults{
		reports.DefaultCustMasterName: reports.NamingByNamingSeries,
	}, false))

	return NewRouter(RouterConfig{
		DB:             db,
		Logger:         logger.NewNop(),
		ReportsService: service,
	})
}

type registerBody struct {
	Columns []reports.Column `json:"columns"`
	Data    []map[string]any `json:"data"`
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestProductionRegister_Ungrouped(t *testing.T) {
	repo := &stubRepo{}
	rec := get(t, newTestRouter(repo, stubPinger{}),
		"/api/v1/reports/print-production-register?from_date=2024-05-01&to_date=2024-05-31&print_order=PO-0001,%20PO-0002&company=Textile%20Mills")

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get(middleware.HeaderRequestID))

	var body registerBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	require.Len(t, body.Data, 2)
	assert.Equal(t, "STE-00001", body.Data[0]["reference"])
	assert.Equal(t, "Stock Entry", body.Data[0]["reference_type"])
	assert.Equal(t, 12.5, body.Data[0]["qty"])

	assert.Equal(t, []string{"PO-0001", "PO-0002"}, repo.filter.PrintOrders)
	assert.Equal(t, "Textile Mills", repo.filter.Company)
}

func TestProductionRegister_GroupedTotalsOnly(t *testing.T) {
	rec := get(t, newTestRouter(&stubRepo{}, stubPinger{}),
		"/api/v1/reports/print-production-register?from_date=2024-05-01&to_date=2024-05-31&group_by_1=Group%20by%20Customer&totals_only=1")

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var body registerBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	require.Len(t, body.Data, 3)
	assert.Equal(t, "'Total'", body.Data[0]["reference"])
	assert.Equal(t, 20.0, body.Data[0]["qty"])
	assert.Equal(t, "CUST-0001", body.Data[1]["reference"])
	assert.Equal(t, "Customer", body.Data[1]["reference_type"])
	assert.Equal(t, "Indigo House", body.Data[1]["customer_name"])
	assert.Equal(t, 1.0, body.Data[1]["indent"])
	assert.Equal(t, true, body.Data[1]["_isGroupTotal"])

	require.NotEmpty(t, body.Columns)
	assert.Equal(t, "reference", body.Columns[0].FieldName)
}

func TestProductionRegister_Errors(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		repoErr    error
		wantStatus int
		wantCode   string
	}{
		{"missing dates", "", nil, http.StatusBadRequest, apperror.CodeValidation},
		{"bad date", "from_date=05/01/2024&to_date=2024-05-31", nil, http.StatusBadRequest, apperror.CodeInvalidInput},
		{"inverted range", "from_date=2024-05-31&to_date=2024-05-01", nil, http.StatusBadRequest, apperror.CodeInvalidDateRange},
		{"database failure", "from_date=2024-05-01&to_date=2024-05-31", apperror.NewDatabase(errors.New("conn reset")), http.StatusInternalServerError, apperror.CodeDatabase},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(t, newTestRouter(&stubRepo{err: tt.repoErr}, stubPinger{}),
				"/api/v1/reports/print-production-register?"+tt.query)

			require.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())

			var body map[string]any
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantCode, body["code"])
		})
	}
}

func TestHealth(t *testing.T) {
	h := newTestRouter(&stubRepo{}, stubPinger{})
	assert.Equal(t, http.StatusOK, get(t, h, "/health/live").Code)
	assert.Equal(t, http.StatusOK, get(t, h, "/health/ready").Code)

	down := newTestRouter(&stubRepo{}, stubPinger{err: errors.New("refused")})
	assert.Equal(t, http.StatusServiceUnavailable, get(t, down, "/health/ready").Code)
}
