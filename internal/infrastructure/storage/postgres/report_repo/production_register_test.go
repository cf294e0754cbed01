package report_repo

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"textile/internal/domain/reports"
)

func TestProductionConditions_Empty(t *testing.T) {
	conds := ProductionConditions(reports.ProductionRegisterFilter{})
	assert.Empty(t, conds)
}

func TestProductionConditions_CanonicalOrder(t *testing.T) {
	filter := reports.ProductionRegisterFilter{
		FabricPrinter:  "PRN-02",
		ProcessItem:    "PROC-SUB",
		PrintOrders:    []string{"PO-0001", "PO-0002"},
		FabricType:     "Woven",
		FabricMaterial: "Cotton",
		FabricItem:     "FAB-001",
		Customer:       "CUST-001",
		Company:        "Acme Prints",
	}

	sql, args, err := ProductionConditions(filter).ToSql()
	require.NoError(t, err)

	wantSQL := "(se.company = ? AND wo.customer = ? AND wo.fabric_item = ? AND " +
		"item.fabric_material = ? AND item.fabric_type = ? AND wo.print_order IN (?,?) AND " +
		"wo.process_item = ? AND se.fabric_printer = ?)"
	assert.Equal(t, wantSQL, sql)
	assert.Equal(t, []any{
		"Acme Prints", "CUST-001", "FAB-001", "Cotton", "Woven",
		"PO-0001", "PO-0002", "PROC-SUB", "PRN-02",
	}, args)
}

func TestProductionQuery(t *testing.T) {
	repo := NewReportRepo(nil)
	from := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		filter   reports.ProductionRegisterFilter
		contains []string
		absent   []string
		wantArgs []any
	}{
		{
			name:   "period only",
			filter: reports.ProductionRegisterFilter{FromDate: from, ToDate: to},
			contains: []string{
				"FROM stock_entries se JOIN work_orders wo ON wo.name = se.work_order",
				"LEFT JOIN items item ON item.name = wo.fabric_item",
				"WHERE se.docstatus = $1 AND se.posting_date BETWEEN $2 AND $3 ORDER BY",
			},
			wantArgs: []any{DocStatusSubmitted, from, to},
		},
		{
			name: "with filters",
			filter: reports.ProductionRegisterFilter{
				FromDate:    from,
				ToDate:      to,
				Company:     "Acme Prints",
				PrintOrders: []string{"PO-0001"},
			},
			contains: []string{
				"se.posting_date BETWEEN $2 AND $3 AND (se.company = $4 AND wo.print_order IN ($5))",
			},
			wantArgs: []any{DocStatusSubmitted, from, to, "Acme Prints", "PO-0001"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, args, err := repo.productionQuery(tt.filter).ToSql()
			require.NoError(t, err)

			for _, fragment := range tt.contains {
				assert.Contains(t, sql, fragment)
			}
			assert.Contains(t, sql, "ORDER BY se.posting_date, se.posting_time, se.fabric_printer")
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestProductionEntry_ToRow(t *testing.T) {
	e := productionEntry{
		StockEntry:     "STE-0001",
		PostingDate:    time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
		PostingTime:    "10:15:00",
		WorkOrder:      "WO-0001",
		FabricPrinter:  "PRN-01",
		Qty:            "12.500",
		Customer:       "CUST-001",
		FabricItem:     "FAB-001",
		FabricItemName: "Cotton Lawn",
	}

	row, err := e.toRow()
	require.NoError(t, err)

	assert.Equal(t, "STE-0001", row.Value(reports.FieldStockEntry))
	assert.Equal(t, "2024-03-05", row.String(reports.FieldPostingDate))
	assert.True(t, decimal.RequireFromString("12.5").Equal(row.Decimal(reports.FieldQty)))
	assert.Equal(t, "Cotton Lawn", row.Value(reports.FieldFabricItemName))
	assert.Equal(t, reports.FieldStockEntry, row.Fields()[0])
}

func TestProductionEntry_ToRowBadQty(t *testing.T) {
	_, err := productionEntry{StockEntry: "STE-0002", Qty: "n/a"}.toRow()
	assert.Error(t, err)
}
