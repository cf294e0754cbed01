// Package report_repo provides PostgreSQL implementations for report repositories.
package report_repo

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/shopspring/decimal"

	"textile/internal/core/apperror"
	"textile/internal/domain/reports"
	"textile/internal/infrastructure/storage/postgres"
)

const (
	stockEntriesTable = "stock_entries"
	workOrdersTable   = "work_orders"
	itemsTable        = "items"

	// DocStatusSubmitted marks a committed stock entry.
	DocStatusSubmitted = 1
)

// ReportRepo implements reports.Repository.
type ReportRepo struct {
	txm     *postgres.TxManager
	builder squirrel.StatementBuilderType
}

// NewReportRepo creates a new report repository.
func NewReportRepo(txm *postgres.TxManager) *ReportRepo {
	return &ReportRepo{
		txm:     txm,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// productionEntry is one scanned register line.
type productionEntry struct {
	StockEntry      string    `db:"stock_entry"`
	PostingDate     time.Time `db:"posting_date"`
	PostingTime     string    `db:"posting_time"`
	WorkOrder       string    `db:"work_order"`
	FabricPrinter   string    `db:"fabric_printer"`
	Qty             string    `db:"qty"`
	PrintOrder      string    `db:"print_order"`
	UOM             string    `db:"uom"`
	Customer        string    `db:"customer"`
	CustomerName    string    `db:"customer_name"`
	DesignItem      string    `db:"design_item"`
	DesignItemName  string    `db:"design_item_name"`
	ProcessItem     string    `db:"process_item"`
	ProcessItemName string    `db:"process_item_name"`
	FabricItem      string    `db:"fabric_item"`
	FabricItemName  string    `db:"fabric_item_name"`
}

func (e productionEntry) toRow() (*reports.Row, error) {
	qty := decimal.Zero
	if e.Qty != "" {
		var err error
		qty, err = decimal.NewFromString(e.Qty)
		if err != nil {
			return nil, fmt.Errorf("stock entry %s: parse qty %q: %w", e.StockEntry, e.Qty, err)
		}
	}

	return reports.NewRow().
		Set(reports.FieldStockEntry, e.StockEntry).
		Set(reports.FieldPostingDate, reports.NewDate(e.PostingDate)).
		Set(reports.FieldPostingTime, e.PostingTime).
		Set(reports.FieldWorkOrder, e.WorkOrder).
		Set(reports.FieldFabricPrinter, e.FabricPrinter).
		Set(reports.FieldQty, qty).
		Set(reports.FieldPrintOrder, e.PrintOrder).
		Set(reports.FieldUOM, e.UOM).
		Set(reports.FieldCustomer, e.Customer).
		Set(reports.FieldCustomerName, e.CustomerName).
		Set(reports.FieldDesignItem, e.DesignItem).
		Set(reports.FieldDesignItemName, e.DesignItemName).
		Set(reports.FieldProcessItem, e.ProcessItem).
		Set(reports.FieldProcessItemName, e.ProcessItemName).
		Set(reports.FieldFabricItem, e.FabricItem).
		Set(reports.FieldFabricItemName, e.FabricItemName), nil
}

// ProductionConditions builds the optional register filters.
// Conditions keep a fixed order so the generated query is stable.
func ProductionConditions(filter reports.ProductionRegisterFilter) squirrel.And {
	conds := squirrel.And{}

	if filter.Company != "" {
		conds = append(conds, squirrel.Eq{"se.company": filter.Company})
	}
	if filter.Customer != "" {
		conds = append(conds, squirrel.Eq{"wo.customer": filter.Customer})
	}
	if filter.FabricItem != "" {
		conds = append(conds, squirrel.Eq{"wo.fabric_item": filter.FabricItem})
	}
	if filter.FabricMaterial != "" {
		conds = append(conds, squirrel.Eq{"item.fabric_material": filter.FabricMaterial})
	}
	if filter.FabricType != "" {
		conds = append(conds, squirrel.Eq{"item.fabric_type": filter.FabricType})
	}
	if len(filter.PrintOrders) > 0 {
		conds = append(conds, squirrel.Eq{"wo.print_order": filter.PrintOrders})
	}
	if filter.ProcessItem != "" {
		conds = append(conds, squirrel.Eq{"wo.process_item": filter.ProcessItem})
	}
	if filter.FabricPrinter != "" {
		conds = append(conds, squirrel.Eq{"se.fabric_printer": filter.FabricPrinter})
	}

	return conds
}

// productionQuery builds the register select.
func (r *ReportRepo) productionQuery(filter reports.ProductionRegisterFilter) squirrel.SelectBuilder {
	q := r.builder.Select(
		"se.name AS stock_entry",
		"se.posting_date",
		"se.posting_time::text AS posting_time",
		"se.work_order",
		"COALESCE(se.fabric_printer, '') AS fabric_printer",
		"se.fg_completed_qty::text AS qty",
		"COALESCE(wo.print_order, '') AS print_order",
		"COALESCE(wo.stock_uom, '') AS uom",
		"COALESCE(wo.customer, '') AS customer",
		"COALESCE(wo.customer_name, '') AS customer_name",
		"wo.production_item AS design_item",
		"COALESCE(wo.item_name, '') AS design_item_name",
		"COALESCE(wo.process_item, '') AS process_item",
		"COALESCE(wo.process_item_name, '') AS process_item_name",
		"COALESCE(wo.fabric_item, '') AS fabric_item",
		"COALESCE(wo.fabric_item_name, '') AS fabric_item_name",
	).
		From(stockEntriesTable + " se").
		Join(workOrdersTable + " wo ON wo.name = se.work_order").
		LeftJoin(itemsTable + " item ON item.name = wo.fabric_item").
		Where(squirrel.Eq{"se.docstatus": DocStatusSubmitted}).
		Where("se.posting_date BETWEEN ? AND ?", filter.FromDate, filter.ToDate)

	if conds := ProductionConditions(filter); len(conds) > 0 {
		q = q.Where(conds)
	}

	return q.OrderBy("se.posting_date", "se.posting_time", "se.fabric_printer")
}

// GetProductionEntries returns committed stock entries for the register.
func (r *ReportRepo) GetProductionEntries(ctx context.Context, filter reports.ProductionRegisterFilter) ([]*reports.Row, error) {
	sql, args, err := r.productionQuery(filter).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build production register query: %w", err)
	}

	var entries []productionEntry
	err = r.txm.ReadOnly(ctx, func(ctx context.Context) error {
		return pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &entries, sql, args...)
	})
	if err != nil {
		return nil, apperror.NewDatabase(fmt.Errorf("production register: %w", err))
	}

	rows := make([]*reports.Row, 0, len(entries))
	for _, e := range entries {
		row, err := e.toRow()
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}

	return rows, nil
}

// Ensure interface compliance
var _ reports.Repository = (*ReportRepo)(nil)
