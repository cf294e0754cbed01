// Package reports provides report generation services.
package reports

import (
	"strings"
	"time"
)

// Row field names.
const (
	FieldStockEntry           = "stock_entry"
	FieldPostingDate          = "posting_date"
	FieldPostingTime          = "posting_time"
	FieldWorkOrder            = "work_order"
	FieldFabricPrinter        = "fabric_printer"
	FieldQty                  = "qty"
	FieldPrintOrder           = "print_order"
	FieldUOM                  = "uom"
	FieldCustomer             = "customer"
	FieldCustomerName         = "customer_name"
	FieldDesignItem           = "design_item"
	FieldDesignItemName       = "design_item_name"
	FieldProcessItem          = "process_item"
	FieldProcessItemName      = "process_item_name"
	FieldFabricItem           = "fabric_item"
	FieldFabricItemName       = "fabric_item_name"
	FieldItemCode             = "item_code"
	FieldOriginalItemCode     = "original_item_code"
	FieldVariantOf            = "variant_of"
	FieldReference            = "reference"
	FieldReferenceType        = "reference_type"
	FieldDisableItemFormatter = "disable_item_formatter"

	// Renderer hints on total rows.
	FieldIndent       = "indent"
	FieldIsGroupTotal = "_isGroupTotal"
)

const (
	// ReferenceTypeStockEntry is the reference kind of detail rows.
	ReferenceTypeStockEntry = "Stock Entry"

	// ReferenceTypeItem is the reference kind of item group totals.
	ReferenceTypeItem = "Item"

	// GrandTotalLabel is the literal reference of the grand total row.
	GrandTotalLabel = "'Total'"

	// GroupByPrefix is stripped from group_by_N labels.
	GroupByPrefix = "Group by "

	// MaxGroupLevels is the number of group_by_N filters.
	MaxGroupLevels = 3
)

// ProductionRegisterFilter holds the print production register filters.
type ProductionRegisterFilter struct {
	Company        string
	Customer       string
	FabricItem     string
	FabricMaterial string
	FabricType     string
	PrintOrders    []string
	ProcessItem    string
	FabricPrinter  string

	// Period (required, inclusive)
	FromDate time.Time
	ToDate   time.Time

	// GroupBy holds group_by_1..3 labels, e.g. "Group by Customer".
	GroupBy [MaxGroupLevels]string

	// TotalsOnly suppresses detail rows when grouping.
	TotalsOnly bool
}

// Normalize splits comma separated print orders in place.
func (f *ProductionRegisterFilter) Normalize() {
	if len(f.PrintOrders) > 0 {
		f.PrintOrders = ParsePrintOrders(f.PrintOrders...)
	}
}

// GroupFields returns the field names of the active grouping levels, outer first.
func (f ProductionRegisterFilter) GroupFields() []string {
	var fields []string
	for _, label := range f.GroupBy {
		label = strings.TrimPrefix(strings.TrimSpace(label), GroupByPrefix)
		if label == "" {
			continue
		}
		fields = append(fields, Scrub(label))
	}
	return fields
}

// ParsePrintOrders splits each value on commas and trims the pieces.
// Empty pieces are dropped.
func ParsePrintOrders(values ...string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			part = strings.TrimSpace(part)
			if part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// Column describes a report column for the renderer.
type Column struct {
	Label     string `json:"label"`
	FieldName string `json:"fieldname"`
	FieldType string `json:"fieldtype"`
	Options   string `json:"options,omitempty"`
	Width     int    `json:"width"`
}

// Column field types.
const (
	FieldTypeDate        = "Date"
	FieldTypeTime        = "Time"
	FieldTypeLink        = "Link"
	FieldTypeDynamicLink = "Dynamic Link"
	FieldTypeData        = "Data"
	FieldTypeFloat       = "Float"
)

// ProductionRegister is the generated report.
type ProductionRegister struct {
	Columns []Column `json:"columns"`
	Rows    []*Row   `json:"data"`
}
