package dto

import (
	"time"

	"textile/internal/core/apperror"
	"textile/internal/domain/reports"
)

// DateLayout is the query parameter date format.
const DateLayout = "2006-01-02"

// ProductionRegisterRequest represents request for the print production register.
type ProductionRegisterRequest struct {
	Company        string   `form:"company"`
	Customer       string   `form:"customer"`
	FabricItem     string   `form:"fabric_item"`
	FabricMaterial string   `form:"fabric_material"`
	FabricType     string   `form:"fabric_type"`
	PrintOrder     []string `form:"print_order"`
	ProcessItem    string   `form:"process_item"`
	FabricPrinter  string   `form:"fabric_printer"`
	FromDate       string   `form:"from_date" binding:"required"`
	ToDate         string   `form:"to_date" binding:"required"`
	GroupBy1       string   `form:"group_by_1"`
	GroupBy2       string   `form:"group_by_2"`
	GroupBy3       string   `form:"group_by_3"`
	TotalsOnly     bool     `form:"totals_only"`
}

// ToFilter converts the request to a domain filter.
func (r *ProductionRegisterRequest) ToFilter() (reports.ProductionRegisterFilter, error) {
	fromDate, err := time.Parse(DateLayout, r.FromDate)
	if err != nil {
		return reports.ProductionRegisterFilter{}, apperror.NewInvalidInput("from_date", "invalid from_date format, expected YYYY-MM-DD")
	}
	toDate, err := time.Parse(DateLayout, r.ToDate)
	if err != nil {
		return reports.ProductionRegisterFilter{}, apperror.NewInvalidInput("to_date", "invalid to_date format, expected YYYY-MM-DD")
	}

	return reports.ProductionRegisterFilter{
		Company:        r.Company,
		Customer:       r.Customer,
		FabricItem:     r.FabricItem,
		FabricMaterial: r.FabricMaterial,
		FabricType:     r.FabricType,
		PrintOrders:    r.PrintOrder,
		ProcessItem:    r.ProcessItem,
		FabricPrinter:  r.FabricPrinter,
		FromDate:       fromDate,
		ToDate:         toDate,
		GroupBy:        [reports.MaxGroupLevels]string{r.GroupBy1, r.GroupBy2, r.GroupBy3},
		TotalsOnly:     r.TotalsOnly,
	}, nil
}

// ProductionRegisterResponse represents the register for a report renderer.
type ProductionRegisterResponse struct {
	Columns []reports.Column `json:"columns"`
	Data    []*reports.Row   `json:"data"`
}

// FromProductionRegister converts domain report to response DTO.
func FromProductionRegister(r *reports.ProductionRegister) *ProductionRegisterResponse {
	return &ProductionRegisterResponse{
		Columns: r.Columns,
		Data:    r.Rows,
	}
}
