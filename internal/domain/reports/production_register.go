package reports

import (
	"github.com/shopspring/decimal"
)

// productionRegister is a single run of the print production register.
// It is built per call and never shared.
type productionRegister struct {
	filter  ProductionRegisterFilter
	prefs   Preferences
	groupBy []string
}

func newProductionRegister(filter ProductionRegisterFilter, prefs Preferences) *productionRegister {
	groupBy := append([]string{""}, filter.GroupFields()...)
	return &productionRegister{
		filter:  filter,
		prefs:   prefs,
		groupBy: groupBy,
	}
}

func (p *productionRegister) grouped() bool {
	return len(p.groupBy) > 1
}

// prepareRows stamps the derived reference fields on fetched rows.
func (p *productionRegister) prepareRows(rows []*Row) {
	for _, r := range rows {
		r.Set(FieldDisableItemFormatter, 1)
		r.Set(FieldReferenceType, ReferenceTypeStockEntry)
		r.Set(FieldReference, r.Value(FieldStockEntry))
	}
}

func (p *productionRegister) groupRows(rows []*Row) []*Row {
	if !p.grouped() {
		return rows
	}
	return GroupRows(rows, p.groupBy, p.groupTotals, p.filter.TotalsOnly)
}

// groupReferenceTypes maps group fields whose values link to another kind.
var groupReferenceTypes = map[string]string{
	FieldProcessItem: ReferenceTypeItem,
	FieldFabricItem:  ReferenceTypeItem,
}

// groupNameFields are the name fields carried onto totals from the first row.
var groupNameFields = []struct{ key, name string }{
	{FieldFabricItem, FieldFabricItemName},
	{FieldProcessItem, FieldProcessItemName},
	{FieldCustomer, FieldCustomerName},
}

// ReferenceTypeFor returns the reference kind of a total grouped by field.
func ReferenceTypeFor(groupField string) string {
	if rt, ok := groupReferenceTypes[groupField]; ok {
		return rt
	}
	return Unscrub(groupField)
}

func (p *productionRegister) groupTotals(rows []*Row, groupField string, groupValue any, groupedBy *Row) *Row {
	totals := NewRow()

	for _, f := range groupedBy.Fields() {
		totals.Set(f, groupedBy.Value(f))
	}

	qty := decimal.Zero
	for _, r := range rows {
		qty = qty.Add(r.Decimal(FieldQty))
	}
	totals.Set(FieldQty, qty)

	referenceType := ReferenceTypeFor(groupField)
	totals.Set(FieldReferenceType, referenceType)
	switch {
	case groupField == "" || !p.grouped():
		totals.Set(FieldReference, GrandTotalLabel)
	case referenceType == "":
		totals.Set(FieldReference, "'"+formatValue(groupedBy.Value(groupField))+"'")
	default:
		totals.Set(FieldReference, groupedBy.Value(groupField))
	}

	if groupedBy.Has(FieldItemCode) {
		totals.Set(FieldOriginalItemCode, totals.Value(FieldItemCode))
	} else if groupedBy.Has(FieldVariantOf) {
		variantOf := totals.Value(FieldVariantOf)
		totals.Set(FieldItemCode, variantOf)
		totals.Set(FieldOriginalItemCode, variantOf)
	}

	totals.Set(FieldDisableItemFormatter, boolToInt(p.prefs.ShowItemName))

	if len(rows) > 0 {
		for _, nf := range groupNameFields {
			if truthy(totals.Value(nf.key)) {
				totals.Set(nf.name, rows[0].Value(nf.name))
			}
		}
	}

	return totals
}

func (p *productionRegister) columns() []Column {
	return BuildColumns(p.prefs, p.grouped())
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
