package reports

// BuildColumns returns the register columns for the given preferences.
// grouped is set when at least one group_by level is active.
func BuildColumns(prefs Preferences, grouped bool) []Column {
	customerWidth := 150
	if prefs.ShowCustomerName {
		customerWidth = 80
	}
	itemWidth := 150
	if prefs.ShowItemName {
		itemWidth = 100
	}

	columns := []Column{
		{Label: "Date", FieldName: FieldPostingDate, FieldType: FieldTypeDate, Width: 85},
		{Label: "Time", FieldName: FieldPostingTime, FieldType: FieldTypeTime, Width: 85},
		{Label: "Print Order", FieldName: FieldPrintOrder, FieldType: FieldTypeLink, Options: "Print Order", Width: 100},
		{Label: "Work Order", FieldName: FieldWorkOrder, FieldType: FieldTypeLink, Options: "Work Order", Width: 100},
		{Label: "Stock Entry", FieldName: FieldStockEntry, FieldType: FieldTypeLink, Options: "Stock Entry", Width: 120},
		{Label: "Printer", FieldName: FieldFabricPrinter, FieldType: FieldTypeLink, Options: "Fabric Printer", Width: 80},
		{Label: "Process", FieldName: FieldProcessItemName, FieldType: FieldTypeData, Width: 100},
		{Label: "Customer", FieldName: FieldCustomer, FieldType: FieldTypeLink, Options: "Customer", Width: customerWidth},
		{Label: "Customer Name", FieldName: FieldCustomerName, FieldType: FieldTypeData, Width: 150},
		{Label: "Fabric Item", FieldName: FieldFabricItem, FieldType: FieldTypeLink, Options: "Item", Width: itemWidth},
		{Label: "Fabric Name", FieldName: FieldFabricItemName, FieldType: FieldTypeData, Width: 160},
		{Label: "Design Item", FieldName: FieldDesignItem, FieldType: FieldTypeLink, Options: "Item", Width: itemWidth},
		{Label: "Design Name", FieldName: FieldDesignItemName, FieldType: FieldTypeData, Width: 160},
		{Label: "Qty", FieldName: FieldQty, FieldType: FieldTypeFloat, Width: 80},
		{Label: "UOM", FieldName: FieldUOM, FieldType: FieldTypeLink, Options: "UOM", Width: 60},
	}

	if !prefs.ShowCustomerName {
		columns = dropColumns(columns, FieldCustomerName)
	}

	if !prefs.ShowItemName && prefs.HideItemNameColumns {
		columns = dropColumns(columns, FieldFabricItemName, FieldDesignItemName, FieldProcessItemName)
	}

	if grouped {
		columns = dropColumns(columns, FieldStockEntry)
		reference := Column{
			Label:     "Reference",
			FieldName: FieldReference,
			FieldType: FieldTypeDynamicLink,
			Options:   FieldReferenceType,
			Width:     200,
		}
		columns = append([]Column{reference}, columns...)
	}

	return columns
}

func dropColumns(columns []Column, fieldNames ...string) []Column {
	out := columns[:0:0]
	for _, c := range columns {
		drop := false
		for _, f := range fieldNames {
			if c.FieldName == f {
				drop = true
				break
			}
		}
		if !drop {
			out = append(out, c)
		}
	}
	return out
}
