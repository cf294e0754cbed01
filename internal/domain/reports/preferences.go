package reports

import (
	"context"
	"fmt"
)

// Global default keys that drive the register layout.
const (
	DefaultItemNamingBy   = "item_naming_by"
	DefaultCustMasterName = "cust_master_name"

	NamingByItemName     = "Item Name"
	NamingByNamingSeries = "Naming Series"
)

// Preferences are the display preferences of one report run.
type Preferences struct {
	// ShowItemName is set when items are identified by code, so names are shown beside them.
	ShowItemName bool

	// ShowCustomerName is set when customers are identified by a naming series.
	ShowCustomerName bool

	// HideItemNameColumns drops the item name columns when ShowItemName is off.
	// Off keeps every name column, which is how the register has always rendered.
	HideItemNameColumns bool
}

// PreferencesFromDefaults derives preferences from the global default values.
func PreferencesFromDefaults(itemNamingBy, custMasterName string) Preferences {
	return Preferences{
		ShowItemName:     itemNamingBy != NamingByItemName,
		ShowCustomerName: custMasterName == NamingByNamingSeries,
	}
}

// PreferencesSource resolves preferences for a report run.
type PreferencesSource interface {
	Preferences(ctx context.Context) (Preferences, error)
}

// DefaultsReader reads global default values. Missing keys return "".
type DefaultsReader interface {
	GetGlobalDefault(ctx context.Context, key string) (string, error)
}

// DefaultsPreferences resolves preferences from global defaults.
type DefaultsPreferences struct {
	reader              DefaultsReader
	hideItemNameColumns bool
}

// NewDefaultsPreferences creates a PreferencesSource over a DefaultsReader.
func NewDefaultsPreferences(reader DefaultsReader, hideItemNameColumns bool) *DefaultsPreferences {
	return &DefaultsPreferences{reader: reader, hideItemNameColumns: hideItemNameColumns}
}

// Preferences reads item and customer naming defaults.
func (p *DefaultsPreferences) Preferences(ctx context.Context) (Preferences, error) {
	itemNamingBy, err := p.reader.GetGlobalDefault(ctx, DefaultItemNamingBy)
	if err != nil {
		return Preferences{}, fmt.Errorf("read %s: %w", DefaultItemNamingBy, err)
	}
	custMasterName, err := p.reader.GetGlobalDefault(ctx, DefaultCustMasterName)
	if err != nil {
		return Preferences{}, fmt.Errorf("read %s: %w", DefaultCustMasterName, err)
	}

	prefs := PreferencesFromDefaults(itemNamingBy, custMasterName)
	prefs.HideItemNameColumns = p.hideItemNameColumns
	return prefs, nil
}

// StaticDefaults is an in-memory DefaultsReader.
type StaticDefaults map[string]string

// GetGlobalDefault returns the value for key.
func (d StaticDefaults) GetGlobalDefault(_ context.Context, key string) (string, error) {
	return d[key], nil
}

var (
	_ PreferencesSource = (*DefaultsPreferences)(nil)
	_ DefaultsReader    = StaticDefaults(nil)
)
