package reports

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Date is a calendar date without time of day.
type Date time.Time

// NewDate truncates t to its calendar date.
func NewDate(t time.Time) Date {
	y, m, d := t.Date()
	return Date(time.Date(y, m, d, 0, 0, 0, 0, time.UTC))
}

// Time returns the underlying time value.
func (d Date) Time() time.Time { return time.Time(d) }

// String formats the date as YYYY-MM-DD.
func (d Date) String() string { return time.Time(d).Format(time.DateOnly) }

// MarshalJSON encodes the date as "YYYY-MM-DD".
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// Row is an ordered field-name to value mapping.
// Field order follows first insertion and is preserved in JSON output.
type Row struct {
	fields []string
	values map[string]any
}

// NewRow creates an empty row.
func NewRow() *Row {
	return &Row{values: make(map[string]any)}
}

// Set assigns a field value and returns the row for chaining.
func (r *Row) Set(field string, value any) *Row {
	if _, ok := r.values[field]; !ok {
		r.fields = append(r.fields, field)
	}
	r.values[field] = value
	return r
}

// Get returns the field value and whether the field is present.
func (r *Row) Get(field string) (any, bool) {
	v, ok := r.values[field]
	return v, ok
}

// Value returns the field value or nil.
func (r *Row) Value(field string) any {
	return r.values[field]
}

// Has reports whether the field is present, even with a nil value.
func (r *Row) Has(field string) bool {
	_, ok := r.values[field]
	return ok
}

// Fields returns field names in insertion order.
func (r *Row) Fields() []string {
	out := make([]string, len(r.fields))
	copy(out, r.fields)
	return out
}

// Len returns the number of fields.
func (r *Row) Len() int { return len(r.fields) }

// String returns the field rendered as text; missing fields yield "".
func (r *Row) String(field string) string {
	return formatValue(r.values[field])
}

// Decimal returns the field as a decimal; non-numeric values count as zero.
func (r *Row) Decimal(field string) decimal.Decimal {
	switch v := r.values[field].(type) {
	case decimal.Decimal:
		return v
	case float64:
		return decimal.NewFromFloat(v)
	case int:
		return decimal.NewFromInt(int64(v))
	case int64:
		return decimal.NewFromInt(v)
	case string:
		d, err := decimal.NewFromString(v)
		if err != nil {
			return decimal.Zero
		}
		return d
	default:
		return decimal.Zero
	}
}

// Clone returns a shallow copy of the row.
func (r *Row) Clone() *Row {
	c := &Row{
		fields: make([]string, len(r.fields)),
		values: make(map[string]any, len(r.values)),
	}
	copy(c.fields, r.fields)
	for k, v := range r.values {
		c.values[k] = v
	}
	return c
}

// MarshalJSON encodes the row as a JSON object in field order.
// Decimals are written as JSON numbers.
func (r *Row) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range r.fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(f)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')

		var val []byte
		switch v := r.values[f].(type) {
		case decimal.Decimal:
			val = []byte(v.String())
		default:
			val, err = json.Marshal(v)
			if err != nil {
				return nil, fmt.Errorf("marshal field %s: %w", f, err)
			}
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func formatValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprint(t)
	}
}

// truthy mirrors how renderers treat empty values: nil, "", zero numbers and false are empty.
func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case string:
		return t != ""
	case bool:
		return t
	case int:
		return t != 0
	case int64:
		return t != 0
	case float64:
		return t != 0
	case decimal.Decimal:
		return !t.IsZero()
	default:
		return true
	}
}
