package jobtrack

import (
	"math"
	"math/big"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

const (
	// DisplayDateLayout renders as "Mar 5, 2024"
	DisplayDateLayout = "Jan 2, 2006"
	// InvalidDate is returned for input that is not a date
	InvalidDate = "Invalid Date"
)

// dateOnlyLayouts carry no time of day and are rendered as the calendar
// date they name, whatever the display location
var dateOnlyLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	"Jan 2, 2006",
	"January 2, 2006",
}

var zonedLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	time.RFC1123Z,
	time.RFC1123,
}

var naiveLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
}

// Formatter renders dates and amounts for display. Zoned timestamps are
// converted into Location before the date is taken.
type Formatter struct {
	Location *time.Location
}

// DefaultFormatter renders in the local timezone
var DefaultFormatter = &Formatter{Location: time.Local}

// NewFormatter returns a formatter for loc, nil means local time
func NewFormatter(loc *time.Location) *Formatter {
	if loc == nil {
		loc = time.Local
	}
	return &Formatter{Location: loc}
}

func (f *Formatter) location() *time.Location {
	if f == nil || f.Location == nil {
		return time.Local
	}
	return f.Location
}

// FormatDate renders input as "Mar 5, 2024". Empty input yields an empty
// string, anything else that does not parse, whitespace included, yields
// "Invalid Date".
func (f *Formatter) FormatDate(input string) string {
	if input == "" {
		return ""
	}

	t, ok := f.parse(strings.TrimSpace(input))
	if !ok {
		return InvalidDate
	}
	return t.Format(DisplayDateLayout)
}

// FormatTime renders t in the formatter location, zero time yields ""
func (f *Formatter) FormatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.In(f.location()).Format(DisplayDateLayout)
}

func (f *Formatter) parse(input string) (time.Time, bool) {
	for _, layout := range dateOnlyLayouts {
		if t, err := time.Parse(layout, input); err == nil {
			return t, true
		}
	}

	loc := f.location()
	for _, layout := range zonedLayouts {
		if t, err := time.Parse(layout, input); err == nil {
			return t.In(loc), true
		}
	}

	for _, layout := range naiveLayouts {
		if t, err := time.ParseInLocation(layout, input, loc); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}

// FormatCurrency renders amount as whole US dollars, "$1,500". Zero and
// NaN yield an empty string.
func (f *Formatter) FormatCurrency(amount float64) string {
	if amount == 0 || math.IsNaN(amount) {
		return ""
	}
	if math.IsInf(amount, 0) {
		if amount < 0 {
			return "-$∞"
		}
		return "$∞"
	}
	return formatDollars(decimal.NewFromFloat(amount))
}

// FormatCurrencyDecimal is FormatCurrency for decimal amounts
func (f *Formatter) FormatCurrencyDecimal(amount decimal.Decimal) string {
	if amount.IsZero() {
		return ""
	}
	return formatDollars(amount)
}

// FormatCurrencyValue accepts the loosely typed values found in templates
// and decoded JSON: numbers, decimals, numeric strings and nil.
func (f *Formatter) FormatCurrencyValue(amount any) string {
	switch v := amount.(type) {
	case nil:
		return ""
	case float64:
		return f.FormatCurrency(v)
	case float32:
		return f.FormatCurrency(float64(v))
	case int:
		return f.FormatCurrencyDecimal(decimal.NewFromInt(int64(v)))
	case int32:
		return f.FormatCurrencyDecimal(decimal.NewFromInt(int64(v)))
	case int64:
		return f.FormatCurrencyDecimal(decimal.NewFromInt(v))
	case uint:
		return f.FormatCurrencyDecimal(decimal.NewFromBigInt(new(big.Int).SetUint64(uint64(v)), 0))
	case uint64:
		return f.FormatCurrencyDecimal(decimal.NewFromBigInt(new(big.Int).SetUint64(v), 0))
	case *int:
		if v == nil {
			return ""
		}
		return f.FormatCurrencyValue(*v)
	case *float64:
		if v == nil {
			return ""
		}
		return f.FormatCurrency(*v)
	case decimal.Decimal:
		return f.FormatCurrencyDecimal(v)
	case *decimal.Decimal:
		if v == nil {
			return ""
		}
		return f.FormatCurrencyDecimal(*v)
	case string:
		s := strings.TrimSpace(v)
		if v == "" {
			return ""
		}
		if s == "" {
			// whitespace only reads as zero
			return "$0"
		}
		d, err := decimal.NewFromString(s)
		if err != nil {
			return "$NaN"
		}
		if d.IsZero() {
			return "$0"
		}
		return formatDollars(d)
	default:
		return ""
	}
}

func formatDollars(amount decimal.Decimal) string {
	rounded := amount.Abs().Round(0)
	out := "$" + humanize.BigComma(rounded.BigInt())
	if amount.IsNegative() {
		return "-" + out
	}
	return out
}

// FormatDate renders input with the DefaultFormatter
func FormatDate(input string) string {
	return DefaultFormatter.FormatDate(input)
}

// FormatCurrency renders amount with the DefaultFormatter
func FormatCurrency(amount float64) string {
	return DefaultFormatter.FormatCurrency(amount)
}

// FormatCurrencyValue renders amount with the DefaultFormatter
func FormatCurrencyValue(amount any) string {
	return DefaultFormatter.FormatCurrencyValue(amount)
}
