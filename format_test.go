package jobtrack_test

import (
	"math"
	"testing"
	"time"

	jobtrack "github.com/dan-yates1/job-tracker"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatDate(t *testing.T) {
	utc := jobtrack.NewFormatter(time.UTC)
	pacific := jobtrack.NewFormatter(time.FixedZone("PST", -8*60*60))
	tokyo := jobtrack.NewFormatter(time.FixedZone("JST", 9*60*60))

	tests := []struct {
		name      string
		formatter *jobtrack.Formatter
		input     string
		expected  string
	}{
		{"date only", utc, "2024-03-05", "Mar 5, 2024"},
		{"date only west of utc keeps the day", pacific, "2024-03-05", "Mar 5, 2024"},
		{"date only east of utc keeps the day", tokyo, "2024-12-31", "Dec 31, 2024"},
		{"rfc3339 in utc", utc, "2024-03-05T23:30:00Z", "Mar 5, 2024"},
		{"rfc3339 crosses midnight", tokyo, "2024-03-05T23:30:00Z", "Mar 6, 2024"},
		{"rfc3339 with offset", utc, "2024-03-05T01:00:00+02:00", "Mar 4, 2024"},
		{"fractional seconds", utc, "2024-07-01T12:00:00.123456Z", "Jul 1, 2024"},
		{"naive timestamp", pacific, "2024-03-05T10:15:00", "Mar 5, 2024"},
		{"naive with microseconds", utc, "2024-03-05T10:15:00.123456", "Mar 5, 2024"},
		{"us style", utc, "03/05/2024", "Mar 5, 2024"},
		{"already formatted", utc, "Mar 5, 2024", "Mar 5, 2024"},
		{"surrounding space", utc, " 2024-03-05 ", "Mar 5, 2024"},
		{"empty", utc, "", ""},
		{"whitespace only", utc, "   ", jobtrack.InvalidDate},
		{"padded", utc, " 2024-03-05 ", "Mar 5, 2024"},
		{"garbage", utc, "not a date", jobtrack.InvalidDate},
		{"impossible day", utc, "2024-02-30", jobtrack.InvalidDate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.formatter.FormatDate(tt.input))
		})
	}
}

func TestFormatTime(t *testing.T) {
	f := jobtrack.NewFormatter(time.UTC)

	assert.Equal(t, "", f.FormatTime(time.Time{}))
	assert.Equal(t, "Jan 2, 2025", f.FormatTime(time.Date(2025, 1, 2, 15, 0, 0, 0, time.UTC)))
}

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		name     string
		amount   float64
		expected string
	}{
		{"thousands", 1500, "$1,500"},
		{"millions", 1234567, "$1,234,567"},
		{"rounds up", 1234567.89, "$1,234,568"},
		{"half rounds away from zero", 999.5, "$1,000"},
		{"rounds down", 80000.49, "$80,000"},
		{"small", 42, "$42"},
		{"below a dollar", 0.4, "$0"},
		{"negative", -2500, "-$2,500"},
		{"zero", 0, ""},
		{"nan", math.NaN(), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, jobtrack.FormatCurrency(tt.amount))
		})
	}
}

func TestFormatCurrencyValue(t *testing.T) {
	salary := 120000
	var missing *int

	tests := []struct {
		name     string
		amount   any
		expected string
	}{
		{"nil", nil, ""},
		{"int", 80000, "$80,000"},
		{"int64", int64(95000), "$95,000"},
		{"float", 1500.0, "$1,500"},
		{"pointer", &salary, "$120,000"},
		{"nil pointer", missing, ""},
		{"decimal", decimal.RequireFromString("65000.50"), "$65,001"},
		{"numeric string", "1500", "$1,500"},
		{"zero string", "0", "$0"},
		{"empty string", "", ""},
		{"text", "lots", "$NaN"},
		{"zero int", 0, ""},
		{"unsupported", struct{}{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, jobtrack.FormatCurrencyValue(tt.amount))
		})
	}
}
