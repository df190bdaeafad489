package jobtrack

import (
	"context"
	"fmt"
	"sync"

	"github.com/flosch/pongo2/v6"
)

// TemplateHelpers returns the page utilities as template global data, the
// server rendered counterpart of the jobTrackUtils namespace.
//
// Usage:
//
//	renderer, err := template.NewRenderer(
//	    template.WithBaseDir("./templates"),
//	    template.WithGlobalData(jobtrack.TemplateHelpers(app)),
//	)
//
// In templates, you can then use:
//
//	<span class="{{ status_class(job.status) }}">{{ job.status }}</span>
//	{{ format_date(job.applied_date) }}
//	{{ format_currency(job.salary_max) }}
//	{% if is_authenticated() %}
func TemplateHelpers(app *App) map[string]any {
	formatter := DefaultFormatter
	if app != nil {
		formatter = app.Formatter()
	}

	helpers := map[string]any{
		"format_date":     formatter.FormatDate,
		"format_currency": formatter.FormatCurrencyValue,
		"status_class":    StatusClass,
		"is_authenticated": func() bool {
			if app == nil {
				return false
			}
			return app.Tokens().IsAuthenticated(context.Background())
		},
		"statuses": statusTemplateData(),
	}

	return helpers
}

func statusTemplateData() []map[string]string {
	statuses := Statuses()
	out := make([]map[string]string, 0, len(statuses))
	for _, s := range statuses {
		out = append(out, map[string]string{
			"value": string(s),
			"class": s.Class(),
		})
	}
	return out
}

var (
	registerFiltersOnce sync.Once
	registerFiltersErr  error
)

// RegisterTemplateFilters registers format_date, format_currency and
// status_class as pongo2 filters. Filters are global to pongo2, the
// registration happens once per process.
//
//	{{ job.applied_date|format_date }}
//	{{ job.salary_min|format_currency }}
//	{{ job.status|status_class }}
func RegisterTemplateFilters() error {
	registerFiltersOnce.Do(func() {
		filters := map[string]pongo2.FilterFunction{
			"format_date":     filterFormatDate,
			"format_currency": filterFormatCurrency,
			"status_class":    filterStatusClass,
		}
		for name, fn := range filters {
			if pongo2.FilterExists(name) {
				continue
			}
			if err := pongo2.RegisterFilter(name, fn); err != nil {
				registerFiltersErr = fmt.Errorf("register filter %s: %w", name, err)
				return
			}
		}
	})
	return registerFiltersErr
}

func filterFormatDate(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	if in.IsNil() {
		return pongo2.AsValue(""), nil
	}
	return pongo2.AsValue(DefaultFormatter.FormatDate(in.String())), nil
}

func filterFormatCurrency(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	if in.IsNil() {
		return pongo2.AsValue(""), nil
	}
	return pongo2.AsValue(DefaultFormatter.FormatCurrencyValue(in.Interface())), nil
}

func filterStatusClass(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	if in.IsNil() {
		return pongo2.AsValue(DefaultStatusClass), nil
	}
	return pongo2.AsValue(StatusClass(in.String())), nil
}
