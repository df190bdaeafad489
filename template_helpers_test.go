package jobtrack_test

import (
	"context"
	"testing"

	"github.com/flosch/pongo2/v6"

	jobtrack "github.com/dan-yates1/job-tracker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func render(t *testing.T, source string, ctx pongo2.Context) string {
	t.Helper()
	tpl, err := pongo2.FromString(source)
	require.NoError(t, err)
	out, err := tpl.Execute(ctx)
	require.NoError(t, err)
	return out
}

func TestTemplateHelpers(t *testing.T) {
	app := newTestApp(t, jobtrack.Options{})
	helpers := jobtrack.TemplateHelpers(app)

	for _, name := range []string{"format_date", "format_currency", "status_class", "is_authenticated", "statuses"} {
		assert.Contains(t, helpers, name, "helper %s should be present", name)
	}

	statuses, ok := helpers["statuses"].([]map[string]string)
	require.True(t, ok)
	require.Len(t, statuses, len(jobtrack.Statuses()))
	assert.Equal(t, "applied", statuses[0]["value"])
	assert.Equal(t, "status-applied", statuses[0]["class"])
}

func TestTemplateHelpers_Render(t *testing.T) {
	app := newTestApp(t, jobtrack.Options{})

	ctx := pongo2.Context{
		"job": map[string]any{
			"status":       "interview",
			"applied_date": "2024-03-05",
			"salary_max":   120000,
		},
	}
	ctx.Update(jobtrack.TemplateHelpers(app))

	out := render(t, `<span class="{{ status_class(job.status) }}">{{ format_date(job.applied_date) }} {{ format_currency(job.salary_max) }}</span>`, ctx)
	assert.Equal(t, `<span class="status-interview">Mar 5, 2024 $120,000</span>`, out)

	source := `{% if is_authenticated() %}in{% else %}out{% endif %}`
	assert.Equal(t, "out", render(t, source, ctx))

	require.NoError(t, app.Tokens().Set(context.Background(), "abc"))
	assert.Equal(t, "in", render(t, source, ctx))
}

func TestTemplateHelpers_NilApp(t *testing.T) {
	helpers := jobtrack.TemplateHelpers(nil)

	isAuthenticated, ok := helpers["is_authenticated"].(func() bool)
	require.True(t, ok)
	assert.False(t, isAuthenticated())
}

func TestRegisterTemplateFilters(t *testing.T) {
	require.NoError(t, jobtrack.RegisterTemplateFilters())
	require.NoError(t, jobtrack.RegisterTemplateFilters(), "registering twice is fine")

	out := render(t, `{{ date|format_date }}|{{ amount|format_currency }}|{{ status|status_class }}|{{ missing|status_class }}`, pongo2.Context{
		"date":   "2024-03-05",
		"amount": 1500,
		"status": "Offer",
	})
	assert.Equal(t, "Mar 5, 2024|$1,500|status-offer|status-default", out)
}
