package jobtrack_test

import (
	"testing"

	jobtrack "github.com/dan-yates1/job-tracker"
	"github.com/stretchr/testify/assert"
)

func TestStatusClass(t *testing.T) {
	tests := []struct {
		status   string
		expected string
	}{
		{"applied", "status-applied"},
		{"interview", "status-interview"},
		{"offer", "status-offer"},
		{"rejected", "status-rejected"},
		{"withdrawn", "status-withdrawn"},
		{"APPLIED", "status-applied"},
		{"Offer", "status-offer"},
		{"ghosted", jobtrack.DefaultStatusClass},
		{"", jobtrack.DefaultStatusClass},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			assert.Equal(t, tt.expected, jobtrack.StatusClass(tt.status))
		})
	}
}

func TestStatusClassOf(t *testing.T) {
	offer := "offer"
	assert.Equal(t, "status-offer", jobtrack.StatusClassOf(&offer))
	assert.Equal(t, jobtrack.DefaultStatusClass, jobtrack.StatusClassOf(nil))
}

func TestApplicationStatus(t *testing.T) {
	for _, s := range jobtrack.Statuses() {
		assert.True(t, s.Known(), "%s should be known", s)
		assert.Equal(t, "status-"+string(s), s.Class())
	}

	assert.True(t, jobtrack.ApplicationStatus("Interview").Known())
	assert.False(t, jobtrack.ApplicationStatus("pending").Known())
	assert.Equal(t, jobtrack.DefaultStatusClass, jobtrack.ApplicationStatus("pending").Class())
}
