package jobtrack

import "strings"

// ApplicationStatus is the stage a job application is in
type ApplicationStatus string

const (
	StatusApplied   ApplicationStatus = "applied"
	StatusInterview ApplicationStatus = "interview"
	StatusOffer     ApplicationStatus = "offer"
	StatusRejected  ApplicationStatus = "rejected"
	StatusWithdrawn ApplicationStatus = "withdrawn"
)

// DefaultStatusClass is used for any status outside the known set
const DefaultStatusClass = "status-default"

var statusClasses = map[ApplicationStatus]string{
	StatusApplied:   "status-applied",
	StatusInterview: "status-interview",
	StatusOffer:     "status-offer",
	StatusRejected:  "status-rejected",
	StatusWithdrawn: "status-withdrawn",
}

// Statuses lists the known statuses in pipeline order
func Statuses() []ApplicationStatus {
	return []ApplicationStatus{
		StatusApplied,
		StatusInterview,
		StatusOffer,
		StatusRejected,
		StatusWithdrawn,
	}
}

// Class returns the CSS class for s
func (s ApplicationStatus) Class() string {
	return StatusClass(string(s))
}

// Known reports whether s is one of the known statuses, case insensitive
func (s ApplicationStatus) Known() bool {
	_, ok := statusClasses[ApplicationStatus(strings.ToLower(string(s)))]
	return ok
}

// StatusClass maps a status keyword to its CSS class, ignoring case.
// Unknown and empty keywords map to DefaultStatusClass.
func StatusClass(status string) string {
	if class, ok := statusClasses[ApplicationStatus(strings.ToLower(status))]; ok {
		return class
	}
	return DefaultStatusClass
}

// StatusClassOf is StatusClass for optional values, nil maps to
// DefaultStatusClass
func StatusClassOf(status *string) string {
	if status == nil {
		return DefaultStatusClass
	}
	return StatusClass(*status)
}
