package api

import (
	"errors"
	"regexp"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/google/uuid"

	jobtrack "github.com/dan-yates1/job-tracker"
)

// JobStatus is the status vocabulary of the JobTrack server
type JobStatus string

const (
	JobStatusApplied       JobStatus = "applied"
	JobStatusInterviewing  JobStatus = "interviewing"
	JobStatusOfferReceived JobStatus = "offer_received"
	JobStatusRejected      JobStatus = "rejected"
	JobStatusAccepted      JobStatus = "accepted"
	JobStatusWithdrawn     JobStatus = "withdrawn"
)

var jobStatuses = []any{
	JobStatusApplied,
	JobStatusInterviewing,
	JobStatusOfferReceived,
	JobStatusRejected,
	JobStatusAccepted,
	JobStatusWithdrawn,
}

// Display maps the server status onto the page status keywords
func (s JobStatus) Display() jobtrack.ApplicationStatus {
	switch s {
	case JobStatusInterviewing:
		return jobtrack.StatusInterview
	case JobStatusOfferReceived, JobStatusAccepted:
		return jobtrack.StatusOffer
	default:
		return jobtrack.ApplicationStatus(s)
	}
}

// Class returns the CSS class for the status
func (s JobStatus) Class() string {
	return s.Display().Class()
}

type RemoteType string

const (
	RemoteOnsite RemoteType = "on-site"
	RemoteHybrid RemoteType = "hybrid"
	RemoteRemote RemoteType = "remote"
)

type InteractionType string

const (
	InteractionInterview InteractionType = "interview"
	InteractionFollowUp  InteractionType = "follow_up"
	InteractionOffer     InteractionType = "offer"
	InteractionRejection InteractionType = "rejection"
	InteractionOther     InteractionType = "other"
)

// Token is the login response
type Token struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	TokenType    string `json:"token_type"`
}

type User struct {
	ID         uuid.UUID  `json:"id"`
	Email      string     `json:"email"`
	FullName   string     `json:"full_name"`
	Role       string     `json:"role,omitempty"`
	IsActive   bool       `json:"is_active"`
	IsVerified bool       `json:"is_verified"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
	LastLogin  *time.Time `json:"last_login,omitempty"`
}

type UserCreate struct {
	Email           string `json:"email"`
	FullName        string `json:"full_name"`
	Password        string `json:"password"`
	PasswordConfirm string `json:"password_confirm"`
}

func (u UserCreate) Validate() error {
	return validation.ValidateStruct(&u,
		validation.Field(&u.Email, validation.Required, is.Email),
		validation.Field(&u.FullName, validation.Required, validation.Length(1, 100)),
		validation.Field(&u.Password, validation.Required, validation.Length(8, 100)),
		validation.Field(&u.PasswordConfirm, validation.Required, validation.By(equals(u.Password, "passwords do not match"))),
	)
}

type JobInteraction struct {
	ID              uuid.UUID       `json:"id"`
	InteractionType InteractionType `json:"interaction_type"`
	InteractionDate time.Time       `json:"interaction_date"`
	Notes           *string         `json:"notes,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

type JobInteractionCreate struct {
	JobID           uuid.UUID       `json:"job_id"`
	InteractionType InteractionType `json:"interaction_type"`
	InteractionDate time.Time       `json:"interaction_date"`
	Notes           *string         `json:"notes,omitempty"`
}

func (i JobInteractionCreate) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.JobID, validation.By(notNilUUID)),
		validation.Field(&i.InteractionType, validation.Required, validation.In(
			InteractionInterview,
			InteractionFollowUp,
			InteractionOffer,
			InteractionRejection,
			InteractionOther,
		)),
		validation.Field(&i.InteractionDate, validation.Required),
	)
}

type Job struct {
	ID             uuid.UUID        `json:"id"`
	UserID         uuid.UUID        `json:"user_id"`
	CompanyName    string           `json:"company_name"`
	PositionTitle  string           `json:"position_title"`
	JobDescription *string          `json:"job_description,omitempty"`
	JobURL         *string          `json:"job_url,omitempty"`
	Status         JobStatus        `json:"status"`
	SalaryMin      *int             `json:"salary_min,omitempty"`
	SalaryMax      *int             `json:"salary_max,omitempty"`
	Location       *string          `json:"location,omitempty"`
	RemoteType     *RemoteType      `json:"remote_type,omitempty"`
	Notes          *string          `json:"notes,omitempty"`
	AppliedDate    string           `json:"applied_date"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
	Interactions   []JobInteraction `json:"interactions"`
}

// SalaryRange renders the salary bounds, "$80,000 - $120,000", a single
// bound when only one is known and "" when neither is.
func (j Job) SalaryRange(f *jobtrack.Formatter) string {
	if f == nil {
		f = jobtrack.DefaultFormatter
	}
	var lo, hi string
	if j.SalaryMin != nil {
		lo = f.FormatCurrency(float64(*j.SalaryMin))
	}
	if j.SalaryMax != nil {
		hi = f.FormatCurrency(float64(*j.SalaryMax))
	}
	switch {
	case lo != "" && hi != "":
		return lo + " - " + hi
	case lo != "":
		return lo + "+"
	default:
		return hi
	}
}

type JobCreate struct {
	CompanyName    string      `json:"company_name"`
	PositionTitle  string      `json:"position_title"`
	JobDescription *string     `json:"job_description,omitempty"`
	JobURL         *string     `json:"job_url,omitempty"`
	Status         JobStatus   `json:"status,omitempty"`
	SalaryMin      *int        `json:"salary_min,omitempty"`
	SalaryMax      *int        `json:"salary_max,omitempty"`
	Location       *string     `json:"location,omitempty"`
	RemoteType     *RemoteType `json:"remote_type,omitempty"`
	Notes          *string     `json:"notes,omitempty"`
	AppliedDate    string      `json:"applied_date,omitempty"`
}

var isoDate = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

func (j JobCreate) Validate() error {
	return validation.ValidateStruct(&j,
		validation.Field(&j.CompanyName, validation.Required),
		validation.Field(&j.PositionTitle, validation.Required),
		validation.Field(&j.JobURL, is.URL),
		validation.Field(&j.Status, validation.In(jobStatuses...)),
		validation.Field(&j.SalaryMin, validation.Min(0)),
		validation.Field(&j.SalaryMax, validation.Min(0), validation.By(notBelow(j.SalaryMin))),
		validation.Field(&j.RemoteType, validation.In(RemoteOnsite, RemoteHybrid, RemoteRemote)),
		validation.Field(&j.AppliedDate, validation.Match(isoDate)),
	)
}

// JobUpdate only sends the fields that are set
type JobUpdate struct {
	CompanyName    *string     `json:"company_name,omitempty"`
	PositionTitle  *string     `json:"position_title,omitempty"`
	JobDescription *string     `json:"job_description,omitempty"`
	JobURL         *string     `json:"job_url,omitempty"`
	Status         *JobStatus  `json:"status,omitempty"`
	SalaryMin      *int        `json:"salary_min,omitempty"`
	SalaryMax      *int        `json:"salary_max,omitempty"`
	Location       *string     `json:"location,omitempty"`
	RemoteType     *RemoteType `json:"remote_type,omitempty"`
	Notes          *string     `json:"notes,omitempty"`
}

func (j JobUpdate) Validate() error {
	return validation.ValidateStruct(&j,
		validation.Field(&j.JobURL, is.URL),
		validation.Field(&j.Status, validation.In(jobStatuses...)),
		validation.Field(&j.SalaryMin, validation.Min(0)),
		validation.Field(&j.SalaryMax, validation.Min(0), validation.By(notBelow(j.SalaryMin))),
		validation.Field(&j.RemoteType, validation.In(RemoteOnsite, RemoteHybrid, RemoteRemote)),
	)
}

func equals(expected, message string) validation.RuleFunc {
	return func(value interface{}) error {
		s, _ := value.(string)
		if s != expected {
			return errors.New(message)
		}
		return nil
	}
}

func notBelow(min *int) validation.RuleFunc {
	return func(value interface{}) error {
		max, ok := value.(*int)
		if !ok || max == nil || min == nil {
			return nil
		}
		if *max < *min {
			return errors.New("must not be below salary_min")
		}
		return nil
	}
}

func notNilUUID(value interface{}) error {
	id, _ := value.(uuid.UUID)
	if id == uuid.Nil {
		return errors.New("cannot be blank")
	}
	return nil
}
