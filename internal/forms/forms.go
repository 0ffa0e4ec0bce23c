package forms

import (
	"net/url"
	"regexp"
	"sort"
	"strings"

	"github.com/balbriggan-gardens/garden/internal/domain"
	"github.com/balbriggan-gardens/garden/internal/logger"
	"github.com/google/uuid"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// FieldErrors maps a form field name to a human-readable problem
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, len(fields))
	for i, f := range fields {
		parts[i] = f + ": " + e[f]
	}
	return "invalid form: " + strings.Join(parts, "; ")
}

// ParseContact reads a contact submission from posted form values
func ParseContact(values url.Values) domain.Contact {
	return domain.Contact{
		Name:    PlainText(values.Get("name")),
		Email:   strings.TrimSpace(values.Get("email")),
		Message: PlainText(values.Get("message")),
	}
}

// ParseSubscription reads a newsletter sign-up from posted form values
func ParseSubscription(values url.Values) domain.Subscription {
	return domain.Subscription{Email: strings.TrimSpace(values.Get("email"))}
}

// ValidateContact returns nil when every field is present and the email looks valid
func ValidateContact(c domain.Contact) FieldErrors {
	errs := FieldErrors{}
	if c.Name == "" {
		errs["name"] = "Please enter your name"
	}
	checkEmail(errs, c.Email)
	if c.Message == "" {
		errs["message"] = "Please enter a message"
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// ValidateSubscription returns nil when the email looks valid
func ValidateSubscription(s domain.Subscription) FieldErrors {
	errs := FieldErrors{}
	checkEmail(errs, s.Email)
	if len(errs) == 0 {
		return nil
	}
	return errs
}

func checkEmail(errs FieldErrors, email string) {
	switch {
	case email == "":
		errs["email"] = "Please enter your email address"
	case !emailPattern.MatchString(email):
		errs["email"] = "Please enter a valid email address"
	}
}

// Recorder writes accepted submissions to the operator log. Nothing is stored.
type Recorder struct {
	log   *logger.Logger
	newID func() string
}

// NewRecorder creates a Recorder that logs through log
func NewRecorder(log *logger.Logger) *Recorder {
	if log == nil {
		log = logger.Nop()
	}
	return &Recorder{log: log, newID: uuid.NewString}
}

// Contact logs a contact submission and returns its reference id
func (r *Recorder) Contact(c domain.Contact) string {
	id := r.newID()
	r.log.Info("contact form submitted",
		"submission_id", id,
		"name", c.Name,
		"email", c.Email,
		"message", c.Message,
	)
	return id
}

// Subscribe logs a newsletter sign-up and returns its reference id
func (r *Recorder) Subscribe(s domain.Subscription) string {
	id := r.newID()
	r.log.Info("newsletter subscription", "submission_id", id, "email", s.Email)
	return id
}
