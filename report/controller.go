// Package report holds the case analysis form state and its submission.
package report

import (
	"errors"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/mbolis/case-report/model"
)

var (
	ErrValidation   = errors.New("report: fill in all required fields correctly")
	ErrSubmitted    = errors.New("report: already submitted")
	ErrUnknownField = errors.New("report: unknown field")
	ErrInvalidValue = errors.New("report: invalid field value")
)

// Transmitter dispatches a payload without waiting for, or reporting, the
// outcome.
type Transmitter interface {
	Transmit(model.Payload)
}

type Notifier interface {
	Notify(model.Notification)
}

var (
	validationFailed = model.Notification{
		Title:       "Validation Error",
		Description: "Please fill in all required fields correctly.",
		Variant:     model.VariantDestructive,
	}
	submitSucceeded = model.Notification{
		Title:       "Success",
		Description: "Report submitted to Google Sheets. Thank you!",
		Variant:     model.VariantDefault,
	}
)

type State struct {
	Form       model.SubmissionForm `json:"form"`
	Valid      bool                 `json:"valid"`
	Submitting bool                 `json:"submitting"`
	Submitted  bool                 `json:"submitted"`
}

type Controller struct {
	mu         sync.Mutex
	form       model.SubmissionForm
	submitting bool
	submitted  bool

	transmitter Transmitter
	notifier    Notifier
	now         func() time.Time
}

type Option func(*Controller)

// WithClock overrides the source of submission timestamps.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		c.now = now
	}
}

func NewController(t Transmitter, n Notifier, opts ...Option) *Controller {
	c := &Controller{
		transmitter: t,
		notifier:    n,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// UpdateField replaces a single field. Text fields take a string, consent
// takes a bool, conclusion takes a model.Conclusion or its label.
func (c *Controller) UpdateField(field model.Field, value any) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.submitted {
		return ErrSubmitted
	}

	switch field {
	case model.FieldConclusion:
		switch v := value.(type) {
		case model.Conclusion:
			if v != model.ConclusionUnset && !v.Valid() {
				return ErrInvalidValue
			}
			c.form.Conclusion = v
		case string:
			conclusion, ok := model.ParseConclusion(v)
			if !ok {
				return ErrInvalidValue
			}
			c.form.Conclusion = conclusion
		default:
			return ErrInvalidValue
		}
		return nil

	case model.FieldConsent:
		v, ok := value.(bool)
		if !ok {
			return ErrInvalidValue
		}
		c.form.Consent = v
		return nil
	}

	target := c.textField(field)
	if target == nil {
		return ErrUnknownField
	}
	v, ok := value.(string)
	if !ok {
		return ErrInvalidValue
	}
	*target = v
	return nil
}

func (c *Controller) textField(field model.Field) *string {
	switch field {
	case model.FieldReasoning:
		return &c.form.Reasoning
	case model.FieldName:
		return &c.form.Name
	case model.FieldEmail:
		return &c.form.Email
	case model.FieldRollNumber:
		return &c.form.RollNumber
	case model.FieldPhone:
		return &c.form.Phone
	}
	return nil
}

func (c *Controller) IsValid() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Valid(c.form)
}

// Valid reports whether every field of f satisfies its constraint.
func Valid(f model.SubmissionForm) bool {
	return f.Conclusion.Valid() &&
		utf8.RuneCountInString(strings.TrimSpace(f.Reasoning)) > 10 &&
		strings.TrimSpace(f.Name) != "" &&
		strings.Contains(f.Email, "@") &&
		strings.TrimSpace(f.RollNumber) != "" &&
		utf8.RuneCountInString(strings.TrimSpace(f.Phone)) >= 10 &&
		f.Consent
}

// Submit hands the form to the transmitter and moves to the submitted
// state without waiting for the network. A failed delivery is never seen
// here: the endpoint's response is not read, so success is assumed.
func (c *Controller) Submit() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.submitted {
		return ErrSubmitted
	}
	if !Valid(c.form) {
		c.notify(validationFailed)
		return ErrValidation
	}

	c.submitting = true
	payload := model.NewPayload(c.form, c.now())
	c.transmitter.Transmit(payload)
	c.submitting = false
	c.submitted = true

	c.notify(submitSucceeded)
	return nil
}

func (c *Controller) notify(n model.Notification) {
	if c.notifier != nil {
		c.notifier.Notify(n)
	}
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return State{
		Form:       c.form,
		Valid:      Valid(c.form),
		Submitting: c.submitting,
		Submitted:  c.submitted,
	}
}
