package model

import (
	"strconv"
	"time"
)

// Conclusion is the primary finding of a case analysis report.
type Conclusion int

const (
	ConclusionUnset Conclusion = iota
	ConclusionKrishn
	ConclusionAnita
	ConclusionCollusion
	ConclusionInsufficientEvidence
)

var conclusionLabels = map[Conclusion]string{
	ConclusionKrishn:               "Krishn",
	ConclusionAnita:                "Anita",
	ConclusionCollusion:            "Insider + External Collusion",
	ConclusionInsufficientEvidence: "Insufficient Evidence",
}

// Conclusions lists the selectable conclusions in display order.
func Conclusions() []Conclusion {
	return []Conclusion{
		ConclusionKrishn,
		ConclusionAnita,
		ConclusionCollusion,
		ConclusionInsufficientEvidence,
	}
}

func (c Conclusion) String() string {
	return conclusionLabels[c]
}

func (c Conclusion) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c Conclusion) Valid() bool {
	_, ok := conclusionLabels[c]
	return ok
}

// ParseConclusion maps a label back to its Conclusion. The empty label
// yields ConclusionUnset.
func ParseConclusion(label string) (Conclusion, bool) {
	if label == "" {
		return ConclusionUnset, true
	}
	for c, l := range conclusionLabels {
		if l == label {
			return c, true
		}
	}
	return ConclusionUnset, false
}

type Field string

const (
	FieldConclusion Field = "conclusion"
	FieldReasoning  Field = "reasoning"
	FieldName       Field = "name"
	FieldEmail      Field = "email"
	FieldRollNumber Field = "rollNumber"
	FieldPhone      Field = "phone"
	FieldConsent    Field = "consent"
)

func Fields() []Field {
	return []Field{
		FieldConclusion,
		FieldReasoning,
		FieldName,
		FieldEmail,
		FieldRollNumber,
		FieldPhone,
		FieldConsent,
	}
}

func ParseField(name string) (Field, bool) {
	for _, f := range Fields() {
		if string(f) == name {
			return f, true
		}
	}
	return "", false
}

type SubmissionForm struct {
	Conclusion Conclusion `json:"conclusion"`
	Reasoning  string     `json:"reasoning"`
	Name       string     `json:"name"`
	Email      string     `json:"email"`
	RollNumber string     `json:"rollNumber"`
	Phone      string     `json:"phone"`
	Consent    bool       `json:"consent"`
}

// FormInput is the raw shape of a browser form post.
type FormInput struct {
	Conclusion string `form:"conclusion"`
	Reasoning  string `form:"reasoning"`
	Name       string `form:"name"`
	Email      string `form:"email"`
	RollNumber string `form:"rollNumber"`
	Phone      string `form:"phone"`
	Consent    bool   `form:"consent"`
}

// TimestampFormat is ISO-8601 UTC with millisecond precision.
const TimestampFormat = "2006-01-02T15:04:05.000Z"

// Payload is what gets posted to the spreadsheet endpoint. Every value is
// a string.
type Payload struct {
	Conclusion string `form:"conclusion"`
	Reasoning  string `form:"reasoning"`
	Name       string `form:"name"`
	Email      string `form:"email"`
	RollNumber string `form:"rollNumber"`
	Phone      string `form:"phone"`
	Consent    string `form:"consent"`
	Timestamp  string `form:"timestamp"`
}

func NewPayload(f SubmissionForm, at time.Time) Payload {
	return Payload{
		Conclusion: f.Conclusion.String(),
		Reasoning:  f.Reasoning,
		Name:       f.Name,
		Email:      f.Email,
		RollNumber: f.RollNumber,
		Phone:      f.Phone,
		Consent:    strconv.FormatBool(f.Consent),
		Timestamp:  at.UTC().Format(TimestampFormat),
	}
}

type Variant string

const (
	VariantDefault     Variant = "default"
	VariantDestructive Variant = "destructive"
)

type Notification struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Variant     Variant `json:"variant"`
}
