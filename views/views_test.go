package views

import (
	"bytes"
	"strings"
	"testing"

	"github.com/mbolis/case-report/model"
	"github.com/mbolis/case-report/report"
)

func render(t *testing.T, p Panel) string {
	t.Helper()
	var buf bytes.Buffer
	if err := RenderPanel(&buf, p); err != nil {
		t.Fatal(err)
	}
	return buf.String()
}

func TestRenderPanel_Locked(t *testing.T) {
	out := render(t, NewPanel(false, report.State{}, nil))

	if !strings.Contains(out, "Review all evidence to unlock the submission panel") {
		t.Fatal("placeholder missing")
	}
	for _, tag := range []string{"<form", "<input", "<textarea", "<button"} {
		if strings.Contains(out, tag) {
			t.Fatalf("locked panel must not render %s", tag)
		}
	}
}

func TestRenderPanel_Form(t *testing.T) {
	state := report.State{
		Form: model.SubmissionForm{
			Conclusion: model.ConclusionAnita,
			Name:       `<script>alert(1)</script>`,
		},
	}
	out := render(t, NewPanel(true, state, []model.Notification{{
		Title:       "Validation Error",
		Description: "Please fill in all required fields correctly.",
		Variant:     model.VariantDestructive,
	}}))

	for _, want := range []string{
		`value="Anita" checked`,
		`value="Insider &#43; External Collusion"`,
		`name="rollNumber"`,
		`toast-destructive`,
		`data-valid="false"`,
		`type="submit">`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q", want)
		}
	}
	if strings.Contains(out, "<script>alert(1)</script>") {
		t.Fatal("field values must be escaped")
	}
}

func TestRenderPanel_SubmitWithoutScript(t *testing.T) {
	invalid := render(t, NewPanel(true, report.State{}, nil))
	if strings.Contains(invalid, `type="submit" disabled`) {
		t.Fatal("an invalid form must still be postable so the server can report what is wrong")
	}

	busy := render(t, NewPanel(true, report.State{Submitting: true}, nil))
	if !strings.Contains(busy, `type="submit" disabled>`) {
		t.Fatal("button should be disabled while submitting")
	}
}

func TestRenderPanel_Submitted(t *testing.T) {
	out := render(t, NewPanel(true, report.State{Submitted: true}, nil))

	if !strings.Contains(out, "Thank you for your submission!") {
		t.Fatal("thank-you view missing")
	}
	if strings.Contains(out, "<form") {
		t.Fatal("form must be replaced after submission")
	}
}
