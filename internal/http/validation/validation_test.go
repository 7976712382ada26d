package validation

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
)

type sampleInput struct {
	Email     string `json:"email" validate:"required,email"`
	FirstName string `json:"firstName" validate:"required,min=2"`
	Ignored   string `json:"-" validate:"omitempty"`
	NoTag     string `validate:"omitempty"`
}

func TestFromBindErrorMapsJSONTags(t *testing.T) {
	v := validator.New()
	in := sampleInput{Email: "not-an-email", FirstName: "x"}

	err := v.Struct(in)
	if err == nil {
		t.Fatal("expected validation error")
	}

	fields := FromBindError(err, &in)

	if msg, ok := fields["email"]; !ok || msg != "Enter a valid email address." {
		t.Errorf("email field: %q (present=%v)", msg, ok)
	}
	if msg, ok := fields["firstName"]; !ok || msg != "Must be at least 2." {
		t.Errorf("firstName field: %q (present=%v)", msg, ok)
	}
}

func TestFromBindErrorRequired(t *testing.T) {
	v := validator.New()
	in := sampleInput{}

	fields := FromBindError(v.Struct(in), &in)
	if msg := fields["email"]; msg != "This field is required." {
		t.Errorf("email = %q", msg)
	}
}

func TestFromBindErrorNonValidationError(t *testing.T) {
	var in sampleInput
	fields := FromBindError(errors.New("unexpected EOF"), &in)
	if msg, ok := fields["_"]; !ok || msg != "Request body is invalid." {
		t.Errorf("fallback = %q (present=%v)", msg, ok)
	}
}
