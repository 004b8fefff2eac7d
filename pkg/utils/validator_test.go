package utils

import "testing"

type registerInput struct {
	Username string `json:"username" validate:"required,min=3,max=30"`
	Email    string `json:"email" validate:"required,email"`
	Rating   int    `json:"rating" validate:"gte=1,lte=5"`
}

func TestValidatePassesOnValidInput(t *testing.T) {
	v := NewValidator()
	resp := v.Validate(registerInput{Username: "sommelier", Email: "s@example.com", Rating: 4})
	if resp != nil {
		t.Fatalf("valid input produced errors: %+v", resp.Errors)
	}
}

func TestValidateReportsJSONFieldNames(t *testing.T) {
	v := NewValidator()
	resp := v.Validate(registerInput{Username: "", Email: "not-an-email", Rating: 3})
	if resp == nil {
		t.Fatal("expected validation errors")
	}

	got := map[string]string{}
	for _, e := range resp.Errors {
		got[e.Field] = e.Msg
	}
	if got["username"] != "username is required" {
		t.Errorf("username error = %q", got["username"])
	}
	if got["email"] != "email must be a valid email address" {
		t.Errorf("email error = %q", got["email"])
	}
}

func TestValidateBoundMessages(t *testing.T) {
	v := NewValidator()
	resp := v.Validate(registerInput{Username: "ab", Email: "a@b.co", Rating: 9})
	if resp == nil {
		t.Fatal("expected validation errors")
	}

	got := map[string]string{}
	for _, e := range resp.Errors {
		got[e.Field] = e.Msg
	}
	if got["username"] != "username must be at least 3 characters long" {
		t.Errorf("username error = %q", got["username"])
	}
	if got["rating"] != "rating must be at most 5" {
		t.Errorf("rating error = %q", got["rating"])
	}
}
