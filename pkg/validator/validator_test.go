package validator

import "testing"

func TestCheck_CollectsFirstErrorPerField(t *testing.T) {
	v := New()
	v.Check(false, "pickup", "must be provided")
	v.Check(false, "pickup", "second message ignored")
	v.Check(true, "dropoff", "must be provided")

	if v.Valid() {
		t.Fatal("expected validator to be invalid")
	}
	if got := v.Errors["pickup"]; got != "must be provided" {
		t.Fatalf("unexpected pickup error: %q", got)
	}
	if _, ok := v.Errors["dropoff"]; ok {
		t.Fatal("passing check must not record an error")
	}
}

func TestNotBlank(t *testing.T) {
	if NotBlank("   ") {
		t.Fatal("whitespace-only must be blank")
	}
	if !NotBlank("Downtown") {
		t.Fatal("non-empty must not be blank")
	}
}

func TestEmailRX(t *testing.T) {
	if !Matches("admin@example.com", EmailRX) {
		t.Fatal("valid email rejected")
	}
	if Matches("not-an-email", EmailRX) {
		t.Fatal("invalid email accepted")
	}
}
