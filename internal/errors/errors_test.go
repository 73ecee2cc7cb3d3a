package errors

import (
	"fmt"
	"testing"
)

func TestErrorString(t *testing.T) {
	err := Configf("tier %q out of order", "Pro")
	if got, want := err.Error(), `[CONFIG_ERROR] tier "Pro" out of order`; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	wrapped := Parsing("decode catalog", fmt.Errorf("unexpected token"))
	if got, want := wrapped.Error(), "[PARSING_ERROR] decode catalog: unexpected token"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestIsTypeFollowsWrapChain(t *testing.T) {
	inner := NotFound("billing period", "weekly")
	outer := fmt.Errorf("lookup: %w", inner)

	if !IsType(outer, TypeNotFound) {
		t.Error("IsType should see a NOT_FOUND error through fmt.Errorf wrapping")
	}
	if IsType(outer, TypeInput) {
		t.Error("IsType matched the wrong type")
	}
	if IsType(nil, TypeInput) {
		t.Error("IsType(nil) should be false")
	}
}

func TestWithContext(t *testing.T) {
	err := Input("negative storage").WithContext("required_gb", "-1")
	if err.Context["required_gb"] != "-1" {
		t.Errorf("context not recorded: %v", err.Context)
	}
	if !err.Is(TypeInput) {
		t.Error("expected INPUT_ERROR")
	}
}
