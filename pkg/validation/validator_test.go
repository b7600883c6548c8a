package validation

import (
	"errors"
	"testing"
)

type taggedConfig struct {
	Concurrency int     `validate:"gte=1"`
	Damping     float64 `validate:"gte=0,lt=1"`
	Strategy    string  `validate:"oneof=all random"`
}

func TestValidateStruct(t *testing.T) {
	ok := taggedConfig{Concurrency: 4, Damping: 0.85, Strategy: "all"}
	if err := ValidateStruct("Tagged", &ok); err != nil {
		t.Fatalf("ValidateStruct(valid) = %v", err)
	}

	tests := []struct {
		name  string
		cfg   taggedConfig
		field string
	}{
		{"concurrency", taggedConfig{Concurrency: 0, Damping: 0.5, Strategy: "all"}, "Concurrency"},
		{"damping", taggedConfig{Concurrency: 1, Damping: 1, Strategy: "all"}, "Damping"},
		{"strategy", taggedConfig{Concurrency: 1, Damping: 0.5, Strategy: "none"}, "Strategy"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStruct("Tagged", &tt.cfg)
			var fe *FieldError
			if !errors.As(err, &fe) {
				t.Fatalf("expected *FieldError, got %v", err)
			}
			if fe.Field != tt.field {
				t.Errorf("Field = %s, want %s", fe.Field, tt.field)
			}
		})
	}
}

func TestValidateStructNil(t *testing.T) {
	if err := ValidateStruct("X", nil); err == nil {
		t.Error("expected error for nil config")
	}
}

func TestValidateToken(t *testing.T) {
	for _, ok := range []string{"KNOWS", "Person", "rel_1"} {
		if err := ValidateToken("label", ok); err != nil {
			t.Errorf("ValidateToken(%q) = %v", ok, err)
		}
	}
	for _, bad := range []string{"", "has space", "semi;colon"} {
		if err := ValidateToken("label", bad); err == nil {
			t.Errorf("ValidateToken(%q) should fail", bad)
		}
	}
}

func TestValidatePropertyKey(t *testing.T) {
	if err := ValidatePropertyKey("weight"); err != nil {
		t.Errorf("weight rejected: %v", err)
	}
	if err := ValidatePropertyKey("_score2"); err != nil {
		t.Errorf("_score2 rejected: %v", err)
	}
	for _, bad := range []string{"", "1abc", "a-b"} {
		if err := ValidatePropertyKey(bad); err == nil {
			t.Errorf("ValidatePropertyKey(%q) should fail", bad)
		}
	}
}

func TestValidateGraphName(t *testing.T) {
	if err := ValidateGraphName("social-2024.v1"); err != nil {
		t.Errorf("rejected valid name: %v", err)
	}
	if err := ValidateGraphName("bad name"); err == nil {
		t.Error("accepted name with space")
	}
}
