package validation

import (
	"errors"
	"math"
	"testing"
)

func TestConfigValidator_IntRules(t *testing.T) {
	tests := []struct {
		name    string
		apply   func(*ConfigValidator)
		wantErr bool
	}{
		{"min ok", func(cv *ConfigValidator) { cv.MinInt("concurrency", 4, 1) }, false},
		{"min fail", func(cv *ConfigValidator) { cv.MinInt("concurrency", 0, 1) }, true},
		{"range ok", func(cv *ConfigValidator) { cv.RangeInt("k", 2, 2, 127) }, false},
		{"range fail", func(cv *ConfigValidator) { cv.RangeInt("k", 128, 2, 127) }, true},
		{"positive fail", func(cv *ConfigValidator) { cv.Positive("maxIterations", 0) }, true},
		{"non-negative ok", func(cv *ConfigValidator) { cv.NonNegative("threshold", 0) }, false},
		{"non-negative fail", func(cv *ConfigValidator) { cv.NonNegative("threshold", -1) }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cv := NewConfigValidator("TestConfig")
			tt.apply(cv)
			if got := cv.HasErrors(); got != tt.wantErr {
				t.Errorf("HasErrors() = %v, want %v", got, tt.wantErr)
			}
		})
	}
}

func TestConfigValidator_FloatRules(t *testing.T) {
	tests := []struct {
		name    string
		apply   func(*ConfigValidator)
		wantErr bool
	}{
		{"positive ok", func(cv *ConfigValidator) { cv.PositiveFloat("tolerance", 1e-7) }, false},
		{"positive zero", func(cv *ConfigValidator) { cv.PositiveFloat("tolerance", 0) }, true},
		{"positive NaN", func(cv *ConfigValidator) { cv.PositiveFloat("tolerance", math.NaN()) }, true},
		{"positive Inf", func(cv *ConfigValidator) { cv.PositiveFloat("tolerance", math.Inf(1)) }, true},
		{"non-negative ok", func(cv *ConfigValidator) { cv.NonNegativeFloat("delta", 0) }, false},
		{"non-negative neg", func(cv *ConfigValidator) { cv.NonNegativeFloat("delta", -0.5) }, true},
		{"range ok", func(cv *ConfigValidator) { cv.RangeFloat("dampingFactor", 0, 0, 1) }, false},
		{"range NaN", func(cv *ConfigValidator) { cv.RangeFloat("dampingFactor", math.NaN(), 0, 1) }, true},
		{"open range edge", func(cv *ConfigValidator) { cv.OpenRangeFloat("alpha", 1, 0, 1) }, true},
		{"open range ok", func(cv *ConfigValidator) { cv.OpenRangeFloat("alpha", 0.5, 0, 1) }, false},
		{"finite Inf", func(cv *ConfigValidator) { cv.Finite("gamma", math.Inf(-1)) }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cv := NewConfigValidator("TestConfig")
			tt.apply(cv)
			if got := cv.HasErrors(); got != tt.wantErr {
				t.Errorf("HasErrors() = %v, want %v", got, tt.wantErr)
			}
		})
	}
}

func TestConfigValidator_OneOf(t *testing.T) {
	allowed := []string{"all", "random", "random_degree"}
	if NewConfigValidator("C").OneOf("strategy", "random", allowed).HasErrors() {
		t.Error("expected random to be accepted")
	}
	if !NewConfigValidator("C").OneOf("strategy", "degree", allowed).HasErrors() {
		t.Error("expected degree to be rejected")
	}
}

func TestConfigValidator_CustomAndWhen(t *testing.T) {
	cv := NewConfigValidator("C").
		Custom("seed", func() error { return errors.New("bad seed") }).
		When(false, func(cv *ConfigValidator) { cv.Required("skipped", "") })

	if len(cv.Errors()) != 1 {
		t.Fatalf("got %d errors, want 1", len(cv.Errors()))
	}
}

func TestConfigValidator_ValidateReturnsFieldError(t *testing.T) {
	err := NewConfigValidator("LouvainConfig").
		Positive("maxLevels", 0).
		PositiveFloat("tolerance", -1).
		Validate()

	if err == nil {
		t.Fatal("expected error")
	}
	var fe *FieldError
	if !errors.As(err, &fe) {
		t.Fatalf("expected *FieldError, got %T", err)
	}
	if fe.Field != "maxLevels" || fe.Config != "LouvainConfig" {
		t.Errorf("first field error = %+v", fe)
	}
}

func TestConfigValidator_ValidateNil(t *testing.T) {
	if err := NewConfigValidator("C").MinInt("x", 1, 1).Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}
}

func TestDefaultOrAndClamp(t *testing.T) {
	if DefaultOr(0, 4) != 4 {
		t.Error("DefaultOr(0, 4) != 4")
	}
	if DefaultOr("x", "y") != "x" {
		t.Error("DefaultOr(x, y) != x")
	}
	if ClampInt(10, 1, 4) != 4 || ClampInt(-1, 1, 4) != 1 || ClampInt(2, 1, 4) != 2 {
		t.Error("ClampInt wrong")
	}
}
