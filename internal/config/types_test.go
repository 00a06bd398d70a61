// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"testing"

	"github.com/gatewaynode/flashbrain/pkg/lesson"
)

func TestPrecedence(t *testing.T) {
	t.Parallel()

	tests := []struct {
		value   Precedence
		wantErr bool
		kind    lesson.Kind
	}{
		{PrecedenceLesson, false, lesson.KindLesson},
		{PrecedenceTraining, false, lesson.KindTraining},
		{"", true, lesson.KindLesson},
		{"Lesson", true, lesson.KindLesson},
	}

	for _, tt := range tests {
		t.Run(string(tt.value), func(t *testing.T) {
			t.Parallel()

			err := tt.value.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidPrecedence) {
				t.Errorf("error should wrap ErrInvalidPrecedence, got %v", err)
			}
			if got := tt.value.Kind(); got != tt.kind {
				t.Errorf("Kind() = %v, want %v", got, tt.kind)
			}
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("DefaultConfig().Validate() = %v", err)
	}

	cfg := DefaultConfig()
	cfg.ContentRoot = "   "
	cfg.Precedence = "both"
	cfg.LogLevel = "trace"
	cfg.UI.ColorScheme = "neon"
	cfg.Watch.Debounce = -1

	err := cfg.Validate()
	var ice *InvalidConfigError
	if !errors.As(err, &ice) {
		t.Fatalf("Validate() error type = %T, want *InvalidConfigError", err)
	}
	if len(ice.FieldErrors) != 5 {
		t.Errorf("FieldErrors = %d, want 5: %v", len(ice.FieldErrors), ice.FieldErrors)
	}
	for _, sentinel := range []error{
		ErrInvalidConfig, ErrInvalidPrecedence, ErrInvalidLogLevel,
		ErrInvalidColorScheme, ErrInvalidDebounce,
	} {
		if !errors.Is(err, sentinel) {
			t.Errorf("error should wrap %v", sentinel)
		}
	}
}
