package validator

import (
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/exp/slices"
)

// Validator collects every violated rule instead of stopping at the first one.
type Validator struct {
	Errors      []string          `json:"errors,omitempty"`
	FieldErrors map[string]string `json:"fieldErrors,omitempty"`
}

func (v Validator) HasErrors() bool {
	return len(v.Errors) != 0 || len(v.FieldErrors) != 0
}

func (v *Validator) AddError(message string) {
	if v.Errors == nil {
		v.Errors = []string{}
	}

	v.Errors = append(v.Errors, message)
}

// AddFieldError records message for key and also appends it to the flat list,
// keeping the first message when a field breaks more than one rule.
func (v *Validator) AddFieldError(key, message string) {
	if v.FieldErrors == nil {
		v.FieldErrors = map[string]string{}
	}

	if _, exists := v.FieldErrors[key]; !exists {
		v.FieldErrors[key] = message
	}

	v.AddError(message)
}

func (v *Validator) Check(ok bool, message string) {
	if !ok {
		v.AddError(message)
	}
}

func (v *Validator) CheckField(ok bool, key, message string) {
	if !ok {
		v.AddFieldError(key, message)
	}
}

// Err returns nil when no rule was violated.
func (v Validator) Err() error {
	if !v.HasErrors() {
		return nil
	}

	return &Error{Errors: slices.Clone(v.Errors), FieldErrors: v.FieldErrors}
}

func NotBlank(value string) bool {
	return strings.TrimSpace(value) != ""
}

func MinRunes(value string, n int) bool {
	return utf8.RuneCountInString(value) >= n
}

func MaxRunes(value string, n int) bool {
	return utf8.RuneCountInString(value) <= n
}

func RunesBetween(value string, min, max int) bool {
	return MinRunes(value, min) && MaxRunes(value, max)
}

func Between[T int | int64 | uint](value, min, max T) bool {
	return value >= min && value <= max
}

func MaxBytes(value []byte, n int) bool {
	return len(value) <= n
}

func Matches(value string, rx *regexp.Regexp) bool {
	return rx.MatchString(value)
}

func In[T comparable](value T, safelist ...T) bool {
	return slices.Contains(safelist, value)
}

// DateBetween reports whether value lies strictly between after and before,
// comparing calendar dates only.
func DateBetween(value, after, before time.Time) bool {
	d, a, b := truncateDay(value), truncateDay(after), truncateDay(before)
	return d.After(a) && d.Before(b)
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
