// Package validation holds the input filters applied while a field is being
// typed and the checks applied when a form is submitted.
package validation

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	MaxTextLength   = 100
	MaxAge          = 122
	MaxWeight       = 635
	MaxWeightLength = 6
	MaxSets         = 15
	MaxReps         = 40
)

var (
	digitsOnly  = regexp.MustCompile(`^\d*$`)
	decimalOnly = regexp.MustCompile(`^\d*\.?\d*$`)
)

// FilterText accepts free text up to MaxTextLength characters.
func FilterText(field, s string) (string, error) {
	if utf8.RuneCountInString(s) > MaxTextLength {
		return "", &FieldError{Field: field, Reason: "must be at most 100 characters"}
	}
	return s, nil
}

// FilterPersonName accepts letters and whitespace only.
func FilterPersonName(s string) (string, error) {
	if _, err := FilterText("name", s); err != nil {
		return "", err
	}
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsSpace(r) {
			return "", &FieldError{Field: "name", Reason: "must contain only letters and spaces"}
		}
	}
	return s, nil
}

// FilterCount accepts digits only and clamps non-empty input to max.
// There is no lower clamp: "0" is kept as typed.
func FilterCount(field, s string, max int) (string, error) {
	if !digitsOnly.MatchString(s) {
		return "", &FieldError{Field: field, Reason: "must contain only digits"}
	}
	if s == "" {
		return "", nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n > max {
		// Atoi only fails here on overflow, which is above max anyway.
		return strconv.Itoa(max), nil
	}
	return strconv.Itoa(n), nil
}

func FilterSets(s string) (string, error) {
	return FilterCount("sets", s, MaxSets)
}

func FilterReps(s string) (string, error) {
	return FilterCount("reps", s, MaxReps)
}

func FilterAge(s string) (string, error) {
	return FilterCount("age", s, MaxAge)
}

// FilterWeight accepts a decimal with at most one point and six characters.
// Values above MaxWeight are replaced by MaxWeight.
func FilterWeight(s string) (string, error) {
	if len(s) > MaxWeightLength {
		return "", &FieldError{Field: "weight", Reason: "must be at most 6 characters"}
	}
	if strings.Count(s, ".") > 1 {
		return "", &FieldError{Field: "weight", Reason: "must contain at most one decimal point"}
	}
	if s == "" {
		return "", nil
	}
	if !decimalOnly.MatchString(s) {
		return "", &FieldError{Field: "weight", Reason: "must be a decimal number"}
	}
	w, err := strconv.ParseFloat(s, 32)
	if err != nil {
		return "", &FieldError{Field: "weight", Reason: "must be a decimal number"}
	}
	if w > MaxWeight {
		return strconv.Itoa(MaxWeight), nil
	}
	return s, nil
}

// ParseAge converts a filtered age field, -1 when empty.
func ParseAge(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return -1
	}
	return n
}

// ParseWeight converts a filtered weight field, -1 when empty.
func ParseWeight(s string) float32 {
	w, err := strconv.ParseFloat(s, 32)
	if err != nil {
		return -1
	}
	return float32(w)
}

// FormatAge is the inverse of ParseAge.
func FormatAge(age int) string {
	if age < 0 {
		return ""
	}
	return strconv.Itoa(age)
}

// FormatWeight is the inverse of ParseWeight.
func FormatWeight(w float32) string {
	if w < 0 {
		return ""
	}
	return strconv.FormatFloat(float64(w), 'f', -1, 32)
}
