package common

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	idPattern    = regexp.MustCompile(`^\d+$`)
	namePattern  = regexp.MustCompile(`^[a-zA-Z\s]+$`)
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

const (
	MinScore = 0.0
	MaxScore = 4.0

	// MinQueryLen is the shortest id or name query accepted from the outside.
	MinQueryLen = 4
)

var (
	ErrInvalidID    = errors.New("id must contain digits only")
	ErrInvalidName  = errors.New("name may contain letters and spaces only")
	ErrInvalidScore = fmt.Errorf("gpa must be between %.2f and %.2f", MinScore, MaxScore)
	ErrInvalidEmail = errors.New("invalid email format")
	ErrEmptyMajor   = errors.New("major is required")
)

func ValidateID(id StudentID) error {
	if !idPattern.MatchString(strings.TrimSpace(string(id))) {
		return ErrInvalidID
	}
	return nil
}

func ValidateName(name string) error {
	if !namePattern.MatchString(name) {
		return ErrInvalidName
	}
	return nil
}

func ValidateScore(score float64) error {
	// NaN fails both comparisons, so test the accepted range instead.
	if !(score >= MinScore && score <= MaxScore) {
		return ErrInvalidScore
	}
	return nil
}

// ValidateEmail accepts an empty address; records created without one are valid.
func ValidateEmail(email string) error {
	if email == "" {
		return nil
	}
	if !emailPattern.MatchString(email) {
		return ErrInvalidEmail
	}
	return nil
}

// Validate checks every field and reports all failures at once.
func (r Record) Validate() error {
	var errs []error
	if err := ValidateID(r.ID); err != nil {
		errs = append(errs, err)
	}
	if err := ValidateName(r.Name); err != nil {
		errs = append(errs, err)
	}
	if strings.TrimSpace(r.Major) == "" {
		errs = append(errs, ErrEmptyMajor)
	}
	if err := ValidateScore(r.Score); err != nil {
		errs = append(errs, err)
	}
	if err := ValidateEmail(r.Email); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// ValidateSearchQuery applies the input rules for externally supplied search
// text: id queries need at least four digits, name queries at least four
// letters or spaces. Other keys only need to be non-empty.
func ValidateSearchQuery(key, query string) error {
	if query == "" {
		return errors.New("search query is required")
	}
	switch key {
	case "id":
		if utf8.RuneCountInString(query) < MinQueryLen || !idPattern.MatchString(query) {
			return fmt.Errorf("id query must be an integer of at least %d digits", MinQueryLen)
		}
	case "name":
		if utf8.RuneCountInString(query) < MinQueryLen || !namePattern.MatchString(query) {
			return fmt.Errorf("name query must be at least %d letters", MinQueryLen)
		}
	}
	return nil
}
