package lib

import (
	"errors"
	"fmt"
	"strings"
)

// ErrPageLimit is returned when pagination does not terminate within the configured page cap.
var ErrPageLimit = errors.New("page limit exceeded")

// ConfigurationError reports missing or invalid settings.
// It is returned before any network call is made.
type ConfigurationError struct {
	Missing []string
	Err     error
}

func (e *ConfigurationError) Error() string {
	if len(e.Missing) > 0 {
		return fmt.Sprintf("missing configuration: %s", strings.Join(e.Missing, ", "))
	}
	return fmt.Sprintf("invalid configuration: %v", e.Err)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// UpstreamError wraps any failure to read from the Product Hunt API.
type UpstreamError struct {
	Op  string
	Err error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream %s: %v", e.Op, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// DuplicateActivityError means the workspace already holds an activity with this key.
type DuplicateActivityError struct {
	Key string
	// Reasons as reported by the API, e.g. "has already been taken".
	Reasons []string
}

func (e *DuplicateActivityError) Error() string {
	if len(e.Reasons) == 0 {
		return fmt.Sprintf("duplicate activity %q", e.Key)
	}
	return fmt.Sprintf("duplicate activity %q: %s", e.Key, strings.Join(e.Reasons, "; "))
}

// SubmissionError is a non-duplicate failure to submit a single activity.
type SubmissionError struct {
	Key string
	Err error
}

func (e *SubmissionError) Error() string {
	return fmt.Sprintf("submit activity %q: %v", e.Key, e.Err)
}

func (e *SubmissionError) Unwrap() error {
	return e.Err
}

func IsDuplicate(err error) bool {
	var dup *DuplicateActivityError
	return errors.As(err, &dup)
}
