package domain

import "errors"

var ErrNotFound = errors.New("project not found")

// TestProject represents a single named project row.
// The capitalized JSON keys are part of the public API contract.
type TestProject struct {
	ID   int    `json:"Id"`
	Name string `json:"Name"`
}
