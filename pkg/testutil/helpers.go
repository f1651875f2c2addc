// Package testutil provides common utility functions for testing.
package testutil

import (
	"github.com/sonnenplan/solar-scenario/pkg/scenario"
)

// FindResult finds a scenario result by label in the results slice.
// Returns a pointer to the result if found, nil otherwise.
func FindResult(results []scenario.Result, label string) *scenario.Result {
	for i := range results {
		if results[i].Label == label {
			return &results[i]
		}
	}
	return nil
}
