// Package viewmodel holds the observable state behind each app screen:
// dish finder, kitchen, orders and profile.
package viewmodel

import (
	"sort"
	"time"
)

// Source says where the data in a Result came from.
type Source string

const (
	SourceAPI    Source = "api"
	SourceSample Source = "sample"
)

// Result carries loaded data together with its origin and the error, if
// any, that forced a fallback. Data is always usable.
type Result[T any] struct {
	Data   T
	Source Source
	Err    error
}

// Stale reports whether the data is sample data shown because the API
// call failed.
func (r Result[T]) Stale() bool {
	return r.Source == SourceSample && r.Err != nil
}

// Clock returns the current time.
type Clock func() time.Time

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
