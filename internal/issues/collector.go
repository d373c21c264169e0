package issues

import "slices"

// Collector accumulates issues in the order they are reported.
//
// A Collector is append-only: recorded issues are never removed or edited,
// and identical issues are not deduplicated. It is not safe for concurrent
// use; a validation session owns exactly one.
type Collector struct {
	issues []Issue
}

// NewCollector returns an empty collector with room for capacity issues.
func NewCollector(capacity int) *Collector {
	if capacity < 0 {
		capacity = 0
	}
	return &Collector{issues: make([]Issue, 0, capacity)}
}

// Append records an issue.
func (c *Collector) Append(issue Issue) {
	c.issues = append(c.issues, issue)
}

// Issues returns a copy of the recorded issues in report order.
func (c *Collector) Issues() []Issue {
	return slices.Clone(c.issues)
}

// Len returns the number of recorded issues.
func (c *Collector) Len() int {
	return len(c.issues)
}

// CountKind returns the number of recorded issues of the given kind.
func (c *Collector) CountKind(kind Kind) int {
	n := 0
	for _, issue := range c.issues {
		if issue.Kind == kind {
			n++
		}
	}
	return n
}
