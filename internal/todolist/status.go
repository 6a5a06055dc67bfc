package todolist

import (
	"fmt"
	"strings"
)

// Status selects which items a front end shows.
type Status int

const (
	All Status = iota
	Active
	Completed
)

var statusNames = [...]string{"all", "active", "completed"}

func (s Status) String() string {
	if s < All || s > Completed {
		return fmt.Sprintf("Status(%d)", int(s))
	}
	return statusNames[s]
}

// Next cycles All -> Active -> Completed -> All.
func (s Status) Next() Status {
	return (s + 1) % Status(len(statusNames))
}

// ParseStatus accepts the names returned by String. Empty input means All.
func ParseStatus(s string) (Status, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return All, nil
	case "active", "pending":
		return Active, nil
	case "completed", "done":
		return Completed, nil
	}
	return All, fmt.Errorf("unknown status %q", s)
}
