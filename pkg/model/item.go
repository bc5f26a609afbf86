// Package model defines the dashboard dataset and the graph representation
// built from it.
package model

import (
	"strconv"
	"time"
)

// Status is the reported state of an item. The empty string means the field
// was absent from the dataset.
type Status string

const (
	StatusActive    Status = "active"
	StatusConnected Status = "connected"
	StatusOK        Status = "ok"
	StatusPaused    Status = "paused"
	StatusInactive  Status = "inactive"
)

// IsZero reports whether the status was absent.
func (s Status) IsZero() bool { return s == "" }

// Item is a single skill, integration, cron job or project.
type Item struct {
	ID              string   `json:"id" yaml:"id"`
	Name            string   `json:"name" yaml:"name"`
	Description     string   `json:"description,omitempty" yaml:"description,omitempty"`
	Status          Status   `json:"status,omitempty" yaml:"status,omitempty"`
	AutomationLevel *float64 `json:"automationLevel,omitempty" yaml:"automationLevel,omitempty"`
	Schedule        string   `json:"schedule,omitempty" yaml:"schedule,omitempty"`
	Progress        *float64 `json:"progress,omitempty" yaml:"progress,omitempty"`
	Icon            string   `json:"icon,omitempty" yaml:"icon,omitempty"`
	LastStatus      Status   `json:"lastStatus,omitempty" yaml:"lastStatus,omitempty"`
}

// Dataset is the whole input document. It is loaded once and never mutated.
type Dataset struct {
	Skills       []Item `json:"skills" yaml:"skills"`
	Integrations []Item `json:"integrations" yaml:"integrations"`
	CronJobs     []Item `json:"cronJobs" yaml:"cronJobs"`
	Projects     []Item `json:"projects" yaml:"projects"`
	LastUpdated  string `json:"lastUpdated" yaml:"lastUpdated"`
}

// ItemCount returns the number of items across all collections.
func (d Dataset) ItemCount() int {
	return len(d.Skills) + len(d.Integrations) + len(d.CronJobs) + len(d.Projects)
}

// LastUpdatedTime parses LastUpdated as an ISO-8601 timestamp.
func (d Dataset) LastUpdatedTime() (time.Time, error) {
	return ParseTimestamp(d.LastUpdated)
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.000",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseTimestamp accepts the ISO-8601 shapes commonly written by JSON
// serializers. Timestamps without a zone are interpreted as local time.
func ParseTimestamp(s string) (time.Time, error) {
	var lastErr error
	for i, layout := range timestampLayouts {
		var (
			t   time.Time
			err error
		)
		if i == 0 {
			t, err = time.Parse(layout, s)
		} else {
			t, err = time.ParseInLocation(layout, s, time.Local)
		}
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

// InvalidDate is what an unparseable timestamp renders as.
const InvalidDate = "Invalid Date"

// DefaultTimeLayout mirrors the en-US locale string shape.
const DefaultTimeLayout = "1/2/2006, 3:04:05 PM"

// FormatTimestamp renders raw in local time using layout, or InvalidDate.
func FormatTimestamp(raw, layout string) string {
	t, err := ParseTimestamp(raw)
	if err != nil {
		return InvalidDate
	}
	if layout == "" {
		layout = DefaultTimeLayout
	}
	return t.Local().Format(layout)
}

// Float returns a pointer to v, for building optional numeric fields.
func Float(v float64) *float64 { return &v }

// FormatPercent renders a percentage the way the dashboard shows it: no
// trailing zeros, no exponent.
func FormatPercent(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "%"
}
