package journal

import "time"

// Activity is one tool invocation. Only metadata is kept: no message
// content, subjects or addresses.
type Activity struct {
	ID        string
	Tool      string
	Success   bool
	Error     string
	Duration  time.Duration
	Items     int
	CreatedAt time.Time
}

// ToolSummary aggregates the invocations of one tool.
type ToolSummary struct {
	Tool     string
	Calls    int
	Failures int
	LastCall time.Time
}
