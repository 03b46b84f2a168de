package config

import "time"

// Application identifiers and file names under the data root.
const (
	AppName        = "devlog"
	AppIdentifier  = "com.ahmadsaptan.devlogdesk"
	DBFileName     = "daily-updates.sqlite"
	LegacyFileName = "daily-updates-data.json"
	ReportsDirName = "reports"
	LogFileName    = "devlog.log"
)

// Sprint durations. New sprints run one or two weeks.
const (
	ShortSprintDays   = 7
	DefaultSprintDays = 14
)

// DateLayout is the calendar-date form used for sprint windows and
// entry dates.
const DateLayout = "2006-01-02"

// TimestampLayout is RFC 3339 UTC with fixed-width nanoseconds, so the
// lexicographic order of created_at strings is their chronological
// order.
const TimestampLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Database operation timeout.
const DBTimeout = 5 * time.Second
