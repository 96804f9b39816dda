// FILE: idevlog/src/internal/parser/parser.go
package parser

import (
	"regexp"
	"strings"

	"idevlog/src/internal/core"
)

// Matches "<date> <device> <process>[(<sub>)][[<pid>]] [<<severity>>][:] <message>".
// The process name stops at ':' so that "kernel: ping" splits into process
// "kernel" and message "ping".
var syslogLine = regexp.MustCompile(
	`^(?P<date>\w{3}\s+\d{1,2}\s+\d{2}:\d{2}:\d{2})\s+` +
		`(?P<device>\S+)\s+` +
		`(?P<process>[^\[\(<:]+(?:\([^\)]+\))?)` +
		`(?:\[(?P<pid>\d+)\])?\s*` +
		`(?:<(?P<severity>\w+)>)?:?\s*` +
		`(?P<message>.*)$`)

var (
	dateIdx     = syslogLine.SubexpIndex("date")
	deviceIdx   = syslogLine.SubexpIndex("device")
	processIdx  = syslogLine.SubexpIndex("process")
	pidIdx      = syslogLine.SubexpIndex("pid")
	severityIdx = syslogLine.SubexpIndex("severity")
	messageIdx  = syslogLine.SubexpIndex("message")
)

// Parse turns one syslog line into a record. Lines that do not match the
// grammar yield the zero record, which callers treat as "skip".
func Parse(line string) core.LogRecord {
	m := syslogLine.FindStringSubmatch(line)
	if m == nil {
		return core.LogRecord{}
	}

	// "locationd <Warning>: ..." leaves the separating space in the process group
	process := strings.TrimRight(m[processIdx], " \t")
	if process == "" {
		return core.LogRecord{}
	}

	// Blank messages are not records
	message := m[messageIdx]
	if strings.TrimSpace(message) == "" {
		return core.LogRecord{}
	}

	return core.LogRecord{
		Date:     m[dateIdx],
		Device:   m[deviceIdx],
		Process:  process,
		PID:      m[pidIdx],
		Severity: m[severityIdx],
		Message:  message,
	}
}
