// FILE: idevlog/src/internal/core/record.go
package core

// LogRecord is one parsed syslog line flowing from the device to a sink.
// The zero value is the drop sentinel: filters reset a record to it and the
// worker never forwards it.
type LogRecord struct {
	Date     string `json:"date"`
	Device   string `json:"device"`
	Process  string `json:"process"`
	PID      string `json:"pid,omitempty"`      // empty when the line carries no [pid]
	Severity string `json:"severity,omitempty"` // empty when the line carries no <severity>
	Message  string `json:"message"`
}

// IsZero reports whether r is the drop sentinel
func (r LogRecord) IsZero() bool {
	return r == LogRecord{}
}

// Reset turns r into the drop sentinel
func (r *LogRecord) Reset() {
	*r = LogRecord{}
}

// PIDOrNone returns the pid, or "None" if absent
func (r LogRecord) PIDOrNone() string {
	if r.PID == "" {
		return "None"
	}
	return r.PID
}

// SeverityOrNone returns the severity, or "None" if absent
func (r LogRecord) SeverityOrNone() string {
	if r.Severity == "" {
		return "None"
	}
	return r.Severity
}
