// FILE: idevlog/src/internal/core/const.go
package core

import "time"

// Device log relay
const (
	SyslogRelayService = "com.apple.syslog_relay"
	ChunkSize          = 1024
	RetryDelay         = 1 * time.Second
)

// Fallback output used when the configured log file cannot be opened
const DefaultFallbackFile = "temp.log"
