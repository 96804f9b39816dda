// FILE: idevlog/src/cmd/idevlog/status.go
package main

import (
	"context"
	"time"

	"idevlog/src/internal/filter"
	"idevlog/src/internal/sink"
)

const statusInterval = 30 * time.Second

type statsSource interface {
	GetStats() map[string]any
}

// statusReporter periodically logs streaming counters
func statusReporter(ctx context.Context, src statsSource, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			func() {
				defer func() {
					if r := recover(); r != nil {
						logger.Error("msg", "Panic in status reporter",
							"component", "status_reporter",
							"panic", r)
					}
				}()
				logger.Info(statusFields(src.GetStats())...)
			}()
		}
	}
}

var statusKeys = []string{
	"running",
	"chunks_received",
	"bytes_received",
	"transport_errors",
	"lines_delivered",
	"lines_filtered",
	"lines_unparsed",
	"short_circuits",
	"worker_starts",
}

func statusFields(stats map[string]any) []any {
	fields := []any{
		"msg", "Syslog status",
		"component", "status_reporter",
	}
	if udid, ok := stats["udid"].(string); ok && udid != "" {
		fields = append(fields, "udid", udid)
	}
	for _, key := range statusKeys {
		if v, ok := stats[key]; ok {
			fields = append(fields, key, v)
		}
	}
	// Stages of the running worker, which may lag SetFilter
	if chain, ok := stats["worker_filter_chain"].(map[string]any); ok {
		if stages, ok := chain["stages"].([]filter.Type); ok {
			fields = append(fields, "filters", stages)
		}
	}
	if s, ok := stats["sink"].(sink.SinkStats); ok {
		fields = append(fields,
			"sink", s.Type,
			"sink_errors", s.TotalErrors)
	}
	return fields
}
