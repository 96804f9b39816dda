// FILE: idevlog/src/internal/filter/filter.go
package filter

import (
	"errors"
	"fmt"
	"strings"
	"sync/atomic"

	"idevlog/src/internal/core"

	"github.com/lixenwraith/log"
)

// Type selects the filter variant
type Type string

const (
	TypeMatch      Type = "match"
	TypeTrigger    Type = "trigger"
	TypeUntrigger  Type = "untrigger"
	TypeProcess    Type = "process"
	TypeExclude    Type = "exclude"
	TypeQuiet      Type = "quiet"
	TypeKernelOnly Type = "kernel_only"
	TypeNoKernel   Type = "no_kernel"
	TypeNothing    Type = "nothing"
)

var (
	ErrTriggerUnsupported = errors.New("filter type 'trigger' is not supported")
	ErrUnknownType        = errors.New("unknown filter type")
	ErrMissingPattern     = errors.New("filter requires exactly one non-empty pattern")
)

// Config describes one filter stage
type Config struct {
	Type     Type     `toml:"type"`
	Patterns []string `toml:"patterns"`
}

// Filter applies one filter variant to parsed records
type Filter struct {
	config  Config
	pattern string   // match, untrigger
	set     []string // process, exclude
	logger  *log.Logger

	// Statistics
	totalProcessed     atomic.Uint64
	totalDropped       atomic.Uint64
	totalShortCircuits atomic.Uint64
}

// Validate reports whether cfg describes a usable filter
func Validate(cfg Config) error {
	switch cfg.Type {
	case TypeMatch, TypeUntrigger:
		if len(cfg.Patterns) != 1 || cfg.Patterns[0] == "" {
			return fmt.Errorf("%s: %w", cfg.Type, ErrMissingPattern)
		}
	case TypeProcess, TypeExclude, TypeQuiet, TypeKernelOnly, TypeNoKernel, TypeNothing, "":
	case TypeTrigger:
		return ErrTriggerUnsupported
	default:
		return fmt.Errorf("%w: '%s'", ErrUnknownType, cfg.Type)
	}
	return nil
}

// NewFilter creates a filter from configuration
func NewFilter(cfg Config, logger *log.Logger) (*Filter, error) {
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	if cfg.Type == "" {
		cfg.Type = TypeNothing
	}

	f := &Filter{
		config: cfg,
		logger: logger,
	}

	switch cfg.Type {
	case TypeMatch, TypeUntrigger:
		f.pattern = cfg.Patterns[0]

	case TypeProcess, TypeExclude:
		// Empty set is valid - passes everything
		f.set = dedupe(cfg.Patterns)

	default:
		if len(cfg.Patterns) > 0 {
			logger.Warn("msg", "Patterns ignored for filter type",
				"component", "filter",
				"type", cfg.Type,
				"pattern_count", len(cfg.Patterns))
		}
	}

	logger.Debug("msg", "Filter created",
		"component", "filter",
		"type", cfg.Type,
		"pattern_count", len(cfg.Patterns))

	return f, nil
}

// Apply runs the filter over rec, resetting it to the drop sentinel when the
// record must not reach a sink. A false return asks the caller to stop
// processing the remaining lines of the current chunk.
func (f *Filter) Apply(rec *core.LogRecord) bool {
	f.totalProcessed.Add(1)

	switch f.config.Type {
	case TypeMatch:
		if !strings.Contains(rec.Message, f.pattern) {
			f.drop(rec)
		}

	case TypeUntrigger:
		if strings.Contains(rec.Message, f.pattern) {
			f.totalShortCircuits.Add(1)
			return false
		}

	case TypeProcess:
		// Resets on the first member the process name lacks, so every member
		// must be present for the record to survive.
		for _, proc := range f.set {
			if !strings.Contains(rec.Process, proc) {
				f.drop(rec)
				break
			}
		}

	case TypeExclude:
		for _, proc := range f.set {
			if strings.Contains(rec.Process, proc) {
				f.drop(rec)
				break
			}
		}

	case TypeQuiet:
		if IsQuietProcess(rec.Process) {
			f.drop(rec)
		}

	case TypeKernelOnly:
		if !strings.Contains(rec.Process, "kernel") {
			f.drop(rec)
		}

	case TypeNoKernel:
		if strings.Contains(rec.Process, "kernel") {
			f.drop(rec)
		}
	}

	return true
}

// Type returns the filter variant
func (f *Filter) Type() Type {
	return f.config.Type
}

// GetStats returns filter statistics
func (f *Filter) GetStats() map[string]any {
	return map[string]any{
		"type":                 f.config.Type,
		"pattern_count":        len(f.config.Patterns),
		"total_processed":      f.totalProcessed.Load(),
		"total_dropped":        f.totalDropped.Load(),
		"total_short_circuits": f.totalShortCircuits.Load(),
	}
}

func (f *Filter) drop(rec *core.LogRecord) {
	rec.Reset()
	f.totalDropped.Add(1)
}

func dedupe(patterns []string) []string {
	seen := make(map[string]struct{}, len(patterns))
	out := make([]string, 0, len(patterns))
	for _, p := range patterns {
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out
}
