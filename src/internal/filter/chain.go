// FILE: idevlog/src/internal/filter/chain.go
package filter

import (
	"fmt"
	"sync/atomic"

	"idevlog/src/internal/core"

	"github.com/lixenwraith/log"
)

// Chain manages a sequence of filters, applying them in order.
type Chain struct {
	filters []*Filter
	logger  *log.Logger

	// Statistics
	totalProcessed     atomic.Uint64
	totalPassed        atomic.Uint64
	totalShortCircuits atomic.Uint64
}

// NewChain creates a new filter chain from a slice of filter configurations.
func NewChain(configs []Config, logger *log.Logger) (*Chain, error) {
	chain := &Chain{
		filters: make([]*Filter, 0, len(configs)),
		logger:  logger,
	}

	for i, cfg := range configs {
		filter, err := NewFilter(cfg, logger)
		if err != nil {
			return nil, fmt.Errorf("filter[%d]: %w", i, err)
		}
		chain.filters = append(chain.filters, filter)
	}

	logger.Debug("msg", "Filter chain created",
		"component", "filter_chain",
		"filter_count", len(configs))
	return chain, nil
}

// Apply runs a record through all filters in the chain. Evaluation ends at the
// first stage that drops the record. A false return is a short-circuit: the
// caller must skip the remaining lines of the chunk.
func (c *Chain) Apply(rec *core.LogRecord) bool {
	c.totalProcessed.Add(1)

	for i, filter := range c.filters {
		if !filter.Apply(rec) {
			c.totalShortCircuits.Add(1)
			c.logger.Debug("msg", "Chunk short-circuited",
				"component", "filter_chain",
				"filter_index", i,
				"filter_type", filter.Type())
			return false
		}
		if rec.IsZero() {
			return true
		}
	}

	if !rec.IsZero() {
		c.totalPassed.Add(1)
	}
	return true
}

// Len returns the number of stages
func (c *Chain) Len() int {
	return len(c.filters)
}

// GetStats returns aggregated statistics for the entire chain.
func (c *Chain) GetStats() map[string]any {
	filterStats := make([]map[string]any, len(c.filters))
	stages := make([]Type, len(c.filters))
	for i, filter := range c.filters {
		filterStats[i] = filter.GetStats()
		stages[i] = filter.Type()
	}

	return map[string]any{
		"filter_count":         len(c.filters),
		"stages":               stages,
		"total_processed":      c.totalProcessed.Load(),
		"total_passed":         c.totalPassed.Load(),
		"total_short_circuits": c.totalShortCircuits.Load(),
		"filters":              filterStats,
	}
}
