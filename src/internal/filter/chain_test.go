// FILE: idevlog/src/internal/filter/chain_test.go
package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewChain(t *testing.T) {
	logger := newTestLogger()

	t.Run("Success", func(t *testing.T) {
		configs := []Config{
			{Type: TypeQuiet},
			{Type: TypeMatch, Patterns: []string{"wifi"}},
		}
		chain, err := NewChain(configs, logger)
		assert.NoError(t, err)
		assert.NotNil(t, chain)
		assert.Equal(t, 2, chain.Len())
	})

	t.Run("ErrorTriggerInChain", func(t *testing.T) {
		configs := []Config{
			{Type: TypeQuiet},
			{Type: TypeTrigger, Patterns: []string{"x"}},
		}
		chain, err := NewChain(configs, logger)
		assert.Error(t, err)
		assert.Nil(t, chain)
		assert.ErrorIs(t, err, ErrTriggerUnsupported)
		assert.Contains(t, err.Error(), "filter[1]")
	})
}

func TestChain_Apply(t *testing.T) {
	logger := newTestLogger()

	t.Run("EmptyChainPassesEverything", func(t *testing.T) {
		chain, err := NewChain(nil, logger)
		require.NoError(t, err)

		rec := record("SpringBoard", "hello")
		assert.True(t, chain.Apply(&rec))
		assert.False(t, rec.IsZero())
	})

	t.Run("AllStagesPass", func(t *testing.T) {
		chain, err := NewChain([]Config{
			{Type: TypeNoKernel},
			{Type: TypeMatch, Patterns: []string{"wifi"}},
			{Type: TypeExclude, Patterns: []string{"locationd"}},
		}, logger)
		require.NoError(t, err)

		rec := record("wifid", "wifi associated")
		assert.True(t, chain.Apply(&rec))
		assert.False(t, rec.IsZero())
	})

	t.Run("DropEndsEvaluation", func(t *testing.T) {
		chain, err := NewChain([]Config{
			{Type: TypeQuiet},
			{Type: TypeUntrigger, Patterns: []string{"boom"}},
		}, logger)
		require.NoError(t, err)

		// Dropped by quiet, so the untrigger stage never sees the message
		rec := record("SpringBoard", "boom")
		assert.True(t, chain.Apply(&rec))
		assert.True(t, rec.IsZero())
		assert.Equal(t, uint64(0), chain.filters[1].GetStats()["total_processed"])
	})

	t.Run("ShortCircuitPropagates", func(t *testing.T) {
		chain, err := NewChain([]Config{
			{Type: TypeNoKernel},
			{Type: TypeUntrigger, Patterns: []string{"boom"}},
			{Type: TypeMatch, Patterns: []string{"never"}},
		}, logger)
		require.NoError(t, err)

		rec := record("app", "boom")
		assert.False(t, chain.Apply(&rec))

		stats := chain.GetStats()
		assert.Equal(t, uint64(1), stats["total_short_circuits"])
		assert.Equal(t, uint64(0), stats["total_passed"])
		assert.Equal(t, []Type{TypeUntrigger, TypeMatch}, stats["stages"])
	})
}
