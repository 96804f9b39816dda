// FILE: idevlog/src/internal/format/format_test.go
package format

import (
	"strings"
	"testing"

	"idevlog/src/internal/core"

	"github.com/lixenwraith/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger() *log.Logger {
	return log.NewLogger()
}

var testRecord = core.LogRecord{
	Date:     "Jan 1 00:00:01",
	Device:   "iPhone",
	Process:  "SpringBoard",
	PID:      "123",
	Severity: "Notice",
	Message:  "hello",
}

func TestNewFormatter(t *testing.T) {
	logger := newTestLogger()

	testCases := []struct {
		name        string
		formatName  string
		expected    string
		expectError bool
	}{
		{
			name:       "JSONFormatter",
			formatName: "json",
			expected:   "json",
		},
		{
			name:       "TextFormatter",
			formatName: "txt",
			expected:   "txt",
		},
		{
			name:       "ColorFormatter",
			formatName: "color",
			expected:   "color",
		},
		{
			name:       "RawFormatter",
			formatName: "raw",
			expected:   "raw",
		},
		{
			name:       "DefaultToText",
			formatName: "",
			expected:   "txt",
		},
		{
			name:        "UnknownFormatter",
			formatName:  "xml",
			expectError: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			formatter, err := NewFormatter(tc.formatName, nil, logger)
			if tc.expectError {
				assert.Error(t, err)
				assert.Nil(t, formatter)
			} else {
				require.NoError(t, err)
				require.NotNil(t, formatter)
				assert.Equal(t, tc.expected, formatter.Name())
			}
		})
	}
}

func TestRawFormatter_Format(t *testing.T) {
	output, err := NewRawFormatter(newTestLogger()).Format(testRecord)
	require.NoError(t, err)
	assert.Equal(t, "hello\n", string(output))
}

func TestJSONFormatter_Format(t *testing.T) {
	logger := newTestLogger()

	t.Run("Compact", func(t *testing.T) {
		output, err := NewJSONFormatter(logger).Format(testRecord)
		require.NoError(t, err)
		assert.JSONEq(t, `{"date":"Jan 1 00:00:01","device":"iPhone","process":"SpringBoard","pid":"123","severity":"Notice","message":"hello"}`,
			string(output))
		assert.Equal(t, byte('\n'), output[len(output)-1])
	})

	t.Run("OptionalFieldsOmitted", func(t *testing.T) {
		rec := testRecord
		rec.PID = ""
		rec.Severity = ""
		output, err := NewJSONFormatter(logger).Format(rec)
		require.NoError(t, err)
		assert.NotContains(t, string(output), "pid")
		assert.NotContains(t, string(output), "severity")
		assert.Equal(t, 1, strings.Count(string(output), "\n"))
	})
}
