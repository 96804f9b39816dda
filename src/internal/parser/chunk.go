// FILE: idevlog/src/internal/parser/chunk.go
package parser

import (
	"strings"
	"unicode/utf8"
)

// SplitChunk decodes a raw relay frame into lines. Invalid UTF-8 (including a
// multi-byte sequence cut at the frame boundary) is replaced with U+FFFD.
// NUL padding and a trailing carriage return are stripped from every line.
// A trailing terminator does not produce an empty final line.
func SplitChunk(data []byte) []string {
	if len(data) == 0 {
		return nil
	}

	text := string(data)
	if !utf8.ValidString(text) {
		text = strings.ToValidUTF8(text, string(utf8.RuneError))
	}
	text = strings.TrimSuffix(text, "\n")

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		line = strings.Trim(line, "\x00")
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}
