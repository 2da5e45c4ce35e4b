package git

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// BinaryMarker is the text returned for content that cannot be displayed.
const BinaryMarker = "binary content, not displayable"

// binarySniffLen matches the prefix git inspects when classifying a blob.
const binarySniffLen = 8000

// looksBinary reports whether data contains a NUL byte in its leading window.
func looksBinary(data []byte) bool {
	n := len(data)
	if n > binarySniffLen {
		n = binarySniffLen
	}
	return bytes.IndexByte(data[:n], 0) >= 0
}

// decodeText renders data as a Go string. Invalid UTF-8 is decoded as
// Windows-1252 and reported as lossy.
func decodeText(data []byte) (string, bool) {
	if utf8.Valid(data) {
		return string(data), false
	}
	out, err := charmap.Windows1252.NewDecoder().Bytes(data)
	if err != nil {
		return strings.ToValidUTF8(string(data), "�"), true
	}
	return string(out), true
}

// trimPartialRune drops a multi-byte sequence cut off by truncation.
func trimPartialRune(data []byte) []byte {
	if utf8.Valid(data) {
		return data
	}
	for k := 1; k < utf8.UTFMax && k < len(data); k++ {
		if utf8.Valid(data[:len(data)-k]) {
			return data[:len(data)-k]
		}
	}
	return data
}

// countLines counts newline-terminated lines, plus a trailing partial line.
func countLines(data []byte) int {
	if len(data) == 0 {
		return 0
	}
	n := bytes.Count(data, []byte{'\n'})
	if data[len(data)-1] != '\n' {
		n++
	}
	return n
}

// buildContent converts raw blob bytes into displayable Content.
// size is the full blob size; data may be a prefix of it.
func buildContent(id ContentID, data []byte, size int64) Content {
	c := Content{
		ID:        id,
		Size:      size,
		Truncated: int64(len(data)) < size,
	}
	if looksBinary(data) {
		c.Binary = true
		c.Text = BinaryMarker
		return c
	}
	if c.Truncated {
		data = trimPartialRune(data)
	}
	c.Text, c.Lossy = decodeText(data)
	c.Lines = countLines(data)
	return c
}
