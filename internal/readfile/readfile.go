// Package readfile loads text files with line endings normalized to "\n".
package readfile

import (
	"fmt"
	"os"
	"strings"
)

func ReadNormalized(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return Normalize(string(data)), nil
}

// Normalize turns CRLF into LF. Lone carriage returns are kept.
func Normalize(s string) string {
	return strings.ReplaceAll(s, "\r\n", "\n")
}
