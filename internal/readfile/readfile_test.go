package readfile

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestReadNormalized(t *testing.T) {
	tests := []struct {
		name string
		in   string
		out  string
	}{
		{
			name: "empty file",
			in:   "",
			out:  "",
		},
		{
			name: "unix newlines",
			in:   "options {\n}\n",
			out:  "options {\n}\n",
		},
		{
			name: "windows newlines",
			in:   "options {\r\n}\r\n",
			out:  "options {\n}\n",
		},
		{
			name: "standalone carriage returns preserved",
			in:   "a\rb\n\r\n",
			out:  "a\rb\n\n",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "grammar.jj")
			if err := os.WriteFile(path, []byte(tc.in), 0o644); err != nil {
				t.Fatalf("write temp file: %v", err)
			}

			got, err := ReadNormalized(path)
			if err != nil {
				t.Fatalf("ReadNormalized: %v", err)
			}
			if got != tc.out {
				t.Fatalf("got %q want %q", got, tc.out)
			}
		})
	}
}

func TestReadNormalized_Missing(t *testing.T) {
	_, err := ReadNormalized(filepath.Join(t.TempDir(), "absent.jj"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}
