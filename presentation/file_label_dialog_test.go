package presentation

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

func TestCloseChosen(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantLog bool
	}{
		{"clean close", nil, false},
		{"close fails", errors.New("device gone"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := slog.New(slog.NewTextHandler(&buf, nil))

			closed := false
			closeChosen(closerFunc(func() error {
				closed = true
				return tt.err
			}), "/img/a.png", logger)

			if !closed {
				t.Error("Close was not called")
			}
			out := buf.String()
			if got := strings.Contains(out, "Failed to close chosen file"); got != tt.wantLog {
				t.Errorf("logged = %v, want %v (output %q)", got, tt.wantLog, out)
			}
			if tt.wantLog && !strings.Contains(out, "device gone") {
				t.Errorf("log output %q missing the close error", out)
			}
		})
	}
}
