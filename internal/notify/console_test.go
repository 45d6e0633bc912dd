package notify

import (
	"bytes"
	"strings"
	"testing"
)

func TestConsoleSendReminder(t *testing.T) {
	tests := []struct {
		name     string
		dueCount int
		hours    float64
		want     string
	}{
		{"due words named", 4, 12, "4 words are due"},
		{"stale session named", 0, 72, "72 hours since your last session"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			c := NewConsole(&buf)

			if err := c.SendReminder(tt.dueCount, tt.hours); err != nil {
				t.Fatalf("SendReminder() error = %v", err)
			}
			if !strings.Contains(buf.String(), tt.want) {
				t.Errorf("output %q does not contain %q", buf.String(), tt.want)
			}
		})
	}
}
