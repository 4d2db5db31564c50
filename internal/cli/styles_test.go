package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		want  string
		width int
	}{
		{in: "Acme", width: 10, want: "Acme"},
		{in: "Acme Corp", width: 9, want: "Acme Corp"},
		{in: "Northwind Traders", width: 8, want: "Northwi…"},
		{in: "abc", width: 1, want: "…"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Truncate(tt.in, tt.width))
		})
	}
}

func TestRenderTable(t *testing.T) {
	out := RenderTable(
		[]string{"Name", "Company"},
		[]int{10, 20},
		[][]string{{"Sarah Chen", "Acme Corp"}, {"Tom Baker", "Northwind Traders Incorporated"}},
	)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Contains(t, lines[0], "Name")
	assert.Contains(t, lines[0], "Company")
	assert.Contains(t, out, "Sarah Chen")
	assert.Contains(t, out, "Northwind Traders I…")
	assert.NotContains(t, out, "Incorporated")
}

func TestProgress(t *testing.T) {
	var buf bytes.Buffer
	p := NewProgress(&buf, 3, "Importing contacts")
	p.Set(2)
	p.Finish()
	assert.Contains(t, buf.String(), "Importing contacts")
}
