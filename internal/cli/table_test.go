package cli

import (
	"slices"
	"strings"
	"testing"
)

func TestNewTable(t *testing.T) {
	table := NewTable([]string{"colour", "ratio", "need"})

	if table == nil {
		t.Fatal("NewTable returned nil")
	}
	if len(table.headers) != 3 {
		t.Errorf("Expected 3 headers, got %d", len(table.headers))
	}
	if table.padding != 2 {
		t.Errorf("Expected padding of 2, got %d", table.padding)
	}
	if table.Len() != 0 {
		t.Errorf("Expected no rows, got %d", table.Len())
	}
}

func TestTableAddRow(t *testing.T) {
	table := NewTable([]string{"colour", "ratio"})

	table.AddRow([]string{"#ffffff", "1.00:1"})
	table.AddRow([]string{"#000000"})
	table.AddRow([]string{"#ed2e20", "4.02:1", "extra"})

	if table.Len() != 3 {
		t.Fatalf("Expected 3 rows, got %d", table.Len())
	}
	if len(table.rows[1]) != 2 || table.rows[1][1] != "" {
		t.Errorf("Expected short row padded with an empty cell, got %q", table.rows[1])
	}
	if len(table.rows[2]) != 2 {
		t.Errorf("Expected long row truncated to 2 columns, got %d", len(table.rows[2]))
	}
}

func TestTableRender(t *testing.T) {
	table := NewTable([]string{"colour", "ratio"})
	table.SetRightAlign(1)
	table.AddRow([]string{"#ffffff", "1.00:1"})
	table.AddRow([]string{"#000000", "21.00:1"})

	want := strings.Join([]string{
		"colour     ratio",
		"-------  -------",
		"#ffffff   1.00:1",
		"#000000  21.00:1",
		"",
	}, "\n")

	if got := table.Render(); got != want {
		t.Errorf("Render() =\n%s\nwant\n%s", got, want)
	}
}

func TestTableRenderEmpty(t *testing.T) {
	if output := NewTable(nil).Render(); output != "" {
		t.Errorf("Expected empty string for table without headers, got %q", output)
	}
}

func TestTableRenderNoRows(t *testing.T) {
	output := NewTable([]string{"theme", "mode"}).Render()

	lines := strings.Split(strings.TrimSuffix(output, "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("Expected header and separator only, got %d lines", len(lines))
	}
	if lines[1] != "-----  ----" {
		t.Errorf("Separator = %q", lines[1])
	}
}

func TestTableRenderStyledCells(t *testing.T) {
	styled := "\x1b[7m2.10:1\x1b[0m"
	table := NewTable([]string{"contrast", "#ffffff"})
	table.AddRow([]string{"#e6ebf2", styled})
	table.AddRow([]string{"#000000", "21.00:1"})

	lines := strings.Split(table.Render(), "\n")
	if !strings.Contains(lines[2], styled) {
		t.Fatalf("Styled cell was altered: %q", lines[2])
	}
	// Visible widths of both data rows match once escapes are removed.
	plain := strings.ReplaceAll(strings.ReplaceAll(lines[2], "\x1b[7m", ""), "\x1b[0m", "")
	if len(plain)+1 != len(lines[3]) {
		t.Errorf("Styled row is %d wide, plain row %d", len(plain), len(lines[3]))
	}
}

func TestTableRenderWrapped(t *testing.T) {
	table := NewTable([]string{"THEME", "DESCRIPTION"})
	table.SetColumnMaxWidth(1, 10)
	table.AddRow([]string{"sourcegraph", "the quick brown fox"})

	lines := strings.Split(strings.TrimSuffix(table.Render(), "\n"), "\n")
	want := []string{
		"THEME        DESCRIPTION",
		"-----------  -----------",
		"sourcegraph  the quick",
		"             brown fox",
	}
	if !slices.Equal(lines, want) {
		t.Errorf("Render() lines = %q, want %q", lines, want)
	}
}

func TestPadding(t *testing.T) {
	tests := []struct {
		name  string
		pad   func(string, int) string
		input string
		width int
		want  string
	}{
		{"right", padRight, "test", 10, "test      "},
		{"right exact", padRight, "hello", 5, "hello"},
		{"right overflow", padRight, "world", 3, "world"},
		{"right empty", padRight, "", 5, "     "},
		{"left", padLeft, "1.00:1", 8, "  1.00:1"},
		{"left overflow", padLeft, "21.00:1", 3, "21.00:1"},
		{"right styled", padRight, "\x1b[1mab\x1b[0m", 4, "\x1b[1mab\x1b[0m  "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.pad(tt.input, tt.width); got != tt.want {
				t.Errorf("pad(%q, %d) = %q, want %q", tt.input, tt.width, got, tt.want)
			}
		})
	}
}

func TestWrapText(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		width int
		want  []string
	}{
		{"fits", "short", 10, []string{"short"}},
		{"no limit", "anything goes here", 0, []string{"anything goes here"}},
		{"words", "the quick brown fox", 10, []string{"the quick", "brown fox"}},
		{"long word", "abcdefghijkl", 5, []string{"abcde", "fghij", "kl"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := wrapText(tt.text, tt.width); !slices.Equal(got, tt.want) {
				t.Errorf("wrapText(%q, %d) = %q, want %q", tt.text, tt.width, got, tt.want)
			}
		})
	}
}
