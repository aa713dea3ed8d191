package ui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableRenderBasics(t *testing.T) {
	tbl := NewTable([]Column{
		{Title: "ID", Width: 4},
		{Title: "NAME", Width: 10},
	})
	tbl.AddRow(Row{"1", "Coffee"})
	tbl.AddRow(Row{"2", "Beans"})

	out := tbl.Render()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 4) // header, divider, two rows

	assert.Contains(t, lines[0], "ID")
	assert.Contains(t, lines[0], "NAME")
	assert.Contains(t, lines[1], "----")
	assert.Contains(t, lines[2], "Coffee")
	assert.Contains(t, lines[3], "Beans")
}

func TestTableTruncatesOverlongCells(t *testing.T) {
	tbl := NewTable([]Column{{Title: "ADDR", Width: 6}})
	tbl.AddRow(Row{"0xf39Fd6e51aad88F6"})

	out := tbl.Render()
	assert.Contains(t, out, "0xf39F")
	assert.NotContains(t, out, "0xf39Fd")
}

func TestTableMissingCellsRenderEmpty(t *testing.T) {
	tbl := NewTable([]Column{
		{Title: "A", Width: 3},
		{Title: "B", Width: 3},
	})
	tbl.AddRow(Row{"x"})

	// Short rows must not panic and still produce a full-width line.
	out := tbl.Render()
	assert.Contains(t, out, "x")
}

func TestKeyValueBlock(t *testing.T) {
	out := KeyValueBlock("Token #1", [][2]string{
		{"Name", "Coffee"},
		{"Creator", "0xabc"},
	})
	assert.Contains(t, out, "Token #1")
	assert.Contains(t, out, "Name:")
	assert.Contains(t, out, "Coffee")
	assert.Contains(t, out, "0xabc")
}
