package ui

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGlyphs_CoverAppName(t *testing.T) {
	for _, r := range strings.ToUpper(AppName) {
		_, ok := glyphs[r]
		assert.True(t, ok, "no glyph for %q", r)
	}
}

func TestGlyphs_RowsAlign(t *testing.T) {
	for r, glyph := range glyphs {
		width := utf8.RuneCountInString(glyph[0])
		for i, row := range glyph {
			assert.Equal(t, width, utf8.RuneCountInString(row), "glyph %q row %d", r, i)
		}
	}
}

func TestGenerateASCIIArt_AppName(t *testing.T) {
	art := GenerateASCIIArt(AppName)
	require.True(t, strings.HasPrefix(art, "\n\t"))

	rows := strings.Split(strings.TrimPrefix(art, "\n"), "\n")
	require.Len(t, rows, 6)
	for i, row := range rows {
		var want strings.Builder
		want.WriteString("\t")
		for _, r := range strings.ToUpper(AppName) {
			want.WriteString(glyphs[r][i])
		}
		assert.Equal(t, want.String(), row, "row %d", i)
	}
}

func TestGenerateASCIIArt_SkipsUnknownRunes(t *testing.T) {
	assert.Equal(t, GenerateASCIIArt("E2E4"), GenerateASCIIArt("e2?e4!"))
	assert.Empty(t, GenerateASCIIArt(""))
}

func TestBanner_Layout(t *testing.T) {
	banner := Banner("v0.3.0", NewPainter(false))

	art := GenerateASCIIArt(AppName)
	require.True(t, strings.HasPrefix(banner, art+"\n\n"))

	tips := strings.Split(strings.TrimSuffix(strings.TrimPrefix(banner, art+"\n\n"), "\n"), "\n")
	require.Len(t, tips, 2)
	assert.Equal(t, "\ttilted v0.3.0: type moves in UCI notation (e2e4, e7e8q).", tips[0])
	assert.Equal(t, "\tType 'help' for commands, 'quit' to exit.", tips[1])
}
