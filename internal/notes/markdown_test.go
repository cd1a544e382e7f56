package notes

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeadline(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Buy groceries for the week", "Buy groceries for the week"},
		{"# Sprint plan\n\n- item one", "Sprint plan"},
		{"Call **Ana** about\nthe *budget*", "Call Ana about the budget"},
		{"- first bullet\n- second", "first bullet"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Headline(tt.in), tt.in)
	}
}

func TestFilename(t *testing.T) {
	n := Note{Text: "# Update Wireframes: mobile/app!", CreatedAt: time.Date(2025, 4, 16, 0, 0, 0, 0, time.UTC)}
	assert.Equal(t, "2025-04-16-update-wireframes-mobile-app.md", Filename(n))

	n.Text = "!!!"
	assert.Equal(t, "2025-04-16-note.md", Filename(n))
}

func TestExportThenImport(t *testing.T) {
	dir := t.TempDir()
	created := time.Date(2025, 4, 16, 9, 30, 0, 0, time.UTC)
	src := []Note{
		{ID: "a1", Text: "Update wireframes for mobile app", Category: "work", Pinned: true, CreatedAt: created},
		{ID: "b2", Text: "Update wireframes for mobile app", Category: "ideas", CreatedAt: created},
	}

	paths, err := Export(dir, src)
	require.NoError(t, err)
	require.Len(t, paths, 2)
	assert.NotEqual(t, paths[0], paths[1])

	got, err := ImportDir(dir)
	require.NoError(t, err)
	assert.ElementsMatch(t, src, got)
}

func TestParseNoteFileWithoutFrontmatter(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "2025-03-01-quarterly_review.md")
	require.NoError(t, os.WriteFile(path, []byte("\n"), 0644))

	n, err := ParseNoteFile(path)
	require.NoError(t, err)
	assert.Equal(t, "quarterly review", n.Text)
	assert.Equal(t, DefaultCategory, n.Category)
	assert.Empty(t, n.ID)
	assert.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), n.CreatedAt)
}

func TestParseNoteFileBadFrontmatterKeepsContent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scratch.md")
	content := "---\nid: [unterminated\n---\nbody text\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	n, err := ParseNoteFile(path)
	require.NoError(t, err)
	assert.Contains(t, n.Text, "body text")
	assert.False(t, n.CreatedAt.IsZero())
}

func TestTitleFromFilename(t *testing.T) {
	assert.Equal(t, "standup notes", titleFromFilename("2026-02-14-standup-notes.md"))
	assert.Equal(t, "2026 02 14", titleFromFilename("2026-02-14.md"))
	assert.Equal(t, "ideas 2026 02 14", titleFromFilename("ideas_2026-02-14.md"))
}
