package notes

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
	"gopkg.in/yaml.v3"
)

var (
	datePattern  = regexp.MustCompile(`\d{4}-\d{2}-\d{2}`)
	slugStripper = regexp.MustCompile(`[^a-z0-9]+`)
)

type noteFrontmatter struct {
	ID       string `yaml:"id,omitempty"`
	Category string `yaml:"category,omitempty"`
	Pinned   bool   `yaml:"pinned,omitempty"`
	Created  string `yaml:"created,omitempty"`
}

// Headline returns the first heading or paragraph of a markdown text as plain
// text, for one-line list rendering.
func Headline(src string) string {
	source := []byte(src)
	doc := goldmark.DefaultParser().Parse(text.NewReader(source))

	var headline string
	ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering || headline != "" {
			return ast.WalkContinue, nil
		}
		switch n.Kind() {
		case ast.KindHeading, ast.KindParagraph, ast.KindTextBlock:
			headline = plainText(n, source)
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})

	if headline == "" {
		headline, _, _ = strings.Cut(strings.TrimSpace(src), "\n")
	}
	return strings.TrimSpace(headline)
}

// plainText concatenates the text segments under n, turning soft line
// breaks into spaces.
func plainText(n ast.Node, source []byte) string {
	var b strings.Builder
	ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if t, ok := c.(*ast.Text); ok {
			b.Write(t.Segment.Value(source))
			if t.SoftLineBreak() || t.HardLineBreak() {
				b.WriteByte(' ')
			}
		}
		return ast.WalkContinue, nil
	})
	return b.String()
}

// Filename builds "<yyyy-MM-dd>-<slug>.md" for a note.
func Filename(n Note) string {
	slug := strings.Trim(slugStripper.ReplaceAllString(strings.ToLower(Headline(n.Text)), "-"), "-")
	if len(slug) > 48 {
		slug = strings.TrimRight(slug[:48], "-")
	}
	if slug == "" {
		slug = "note"
	}
	return n.CreatedAt.Format("2006-01-02") + "-" + slug + ".md"
}

// Marshal renders a note as a markdown file with YAML frontmatter.
func Marshal(n Note) ([]byte, error) {
	fm, err := yaml.Marshal(noteFrontmatter{
		ID:       n.ID,
		Category: n.Category,
		Pinned:   n.Pinned,
		Created:  n.CreatedAt.Format(time.RFC3339),
	})
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	buf.WriteString("---\n")
	buf.Write(fm)
	buf.WriteString("---\n\n")
	buf.WriteString(strings.TrimSpace(n.Text))
	buf.WriteString("\n")
	return buf.Bytes(), nil
}

// Export writes one markdown file per note into dir and returns the paths.
func Export(dir string, notes []Note) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("error creating directory: %w", err)
	}
	used := make(map[string]bool)
	var paths []string
	for _, n := range notes {
		name := Filename(n)
		if used[name] {
			name = strings.TrimSuffix(name, ".md") + "-" + shortID(n.ID) + ".md"
		}
		used[name] = true

		data, err := Marshal(n)
		if err != nil {
			return paths, err
		}
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, data, 0644); err != nil {
			return paths, fmt.Errorf("error writing %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// ParseNoteFile reads a markdown note. Files without frontmatter become
// general notes dated from the filename or the file's modification time.
func ParseNoteFile(path string) (Note, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Note{}, err
	}
	fm, body := splitFrontmatter(content)

	n := Note{
		ID:       fm.ID,
		Category: fm.Category,
		Pinned:   fm.Pinned,
		Text:     strings.TrimSpace(string(body)),
	}
	if fm.Created != "" {
		if t, err := time.Parse(time.RFC3339, fm.Created); err == nil {
			n.CreatedAt = t
		} else if t, err := time.Parse("2006-01-02", fm.Created); err == nil {
			n.CreatedAt = t
		}
	}
	filename := filepath.Base(path)
	if n.CreatedAt.IsZero() {
		if match := datePattern.FindString(filename); match != "" {
			if t, err := time.Parse("2006-01-02", match); err == nil {
				n.CreatedAt = t
			}
		}
	}
	if n.CreatedAt.IsZero() {
		if info, err := os.Stat(path); err == nil {
			n.CreatedAt = info.ModTime()
		}
	}
	if n.Text == "" {
		n.Text = titleFromFilename(filename)
	}
	normalize(&n)
	return n, nil
}

// ImportDir parses every .md file directly inside dir, in filename order.
func ImportDir(dir string) ([]Note, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".md") {
			names = append(names, e.Name())
		}
	}
	slices.Sort(names)

	var notes []Note
	for _, name := range names {
		n, err := ParseNoteFile(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("error reading %s: %w", name, err)
		}
		notes = append(notes, n)
	}
	return notes, nil
}

func splitFrontmatter(content []byte) (noteFrontmatter, []byte) {
	var fm noteFrontmatter
	lines := bytes.Split(content, []byte("\n"))

	if len(lines) == 0 || !bytes.Equal(bytes.TrimSpace(lines[0]), []byte("---")) {
		return fm, content
	}

	var fmEnd int
	for i := 1; i < len(lines); i++ {
		if bytes.Equal(bytes.TrimSpace(lines[i]), []byte("---")) {
			fmEnd = i
			break
		}
	}
	if fmEnd == 0 {
		return fm, content
	}

	if err := yaml.Unmarshal(bytes.Join(lines[1:fmEnd], []byte("\n")), &fm); err != nil {
		return noteFrontmatter{}, content
	}
	return fm, bytes.Join(lines[fmEnd+1:], []byte("\n"))
}

func titleFromFilename(filename string) string {
	name := strings.TrimSuffix(filename, ".md")

	// Strip leading date pattern (e.g. "2026-02-14-")
	if loc := datePattern.FindStringIndex(name); loc != nil && loc[0] == 0 {
		after := strings.TrimPrefix(name[loc[1]:], "-")
		if after != "" {
			name = after
		}
	}

	name = strings.ReplaceAll(name, "-", " ")
	name = strings.ReplaceAll(name, "_", " ")

	if name == "" {
		return "Note"
	}
	return name
}
