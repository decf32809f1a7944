package git

import (
	"io"
	"strings"
	"unicode/utf8"

	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// StagedDiffText renders the index-to-worktree diff as unified-patch text.
// Each content line carries a "+", "-", or " " origin prefix. A line that is
// not valid UTF-8 degrades to an empty payload behind its prefix; the rest
// of the file and the call itself are unaffected.
func (r *Repository) StagedDiffText() (string, error) {
	files, err := r.StagedFiles()
	if err != nil {
		return "", err
	}

	var b strings.Builder
	for _, f := range files {
		oldContent := sanitizeLines(r.indexContent(f.Path))
		newContent := sanitizeLines(r.worktreeContent(f.Path))

		writeFileHeader(&b, f)
		writeLineDiff(&b, oldContent, newContent)
	}

	return b.String(), nil
}

// indexContent returns the blob content recorded in the index for a path,
// or "" when the path is untracked or unreadable.
func (r *Repository) indexContent(path string) string {
	idx, err := r.repo.Storer.Index()
	if err != nil {
		return ""
	}
	entry, err := idx.Entry(path)
	if err != nil {
		// index.ErrEntryNotFound for untracked paths
		return ""
	}
	blob, err := object.GetBlob(r.repo.Storer, entry.Hash)
	if err != nil {
		return ""
	}
	reader, err := blob.Reader()
	if err != nil {
		return ""
	}
	defer reader.Close()

	content, err := io.ReadAll(reader)
	if err != nil {
		return ""
	}
	return string(content)
}

// worktreeContent returns the working tree content for a path, or "" when
// the file is gone or unreadable.
func (r *Repository) worktreeContent(path string) string {
	w, err := r.repo.Worktree()
	if err != nil {
		return ""
	}
	file, err := w.Filesystem.Open(path)
	if err != nil {
		return ""
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return ""
	}
	return string(content)
}

// sanitizeLines blanks every line that is not valid UTF-8, keeping the line
// structure intact so the diff still accounts for it.
func sanitizeLines(text string) string {
	if utf8.ValidString(text) {
		return text
	}
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if !utf8.ValidString(line) {
			lines[i] = ""
		}
	}
	return strings.Join(lines, "\n")
}

func writeFileHeader(b *strings.Builder, f StagedFile) {
	oldName := "a/" + f.Path
	newName := "b/" + f.Path
	switch f.Status {
	case StatusAdded:
		oldName = "/dev/null"
	case StatusDeleted:
		newName = "/dev/null"
	}
	b.WriteString("--- " + oldName + "\n")
	b.WriteString("+++ " + newName + "\n")
}

// writeLineDiff renders a line-level diff of two texts with per-line origin
// prefixes.
func writeLineDiff(b *strings.Builder, oldText, newText string) {
	dmp := diffmatchpatch.New()
	c1, c2, lines := dmp.DiffLinesToChars(oldText, newText)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(c1, c2, false), lines)

	for _, d := range diffs {
		var prefix string
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			prefix = "+"
		case diffmatchpatch.DiffDelete:
			prefix = "-"
		default:
			prefix = " "
		}

		text := d.Text
		for len(text) > 0 {
			nl := strings.IndexByte(text, '\n')
			var line string
			if nl == -1 {
				line, text = text+"\n", ""
			} else {
				line, text = text[:nl+1], text[nl+1:]
			}
			b.WriteString(prefix)
			b.WriteString(line)
		}
	}
}
