// Package changelog merges generated release sections into a structured
// changelog document and provides the deterministic fallback assembly that
// needs no remote call.
package changelog

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// ErrDocumentMerge indicates an I/O failure reading or writing the changelog
// file.
var ErrDocumentMerge = errors.New("changelog document error")

// standardHeader is the leading block written to brand-new documents.
const standardHeader = "# Changelog\n\n" +
	"All notable changes to this project will be documented in this file.\n\n" +
	"The format is based on [Keep a Changelog](https://keepachangelog.com/en/1.0.0/),\n" +
	"and this project adheres to [Semantic Versioning](https://semver.org/spec/v2.0.0.html).\n\n"

// Section is the unit merged into a document.
type Section struct {
	Version string
	Date    string // ISO date, e.g. 2025-01-01
	Body    string
}

// Render produces the markdown text of the section.
func (s Section) Render() string {
	return fmt.Sprintf("## [%s] - %s\n\n%s", s.Version, s.Date, s.Body)
}

// MergeSection merges a section into existing document contents and returns
// the new contents. No line of the input is ever dropped in append mode.
//
// With appendMode false the result is a brand-new document (standard header
// plus the section); any existing contents are discarded, so callers must
// confirm that is intended. With appendMode true the section is inserted
// immediately after the document's header block — the first blank line that
// directly follows a line starting with "#". Input without any such marker
// keeps all its lines after the new section, with no header synthesized.
func MergeSection(existing string, section Section, appendMode bool) string {
	rendered := section.Render()

	if !appendMode {
		return standardHeader + rendered
	}

	if !hasHeaderMarker(existing) {
		if existing == "" {
			return rendered
		}
		return rendered + "\n\n" + existing
	}

	lines := strings.Split(existing, "\n")

	boundary := -1
	for i, line := range lines {
		if strings.TrimSpace(line) == "" && i > 0 && strings.HasPrefix(lines[i-1], "#") {
			boundary = i
			break
		}
	}

	merged := make([]string, 0, len(lines)+1)
	if boundary == -1 {
		// Degenerate document with a title but no blank boundary; keep
		// everything and put the section at the end.
		merged = append(merged, lines...)
		merged = append(merged, rendered)
	} else {
		merged = append(merged, lines[:boundary+1]...)
		merged = append(merged, rendered)
		merged = append(merged, lines[boundary+1:]...)
	}

	return strings.Join(merged, "\n")
}

func hasHeaderMarker(contents string) bool {
	for _, line := range strings.Split(contents, "\n") {
		if strings.HasPrefix(line, "#") {
			return true
		}
	}
	return false
}

// ReadDocument reads the changelog file, returning empty contents when the
// file does not exist yet.
func ReadDocument(path string) (string, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("%w: read %s: %v", ErrDocumentMerge, path, err)
	}
	return string(data), nil
}

// WriteDocument overwrites the changelog file with fully computed contents.
// Contents are computed before any write happens, so a failure mid-merge
// never leaves a partially rewritten file.
func WriteDocument(path, contents string) error {
	if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
		return fmt.Errorf("%w: write %s: %v", ErrDocumentMerge, path, err)
	}
	return nil
}
