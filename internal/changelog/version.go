package changelog

import (
	"strings"
	"unicode"

	"github.com/automsg/automsg/internal/git"
)

// DetectVersion scans commit messages for a version label. This is a
// heuristic, not semantic-version computation: it looks for the token
// "version" or "release" followed by a v-prefixed token, and otherwise falls
// back to a label derived from conventional-commit prefixes. Existing tags
// are never inspected.
func DetectVersion(commits []git.CommitRecord) string {
	version := "Unreleased"

	for _, c := range commits {
		message := strings.ToLower(c.Message)
		if !strings.Contains(message, "version") && !strings.Contains(message, "release") {
			continue
		}

		words := strings.Fields(message)
		for i, word := range words {
			if !strings.Contains(word, "version") && !strings.Contains(word, "release") {
				continue
			}
			if i+1 >= len(words) {
				continue
			}
			next := words[i+1]
			if strings.HasPrefix(next, "v") && len(next) > 1 {
				version = strings.TrimFunc(next, func(r rune) bool {
					return !unicode.IsLetter(r) && !unicode.IsDigit(r)
				})
				break
			}
		}
	}

	if version != "Unreleased" && version != "" {
		return version
	}

	// No explicit label anywhere; derive one from the commit types. A
	// feature bumps the minor level, anything else lands on the patch
	// fallback.
	for _, c := range commits {
		if strings.HasPrefix(strings.ToLower(c.Message), "feat") {
			return "0.1.0"
		}
	}
	return "0.0.1"
}
