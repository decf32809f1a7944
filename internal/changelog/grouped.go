package changelog

import (
	"fmt"
	"strings"

	"github.com/automsg/automsg/internal/git"
)

// GroupedBody assembles a changelog section body purely from commit
// metadata, with no remote call. Commits are bucketed by their
// conventional-commit prefix and rendered as markdown bullets.
func GroupedBody(commits []git.CommitRecord) string {
	var features, fixes, docs, others []string

	for _, c := range commits {
		bullet := fmt.Sprintf("- %s (%s) - %s", c.ShortSHA(), summaryLine(c.Message), c.Author)

		message := strings.ToLower(strings.TrimSpace(c.Message))
		switch {
		case strings.HasPrefix(message, "feat"):
			features = append(features, bullet)
		case strings.HasPrefix(message, "fix"):
			fixes = append(fixes, bullet)
		case strings.HasPrefix(message, "docs"):
			docs = append(docs, bullet)
		default:
			others = append(others, bullet)
		}
	}

	var b strings.Builder
	writeGroup(&b, "Added", features)
	writeGroup(&b, "Fixed", fixes)
	writeGroup(&b, "Documentation", docs)
	writeGroup(&b, "Other Changes", others)

	return strings.TrimRight(b.String(), "\n")
}

func writeGroup(b *strings.Builder, title string, bullets []string) {
	if len(bullets) == 0 {
		return
	}
	fmt.Fprintf(b, "### %s\n\n", title)
	b.WriteString(strings.Join(bullets, "\n"))
	b.WriteString("\n\n")
}

// summaryLine reduces a commit message to its first line.
func summaryLine(message string) string {
	message = strings.TrimSpace(message)
	if idx := strings.IndexByte(message, '\n'); idx != -1 {
		message = message[:idx]
	}
	return message
}
