// Package prompt turns repository facts into generation requests. It is pure
// composition: no network or filesystem access, and deterministic given its
// inputs.
package prompt

import (
	"fmt"
	"strings"

	"github.com/automsg/automsg/internal/git"
	"github.com/automsg/automsg/internal/llm"
)

// Token budgets per request shape.
const (
	commitMaxTokens    = 150
	tagMaxTokens       = 300
	changelogMaxTokens = 500

	temperature = 0.7
)

const commitSystemFormat = `You are a helpful assistant that generates concise and meaningful git commit messages.

Rules for commit messages:
1. Use the format: type(scope): description
2. Types: feat, fix, docs, style, refactor, test, chore
3. Keep the first line under 50 characters
4. Use present tense ("add" not "added")
5. Be specific about what changed
6. If there are breaking changes, add "BREAKING CHANGE:" in the body
7. %s

Focus on the actual changes shown in the diff and file list.`

const tagSystemFormat = `You are a helpful assistant that generates informative git tag messages.

Rules for tag messages:
1. Start with a brief summary of the release
2. Include key changes and improvements
3. Mention any breaking changes
4. Keep it concise but informative
5. Use bullet points for multiple changes
6. %s`

const changelogSystemFormat = `You are a helpful assistant that generates changelog summaries from git commits.

Rules for changelog:
1. Group changes by type (Features, Fixes, Improvements, etc.)
2. Use bullet points for each change
3. Include commit SHA for reference
4. Keep descriptions concise but clear
5. Sort changes by importance
6. Use markdown format
7. %s`

// Composer builds the three request shapes the tool needs. The locale and
// default instruction come from configuration; the composer never re-derives
// them.
type Composer struct {
	locale      string
	instruction string
}

// NewComposer creates a composer for the given locale tag and configured
// default instruction (may be empty).
func NewComposer(locale, defaultInstruction string) *Composer {
	return &Composer{locale: locale, instruction: defaultInstruction}
}

// CommitMessage builds the request for a commit message from the staged file
// list and diff text. A non-empty custom instruction overrides the
// configured default; maxLength > 0 adds an advisory length hint.
func (p *Composer) CommitMessage(files []git.StagedFile, diff, custom string, maxLength int) llm.Request {
	var b strings.Builder
	b.WriteString(p.effectiveInstruction(custom))
	if maxLength > 0 {
		fmt.Fprintf(&b, "\nKeep the full message within %d characters.", maxLength)
	}
	b.WriteString("\n\nFiles changed:\n")
	for _, f := range files {
		fmt.Fprintf(&b, "- %s (%s)\n", f.Path, f.Status)
	}
	b.WriteString("\nDiff:\n")
	b.WriteString(diff)

	return llm.Request{
		System:      fmt.Sprintf(commitSystemFormat, p.languageDirective("commit messages")),
		User:        b.String(),
		MaxTokens:   commitMaxTokens,
		Temperature: temperature,
	}
}

// TagMessage builds the request for an annotated tag message from the tag
// name and the resolved target commit.
func (p *Composer) TagMessage(tagName string, commit git.CommitRecord, custom string) llm.Request {
	var b strings.Builder
	b.WriteString(p.effectiveInstruction(custom))
	fmt.Fprintf(&b, "\n\nTag name: %s\n", tagName)
	fmt.Fprintf(&b, "Commit SHA: %s\n", commit.SHA)
	fmt.Fprintf(&b, "Commit message: %s\n", strings.TrimSpace(commit.Message))
	fmt.Fprintf(&b, "Author: %s\n", commit.Author)
	fmt.Fprintf(&b, "Date: %s\n", commit.Date)
	fmt.Fprintf(&b, "Files changed: %s\n", strings.Join(commit.FilesChanged, ", "))

	return llm.Request{
		System:      fmt.Sprintf(tagSystemFormat, p.languageDirective("tag messages")),
		User:        b.String(),
		MaxTokens:   tagMaxTokens,
		Temperature: temperature,
	}
}

// ChangelogSummary builds the request for a changelog section body from an
// ordered commit list.
func (p *Composer) ChangelogSummary(commits []git.CommitRecord) llm.Request {
	var b strings.Builder
	b.WriteString(p.instruction)
	b.WriteString("\n\nCommits:\n")
	for _, c := range commits {
		fmt.Fprintf(&b, "- %s: %s (%s) by %s\n",
			c.ShortSHA(), strings.TrimSpace(c.Message), c.Date, c.Author)
	}

	return llm.Request{
		System:      fmt.Sprintf(changelogSystemFormat, p.languageDirective("the changelog")),
		User:        b.String(),
		MaxTokens:   changelogMaxTokens,
		Temperature: temperature,
	}
}

// effectiveInstruction prefers a caller-supplied instruction over the
// configured default.
func (p *Composer) effectiveInstruction(custom string) string {
	if strings.TrimSpace(custom) != "" {
		return custom
	}
	return p.instruction
}

// languageDirective renders the natural-language directive for the
// configured locale. Any zh* tag selects Chinese, everything else English.
func (p *Composer) languageDirective(artifact string) string {
	if strings.HasPrefix(p.locale, "zh") {
		return "请使用中文生成内容。"
	}
	return fmt.Sprintf("Please generate %s in English.", artifact)
}
