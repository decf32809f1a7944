package prompt

import (
	"strings"
	"testing"

	"github.com/automsg/automsg/internal/git"
)

var testFiles = []git.StagedFile{
	{Path: "internal/widget/widget.go", Status: git.StatusAdded},
	{Path: "README.md", Status: git.StatusModified},
}

var testCommits = []git.CommitRecord{
	{
		SHA:          "0123456789abcdef0123456789abcdef01234567",
		Message:      "feat: add widget\n\nlonger body\n",
		Author:       "Alice",
		Date:         "2025-01-02T10:00:00Z",
		FilesChanged: []string{"internal/widget/widget.go"},
	},
	{
		SHA:          "89abcdef0123456789abcdef0123456789abcdef",
		Message:      "fix: widget nil check",
		Author:       "Bob",
		Date:         "2025-01-03T10:00:00Z",
		FilesChanged: []string{"internal/widget/widget.go"},
	},
}

func TestCommitMessage(t *testing.T) {
	p := NewComposer("en-US", "Summarize the change.")

	req := p.CommitMessage(testFiles, "+added line\n", "", 72)

	if req.MaxTokens != 150 {
		t.Errorf("MaxTokens = %d, expected 150", req.MaxTokens)
	}
	if req.Temperature != 0.7 {
		t.Errorf("Temperature = %f, expected 0.7", req.Temperature)
	}
	if !strings.Contains(req.System, "type(scope): description") {
		t.Errorf("system prompt missing format contract:\n%s", req.System)
	}
	if !strings.Contains(req.System, "in English") {
		t.Errorf("system prompt missing language directive:\n%s", req.System)
	}
	if !strings.Contains(req.User, "Summarize the change.") {
		t.Errorf("user content missing configured instruction:\n%s", req.User)
	}
	if !strings.Contains(req.User, "internal/widget/widget.go (added)") {
		t.Errorf("user content missing staged file entry:\n%s", req.User)
	}
	if !strings.Contains(req.User, "README.md (modified)") {
		t.Errorf("user content missing staged file entry:\n%s", req.User)
	}
	if !strings.Contains(req.User, "+added line") {
		t.Errorf("user content missing diff text:\n%s", req.User)
	}
	if !strings.Contains(req.User, "within 72 characters") {
		t.Errorf("user content missing length advisory:\n%s", req.User)
	}
}

func TestCommitMessage_CustomInstructionOverridesDefault(t *testing.T) {
	p := NewComposer("en-US", "default instruction")

	req := p.CommitMessage(testFiles, "", "focus on the API change", 0)

	if !strings.Contains(req.User, "focus on the API change") {
		t.Errorf("user content missing custom instruction:\n%s", req.User)
	}
	if strings.Contains(req.User, "default instruction") {
		t.Errorf("custom instruction should replace the default:\n%s", req.User)
	}
	if strings.Contains(req.User, "within") {
		t.Errorf("no advisory expected when maxLength is 0:\n%s", req.User)
	}
}

func TestTagMessage(t *testing.T) {
	p := NewComposer("en-US", "")

	req := p.TagMessage("v1.2.0", testCommits[0], "")

	if req.MaxTokens != 300 {
		t.Errorf("MaxTokens = %d, expected 300", req.MaxTokens)
	}
	for _, want := range []string{
		"Tag name: v1.2.0",
		"Commit SHA: 0123456789abcdef0123456789abcdef01234567",
		"feat: add widget",
		"Author: Alice",
		"Date: 2025-01-02T10:00:00Z",
		"internal/widget/widget.go",
	} {
		if !strings.Contains(req.User, want) {
			t.Errorf("user content missing %q:\n%s", want, req.User)
		}
	}
}

func TestChangelogSummary(t *testing.T) {
	p := NewComposer("en-US", "")

	req := p.ChangelogSummary(testCommits)

	if req.MaxTokens != 500 {
		t.Errorf("MaxTokens = %d, expected 500", req.MaxTokens)
	}
	if !strings.Contains(req.User, "- 01234567: feat: add widget") {
		t.Errorf("user content missing short-SHA bullet:\n%s", req.User)
	}
	if !strings.Contains(req.User, "by Bob") {
		t.Errorf("user content missing author attribution:\n%s", req.User)
	}
}

func TestChangelogSummary_ShortSHANotPadded(t *testing.T) {
	p := NewComposer("en-US", "")

	req := p.ChangelogSummary([]git.CommitRecord{
		{SHA: "abc1234", Message: "fix: thing", Author: "Eve", Date: "2025-01-01"},
	})

	if !strings.Contains(req.User, "- abc1234: fix: thing") {
		t.Errorf("seven-char SHA must render in full:\n%s", req.User)
	}
}

func TestLanguageDirective(t *testing.T) {
	t.Run("Chinese", func(t *testing.T) {
		p := NewComposer("zh-CN", "")
		req := p.CommitMessage(testFiles, "", "", 0)
		if !strings.Contains(req.System, "中文") {
			t.Errorf("zh locale should produce the Chinese directive:\n%s", req.System)
		}
	})

	t.Run("EnglishFallback", func(t *testing.T) {
		p := NewComposer("fr-FR", "")
		req := p.CommitMessage(testFiles, "", "", 0)
		if !strings.Contains(req.System, "in English") {
			t.Errorf("non-zh locale should fall back to English:\n%s", req.System)
		}
	})
}

func TestComposerIsDeterministic(t *testing.T) {
	p := NewComposer("en-US", "instruction")

	first := p.ChangelogSummary(testCommits)
	second := p.ChangelogSummary(testCommits)
	if first != second {
		t.Error("identical inputs must produce identical requests")
	}

	c1 := p.CommitMessage(testFiles, "+x\n", "custom", 72)
	c2 := p.CommitMessage(testFiles, "+x\n", "custom", 72)
	if c1 != c2 {
		t.Error("identical inputs must produce identical requests")
	}
}
