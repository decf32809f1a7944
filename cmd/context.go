package cmd

import (
	"fmt"

	"github.com/automsg/automsg/config"
	"github.com/automsg/automsg/internal/git"
	"github.com/automsg/automsg/internal/llm"
	"github.com/automsg/automsg/internal/prompt"
	"github.com/urfave/cli/v2"
)

// CommandContext holds common state for command execution: the loaded
// configuration, the opened repository, and the request composer built from
// the configuration.
type CommandContext struct {
	Config   *config.Config
	RepoPath string
	Repo     *git.Repository
	Composer *prompt.Composer
}

// NewCommandContext creates a context from CLI flags. It loads
// configuration and opens the repository; generation client construction is
// deferred until a command actually needs the remote call.
func NewCommandContext(c *cli.Context) (*CommandContext, error) {
	cfg, err := config.LoadConfig(c.String("config"))
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	repoPath := c.String("repo")
	repo, err := git.Open(git.Options{
		Path:    repoPath,
		Include: cfg.Filters.Include,
		Exclude: cfg.Filters.Exclude,
	})
	if err != nil {
		return nil, err
	}

	return &CommandContext{
		Config:   cfg,
		RepoPath: repoPath,
		Repo:     repo,
		Composer: prompt.NewComposer(cfg.Language, cfg.Prompt),
	}, nil
}

// GenerationClient validates the LLM configuration and builds the client.
func (ctx *CommandContext) GenerationClient() (*llm.Client, error) {
	if err := ctx.Config.Validate(); err != nil {
		return nil, err
	}
	return llm.NewClient(llm.Options{
		Endpoint: ctx.Config.LLM.BaseURL,
		APIKey:   ctx.Config.LLM.APIKey,
		Model:    ctx.Config.LLM.Model,
	})
}
