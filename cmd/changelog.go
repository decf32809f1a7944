package cmd

import (
	"time"

	"github.com/automsg/automsg/internal/changelog"
	"github.com/automsg/automsg/internal/git"
	"github.com/automsg/automsg/internal/output"
	"github.com/urfave/cli/v2"
)

// ChangelogCmd returns the changelog command.
func ChangelogCmd() *cli.Command {
	return &cli.Command{
		Name:  "changelog",
		Usage: "Generate a changelog entry for recent commits",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "commits",
				Usage: "Number of recent commits to include",
				Value: 10,
			},
			&cli.StringFlag{
				Name:  "range",
				Usage: "Commit range to include (e.g. v1.0.0..v1.1.0)",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Changelog file path (default: print to stdout)",
			},
			&cli.BoolFlag{
				Name:  "append",
				Usage: "Insert into an existing changelog instead of replacing it",
			},
			&cli.BoolFlag{
				Name:  "no-llm",
				Usage: "Assemble the entry from commit metadata without a generation call",
			},
		},
		Action: changelogAction,
	}
}

func changelogAction(c *cli.Context) error {
	ctx, err := NewCommandContext(c)
	if err != nil {
		return err
	}

	var commits []git.CommitRecord
	if rangeExpr := c.String("range"); rangeExpr != "" {
		commits, err = ctx.Repo.CommitsInRange(rangeExpr)
	} else {
		commits, err = ctx.Repo.RecentCommits(c.Int("commits"))
	}
	if err != nil {
		return err
	}
	if len(commits) == 0 {
		output.Noticef("No commits found in the specified range.")
		return nil
	}

	var body string
	if c.Bool("no-llm") {
		body = changelog.GroupedBody(commits)
	} else {
		client, err := ctx.GenerationClient()
		if err != nil {
			return err
		}
		body, err = client.Generate(c.Context, ctx.Composer.ChangelogSummary(commits))
		if err != nil {
			return err
		}
	}

	section := changelog.Section{
		Version: changelog.DetectVersion(commits),
		Date:    time.Now().Format("2006-01-02"),
		Body:    body,
	}

	path := c.String("output")
	if path == "" {
		output.PrintArtifact("Generated changelog:", section.Render())
		return nil
	}

	var existing string
	if c.Bool("append") {
		existing, err = changelog.ReadDocument(path)
		if err != nil {
			return err
		}
	}

	merged := changelog.MergeSection(existing, section, c.Bool("append"))
	if err := changelog.WriteDocument(path, merged); err != nil {
		return err
	}

	output.Successf("Changelog written to %s", path)
	return nil
}
