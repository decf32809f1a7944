package cmd

import (
	"github.com/automsg/automsg/internal/output"
	"github.com/urfave/cli/v2"
)

// CommitCmd returns the commit command.
func CommitCmd() *cli.Command {
	return &cli.Command{
		Name:  "commit",
		Usage: "Generate a commit message for staged changes",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "commit",
				Usage: "Create the commit with the generated message",
			},
			&cli.StringFlag{
				Name:  "prompt",
				Usage: "Custom instruction for message generation",
			},
			&cli.IntFlag{
				Name:  "max-length",
				Usage: "Advisory maximum length for the generated message",
				Value: 72,
			},
		},
		Action: commitAction,
	}
}

func commitAction(c *cli.Context) error {
	ctx, err := NewCommandContext(c)
	if err != nil {
		return err
	}

	files, err := ctx.Repo.StagedFiles()
	if err != nil {
		return err
	}
	if len(files) == 0 {
		// Guidance state, not an error: never issue a generation
		// request with empty content.
		output.Noticef("No staged changes found. Please stage your changes first.")
		return nil
	}

	diff, err := ctx.Repo.StagedDiffText()
	if err != nil {
		return err
	}

	client, err := ctx.GenerationClient()
	if err != nil {
		return err
	}

	req := ctx.Composer.CommitMessage(files, diff, c.String("prompt"), c.Int("max-length"))
	message, err := client.Generate(c.Context, req)
	if err != nil {
		return err
	}

	if c.Bool("commit") {
		if err := ctx.Repo.CreateCommit(message); err != nil {
			return err
		}
		output.Successf("Commit created successfully!")
		return nil
	}

	output.PrintArtifact("Generated commit message:", message)
	output.Noticef("Use --commit flag to create the commit automatically.")
	return nil
}
