package cmd

import (
	"fmt"

	"github.com/automsg/automsg/internal/output"
	"github.com/urfave/cli/v2"
)

// TagCmd returns the tag command.
func TagCmd() *cli.Command {
	return &cli.Command{
		Name:      "tag",
		Usage:     "Generate a tag message and optionally create the tag",
		ArgsUsage: "<name>",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "annotated",
				Usage: "Create an annotated tag with the generated message",
			},
			&cli.StringFlag{
				Name:  "prompt",
				Usage: "Custom instruction for message generation",
			},
			&cli.StringFlag{
				Name:  "ref",
				Usage: "Reference to tag (commit SHA or branch)",
				Value: "HEAD",
			},
		},
		Action: tagAction,
	}
}

func tagAction(c *cli.Context) error {
	name := c.Args().First()
	if name == "" {
		return fmt.Errorf("tag name is required")
	}

	ctx, err := NewCommandContext(c)
	if err != nil {
		return err
	}

	commit, err := ctx.Repo.ResolveCommit(c.String("ref"))
	if err != nil {
		return err
	}

	client, err := ctx.GenerationClient()
	if err != nil {
		return err
	}

	req := ctx.Composer.TagMessage(name, commit, c.String("prompt"))
	message, err := client.Generate(c.Context, req)
	if err != nil {
		return err
	}

	if c.Bool("annotated") {
		if err := ctx.Repo.CreateAnnotatedTag(name, message, c.String("ref")); err != nil {
			return err
		}
		output.Successf("Annotated tag %q created successfully!", name)
		return nil
	}

	output.PrintArtifact(fmt.Sprintf("Generated tag message for %q:", name), message)
	output.Noticef("Use --annotated flag to create the tag automatically.")
	return nil
}
