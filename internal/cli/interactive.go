package cli

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/valentin001-77/jsonpath/internal/document"
	"github.com/valentin001-77/jsonpath/internal/tui"
)

func newInteractiveCommand() *cli.Command {
	return &cli.Command{
		Name:      "interactive",
		Usage:     "Explore a document with live query evaluation",
		ArgsUsage: "<file>",
		Flags:     []cli.Flag{inputFlag},
		Action:    interactiveAction,
	}
}

func interactiveAction(_ context.Context, cmd *cli.Command) error {
	if cmd.Args().Len() != 1 {
		return fmt.Errorf("expected 1 argument: document file")
	}

	doc, err := document.Load(cmd.Args().First(), cmd.String(inputFlag.Name))
	if err != nil {
		return err
	}

	return tui.New(doc).Run()
}
