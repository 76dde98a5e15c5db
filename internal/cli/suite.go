package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"

	"github.com/valentin001-77/jsonpath/internal/document"
	"github.com/valentin001-77/jsonpath/internal/ratelimit"
	"github.com/valentin001-77/jsonpath/internal/suite"
)

var (
	documentFlag = &cli.StringFlag{
		Name:  "document",
		Usage: "document file, overriding the suite's own reference",
	}
	repeatFlag = &cli.IntFlag{
		Name:  "repeat",
		Usage: "number of evaluation iterations",
		Value: 1,
	}
	rateLimitFlag = &cli.FloatFlag{
		Name:  "rate-limit",
		Usage: "maximum iterations per second, 0 for unlimited",
	}
)

func newSuiteCommand() *cli.Command {
	return &cli.Command{
		Name:      "suite",
		Usage:     "Run a YAML query suite against a document",
		ArgsUsage: "<suite.yaml>",
		Flags:     []cli.Flag{documentFlag, repeatFlag, rateLimitFlag, formatFlag, inputFlag},
		Action:    suiteAction,
	}
}

func suiteAction(ctx context.Context, cmd *cli.Command) error {
	if cmd.Args().Len() != 1 {
		return fmt.Errorf("expected 1 argument: suite file")
	}

	suitePath := cmd.Args().First()
	s, err := suite.LoadFile(suitePath)
	if err != nil {
		return err
	}

	documentPath := cmd.String(documentFlag.Name)
	if documentPath == "" {
		if s.Document == "" {
			return fmt.Errorf("suite names no document; pass --document")
		}
		documentPath = filepath.Join(filepath.Dir(suitePath), s.Document)
	}

	doc, err := document.Load(documentPath, cmd.String(inputFlag.Name))
	if err != nil {
		return err
	}

	runner := suite.NewRunner(ratelimit.New(cmd.Float(rateLimitFlag.Name)))
	report, err := runner.Run(ctx, s, doc, int(cmd.Int(repeatFlag.Name)))
	if err != nil {
		return err
	}

	if cmd.String(formatFlag.Name) == "json" {
		err = suite.FormatJSON(os.Stdout, report)
	} else {
		err = suite.FormatText(os.Stdout, report)
	}
	if err != nil {
		return err
	}

	if report.Failed > 0 {
		return fmt.Errorf("%d of %d cases failed", report.Failed, len(report.Results))
	}
	return nil
}
