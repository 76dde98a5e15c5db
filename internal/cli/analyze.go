package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/valentin001-77/jsonpath"
)

func newAnalyzeCommand() *cli.Command {
	return &cli.Command{
		Name:      "analyze",
		Usage:     "Report structure and complexity of a query without evaluating it",
		ArgsUsage: "<jsonpath>",
		Flags:     []cli.Flag{formatFlag},
		Action:    analyzeAction,
	}
}

func analyzeAction(_ context.Context, cmd *cli.Command) error {
	if cmd.Args().Len() != 1 {
		return fmt.Errorf("expected 1 argument: query")
	}

	analysis, err := jsonpath.Analyze(cmd.Args().First())
	if err != nil {
		return err
	}

	if cmd.String(formatFlag.Name) == "json" {
		return printJSON(analysis)
	}

	fmt.Fprintf(os.Stdout, "query:          %s\n", analysis.Query)
	fmt.Fprintf(os.Stdout, "complexity:     %s\n", analysis.Complexity)
	fmt.Fprintf(os.Stdout, "segments:       %d\n", analysis.Segments)
	fmt.Fprintf(os.Stdout, "filters:        %d\n", analysis.Filters)
	fmt.Fprintf(os.Stdout, "function calls: %d\n", analysis.FunctionCalls)
	fmt.Fprintf(os.Stdout, "nesting depth:  %d\n", analysis.NestingDepth)
	fmt.Fprintf(os.Stdout, "features:       filters=%v functions=%v slices=%v descendants=%v wildcards=%v\n",
		analysis.Features.Filters, analysis.Features.Functions, analysis.Features.Slices,
		analysis.Features.Descendants, analysis.Features.Wildcards)
	return nil
}
