// Package cli wires the jp command tree.
package cli

import "github.com/urfave/cli/v3"

// New builds the root command.
func New() *cli.Command {
	return &cli.Command{
		Name:  "jp",
		Usage: "Query JSON and YAML documents with JSONPath",
		Commands: []*cli.Command{
			newQueryCommand(),
			newAnalyzeCommand(),
			newSuiteCommand(),
			newInteractiveCommand(),
		},
	}
}
