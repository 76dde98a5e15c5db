package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/valentin001-77/jsonpath"
	"github.com/valentin001-77/jsonpath/internal/document"
)

var (
	formatFlag = &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"f"},
		Usage:   "output format: text or json",
		Value:   "text",
	}
	inputFlag = &cli.StringFlag{
		Name:  "input",
		Usage: "document format: auto, json or yaml",
		Value: document.FormatAuto,
	}
	valuesFlag = &cli.BoolFlag{
		Name:  "values",
		Usage: "print matched values only",
	}
	pathsFlag = &cli.BoolFlag{
		Name:  "paths",
		Usage: "print normalized paths only",
	}
)

func newQueryCommand() *cli.Command {
	return &cli.Command{
		Name:      "query",
		Usage:     "Evaluate a JSONPath query against a document",
		ArgsUsage: "<jsonpath> <file>",
		Flags:     []cli.Flag{formatFlag, inputFlag, valuesFlag, pathsFlag},
		Action:    queryAction,
	}
}

func queryAction(_ context.Context, cmd *cli.Command) error {
	if cmd.Args().Len() != 2 {
		return fmt.Errorf("expected 2 arguments: query and document file")
	}

	q, err := jsonpath.Parse(cmd.Args().Get(0))
	if err != nil {
		return err
	}

	doc, err := document.Load(cmd.Args().Get(1), cmd.String(inputFlag.Name))
	if err != nil {
		return err
	}

	nodes, err := q.Select(doc)
	if err != nil {
		return err
	}

	return writeNodes(cmd, nodes)
}

func writeNodes(cmd *cli.Command, nodes jsonpath.Nodelist) error {
	valuesOnly := cmd.Bool(valuesFlag.Name)
	pathsOnly := cmd.Bool(pathsFlag.Name)

	if cmd.String(formatFlag.Name) == "json" {
		var payload any
		switch {
		case valuesOnly:
			payload = nodes.Values()
		case pathsOnly:
			payload = nodes.Paths()
		default:
			entries := make([]map[string]any, len(nodes))
			for i, node := range nodes {
				entries[i] = map[string]any{"path": node.Path, "value": node.Value}
			}
			payload = entries
		}
		return printJSON(payload)
	}

	for _, node := range nodes {
		switch {
		case valuesOnly:
			fmt.Fprintln(os.Stdout, renderValue(node.Value))
		case pathsOnly:
			fmt.Fprintln(os.Stdout, node.Path)
		default:
			fmt.Fprintf(os.Stdout, "%s\t%s\n", node.Path, renderValue(node.Value))
		}
	}
	return nil
}

func printJSON(payload any) error {
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(os.Stdout, string(data))
	return nil
}

func renderValue(value any) string {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Sprintf("%v", value)
	}
	return string(data)
}
