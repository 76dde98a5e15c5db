// Package tui is an interactive terminal explorer: the query in the input
// field is re-evaluated against the loaded document on every keystroke.
package tui

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/valentin001-77/jsonpath"
)

type Explorer struct {
	app      *tview.Application
	input    *tview.InputField
	results  *tview.TextView
	status   *tview.TextView
	document any

	pathsOnly bool
	lastQuery string
}

func New(document any) *Explorer {
	e := &Explorer{
		app:      tview.NewApplication(),
		input:    tview.NewInputField(),
		results:  tview.NewTextView(),
		status:   tview.NewTextView(),
		document: document,
	}

	e.input.
		SetLabel("query> ").
		SetText("$").
		SetChangedFunc(e.evaluate)

	e.results.
		SetScrollable(true).
		SetBorder(true).
		SetTitle(" matches ")

	e.status.SetDynamicColors(true)

	layout := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(e.input, 1, 0, true).
		AddItem(e.results, 0, 1, false).
		AddItem(e.status, 1, 0, false)

	e.app.
		SetRoot(layout, true).
		SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
			switch event.Key() {
			case tcell.KeyEscape, tcell.KeyCtrlC:
				e.app.Stop()
				return nil
			case tcell.KeyCtrlP:
				e.pathsOnly = !e.pathsOnly
				e.evaluate(e.lastQuery)
				return nil
			}
			return event
		})

	return e
}

// Run blocks until the user exits with Esc or Ctrl+C.
func (e *Explorer) Run() error {
	e.evaluate("$")
	return e.app.Run()
}

func (e *Explorer) evaluate(query string) {
	e.lastQuery = query

	q, err := jsonpath.Parse(query)
	if err != nil {
		e.showError(err)
		return
	}

	nodes, err := q.Select(e.document)
	if err != nil {
		e.showError(err)
		return
	}

	var b strings.Builder
	for _, node := range nodes {
		if e.pathsOnly {
			fmt.Fprintf(&b, "%s\n", node.Path)
			continue
		}
		fmt.Fprintf(&b, "%s  %s\n", node.Path, renderValue(node.Value))
	}

	e.results.SetText(b.String())
	e.status.SetText(fmt.Sprintf("[green]%d match(es)[-]  Ctrl+P paths  Esc quit", len(nodes)))
}

func (e *Explorer) showError(err error) {
	e.results.SetText("")
	e.status.SetText(fmt.Sprintf("[red]%v[-]", err))
}

func renderValue(value any) string {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Sprintf("%v", value)
	}
	if len(data) > 120 {
		data = append(data[:117], "..."...)
	}
	return string(data)
}
