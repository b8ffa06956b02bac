package commands

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"roeval/internal/history"
	"roeval/internal/roevaluate"
	"roeval/lib/rdfns"

	"github.com/jedib0t/go-pretty/v6/table"
)

// printResponse writes a heading describing res followed by its body verbatim.
func printResponse(w io.Writer, res roevaluate.Response) {
	fmt.Fprintf(w, "==== %s: %s %s (%d %s) ====\n", res.Step, res.Method, res.URL, res.StatusCode, res.ContentType)
	w.Write(res.Body)
	if len(res.Body) > 0 && res.Body[len(res.Body)-1] != '\n' {
		fmt.Fprintln(w)
	}
	fmt.Fprintln(w)
}

func renderResponses(w io.Writer, responses []roevaluate.Response) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Step", "Request", "Status", "Content-Type", "Bytes"})
	for _, res := range responses {
		t.AppendRow(table.Row{
			res.Step,
			fmt.Sprintf("%s %s", res.Method, res.URL),
			res.StatusCode,
			res.ContentType,
			len(res.Body),
		})
	}
	t.SetStyle(table.StyleRounded)
	t.Render()
}

// renderLinks prints the union of the Link headers of responses with their
// relation types compacted to prefixed names.
func renderLinks(w io.Writer, responses []roevaluate.Response) {
	links := map[string]string{}
	for _, res := range responses {
		for rel, target := range res.Links {
			links[rel] = target
		}
	}
	if len(links) == 0 {
		return
	}

	rels := make([]string, 0, len(links))
	for rel := range links {
		rels = append(rels, rel)
	}
	sort.Strings(rels)

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Rel", "Target"})
	for _, rel := range rels {
		t.AppendRow(table.Row{rdfns.Compact(rel), links[rel]})
	}
	t.SetStyle(table.StyleRounded)
	t.Render()
}

func renderHistory(w io.Writer, runs []history.Run) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"ID", "Started", "RO", "Minim", "Purpose", "Result"})
	for _, run := range runs {
		result := fmt.Sprintf("ok (%d turtle, %d rdf/xml bytes)", run.TurtleBytes, run.RDFXMLBytes)
		if !run.Succeeded() {
			result = "failed: " + run.Error
		}
		t.AppendRow(table.Row{
			run.ID,
			run.StartedAt.Local().Format("2006-01-02 15:04:05"),
			run.RO,
			run.Minim,
			run.Purpose,
			result,
		})
	}
	t.SetStyle(table.StyleRounded)
	t.Render()
}

func renderPrefixes(w io.Writer, prefixes []rdfns.Prefix) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Prefix", "Namespace"})
	for _, p := range prefixes {
		t.AppendRow(table.Row{p.Name, p.Namespace})
	}
	t.SetStyle(table.StyleRounded)
	t.Render()
}

// newRun converts the outcome of an evaluation into a history entry.
func newRun(service string, eval roevaluate.Evaluation, err error) history.Run {
	run := history.Run{
		Service:       service,
		RO:            eval.Params.RO,
		Minim:         eval.Params.Minim,
		Purpose:       eval.Params.Purpose,
		Template:      eval.Template,
		EvaluationURI: eval.EvaluationURI,
		TurtleBytes:   len(eval.Turtle.Body),
		RDFXMLBytes:   len(eval.RDFXML.Body),
	}
	if err != nil {
		run.Error = strings.TrimSpace(err.Error())
	}
	return run
}
