// Command keynames prints the key name table: every name the table can
// produce with its portable code. Output is aligned text on a terminal and
// YAML otherwise.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/mattn/go-isatty"
	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/keyway/key"
)

var (
	format   = flag.String("format", "auto", "Output format: auto, text, yaml")
	baseOnly = flag.Bool("base", false, "Only list base entries with their modifier policy")
)

type row struct {
	Name   string `yaml:"name"`
	Code   string `yaml:"code"`
	Policy string `yaml:"policy,omitempty"`
}

var policyNames = map[key.Policy]string{
	key.PolicyAll:      "all",
	key.PolicyBaseOnly: "base-only",
	key.PolicyNoShift:  "no-shift",
}

func main() {
	flag.Parse()

	rows := collect(key.Default(), *baseOnly)

	f := *format
	if f == "auto" {
		f = "yaml"
		if isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()) {
			f = "text"
		}
	}

	var err error
	switch f {
	case "text":
		err = writeText(os.Stdout, rows)
	case "yaml":
		err = writeYAML(os.Stdout, rows)
	default:
		err = fmt.Errorf("unknown format %q", f)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "keynames: %v\n", err)
		os.Exit(1)
	}
}

func collect(t *key.Table, base bool) []row {
	var rows []row
	if base {
		for _, e := range t.Entries() {
			rows = append(rows, row{
				Name:   e.Name,
				Code:   fmt.Sprintf("0x%08X", uint32(e.Code)),
				Policy: policyNames[e.Policy],
			})
		}
		return rows
	}
	t.ForEachDefined(func(name string, c key.Code) {
		rows = append(rows, row{Name: name, Code: fmt.Sprintf("0x%08X", uint32(c))})
	})
	return rows
}

func writeText(w io.Writer, rows []row) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, r := range rows {
		if r.Policy != "" {
			fmt.Fprintf(tw, "%s\t%s\t%s\n", r.Name, r.Code, r.Policy)
		} else {
			fmt.Fprintf(tw, "%s\t%s\n", r.Name, r.Code)
		}
	}
	return tw.Flush()
}

func writeYAML(w io.Writer, rows []row) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(rows); err != nil {
		return err
	}
	return enc.Close()
}
