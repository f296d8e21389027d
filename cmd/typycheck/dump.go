package main

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/you-not-fish/typycheck/internal/config"
	"github.com/you-not-fish/typycheck/internal/types"
)

// contextDump is the structured form of a checked file's symbol table.
type contextDump struct {
	File string    `json:"file" yaml:"file"`
	Vars []varDump `json:"vars" yaml:"vars"`
}

// varDump lists Types in the fixed type order, so two runs that saw the
// same set in a different order produce the same document.
type varDump struct {
	Name  string   `json:"name" yaml:"name"`
	Types []string `json:"types" yaml:"types,flow"`
	Pos   string   `json:"pos" yaml:"pos"`
}

func newContextDump(filename string, ctx *types.Context) *contextDump {
	d := &contextDump{File: filename, Vars: []varDump{}}
	for _, v := range ctx.Vars() {
		d.Vars = append(d.Vars, varDump{
			Name:  v.Name(),
			Types: sortedStrings(v.Types()),
			Pos:   v.Pos().String(),
		})
	}
	return d
}

func sortedStrings(set *types.TypeSet) []string {
	sorted := set.Sorted()
	out := make([]string, len(sorted))
	for i, t := range sorted {
		out[i] = t.String()
	}
	return out
}

// writeDump writes ctx to w in the configured format.
func writeDump(w io.Writer, filename string, ctx *types.Context, opts *options) error {
	switch opts.dump {
	case config.DumpJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(newContextDump(filename, ctx))

	case config.DumpYAML:
		if opts.multi {
			if _, err := io.WriteString(w, "---\n"); err != nil {
				return err
			}
		}
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(newContextDump(filename, ctx)); err != nil {
			return err
		}
		return enc.Close()

	default:
		if opts.multi {
			if _, err := fmt.Fprintf(w, "# %s\n", filename); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, ctx.String())
		return err
	}
}
