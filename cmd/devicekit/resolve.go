package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/devicekit/pkg/views"
)

// resolution reports which templates a query resolved to.
type resolution struct {
	Query     resolvedQuery      `json:"query" yaml:"query"`
	Templates []resolvedTemplate `json:"templates" yaml:"templates"`
}

type resolvedQuery struct {
	Prefix  string   `json:"prefix,omitempty" yaml:"prefix,omitempty"`
	Name    string   `json:"name" yaml:"name"`
	Format  string   `json:"format" yaml:"format"`
	Partial bool     `json:"partial,omitempty" yaml:"partial,omitempty"`
	Locals  []string `json:"locals,omitempty" yaml:"locals,omitempty"`
}

type resolvedTemplate struct {
	Identifier  string    `json:"identifier" yaml:"identifier"`
	VirtualPath string    `json:"virtual_path" yaml:"virtual_path"`
	Format      string    `json:"format" yaml:"format"`
	Fallback    bool      `json:"fallback" yaml:"fallback"`
	Kind        string    `json:"kind" yaml:"kind"`
	UpdatedAt   time.Time `json:"updated_at" yaml:"updated_at"`
}

func describe(q views.Query, templates []*views.Template) resolution {
	res := resolution{
		Query: resolvedQuery{
			Prefix:  q.Prefix,
			Name:    q.Name,
			Format:  q.Format,
			Partial: q.Partial,
			Locals:  q.Locals,
		},
		Templates: make([]resolvedTemplate, 0, len(templates)),
	}
	for _, t := range templates {
		kind := "html/template"
		if t.Component != nil {
			kind = "templ"
		}
		res.Templates = append(res.Templates, resolvedTemplate{
			Identifier:  t.Identifier,
			VirtualPath: t.VirtualPath,
			Format:      t.Format,
			Fallback:    t.Format != q.Format,
			Kind:        kind,
			UpdatedAt:   t.UpdatedAt,
		})
	}
	return res
}

func newResolveCmd() *cobra.Command {
	var (
		format  string
		partial bool
		locals  []string
		output  string
	)

	cmd := &cobra.Command{
		Use:   "resolve <prefix/name>",
		Short: "Show which templates a view resolves to for a format",
		Example: `  devicekit resolve home/index --format mobile
  devicekit resolve shared/view_switch --partial --output yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSettings()
			if err != nil {
				return err
			}
			lookup, err := newLookup(cmd.Context(), s)
			if err != nil {
				return err
			}

			q := resolveQuery(args[0], format, partial, locals)
			templates, err := views.NewResolver(lookup, views.WithDefaultFormat(s.Views.DefaultFormat)).Resolve(cmd.Context(), q)
			if err != nil {
				return err
			}
			return writeResolution(cmd.OutOrStdout(), output, describe(q, templates))
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "html", "format to resolve: html, mobile or tablet")
	cmd.Flags().BoolVar(&partial, "partial", false, "resolve a partial (leading underscore)")
	cmd.Flags().StringSliceVar(&locals, "locals", nil, "local names passed to the partial")
	cmd.Flags().StringVarP(&output, "output", "o", "text", "output format: text, json or yaml")
	return cmd
}

func writeResolution(w io.Writer, output string, res resolution) error {
	switch strings.ToLower(output) {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(res); err != nil {
			return err
		}
		return enc.Close()
	case "text":
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		_, _ = fmt.Fprintln(tw, "IDENTIFIER\tFORMAT\tKIND\tFALLBACK")
		for _, t := range res.Templates {
			_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%t\n", t.Identifier, t.Format, t.Kind, t.Fallback)
		}
		return tw.Flush()
	default:
		return fmt.Errorf("unknown output format %q", output)
	}
}
