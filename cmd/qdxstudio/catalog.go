package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/qdxstudio/internal/catalog"
)

type catalogOptions struct {
	remote     bool
	jsonOutput bool
}

type displayRow struct {
	Type            catalog.DisplayType `json:"type"`
	Slots           []catalog.Slot      `json:"slots"`
	DefaultLocation catalog.Location    `json:"defaultLocation"`
}

type catalogOutput struct {
	Source   catalog.Source    `json:"source"`
	Displays []displayRow      `json:"displays"`
	Codes    catalog.CodeTable `json:"codes"`
}

func newCatalogCmd(root *rootFlags) *cobra.Command {
	opts := &catalogOptions{}

	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "List display types and the code table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newAppContext(root, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			return runCatalog(cmd, app, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.remote, "remote", false, "Fetch the code table from the QDX_*_URL endpoints")
	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "Emit JSON")

	return cmd
}

func runCatalog(cmd *cobra.Command, app *appContext, opts *catalogOptions) error {
	out := catalogOutput{Source: catalog.SourceBuiltin, Codes: catalog.Builtin()}
	if opts.remote {
		loader := catalog.NewLoader(app.Env.Endpoints, &http.Client{Timeout: app.Env.HTTPTimeout}, app.Log)
		out.Codes, out.Source = loader.Load(cmd.Context())
	}

	for _, dt := range catalog.DisplayTypes() {
		cfg := catalog.Config(string(dt))
		out.Displays = append(out.Displays, displayRow{Type: dt, Slots: cfg.Slots.List(), DefaultLocation: cfg.DefaultLocation})
	}

	if opts.jsonOutput {
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(out)
	}
	return renderCatalogTable(cmd, out)
}

func renderCatalogTable(cmd *cobra.Command, out catalogOutput) error {
	writer := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)

	fmt.Fprintln(writer, "DISPLAY\tSLOTS\tLOCATION")
	for _, d := range out.Displays {
		fmt.Fprintf(writer, "%s\t%s\t%s\n", d.Type, joinSlots(d.Slots), d.DefaultLocation)
	}
	fmt.Fprintln(writer)

	fmt.Fprintf(writer, "CODES (%s)\tCODE\tNAME\n", out.Source)
	groups := []struct {
		kind    string
		entries []catalog.CodeEntry
	}{
		{"display", out.Codes.DisplayTypes},
		{"theme", out.Codes.Themes},
		{"location", out.Codes.Locations},
		{"template", out.Codes.Templates},
	}
	for _, g := range groups {
		for _, e := range g.entries {
			fmt.Fprintf(writer, "%s\t%s\t%s\n", g.kind, e.Code, e.Name)
		}
	}

	return writer.Flush()
}

func joinSlots(slots []catalog.Slot) string {
	if len(slots) == 0 {
		return "-"
	}
	names := make([]string, len(slots))
	for i, s := range slots {
		names[i] = string(s)
	}
	return strings.Join(names, ", ")
}
