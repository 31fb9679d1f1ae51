package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"mercator-hq/switchyard/pkg/cli"
	"mercator-hq/switchyard/pkg/registry"
	"mercator-hq/switchyard/pkg/routing"
)

var routesFlags struct {
	match  string
	format string
}

var routesCmd = &cobra.Command{
	Use:   "routes",
	Short: "Print the service table",
	Long: `Print the configured services in match order.

With --match, resolve a request path the way the gateway does and print the
service it would be routed to.

Examples:
  switchyard routes
  switchyard routes --format json
  switchyard routes --match /llama/v1/chat/completions`,
	RunE: runRoutes,
}

func init() {
	rootCmd.AddCommand(routesCmd)

	routesCmd.Flags().StringVar(&routesFlags.match, "match", "", "resolve this request path")
	routesCmd.Flags().StringVar(&routesFlags.format, "format", "text", "output format: text, json, csv")
}

// routeRecord is the JSON form of one service table row.
type routeRecord struct {
	Order   int    `json:"order"`
	Name    string `json:"name"`
	Path    string `json:"path"`
	Backend string `json:"backend"`
	Target  string `json:"target,omitempty"`
	Model   string `json:"model,omitempty"`
}

func runRoutes(cmd *cobra.Command, args []string) error {
	format, err := cli.ParseOutputFormat(routesFlags.format)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(cfgFile)
	if err != nil {
		return err
	}
	reg, err := registry.FromConfig(cfg.Services)
	if err != nil {
		return cli.WrapConfigError(cfgFile, err)
	}

	return printRoutes(cmd.OutOrStdout(), reg, routesFlags.match, format)
}

// printRoutes writes the table, or only the row matching path when path is
// set. A path that matches nothing prints "no route" and is not an error.
func printRoutes(w io.Writer, reg *registry.Registry, path string, format cli.OutputFormat) error {
	type indexed struct {
		order int
		def   registry.ServiceDefinition
	}

	var rows []indexed
	if path != "" {
		def, err := routing.New(reg).Match(path)
		if errors.Is(err, routing.ErrNoRoute) {
			_, err = fmt.Fprintf(w, "no route for %s\n", path)
			return err
		}
		if err != nil {
			return err
		}
		for i, d := range reg.Definitions() {
			if d.PathPrefix == def.PathPrefix {
				rows = append(rows, indexed{order: i, def: d})
				break
			}
		}
	} else {
		for i, d := range reg.Definitions() {
			rows = append(rows, indexed{order: i, def: d})
		}
	}

	table := &cli.Table{Headers: []string{"#", "NAME", "PATH", "BACKEND", "TARGET"}}
	records := make([]routeRecord, 0, len(rows))
	for _, r := range rows {
		target := r.def.TargetAddress
		if r.def.Backend == registry.LocalInference {
			target = r.def.Model
		}
		table.Rows = append(table.Rows, []string{
			fmt.Sprint(r.order), r.def.Name, r.def.PathPrefix, r.def.Backend.String(), target,
		})
		records = append(records, routeRecord{
			Order:   r.order,
			Name:    r.def.Name,
			Path:    r.def.PathPrefix,
			Backend: r.def.Backend.String(),
			Target:  r.def.TargetAddress,
			Model:   r.def.Model,
		})
	}
	table.Records = records

	return cli.NewFormatter(format).FormatTo(w, table)
}
