package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/The-Foxer/gacha-party/internal/behavior"
	"github.com/The-Foxer/gacha-party/internal/catalog"
	"github.com/The-Foxer/gacha-party/internal/jsonv"
)

func (a *app) namesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "names",
		Short: "List behaviour names in dataset order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.loadStore()
			if err != nil {
				return err
			}
			for _, name := range s.Names() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}

func (a *app) stagesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stages <behavior>",
		Short: "List the stages of one behaviour",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.loadStore()
			if err != nil {
				return err
			}
			stages, ok := s.ByName(args[0])
			if !ok {
				return fmt.Errorf("%w: %q", behavior.ErrBehaviorNotFound, args[0])
			}
			for _, stage := range stages.Keys() {
				fmt.Fprintln(cmd.OutOrStdout(), stage)
			}
			return nil
		},
	}
}

func (a *app) parseCmd() *cobra.Command {
	var resolve bool
	cmd := &cobra.Command{
		Use:   "parse <behavior> [stage...]",
		Short: "Print normalized behaviour trees as JSON",
		Long: `Normalizes the given stages of a behaviour (all stages when none are
named) and prints a JSON object of stage name to node list.

With --resolve every node also carries its display label and a resolved
"display" value for its param.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.loadStore()
			if err != nil {
				return err
			}
			name, stages := args[0], args[1:]
			if len(stages) == 0 {
				all, ok := s.ByName(name)
				if !ok {
					return fmt.Errorf("%w: %q", behavior.ErrBehaviorNotFound, name)
				}
				stages = all.Keys()
			}

			out := jsonv.NewObject()
			for _, stage := range stages {
				nodes, err := a.parser.ParseStage(s, name, stage)
				if err != nil && nodes == nil {
					return err
				}
				out.Set(stage, nodeArray(nodes, a.catalogIf(resolve)))
			}
			return writePretty(cmd, out)
		},
	}
	cmd.Flags().BoolVar(&resolve, "resolve", false, "add labels and resolved param values")
	return cmd
}

func (a *app) describeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "describe [method...]",
		Short: "Show display labels for methods (all known when none given)",
		RunE: func(cmd *cobra.Command, args []string) error {
			methods := args
			if len(methods) == 0 {
				methods = a.catalog.Methods()
			}
			for _, m := range methods {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", m, a.catalog.Describe(m))
			}
			return nil
		},
	}
}

func (a *app) catalogIf(on bool) *catalog.Catalog {
	if on {
		return a.catalog
	}
	return nil
}

// nodeArray renders nodes; with a catalog each node also gets "label" and
// "display".
func nodeArray(nodes []behavior.Node, c *catalog.Catalog) jsonv.Array {
	out := make(jsonv.Array, len(nodes))
	for i, n := range nodes {
		v := n.ToValue()
		if c != nil {
			v.Set("label", jsonv.String(c.Describe(n.Method)))
			if n.Param != nil {
				v.Set("display", behavior.ResolveParam(n.Param))
			}
		}
		out[i] = v
	}
	return out
}
