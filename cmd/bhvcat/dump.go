package main

import (
	"sync"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/The-Foxer/gacha-party/internal/behavior"
	"github.com/The-Foxer/gacha-party/internal/jsonv"
)

type stageJob struct {
	behavior string
	stage    string
	raw      jsonv.Value
}

type dumpStats struct {
	Behaviors   int
	Stages      int
	Nodes       int
	ParseErrors int
	DepthLimits int
	BadStages   int
	ByMethod    map[string]int
}

func (a *app) dumpCmd() *cobra.Command {
	var statsOnly bool
	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Normalize every stage of every behaviour",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.loadStore()
			if err != nil {
				return err
			}

			var jobs []stageJob
			for _, name := range s.Names() {
				s.Stages(name).Each(func(stage string, raw jsonv.Value) bool {
					jobs = append(jobs, stageJob{behavior: name, stage: stage, raw: raw})
					return true
				})
			}

			st := dumpStats{Behaviors: s.Count(), Stages: len(jobs), ByMethod: map[string]int{}}
			var mu sync.Mutex
			results := make([][]behavior.Node, len(jobs))

			g, ctx := errgroup.WithContext(cmd.Context())
			g.SetLimit(a.cfg.Workers)
			for i, job := range jobs {
				i, job := i, job
				g.Go(func() error {
					if err := ctx.Err(); err != nil {
						return err
					}
					nodes, err := a.parser.Parse(job.raw)
					if err != nil {
						a.log.Debug("stage is not a node list",
							zap.String("behavior", job.behavior),
							zap.String("stage", job.stage))
					}
					results[i] = nodes

					mu.Lock()
					defer mu.Unlock()
					if err != nil {
						st.BadStages++
					}
					st.Nodes += len(nodes)
					for _, n := range nodes {
						st.ByMethod[n.Method]++
						switch n.Kind {
						case behavior.KindParseError:
							st.ParseErrors++
						case behavior.KindDepthLimit:
							st.DepthLimits++
						}
					}
					return nil
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}

			if statsOnly {
				return writePretty(cmd, a.summary(st))
			}

			out := jsonv.NewObject()
			for i, job := range jobs {
				stages, ok := out.Get(job.behavior)
				if !ok {
					stages = jsonv.NewObject()
					out.Set(job.behavior, stages)
				}
				stages.(*jsonv.Object).Set(job.stage, nodeArray(results[i], nil))
			}
			return writePretty(cmd, out)
		},
	}
	cmd.Flags().BoolVar(&statsOnly, "stats", false, "print only a per-method summary")
	return cmd
}

func (a *app) summary(st dumpStats) map[string]any {
	byMethod := map[string]any{}
	for m, c := range st.ByMethod {
		byMethod[m] = map[string]any{"count": c, "label": a.catalog.Describe(m)}
	}
	return map[string]any{
		"behaviors":    st.Behaviors,
		"stages":       st.Stages,
		"bad_stages":   st.BadStages,
		"nodes":        st.Nodes,
		"parse_errors": st.ParseErrors,
		"depth_limits": st.DepthLimits,
		"by_method":    byMethod,
	}
}
