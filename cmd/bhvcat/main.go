package main

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/The-Foxer/gacha-party/internal/behavior"
	"github.com/The-Foxer/gacha-party/internal/catalog"
	"github.com/The-Foxer/gacha-party/internal/config"
	"github.com/The-Foxer/gacha-party/internal/logging"
)

type app struct {
	cfgPath  string
	dataPath string
	maxDepth int
	workers  int
	verbose  bool

	cfg     *config.Config
	log     *zap.Logger
	catalog *catalog.Catalog
	parser  *behavior.Parser
	store   *behavior.Store
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:          "bhvcat",
		Short:        "Inspect and normalize AI behaviour tree data",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
	}
	flags := root.PersistentFlags()
	flags.StringVar(&a.cfgPath, "config", "", "YAML config file")
	flags.StringVar(&a.dataPath, "data", "", "behaviour data JSON (overrides config data_file)")
	flags.IntVar(&a.maxDepth, "max-depth", behavior.DefaultMaxDepth, "deepest recursion level before a node is cut off")
	flags.IntVar(&a.workers, "workers", 8, "parallel stages for dump")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(
		a.namesCmd(),
		a.stagesCmd(),
		a.parseCmd(),
		a.describeCmd(),
		a.dumpCmd(),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.cfgPath)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("data") {
		cfg.DataFile = a.dataPath
	}
	if flags.Changed("max-depth") {
		cfg.MaxDepth = a.maxDepth
	}
	if flags.Changed("workers") {
		cfg.Workers = a.workers
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg

	if a.log, err = logging.New(cfg.LogLevel, a.verbose); err != nil {
		return err
	}
	if a.catalog, err = catalog.New(cfg.Labels); err != nil {
		return err
	}
	a.parser = behavior.NewParser(
		behavior.WithLogger(a.log.Named("parser")),
		behavior.WithMaxDepth(cfg.MaxDepth),
	)
	return nil
}

// loadStore reads the dataset once per invocation. A dataset of the wrong
// shape is reported and the command continues with no behaviours.
func (a *app) loadStore() (*behavior.Store, error) {
	if a.store != nil {
		return a.store, nil
	}
	s, err := behavior.LoadStoreFile(a.cfg.DataFile, behavior.WithLogger(a.log.Named("store")))
	if s == nil {
		return nil, err
	}
	if err != nil {
		a.log.Warn("continuing with empty dataset", zap.String("file", a.cfg.DataFile), zap.Error(err))
	}
	a.store = s
	return s, nil
}

// writePretty prints v as indented JSON. HTML characters stay literal since
// params hold expressions such as "hp<0.3".
func writePretty(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
