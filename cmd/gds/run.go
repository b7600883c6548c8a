package main

import (
	"context"
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/dd0wney/cluso-gds/pkg/catalog"
	"github.com/dd0wney/cluso-gds/pkg/logging"
	"github.com/dd0wney/cluso-gds/pkg/metrics"
	"github.com/dd0wney/cluso-gds/pkg/progress"
	"github.com/dd0wney/cluso-gds/pkg/registry"
	"github.com/dd0wney/cluso-gds/pkg/results"
	"github.com/dd0wney/cluso-gds/pkg/sink"
)

type runFlags struct {
	file       string
	configJSON string
	configFile string
	progress   bool
	format     string
	limit      int
	overwrite  bool
	spec       runSpec
}

func newRunCmd() *cobra.Command {
	var f runFlags
	cmd := &cobra.Command{
		Use:   "run [ALGORITHM]",
		Short: "Run an algorithm in stream, stats, mutate, write or estimate mode",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			spec, err := f.resolve(cmd, args)
			if err != nil {
				return err
			}
			return execute(cmd.Context(), cmd, spec, f)
		},
	}
	addGraphFlags(cmd, &f)
	fl := cmd.Flags()
	fl.StringVar(&f.file, "file", "", "YAML run file; flags override its fields")
	fl.StringVar(&f.spec.Mode, "mode", "stream", "stream, stats, mutate, write or estimate")
	fl.StringVar(&f.spec.Property, "property", "", "node or relationship property written in mutate mode")
	fl.StringVar(&f.spec.RelationshipType, "relationship-type", "", "relationship type written in mutate mode")
	fl.StringVar(&f.spec.TargetGraph, "target-graph", "", "graph name the mutated snapshot is registered under")
	fl.StringVar(&f.spec.Sink, "sink", "", "write target: file:///dir, sqlite:///path.db, postgres://..., s3://bucket/prefix")
	fl.StringVar(&f.spec.Table, "table", "", "table, file or object name in write mode (default: algorithm name)")
	fl.BoolVar(&f.spec.Compress, "compress", false, "snappy-compress file and s3 output")
	fl.BoolVar(&f.overwrite, "overwrite", false, "replace an existing table, file or object")
	fl.BoolVar(&f.progress, "progress", false, "show a live progress view on stderr")
	fl.StringVar(&f.format, "format", "table", "stream output format: table or json")
	fl.IntVar(&f.limit, "limit", 50, "maximum rows printed in table format (0 for all)")
	return cmd
}

func newEstimateCmd() *cobra.Command {
	var f runFlags
	cmd := &cobra.Command{
		Use:   "estimate ALGORITHM",
		Short: "Estimate the memory an algorithm run needs",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			spec, err := f.resolve(cmd, args)
			if err != nil {
				return err
			}
			spec.Mode = string(results.ModeEstimate)
			return execute(cmd.Context(), cmd, spec, f)
		},
	}
	addGraphFlags(cmd, &f)
	cmd.Flags().StringVar(&f.file, "file", "", "YAML run file; flags override its fields")
	return cmd
}

func addGraphFlags(cmd *cobra.Command, f *runFlags) {
	fl := cmd.Flags()
	fl.StringVar(&f.spec.Graph, "graph", "", "graph document (.yaml, .yml, .json) or nodes CSV")
	fl.StringVar(&f.spec.Nodes, "nodes", "", "nodes CSV file")
	fl.StringVar(&f.spec.Relationships, "relationships", "", "relationships CSV file")
	fl.StringVar(&f.configJSON, "config", "", "algorithm configuration as a JSON object")
	fl.StringVar(&f.configFile, "config-file", "", "algorithm configuration file (.json, .yaml)")
}

// resolve merges the run file, the positional algorithm and the flags
func (f *runFlags) resolve(cmd *cobra.Command, args []string) (*runSpec, error) {
	spec := &runSpec{}
	if f.file != "" {
		var err error
		if spec, err = readRunFile(f.file); err != nil {
			return nil, err
		}
	}
	fl := cmd.Flags()
	override := func(name string, dst *string, v string) {
		if fl.Changed(name) || *dst == "" {
			*dst = v
		}
	}
	override("graph", &spec.Graph, f.spec.Graph)
	override("nodes", &spec.Nodes, f.spec.Nodes)
	override("relationships", &spec.Relationships, f.spec.Relationships)
	override("mode", &spec.Mode, f.spec.Mode)
	override("property", &spec.Property, f.spec.Property)
	override("relationship-type", &spec.RelationshipType, f.spec.RelationshipType)
	override("target-graph", &spec.TargetGraph, f.spec.TargetGraph)
	override("sink", &spec.Sink, f.spec.Sink)
	override("table", &spec.Table, f.spec.Table)
	if fl.Changed("compress") {
		spec.Compress = f.spec.Compress
	}
	if len(args) == 1 {
		spec.Algorithm = args[0]
	}
	if spec.Algorithm == "" {
		return nil, errors.New("no algorithm given")
	}

	switch {
	case f.configJSON != "" && f.configFile != "":
		return nil, errors.New("use either --config or --config-file, not both")
	case f.configJSON != "":
		raw := registry.JSON(f.configJSON)
		spec.rawConfig = &raw
	case f.configFile != "":
		data, err := os.ReadFile(f.configFile)
		if err != nil {
			return nil, err
		}
		spec.rawConfig = &registry.RawConfig{Data: data, Format: registry.FormatForPath(f.configFile)}
	}
	return spec, nil
}

func execute(ctx context.Context, cmd *cobra.Command, spec *runSpec, f runFlags) error {
	mode, err := spec.mode()
	if err != nil {
		return err
	}
	raw, err := spec.config()
	if err != nil {
		return err
	}
	store, err := spec.loadGraph()
	if err != nil {
		return err
	}

	logger := logging.DefaultLogger()
	m := metrics.DefaultRegistry()
	cat := catalog.New(logger, m)
	if err := cat.Put(graphName, store); err != nil {
		return err
	}
	d := &registry.Dispatcher{
		Catalog:  cat,
		Registry: registry.Default(),
		Logger:   logger,
		Metrics:  m,
		Tasks:    progress.NewTaskRegistry(),
	}
	req := registry.Request{
		Algorithm:        spec.Algorithm,
		Graph:            graphName,
		Mode:             mode,
		Config:           raw,
		Property:         spec.Property,
		RelationshipType: spec.RelationshipType,
		TargetGraph:      spec.TargetGraph,
		Table:            spec.Table,
	}
	if mode == results.ModeWrite {
		if spec.Sink == "" {
			return errors.New("write mode needs --sink")
		}
		exp, err := sink.Open(ctx, spec.Sink, sink.Options{
			Compress:  spec.Compress,
			Overwrite: f.overwrite,
			Logger:    logger,
		})
		if err != nil {
			return err
		}
		if c, ok := exp.(interface{ Close() error }); ok {
			defer c.Close()
		}
		req.Exporter = exp
	}

	var resp *registry.Response
	dispatch := func(ctx context.Context) error {
		var err error
		resp, err = d.Dispatch(ctx, req)
		return err
	}
	if f.progress && mode != results.ModeEstimate {
		err = withProgress(ctx, d.Tasks, spec.Algorithm, dispatch)
	} else {
		err = dispatch(ctx)
	}
	if err != nil {
		return err
	}
	return printResponse(cmd.OutOrStdout(), resp, cat, f)
}
