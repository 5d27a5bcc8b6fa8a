package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"

	"github.com/aleksaelezovic/quadline/internal/config"
	"github.com/aleksaelezovic/quadline/internal/metrics"
	"github.com/aleksaelezovic/quadline/pkg/rdfio"
	"github.com/aleksaelezovic/quadline/pkg/store"
)

// loadOptions are the flags controlling how inputs are read.
type loadOptions struct {
	format   string
	strategy string
	policy   string
	metrics  bool
	dump     bool
}

func (o *loadOptions) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.format, "format", "f", "", "Input format for files without .nt/.nq extension (ntriples, nquads)")
	cmd.Flags().StringVarP(&o.strategy, "strategy", "s", "", "Store strategy (unindexed, indexed, full, kv)")
	cmd.Flags().StringVar(&o.policy, "policy", "", "Malformed line policy (abort, skip)")
	cmd.Flags().BoolVar(&o.metrics, "metrics", false, "Print ingestion metrics after loading")
}

// apply overrides configuration values with the flags that were set.
func (o *loadOptions) apply(cfg *config.Config) error {
	if o.format != "" {
		cfg.Parser.Format = o.format
	}
	if o.strategy != "" {
		cfg.Store.Strategy = o.strategy
	}
	if o.policy != "" {
		cfg.Parser.Policy = o.policy
	}
	return cfg.Validate()
}

func loadCmd(global *globalOptions) *cobra.Command {
	opts := &loadOptions{}

	cmd := &cobra.Command{
		Use:   "load [files or patterns...]",
		Short: "Load files and report statement counts",
		Long: `Load reads every file matching the given paths or glob patterns
(** is supported) into one dataset. Use - to read standard input.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := global.setup(cmd)
			if err != nil {
				return err
			}
			if err := opts.apply(cfg); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}

			ds, err := loadDataset(cmd, cfg, logger, opts, args)
			if ds != nil {
				defer ds.db.Close()
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if opts.dump {
				if err := rdfio.WriteNQuads(out, ds.db); err != nil {
					return fmt.Errorf("dump: %w", err)
				}
			} else {
				printSummary(out, ds)
			}
			if opts.metrics {
				return printMetrics(out, ds.registry)
			}
			return nil
		},
	}

	opts.register(cmd)
	cmd.Flags().BoolVar(&opts.dump, "dump", false, "Write the loaded dataset as N-Quads instead of a summary")
	return cmd
}

// dataset is the outcome of loading a set of inputs.
type dataset struct {
	db       *store.Database
	registry *prometheus.Registry
	files    []fileResult
}

type fileResult struct {
	path   string
	format rdfio.Format
	result rdfio.Result
}

// loadDataset reads every input into a fresh database. The returned
// dataset is non-nil whenever the database was created, so callers can
// close it on error.
func loadDataset(cmd *cobra.Command, cfg *config.Config, logger *slog.Logger, opts *loadOptions, patterns []string) (*dataset, error) {
	inputs, err := expandInputs(patterns)
	if err != nil {
		return nil, err
	}

	db, err := store.NewDatabase(cfg.Strategy(), logger)
	if err != nil {
		return nil, err
	}
	ds := &dataset{db: db}

	var m *metrics.Ingest
	if opts.metrics {
		ds.registry = prometheus.NewRegistry()
		if m, err = metrics.NewIngest(ds.registry); err != nil {
			return ds, fmt.Errorf("register metrics: %w", err)
		}
	}

	for _, path := range inputs {
		format := formatForPath(path, cfg.Format())
		r := rdfio.NewReader(format)
		r.Values = cfg.ValueParser()
		r.Policy = cfg.Policy()
		r.Logger = logger.With("input", path)
		r.Metrics = m

		res, err := readInput(cmd, r, db, path, cfg.Parser.MaxLineLength)
		ds.files = append(ds.files, fileResult{path: path, format: format, result: res})
		if err != nil {
			return ds, fmt.Errorf("%s: %w", path, err)
		}
	}
	return ds, nil
}

func readInput(cmd *cobra.Command, r *rdfio.Reader, db *store.Database, path string, maxLineLen int) (rdfio.Result, error) {
	var in io.Reader
	if path == stdinInput {
		in = cmd.InOrStdin()
	} else {
		f, err := os.Open(path)
		if err != nil {
			return rdfio.Result{}, err
		}
		defer f.Close()
		in = f
	}
	return r.Read(db, rdfio.NewScannerSource(in, maxLineLen))
}

func printSummary(w io.Writer, ds *dataset) {
	for _, f := range ds.files {
		fmt.Fprintf(w, "%s (%s): %d lines, %d statements, %d duplicates, %d skipped\n",
			f.path, f.format, f.result.Lines, f.result.Statements, f.result.Duplicates, len(f.result.Diagnostics))
		for _, d := range f.result.Diagnostics {
			fmt.Fprintf(w, "  %v\n", d)
		}
	}
	fmt.Fprintf(w, "default graph: %d statements\n", ds.db.Default().Count())
	for _, name := range ds.db.GraphNames() {
		g, _ := ds.db.NamedGraph(name)
		fmt.Fprintf(w, "%s: %d statements\n", name, g.Count())
	}
	fmt.Fprintf(w, "total: %d statements (%s store)\n", ds.db.Count(), ds.db.Strategy())
}

// printMetrics writes the registry in the prometheus text format.
func printMetrics(w io.Writer, reg *prometheus.Registry) error {
	families, err := reg.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("write metrics: %w", err)
		}
	}
	return nil
}
