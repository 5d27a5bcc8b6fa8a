package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aleksaelezovic/quadline/pkg/rdf"
	"github.com/aleksaelezovic/quadline/pkg/store"
)

func queryCmd(global *globalOptions) *cobra.Command {
	opts := &loadOptions{}
	var (
		subject   string
		predicate string
		object    string
		graph     string
	)

	cmd := &cobra.Command{
		Use:   "query [files or patterns...]",
		Short: "Load files and print the statements matching a pattern",
		Long: `Query loads the inputs like load does, then prints every statement whose
subject, predicate and object match the given terms as N-Quads. Terms use
line syntax: <iri>, _:label, "literal", a prefixed name from the
configuration, or ?name for a variable. Omitted terms match anything.
Blank node labels only match when parser.preserve_blank_labels is set.`,
		Example: `  quadline query data/**/*.nq --predicate '<http://xmlns.com/foaf/0.1/knows>'
  quadline query people.nt --subject '?x' --object '?x'`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := global.setup(cmd)
			if err != nil {
				return err
			}
			if err := opts.apply(cfg); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}

			values := cfg.ValueParser()
			var pattern store.Pattern
			if pattern.Subject, err = parseTerm(values, subject); err != nil {
				return fmt.Errorf("--subject: %w", err)
			}
			if pattern.Predicate, err = parseTerm(values, predicate); err != nil {
				return fmt.Errorf("--predicate: %w", err)
			}
			if pattern.Object, err = parseTerm(values, object); err != nil {
				return fmt.Errorf("--object: %w", err)
			}

			var graphName *rdf.IRIResource
			if graph != "" {
				node, err := parseTerm(values, graph)
				if err != nil {
					return fmt.Errorf("--graph: %w", err)
				}
				iri, ok := node.(*rdf.IRIResource)
				if !ok {
					return fmt.Errorf("--graph: %s is not an IRI", graph)
				}
				graphName = iri
			}

			ds, err := loadDataset(cmd, cfg, logger, opts, args)
			if ds != nil {
				defer ds.db.Close()
			}
			if err != nil {
				return err
			}

			n, err := printMatches(cmd.OutOrStdout(), ds.db, pattern, graphName, graph != "")
			if err != nil {
				return err
			}
			logger.Info("query complete", "matches", n)

			if opts.metrics {
				return printMetrics(cmd.ErrOrStderr(), ds.registry)
			}
			return nil
		},
	}

	opts.register(cmd)
	cmd.Flags().StringVar(&subject, "subject", "", "Subject term")
	cmd.Flags().StringVar(&predicate, "predicate", "", "Predicate term")
	cmd.Flags().StringVar(&object, "object", "", "Object term")
	cmd.Flags().StringVar(&graph, "graph", "", "Restrict matches to one named graph")
	return cmd
}

// parseTerm decodes a term flag. An empty value is a wildcard.
func parseTerm(values *rdf.ValueParser, term string) (rdf.Node, error) {
	term = strings.TrimSpace(term)
	switch {
	case term == "":
		return nil, nil
	case strings.HasPrefix(term, "?"):
		if len(term) == 1 {
			return nil, fmt.Errorf("variable needs a name")
		}
		return rdf.NewVariable(term[1:]), nil
	}
	return values.ParseNode(term)
}

// printMatches writes the matches of every graph, or only of the named
// graph when restricted is set, and returns how many were written.
func printMatches(w io.Writer, db *store.Database, pattern store.Pattern, name *rdf.IRIResource, restricted bool) (int, error) {
	type target struct {
		name  *rdf.IRIResource
		graph store.Graph
	}

	var targets []target
	if restricted {
		if g, ok := db.NamedGraph(name); ok {
			targets = append(targets, target{name, g})
		}
	} else {
		targets = append(targets, target{nil, db.Default()})
		for _, n := range db.GraphNames() {
			g, _ := db.NamedGraph(n)
			targets = append(targets, target{n, g})
		}
	}

	count := 0
	for _, t := range targets {
		matches, err := t.graph.Match(pattern)
		if err != nil {
			return count, fmt.Errorf("match: %w", err)
		}
		for _, s := range matches {
			if t.name == nil {
				fmt.Fprintf(w, "%s %s %s .\n", s.Subject(), s.Predicate(), s.Object())
			} else {
				fmt.Fprintf(w, "%s %s %s %s .\n", s.Subject(), s.Predicate(), s.Object(), t.name)
			}
			count++
		}
	}
	return count, nil
}
