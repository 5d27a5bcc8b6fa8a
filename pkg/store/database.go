package store

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/aleksaelezovic/quadline/pkg/rdf"
)

// Database owns a default graph and any number of named graphs, all using
// the same strategy. Named graphs are created on the first statement
// addressed to them.
type Database struct {
	strategy Strategy
	logger   *slog.Logger

	def   Graph
	named map[string]Graph
	names map[string]*rdf.IRIResource
}

// NewDatabase creates an empty database. A nil logger uses slog.Default().
func NewDatabase(strategy Strategy, logger *slog.Logger) (*Database, error) {
	if logger == nil {
		logger = slog.Default()
	}
	def, err := NewGraph(strategy)
	if err != nil {
		return nil, err
	}
	return &Database{
		strategy: strategy,
		logger:   logger,
		def:      def,
		named:    make(map[string]Graph),
		names:    make(map[string]*rdf.IRIResource),
	}, nil
}

func (db *Database) Strategy() Strategy { return db.strategy }

// AddStatement adds stmt to the named graph, or to the default graph when
// graph is nil. It reports false when the statement was already present.
func (db *Database) AddStatement(graph *rdf.IRIResource, stmt *rdf.Statement) (bool, error) {
	if graph == nil {
		return db.def.AddStatement(stmt)
	}

	g, ok := db.named[graph.Key()]
	if !ok {
		var err error
		g, err = NewGraph(db.strategy)
		if err != nil {
			return false, fmt.Errorf("failed to create graph %s: %w", graph, err)
		}
		db.named[graph.Key()] = g
		db.names[graph.Key()] = graph
		db.logger.Debug("created named graph", "graph", graph.Value(), "strategy", db.strategy.String())
	}
	return g.AddStatement(stmt)
}

// RemoveStatement removes stmt from the named or default graph.
func (db *Database) RemoveStatement(graph *rdf.IRIResource, stmt *rdf.Statement) (bool, error) {
	g, ok := db.Graph(graph)
	if !ok {
		return false, nil
	}
	return g.RemoveStatement(stmt)
}

// Default returns the default graph.
func (db *Database) Default() Graph { return db.def }

// NamedGraph returns the graph stored under name.
func (db *Database) NamedGraph(name *rdf.IRIResource) (Graph, bool) {
	if name == nil {
		return nil, false
	}
	g, ok := db.named[name.Key()]
	return g, ok
}

// Graph returns the named graph, or the default graph when name is nil.
func (db *Database) Graph(name *rdf.IRIResource) (Graph, bool) {
	if name == nil {
		return db.def, true
	}
	return db.NamedGraph(name)
}

// GraphNames returns the names of all named graphs, sorted.
func (db *Database) GraphNames() []*rdf.IRIResource {
	out := make([]*rdf.IRIResource, 0, len(db.names))
	for _, n := range db.names {
		out = append(out, n)
	}
	slices.SortFunc(out, func(a, b *rdf.IRIResource) int {
		return strings.Compare(a.Value(), b.Value())
	})
	return out
}

// Count returns the number of statements across all graphs.
func (db *Database) Count() int {
	n := db.def.Count()
	for _, g := range db.named {
		n += g.Count()
	}
	return n
}

// Quads returns every statement tagged with its graph key, default graph
// first and named graphs in name order.
func (db *Database) Quads() ([]rdf.GraphStatement, error) {
	stmts, err := db.def.Statements()
	if err != nil {
		return nil, err
	}
	out := make([]rdf.GraphStatement, 0, db.Count())
	for _, s := range stmts {
		out = append(out, rdf.GraphStatement{Statement: s})
	}
	for _, name := range db.GraphNames() {
		stmts, err := db.named[name.Key()].Statements()
		if err != nil {
			return nil, fmt.Errorf("graph %s: %w", name, err)
		}
		for _, s := range stmts {
			out = append(out, rdf.GraphStatement{Graph: name.Key(), Statement: s})
		}
	}
	return out, nil
}

// Isomorphic reports whether a and b hold the same statements in the same
// graphs, up to blank node relabeling.
func Isomorphic(a, b *Database) (bool, error) {
	qa, err := a.Quads()
	if err != nil {
		return false, err
	}
	qb, err := b.Quads()
	if err != nil {
		return false, err
	}
	return rdf.IsomorphicDatasets(qa, qb), nil
}

// Close closes every graph.
func (db *Database) Close() error {
	errs := []error{db.def.Close()}
	for _, g := range db.named {
		errs = append(errs, g.Close())
	}
	return errors.Join(errs...)
}
