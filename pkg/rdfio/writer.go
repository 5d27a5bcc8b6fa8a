package rdfio

import (
	"bufio"
	"fmt"
	"io"

	"github.com/aleksaelezovic/quadline/pkg/rdf"
	"github.com/aleksaelezovic/quadline/pkg/store"
)

// WriteNTriples writes every statement of g, in insertion order.
func WriteNTriples(w io.Writer, g store.Graph) error {
	bw := bufio.NewWriter(w)
	if err := writeGraph(bw, g, nil); err != nil {
		return err
	}
	return bw.Flush()
}

// WriteNQuads writes the default graph followed by each named graph in
// name order.
func WriteNQuads(w io.Writer, db *store.Database) error {
	bw := bufio.NewWriter(w)
	if err := writeGraph(bw, db.Default(), nil); err != nil {
		return err
	}
	for _, name := range db.GraphNames() {
		g, _ := db.NamedGraph(name)
		if err := writeGraph(bw, g, name); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Write writes db in format. N-Triples output only covers the default
// graph.
func Write(w io.Writer, format Format, db *store.Database) error {
	switch format {
	case FormatNTriples:
		return WriteNTriples(w, db.Default())
	case FormatNQuads:
		return WriteNQuads(w, db)
	}
	return fmt.Errorf("unsupported format: %s", format)
}

func writeGraph(w *bufio.Writer, g store.Graph, name *rdf.IRIResource) error {
	stmts, err := g.Statements()
	if err != nil {
		return err
	}
	for _, s := range stmts {
		if err := writeStatement(w, s, name); err != nil {
			return err
		}
	}
	return nil
}

func writeStatement(w *bufio.Writer, s *rdf.Statement, graph *rdf.IRIResource) error {
	var err error
	if graph == nil {
		_, err = fmt.Fprintf(w, "%s %s %s .\n", s.Subject(), s.Predicate(), s.Object())
	} else {
		_, err = fmt.Fprintf(w, "%s %s %s %s .\n", s.Subject(), s.Predicate(), s.Object(), graph)
	}
	return err
}
