package rdfio

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/aleksaelezovic/quadline/internal/metrics"
	"github.com/aleksaelezovic/quadline/pkg/rdf"
)

// ErrorPolicy decides what happens to a rejected line.
type ErrorPolicy int

const (
	// PolicyAbort stops at the first rejected line. Statements committed
	// from earlier lines stay in the sink.
	PolicyAbort ErrorPolicy = iota
	// PolicySkip drops rejected lines and records them as diagnostics.
	PolicySkip
)

func (p ErrorPolicy) String() string {
	if p == PolicySkip {
		return "skip"
	}
	return "abort"
}

// ParseErrorPolicy resolves "abort" or "skip".
func ParseErrorPolicy(name string) (ErrorPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "abort", "":
		return PolicyAbort, nil
	case "skip":
		return PolicySkip, nil
	default:
		return 0, fmt.Errorf("unknown error policy: %s", name)
	}
}

// Sink receives committed statements. A nil graph means the default graph.
// *store.Database implements it.
type Sink interface {
	AddStatement(graph *rdf.IRIResource, stmt *rdf.Statement) (bool, error)
}

// Result summarizes one Read.
type Result struct {
	Lines       int
	Statements  int
	Duplicates  int
	Diagnostics []*ParserError
}

// Reader parses lines of one format into a Sink.
type Reader struct {
	Format  Format
	Values  *rdf.ValueParser
	Policy  ErrorPolicy
	Logger  *slog.Logger
	Metrics *metrics.Ingest

	parser *LineParser
}

// NewReader returns a reader for format using a fresh parse session.
func NewReader(format Format) *Reader {
	return &Reader{Format: format, Values: rdf.NewValueParser(nil)}
}

func (r *Reader) logger() *slog.Logger {
	if r.Logger == nil {
		return slog.Default()
	}
	return r.Logger
}

func (r *Reader) lineParser() (*LineParser, error) {
	if r.parser != nil && r.parser.Format() == r.Format {
		return r.parser, nil
	}
	if r.Values == nil {
		r.Values = rdf.NewValueParser(nil)
	}
	p, err := NewLineParser(r.Format, r.Values)
	if err != nil {
		return nil, err
	}
	r.parser = p
	return p, nil
}

// ReadLine parses one line and commits its statement to sink. It reports
// whether a new statement was added. Rejections are *ParserError values.
func (r *Reader) ReadLine(sink Sink, line string, lineNo int) (bool, error) {
	p, err := r.lineParser()
	if err != nil {
		return false, err
	}

	r.Metrics.Line()
	q, ok, err := p.ParseLine(line, lineNo)
	if err != nil {
		var perr *ParserError
		if errors.As(err, &perr) {
			r.Metrics.ParseError(perr.Reason())
		}
		return false, err
	}
	if !ok {
		return false, nil
	}

	added, err := sink.AddStatement(q.Graph, q.Statement)
	if err != nil {
		return false, fmt.Errorf("line %d: failed to store statement: %w", lineNo, err)
	}
	r.Metrics.Statement(q.Graph != nil, added)
	return added, nil
}

// Read consumes src line by line. Line numbers start at 1. Under
// PolicyAbort the first rejected line ends the read with its error; sink
// failures always do.
func (r *Reader) Read(sink Sink, src LineSource) (Result, error) {
	var res Result
	start := time.Now()
	log := r.logger()

	for {
		line, ok := src.Next()
		if !ok {
			break
		}
		res.Lines++

		added, err := r.ReadLine(sink, line, res.Lines)
		if err != nil {
			var perr *ParserError
			if r.Policy == PolicySkip && errors.As(err, &perr) {
				res.Diagnostics = append(res.Diagnostics, perr)
				log.Warn("skipping malformed line",
					"format", r.Format.String(), "line", perr.Line, "offset", perr.Pos, "error", perr.Err)
				continue
			}
			return res, err
		}
		if added {
			res.Statements++
		} else if isStatementLine(line) {
			res.Duplicates++
		}
	}

	if err := src.Err(); err != nil {
		return res, fmt.Errorf("error reading input: %w", err)
	}

	r.Metrics.ReadDone(time.Since(start))
	log.Info("read complete",
		"format", r.Format.String(),
		"lines", res.Lines,
		"statements", res.Statements,
		"duplicates", res.Duplicates,
		"skipped", len(res.Diagnostics))
	return res, nil
}

// ReadFrom reads every line of in.
func (r *Reader) ReadFrom(sink Sink, in io.Reader) (Result, error) {
	return r.Read(sink, NewScannerSource(in, 0))
}

// isStatementLine reports whether a line that parsed cleanly held a
// statement rather than only whitespace or a comment.
func isStatementLine(line string) bool {
	s := strings.TrimLeft(line, " \t\r\n\f\v")
	return s != "" && s[0] != '#'
}
