// Package rdfio reads N-Triples and N-Quads lines into a dataset and writes
// datasets back out in the same syntaxes.
package rdfio

import (
	"fmt"
	"strings"
)

// Format is a supported line syntax.
type Format int

const (
	FormatNTriples Format = iota + 1
	FormatNQuads
)

func (f Format) String() string {
	switch f {
	case FormatNTriples:
		return "N-Triples"
	case FormatNQuads:
		return "N-Quads"
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// ContentType returns the MIME type of the format.
func (f Format) ContentType() string {
	switch f {
	case FormatNTriples:
		return "application/n-triples"
	case FormatNQuads:
		return "application/n-quads"
	}
	return ""
}

// ParseFormat resolves a format name such as "ntriples", "nt", "nquads"
// or "nq".
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "ntriples", "n-triples", "nt":
		return FormatNTriples, nil
	case "nquads", "n-quads", "nq":
		return FormatNQuads, nil
	default:
		return 0, fmt.Errorf("unsupported format: %s", name)
	}
}

// FormatForContentType resolves a MIME type, ignoring parameters such as
// charset.
func FormatForContentType(contentType string) (Format, error) {
	ct := strings.ToLower(strings.TrimSpace(contentType))
	if idx := strings.Index(ct, ";"); idx != -1 {
		ct = strings.TrimSpace(ct[:idx])
	}

	switch ct {
	case "application/n-triples", "text/plain":
		return FormatNTriples, nil
	case "application/n-quads":
		return FormatNQuads, nil
	default:
		return 0, fmt.Errorf("unsupported content type: %s", contentType)
	}
}
