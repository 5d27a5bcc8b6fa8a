package rdf

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidLiteral is matched by every literal decoding failure,
	// including an unresolved datatype prefix.
	ErrInvalidLiteral = errors.New("invalid literal")
	// ErrUnresolvedPrefix reports a prefixed name whose prefix is not in
	// the prefix map.
	ErrUnresolvedPrefix = errors.New("unresolved prefix")
	// ErrInvalidNode is matched by node tokens that are neither a valid IRI,
	// blank node, prefixed name nor literal.
	ErrInvalidNode = errors.New("invalid node")
)

// LiteralError describes why a literal token could not be decoded.
type LiteralError struct {
	Token  string
	Reason string
	Err    error
}

func (e *LiteralError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid literal %s: %s: %v", e.Token, e.Reason, e.Err)
	}
	return fmt.Sprintf("invalid literal %s: %s", e.Token, e.Reason)
}

func (e *LiteralError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrInvalidLiteral, e.Err}
	}
	return []error{ErrInvalidLiteral}
}

// NodeError describes why a token could not be decoded into a node.
type NodeError struct {
	Token  string
	Reason string
	Err    error
}

func (e *NodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid node %s: %s: %v", e.Token, e.Reason, e.Err)
	}
	return fmt.Sprintf("invalid node %s: %s", e.Token, e.Reason)
}

func (e *NodeError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrInvalidNode, e.Err}
	}
	return []error{ErrInvalidNode}
}

// PrefixError reports a prefix missing from a PrefixMap.
type PrefixError struct {
	Prefix string
}

func (e *PrefixError) Error() string {
	return fmt.Sprintf("unresolved prefix %q", e.Prefix)
}

func (e *PrefixError) Unwrap() error { return ErrUnresolvedPrefix }
