package rdf

import (
	"slices"
	"sort"
	"strings"
)

// GraphStatement is a statement tagged with the key of the graph holding
// it. Graph is empty for the default graph.
type GraphStatement struct {
	Graph     string
	Statement *Statement
}

// Isomorphic reports whether two statement sets are equal up to a
// one-to-one relabeling of blank nodes.
func Isomorphic(expected, actual []*Statement) bool {
	return IsomorphicDatasets(tagDefault(expected), tagDefault(actual))
}

// IsomorphicDatasets is Isomorphic across graphs. A blank node keeps the
// same mapping in every graph it appears in.
func IsomorphicDatasets(expected, actual []GraphStatement) bool {
	if len(expected) != len(actual) {
		return false
	}

	expectedBlanks := blankLabels(expected)
	actualBlanks := blankLabels(actual)
	if len(expectedBlanks) != len(actualBlanks) {
		return false
	}

	if len(expectedBlanks) == 0 {
		return verifyMapping(expected, actual, nil)
	}

	// Match highly connected nodes first.
	sortByDegree(expectedBlanks, expected)
	sortByDegree(actualBlanks, actual)

	actualKeys := make(map[string]bool, len(actual))
	for _, s := range actual {
		actualKeys[statementKey(s, nil)] = true
	}

	m := &matcher{
		expected:   expected,
		actual:     actual,
		actualKeys: actualKeys,
		from:       expectedBlanks,
		to:         actualBlanks,
		mapping:    make(map[string]string, len(expectedBlanks)),
		used:       make(map[string]bool, len(actualBlanks)),
	}
	return m.backtrack(0)
}

func tagDefault(stmts []*Statement) []GraphStatement {
	out := make([]GraphStatement, len(stmts))
	for i, s := range stmts {
		out[i] = GraphStatement{Statement: s}
	}
	return out
}

func blankLabels(stmts []GraphStatement) []string {
	seen := make(map[string]bool)
	for _, s := range stmts {
		for _, n := range []Node{s.Statement.Subject(), s.Statement.Object()} {
			if b, ok := n.(*BlankNode); ok {
				seen[b.ID()] = true
			}
		}
	}
	labels := make([]string, 0, len(seen))
	for l := range seen {
		labels = append(labels, l)
	}
	sort.Strings(labels)
	return labels
}

func sortByDegree(labels []string, stmts []GraphStatement) {
	degree := make(map[string]int, len(labels))
	for _, s := range stmts {
		for _, n := range []Node{s.Statement.Subject(), s.Statement.Object()} {
			if b, ok := n.(*BlankNode); ok {
				degree[b.ID()]++
			}
		}
	}
	sort.SliceStable(labels, func(i, j int) bool {
		return degree[labels[i]] > degree[labels[j]]
	})
}

type matcher struct {
	expected   []GraphStatement
	actual     []GraphStatement
	actualKeys map[string]bool
	from, to   []string
	mapping    map[string]string
	used       map[string]bool
}

func (m *matcher) backtrack(i int) bool {
	if i == len(m.from) {
		return verifyMapping(m.expected, m.actual, m.mapping)
	}

	label := m.from[i]
	for _, candidate := range m.to {
		if m.used[candidate] {
			continue
		}
		m.mapping[label] = candidate
		m.used[candidate] = true

		if m.consistent() && m.backtrack(i+1) {
			return true
		}

		delete(m.mapping, label)
		delete(m.used, candidate)
	}
	return false
}

// consistent checks every expected statement whose blank nodes are all
// mapped against the actual set.
func (m *matcher) consistent() bool {
	for _, s := range m.expected {
		if !m.fullyMapped(s.Statement.Subject()) || !m.fullyMapped(s.Statement.Object()) {
			continue
		}
		if !m.actualKeys[statementKey(s, m.mapping)] {
			return false
		}
	}
	return true
}

func (m *matcher) fullyMapped(n Node) bool {
	b, ok := n.(*BlankNode)
	if !ok {
		return true
	}
	_, ok = m.mapping[b.ID()]
	return ok
}

func verifyMapping(expected, actual []GraphStatement, mapping map[string]string) bool {
	want := make([]string, len(expected))
	for i, s := range expected {
		want[i] = statementKey(s, mapping)
	}
	got := make([]string, len(actual))
	for i, s := range actual {
		got[i] = statementKey(s, nil)
	}
	slices.Sort(want)
	slices.Sort(got)
	return slices.Equal(slices.Compact(want), slices.Compact(got))
}

func statementKey(s GraphStatement, mapping map[string]string) string {
	var b strings.Builder
	b.WriteString(nodeKey(s.Statement.Subject(), mapping))
	b.WriteByte(' ')
	b.WriteString(s.Statement.Predicate().Key())
	b.WriteByte(' ')
	b.WriteString(nodeKey(s.Statement.Object(), mapping))
	b.WriteByte(' ')
	b.WriteString(s.Graph)
	return b.String()
}

func nodeKey(n Node, mapping map[string]string) string {
	if b, ok := n.(*BlankNode); ok && mapping != nil {
		if mapped, ok := mapping[b.ID()]; ok {
			return "_:" + mapped
		}
	}
	return n.Key()
}
