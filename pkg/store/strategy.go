package store

import (
	"fmt"
	"strings"
)

// Strategy selects how a graph indexes its statements.
type Strategy int

const (
	// StrategyUnindexed keeps the statement set only; every query scans.
	StrategyUnindexed Strategy = iota + 1
	// StrategyIndexed maintains subject (SPO) and object (OPS) indexes.
	StrategyIndexed
	// StrategyFullIndexed adds a predicate (PSO) index.
	StrategyFullIndexed
	// StrategyKV keeps SPO, POS and OSP key tables in an in-memory
	// key-value store.
	StrategyKV
)

func (s Strategy) String() string {
	switch s {
	case StrategyUnindexed:
		return "unindexed"
	case StrategyIndexed:
		return "indexed"
	case StrategyFullIndexed:
		return "full"
	case StrategyKV:
		return "kv"
	}
	return fmt.Sprintf("Strategy(%d)", int(s))
}

// Strategies lists every strategy.
func Strategies() []Strategy {
	return []Strategy{StrategyUnindexed, StrategyIndexed, StrategyFullIndexed, StrategyKV}
}

// ParseStrategy resolves a strategy name.
func ParseStrategy(name string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "unindexed", "simple", "set":
		return StrategyUnindexed, nil
	case "indexed", "spo-ops":
		return StrategyIndexed, nil
	case "full", "full-indexed", "fullindexed":
		return StrategyFullIndexed, nil
	case "kv", "badger":
		return StrategyKV, nil
	default:
		return 0, fmt.Errorf("unknown store strategy: %s", name)
	}
}

// NewGraph creates an empty graph using strategy.
func NewGraph(strategy Strategy) (Graph, error) {
	var b backend
	switch strategy {
	case StrategyUnindexed:
		b = newUnindexed()
	case StrategyIndexed:
		b = newIndexed(false)
	case StrategyFullIndexed:
		b = newIndexed(true)
	case StrategyKV:
		kv, err := newKV()
		if err != nil {
			return nil, err
		}
		b = kv
	default:
		return nil, fmt.Errorf("unknown store strategy: %s", strategy)
	}
	return &graph{strategy: strategy, b: b}, nil
}
