// Package toposort provides a generic topological sort used by the module
// resolver to order files so that every module precedes its dependents.
package toposort

import "fmt"

// CycleError reports that the dependency graph handed to Sort contains a
// cycle; Cycle lists the keys of the nodes that form it, in order.
type CycleError[Key comparable] struct {
	Cycle []Key
}

func (e *CycleError[Key]) Error() string {
	return fmt.Sprintf("dependency cycle detected: %v", e.Cycle)
}

// Sort orders nodes topologically: every node appears after all of the
// nodes its dag function says it depends on. key extracts a unique,
// comparable identity for each node so the sort can track visitation
// without requiring Node itself to be comparable.
//
// Unlike a typical textbook implementation, Sort never panics on a cycle:
// spec requires cycles to be reported as ordinary diagnostics, not process
// aborts, so a cycle is returned as a *CycleError[Key] instead.
func Sort[Node any, Key comparable](nodes []Node, key func(Node) Key, deps func(Node) []Key) ([]Node, error) {
	byKey := make(map[Key]Node, len(nodes))
	for _, n := range nodes {
		byKey[key(n)] = n
	}

	const (
		unvisited = iota
		visiting
		done
	)
	state := make(map[Key]int, len(nodes))
	var order []Node
	var path []Key

	var visit func(k Key) error
	visit = func(k Key) error {
		switch state[k] {
		case done:
			return nil
		case visiting:
			cycle := append(append([]Key{}, path...), k)
			return &CycleError[Key]{Cycle: cycle}
		}
		n, ok := byKey[k]
		if !ok {
			// Dependency on a node outside the input set (e.g. an import
			// that failed to resolve); the resolver reports that
			// separately, so toposort just ignores the edge.
			return nil
		}
		state[k] = visiting
		path = append(path, k)
		for _, d := range deps(n) {
			if err := visit(d); err != nil {
				return err
			}
		}
		path = path[:len(path)-1]
		state[k] = done
		order = append(order, n)
		return nil
	}

	for _, n := range nodes {
		if err := visit(key(n)); err != nil {
			return nil, err
		}
	}
	return order, nil
}
