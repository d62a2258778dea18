package topology

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
)

// ErrNodeNotFound is returned when an operation names a node that was never
// added.
var ErrNodeNotFound = errors.New("node not found")

// Graph is a directed graph keyed by string ids. All operations on the graph
// are concurrency-safe.
type Graph struct {
	mutex sync.RWMutex
	nodes map[string]*node
	order []string
}

// node is un-exported so callers go through the id-based API.
type node struct {
	id         string
	deps       []string // providers, in edge order
	dependents []string // consumers, in edge order
}

// New creates and returns an initialized, empty Graph.
func New() *Graph {
	return &Graph{nodes: make(map[string]*node)}
}

// AddNode adds a node with the given id. Adding an existing id does nothing.
func (g *Graph) AddNode(id string) {
	g.mutex.Lock()
	defer g.mutex.Unlock()

	if _, ok := g.nodes[id]; ok {
		return
	}
	g.nodes[id] = &node{id: id}
	g.order = append(g.order, id)
}

// AddEdge creates a directed edge from fromID to toID, meaning toID consumes
// a value provided by fromID. Adding the same edge twice does nothing.
func (g *Graph) AddEdge(fromID, toID string) error {
	if fromID == toID {
		return fmt.Errorf("self-referential edge not allowed: %s -> %s", fromID, fromID)
	}

	g.mutex.Lock()
	defer g.mutex.Unlock()

	fromNode, ok := g.nodes[fromID]
	if !ok {
		return fmt.Errorf("source %w: %s", ErrNodeNotFound, fromID)
	}
	toNode, ok := g.nodes[toID]
	if !ok {
		return fmt.Errorf("destination %w: %s", ErrNodeNotFound, toID)
	}

	if !slices.Contains(toNode.deps, fromID) {
		toNode.deps = append(toNode.deps, fromID)
		fromNode.dependents = append(fromNode.dependents, toID)
	}
	return nil
}

// Len returns the number of nodes.
func (g *Graph) Len() int {
	g.mutex.RLock()
	defer g.mutex.RUnlock()
	return len(g.order)
}

// Dependencies returns the ids the given node consumes from.
func (g *Graph) Dependencies(id string) ([]string, error) {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	n, ok := g.nodes[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNodeNotFound, id)
	}
	return slices.Clone(n.deps), nil
}

// Dependents returns the ids that consume from the given node.
func (g *Graph) Dependents(id string) ([]string, error) {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	n, ok := g.nodes[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNodeNotFound, id)
	}
	return slices.Clone(n.dependents), nil
}

// Downstream returns every node reachable from id by following edges, in
// breadth-first order. The start node is included only if a cycle leads back
// to it.
func (g *Graph) Downstream(id string) ([]string, error) {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	start, ok := g.nodes[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNodeNotFound, id)
	}

	seen := make(map[string]bool)
	var out []string
	queue := slices.Clone(start.dependents)
	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]
		if seen[next] {
			continue
		}
		seen[next] = true
		out = append(out, next)
		queue = append(queue, g.nodes[next].dependents...)
	}
	return out, nil
}

// DetectCycles checks the graph for cycles. It returns a non-nil error naming
// the nodes of the first cycle found, in edge order.
func (g *Graph) DetectCycles() error {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	// permanent: fully visited and not on a cycle.
	// stack: nodes on the current traversal path.
	permanent := make(map[string]bool)
	onStack := make(map[string]bool)
	var stack []string

	var visit func(id string) error
	visit = func(id string) error {
		if permanent[id] {
			return nil
		}
		if onStack[id] {
			start := slices.Index(stack, id)
			cycle := append(slices.Clone(stack[start:]), id)
			return fmt.Errorf("cycle detected: %s", strings.Join(cycle, " -> "))
		}

		onStack[id] = true
		stack = append(stack, id)
		for _, dependent := range g.nodes[id].dependents {
			if err := visit(dependent); err != nil {
				return err
			}
		}
		stack = stack[:len(stack)-1]
		delete(onStack, id)
		permanent[id] = true
		return nil
	}

	for _, id := range g.order {
		if err := visit(id); err != nil {
			return err
		}
	}
	return nil
}
