package graph

import (
	"errors"
	"fmt"
)

var (
	ErrSelfLoop       = errors.New("self loop")
	ErrDuplicateEdge  = errors.New("duplicate edge")
	ErrNodeOutOfRange = errors.New("node out of range")
)

// Edge is an undirected edge as yielded by Graph.Edges.
type Edge struct {
	U int
	V int
}

func (e Edge) String() string {
	return fmt.Sprintf("%d-%d", e.U, e.V)
}

func (e Edge) key() [2]int {
	if e.U > e.V {
		return [2]int{e.V, e.U}
	}

	return [2]int{e.U, e.V}
}

// Graph is a simple undirected graph over nodes 0..n-1. Neighbours are kept
// in insertion order so edge iteration is stable for a given build sequence.
type Graph struct {
	adj   [][]int
	edges map[[2]int]struct{}
}

func New(nodes int) *Graph {
	if nodes < 0 {
		nodes = 0
	}

	return &Graph{
		adj:   make([][]int, nodes),
		edges: map[[2]int]struct{}{},
	}
}

func (g *Graph) NumNodes() int {
	return len(g.adj)
}

func (g *Graph) NumEdges() int {
	return len(g.edges)
}

func (g *Graph) HasEdge(u, v int) bool {
	_, ok := g.edges[Edge{u, v}.key()]
	return ok
}

func (g *Graph) AddEdge(u, v int) error {
	if u < 0 || u >= len(g.adj) || v < 0 || v >= len(g.adj) {
		return fmt.Errorf("edge %d-%d with %d nodes: %w", u, v, len(g.adj), ErrNodeOutOfRange)
	}

	if u == v {
		return fmt.Errorf("edge %d-%d: %w", u, v, ErrSelfLoop)
	}

	k := Edge{u, v}.key()
	if _, ok := g.edges[k]; ok {
		return fmt.Errorf("edge %d-%d: %w", u, v, ErrDuplicateEdge)
	}

	g.edges[k] = struct{}{}
	g.adj[u] = append(g.adj[u], v)
	g.adj[v] = append(g.adj[v], u)
	return nil
}

// Edges walks nodes in ascending order and yields each node's neighbours in
// insertion order, skipping neighbours that were already walked. Every edge
// appears exactly once, as (n, nbr) with n < nbr.
func (g *Graph) Edges() []Edge {
	edges := make([]Edge, 0, len(g.edges))
	seen := make([]bool, len(g.adj))
	for n, nbrs := range g.adj {
		for _, nbr := range nbrs {
			if !seen[nbr] {
				edges = append(edges, Edge{U: n, V: nbr})
			}
		}
		seen[n] = true
	}

	return edges
}
