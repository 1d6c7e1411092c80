package graph

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/golang/glog"
	sccrand "github.com/kikimo/scc-gen/pkg/rand"
)

var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrTooManyEdges    = errors.New("too many edges")
)

// MaxEdges is the number of edges of the complete graph on n nodes. It
// saturates at math.MaxInt when the count does not fit an int.
func MaxEdges(n int) int {
	c, ok := pairCount(n)
	if !ok {
		return math.MaxInt
	}

	return c
}

func pairCount(n int) (int, bool) {
	if n < 2 {
		return 0, true
	}

	a, b := n, n-1
	if a%2 == 0 {
		a /= 2
	} else {
		b /= 2
	}

	if b > math.MaxInt/a {
		return 0, false
	}

	return a * b, true
}

// GNM returns a graph drawn uniformly from all simple graphs with n nodes
// and m edges.
func GNM(n int, m int, r *rand.Rand) (*Graph, error) {
	if n < 0 || m < 0 {
		return nil, fmt.Errorf("nodes %d, edges %d: %w", n, m, ErrInvalidArgument)
	}

	if r == nil {
		return nil, fmt.Errorf("nil random source: %w", ErrInvalidArgument)
	}

	total, ok := pairCount(n)
	if !ok {
		return nil, fmt.Errorf("%d nodes: pair count overflows: %w", n, ErrInvalidArgument)
	}

	if m > total {
		return nil, fmt.Errorf("%d edges requested, %d nodes allow at most %d: %w", m, n, total, ErrTooManyEdges)
	}

	g := New(n)
	switch {
	case m == total:
		glog.V(1).Infof("building complete graph with %d nodes", n)
		for u := 0; u < n; u++ {
			for v := u + 1; v < n; v++ {
				g.addEdge(u, v)
			}
		}
	case m > total/2:
		glog.V(1).Infof("sampling %d of %d pairs", m, total)
		for _, idx := range sccrand.ChoiceFrom(r, total, m) {
			g.addEdge(sccrand.PairFromIndex(idx, n))
		}
	default:
		glog.V(1).Infof("sampling %d edges over %d nodes by rejection", m, n)
		for g.NumEdges() < m {
			u, v := r.Intn(n), r.Intn(n)
			if u == v || g.HasEdge(u, v) {
				continue
			}
			g.addEdge(u, v)
		}
	}

	return g, nil
}

// addEdge is AddEdge for callers that already hold the invariants.
func (g *Graph) addEdge(u, v int) {
	if err := g.AddEdge(u, v); err != nil {
		panic(err)
	}
}
