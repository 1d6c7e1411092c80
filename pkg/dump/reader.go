package dump

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/golang/glog"
	"github.com/kikimo/scc-gen/pkg/graph"
)

var ErrEdgeCount = errors.New("unexpected edge count")

type SyntaxError struct {
	Line int
	Text string
	Msg  string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("line %d: %s: %q", e.Line, e.Msg, e.Text)
}

// Script is a parsed transaction script.
type Script struct {
	Edges []graph.Edge
}

func ReadFile(path string) (*Script, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	s, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return s, nil
}

// Read parses a script in the exact layout produced by Writer.
func Read(r io.Reader) (*Script, error) {
	s := &Script{Edges: []graph.Edge{}}
	scanner := bufio.NewScanner(r)
	lineNo := 0

	next := func() (string, bool) {
		if !scanner.Scan() {
			return "", false
		}
		lineNo++
		return scanner.Text(), true
	}

	line, ok := next()
	if !ok {
		if err := scanner.Err(); err != nil {
			return nil, err
		}
		return nil, &SyntaxError{Line: 1, Msg: "missing header"}
	}
	if line != headerLine {
		return nil, &SyntaxError{Line: lineNo, Text: line, Msg: "expected header"}
	}

	for {
		line, ok = next()
		if !ok {
			if err := scanner.Err(); err != nil {
				return nil, err
			}
			return nil, &SyntaxError{Line: lineNo + 1, Msg: "missing commit"}
		}

		if line == commitLine {
			break
		}

		e, err := parseInsert(line)
		if err != nil {
			return nil, &SyntaxError{Line: lineNo, Text: line, Msg: err.Error()}
		}
		s.Edges = append(s.Edges, e)
	}

	line, ok = next()
	if !ok {
		if err := scanner.Err(); err != nil {
			return nil, err
		}
		return nil, &SyntaxError{Line: lineNo + 1, Msg: "missing timestamp"}
	}
	if line != timestampLine {
		return nil, &SyntaxError{Line: lineNo, Text: line, Msg: "expected timestamp"}
	}

	if line, ok = next(); ok {
		return nil, &SyntaxError{Line: lineNo, Text: line, Msg: "trailing data"}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	glog.V(2).Infof("parsed %d edges", len(s.Edges))
	return s, nil
}

func parseInsert(line string) (graph.Edge, error) {
	if !strings.HasPrefix(line, insertPrefix) || !strings.HasSuffix(line, insertSuffix) {
		return graph.Edge{}, errors.New("expected insert")
	}

	body := strings.TrimSuffix(strings.TrimPrefix(line, insertPrefix), insertSuffix)
	parts := strings.Split(body, ", ")
	if len(parts) != 2 {
		return graph.Edge{}, errors.New("expected two endpoints")
	}

	u, err := strconv.Atoi(parts[0])
	if err != nil {
		return graph.Edge{}, fmt.Errorf("bad source: %v", err)
	}

	v, err := strconv.Atoi(parts[1])
	if err != nil {
		return graph.Edge{}, fmt.Errorf("bad destination: %v", err)
	}

	return graph.Edge{U: u, V: v}, nil
}

// Verify checks that the script describes a simple graph over nodes ids and,
// when edges >= 0, that it holds exactly that many edges.
func (s *Script) Verify(nodes int, edges int) error {
	if edges >= 0 && len(s.Edges) != edges {
		return fmt.Errorf("got %d edges, want %d: %w", len(s.Edges), edges, ErrEdgeCount)
	}

	g := graph.New(nodes)
	for i, e := range s.Edges {
		if err := g.AddEdge(e.U, e.V); err != nil {
			return fmt.Errorf("insert %d: %w", i+1, err)
		}
	}

	return nil
}
