package dump

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/golang/glog"
	"github.com/kikimo/scc-gen/pkg/graph"
	"golang.org/x/time/rate"
)

const (
	DefaultFile = "scc.dat"

	headerLine    = "start;"
	commitLine    = "commit dump_changes;"
	timestampLine = "timestamp;"
	insertPrefix  = "insert Edge("
	insertSuffix  = "),"
)

// Writer emits a graph as a ddlog transaction script.
type Writer struct {
	w        *bufio.Writer
	progress *rate.Sometimes
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{
		w:        bufio.NewWriter(w),
		progress: &rate.Sometimes{Interval: time.Second},
	}
}

// WriteGraph writes the header, one insert per edge in g.Edges() order and
// the trailer, then flushes. It returns the number of insert lines written.
func (w *Writer) WriteGraph(g *graph.Graph) (int, error) {
	if _, err := fmt.Fprintln(w.w, headerLine); err != nil {
		return 0, fmt.Errorf("error writing header: %w", err)
	}

	edges := g.Edges()
	for i, e := range edges {
		if _, err := fmt.Fprintf(w.w, "%s%d, %d%s\n", insertPrefix, e.U, e.V, insertSuffix); err != nil {
			return i, fmt.Errorf("error writing edge %s: %w", e, err)
		}

		w.progress.Do(func() {
			glog.V(2).Infof("written %d/%d edges", i+1, len(edges))
		})
	}

	if _, err := fmt.Fprintf(w.w, "%s\n%s\n", commitLine, timestampLine); err != nil {
		return len(edges), fmt.Errorf("error writing trailer: %w", err)
	}

	if err := w.w.Flush(); err != nil {
		return len(edges), fmt.Errorf("error flushing script: %w", err)
	}

	return len(edges), nil
}

// WriteFile replaces the contents of path with the script for g. The file is
// written in place, so a failure part way leaves a truncated file behind.
func WriteFile(path string, g *graph.Graph) (n int, err error) {
	f, err := os.Create(path)
	if err != nil {
		return 0, err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("error closing %s: %w", path, cerr)
		}
	}()

	n, err = NewWriter(f).WriteGraph(g)
	if err != nil {
		return n, fmt.Errorf("%s: %w", path, err)
	}

	glog.V(1).Infof("wrote %d edges to %s", n, path)
	return n, nil
}
