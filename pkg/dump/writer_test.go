package dump

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kikimo/scc-gen/pkg/graph"
	sccrand "github.com/kikimo/scc-gen/pkg/rand"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteGraph(t *testing.T) {
	g := graph.New(4)
	require.NoError(t, g.AddEdge(0, 1))
	require.NoError(t, g.AddEdge(3, 2))
	require.NoError(t, g.AddEdge(1, 3))

	var buf bytes.Buffer
	n, err := NewWriter(&buf).WriteGraph(g)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	want := "start;\n" +
		"insert Edge(0, 1),\n" +
		"insert Edge(1, 3),\n" +
		"insert Edge(2, 3),\n" +
		"commit dump_changes;\n" +
		"timestamp;\n"
	assert.Equal(t, want, buf.String())
}

func TestWriteEmptyGraph(t *testing.T) {
	var buf bytes.Buffer
	n, err := NewWriter(&buf).WriteGraph(graph.New(5))
	require.NoError(t, err)
	assert.Equal(t, 0, n)
	assert.Equal(t, "start;\ncommit dump_changes;\ntimestamp;\n", buf.String())
}

func TestWriteFileSmall(t *testing.T) {
	g, err := graph.GNM(4, 3, sccrand.NewSource(3))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), DefaultFile)
	n, err := WriteFile(path, g)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
	require.Len(t, lines, 6)
	assert.Equal(t, "start;", lines[0])
	assert.Equal(t, "commit dump_changes;", lines[4])
	assert.Equal(t, "timestamp;", lines[5])

	s, err := ReadFile(path)
	require.NoError(t, err)
	assert.NoError(t, s.Verify(4, 3))
}

func TestWriteFileDefault(t *testing.T) {
	g, err := graph.GNM(1000, 10000, sccrand.NewSource(2022))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), DefaultFile)
	_, err = WriteFile(path, g)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 10000, strings.Count(string(data), "insert Edge("))
	assert.True(t, strings.HasPrefix(string(data), "start;\n"))
	assert.True(t, strings.HasSuffix(string(data), "),\ncommit dump_changes;\ntimestamp;\n"))
}

func TestWriteFileReplaces(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFile)
	require.NoError(t, os.WriteFile(path, []byte(strings.Repeat("stale\n", 100)), 0644))

	_, err := WriteFile(path, graph.New(2))
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "start;\ncommit dump_changes;\ntimestamp;\n", string(data))
}

func TestWriteFileSeeded(t *testing.T) {
	dir := t.TempDir()
	write := func(name string) []byte {
		g, err := graph.GNM(100, 400, sccrand.NewSource(17))
		require.NoError(t, err)

		path := filepath.Join(dir, name)
		_, err = WriteFile(path, g)
		require.NoError(t, err)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		return data
	}

	assert.Equal(t, write("a.dat"), write("b.dat"))
}

func TestWriteFileMissingDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", DefaultFile)
	_, err := WriteFile(path, graph.New(2))
	assert.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

type failingWriter struct {
	budget int
}

var errDiskFull = errors.New("disk full")

func (w *failingWriter) Write(p []byte) (int, error) {
	if len(p) > w.budget {
		n := w.budget
		w.budget = 0
		return n, errDiskFull
	}

	w.budget -= len(p)
	return len(p), nil
}

func TestWriteGraphError(t *testing.T) {
	g, err := graph.GNM(1000, 10000, sccrand.NewSource(5))
	require.NoError(t, err)

	_, err = NewWriter(&failingWriter{budget: 1024}).WriteGraph(g)
	assert.ErrorIs(t, err, errDiskFull)
}
