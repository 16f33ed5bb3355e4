package pipeline

import (
	"context"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	goswitch "github.com/reoring/goswitch"
	"github.com/reoring/goswitch/internal/config"
)

const schemas = `unions:
  - package: shapes
    type: Shape
    cases:
      - type: Circle
      - type: Square
        pointer: true
  - package: shapes
    type: Color
    kind: enum
    cases:
      - type: Red
      - type: Green
`

func setup(t *testing.T, content string) (*config.Config, string) {
	t.Helper()
	dir := t.TempDir()
	file := filepath.Join(dir, "unions.yaml")
	require.NoError(t, os.WriteFile(file, []byte(content), 0o644))
	cfg := config.Default()
	cfg.Schemas = []string{file}
	cfg.Parallelism = 2
	cfg.Watch.Debounce = 20 * time.Millisecond
	require.NoError(t, cfg.Validate())
	return cfg, dir
}

func TestRun_WritesFilesOnce(t *testing.T) {
	cfg, dir := setup(t, schemas)

	sum, err := Run(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)
	require.Len(t, sum.Files, 2)
	assert.Equal(t, filepath.Join(dir, "shape_match.go"), sum.Files[0].Path)
	assert.Equal(t, filepath.Join(dir, "color_match.go"), sum.Files[1].Path)
	for _, f := range sum.Files {
		assert.True(t, f.Changed, f.Path)
		src, err := os.ReadFile(f.Path)
		require.NoError(t, err)
		_, err = parser.ParseFile(token.NewFileSet(), f.Path, src, 0)
		require.NoError(t, err)
	}

	sum, err = Run(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)
	for _, f := range sum.Files {
		assert.False(t, f.Changed, "second run must not rewrite %s", f.Path)
	}
}

func TestRun_SuffixAndOutputDir(t *testing.T) {
	cfg, _ := setup(t, schemas)
	out := t.TempDir()
	cfg.Output.Suffix = "_dispatch.go"
	cfg.Output.Dir = filepath.Join(out, "gen")

	sum, err := Run(context.Background(), cfg, nil)
	require.NoError(t, err)
	require.Len(t, sum.Files, 2)
	assert.FileExists(t, filepath.Join(out, "gen", "shape_dispatch.go"))
}

func TestRun_FailuresDoNotStopOthers(t *testing.T) {
	cfg, dir := setup(t, schemas+`  - package: shapes
    type: Empty
    cases: []
`)
	core, logs := observer.New(zapcore.DebugLevel)

	sum, err := Run(context.Background(), cfg, zap.New(core))
	require.Error(t, err)
	assert.Equal(t, 1, sum.Failed)
	assert.Len(t, sum.Files, 2)
	assert.FileExists(t, filepath.Join(dir, "shape_match.go"))
	assert.NoFileExists(t, filepath.Join(dir, "empty_match.go"))

	iss, ok := goswitch.AsIssues(err)
	require.True(t, ok)
	require.Len(t, iss, 1)
	assert.Equal(t, goswitch.CodeEmptyCases, iss[0].Code)

	failed := logs.FilterMessage("generation failed").All()
	require.Len(t, failed, 1)
	assert.Equal(t, goswitch.CodeEmptyCases, failed[0].ContextMap()["code"])
}

func TestRun_DuplicateOutputPath(t *testing.T) {
	cfg, _ := setup(t, `unions:
  - {package: a, type: Shape, cases: [{type: A}]}
  - {package: b, type: Shape, cases: [{type: B}]}
`)
	sum, err := Run(context.Background(), cfg, zap.NewNop())
	require.Error(t, err)
	assert.Len(t, sum.Files, 1)
	assert.Contains(t, err.Error(), "write the same file")
}

func TestRun_Cancelled(t *testing.T) {
	cfg, _ := setup(t, schemas)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Run(ctx, cfg, zap.NewNop())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestWatch_RegeneratesOnSchemaChange(t *testing.T) {
	cfg, dir := setup(t, schemas)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- Watch(ctx, cfg, zap.NewNop()) }()

	out := filepath.Join(dir, "shape_match.go")
	require.Eventually(t, func() bool {
		_, err := os.Stat(out)
		return err == nil
	}, 5*time.Second, 10*time.Millisecond)

	updated := strings.Replace(schemas, "      - type: Circle\n", "      - type: Circle\n      - type: Triangle\n", 1)
	require.NoError(t, os.WriteFile(cfg.Schemas[0], []byte(updated), 0o644))

	require.Eventually(t, func() bool {
		src, err := os.ReadFile(out)
		return err == nil && strings.Contains(string(src), "triangle func(Triangle)")
	}, 5*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		require.Fail(t, "Watch did not return after cancellation")
	}
}

func TestWatcher_Relevant(t *testing.T) {
	w := &watcher{schemas: map[string]bool{"/s/unions.yaml": true}, suffix: "_match.go"}
	assert.True(t, w.relevant("/pkg/shapes.go"))
	assert.True(t, w.relevant("/s/unions.yaml"))
	assert.False(t, w.relevant("/pkg/shape_match.go"))
	assert.False(t, w.relevant("/pkg/shapes_test.go"))
	assert.False(t, w.relevant("/s/other.yaml"))
}
