package goswitch_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	goswitch "github.com/reoring/goswitch"
)

func TestTask_AwaitHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	called := false
	_, err := goswitch.Task[int](func(context.Context) (int, error) { called = true; return 1, nil }).Await(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called, "task must not run on a cancelled context")
	assert.ErrorIs(t, goswitch.Done().Run(ctx), context.Canceled)
}

func TestTask_StartRunsOnce(t *testing.T) {
	var runs atomic.Int32
	task := goswitch.Start(context.Background(), func(context.Context) (int, error) {
		runs.Add(1)
		return 7, nil
	})
	for range 3 {
		v, err := task.Await(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 7, v)
	}
	assert.Equal(t, int32(1), runs.Load())
}

func TestTask_StartWaitRespectsWaitContext(t *testing.T) {
	release := make(chan struct{})
	task := goswitch.Start(context.Background(), func(context.Context) (int, error) {
		<-release
		return 1, nil
	})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Millisecond)
	defer cancel()
	_, err := task.Await(ctx)
	require.ErrorIs(t, err, context.DeadlineExceeded)

	close(release)
	v, err := task.Await(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, v)
}

func TestTask_Memoize(t *testing.T) {
	var runs int
	task := goswitch.Memoize(goswitch.Task[int](func(context.Context) (int, error) { runs++; return runs, nil }))
	a, _ := task.Await(context.Background())
	b, _ := task.Await(context.Background())
	assert.Equal(t, 1, a)
	assert.Equal(t, 1, b)
	assert.Equal(t, 1, runs)
}

func TestTask_ThenChains(t *testing.T) {
	ctx := context.Background()
	n, err := goswitch.Then(goswitch.Completed(2), func(v int) int { return v * 10 }).Await(ctx)
	require.NoError(t, err)
	assert.Equal(t, 20, n)

	n, err = goswitch.ThenAsync(goswitch.Completed(2), func(v int) goswitch.Task[int] { return goswitch.Completed(v + 1) }).Await(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	boom := errors.New("boom")
	continued := false
	_, err = goswitch.Then(goswitch.Failed[int](boom), func(v int) int { continued = true; return v }).Await(ctx)
	assert.ErrorIs(t, err, boom)
	assert.False(t, continued, "failed subject must not reach the continuation")

	var seen int
	require.NoError(t, goswitch.ThenDo(goswitch.Completed(5), func(v int) { seen = v }).Run(ctx))
	assert.Equal(t, 5, seen)

	err = goswitch.ThenDoAsync(goswitch.Completed(5), func(int) goswitch.Action { return goswitch.FailedAction(boom) }).Run(ctx)
	assert.ErrorIs(t, err, boom)
}

func TestResultAsync_ResolutionOrder(t *testing.T) {
	ctx := context.Background()
	var order []string
	subject := goswitch.Task[goswitch.Result[int, string]](func(context.Context) (goswitch.Result[int, string], error) {
		order = append(order, "subject")
		return goswitch.Ok[int, string](4), nil
	})
	cont := func(v int) goswitch.Task[goswitch.Result[int, string]] {
		order = append(order, "bind")
		return func(context.Context) (goswitch.Result[int, string], error) {
			order = append(order, "continuation")
			return half(v), nil
		}
	}
	r, err := goswitch.BindTaskAsync(subject, cont).Await(ctx)
	require.NoError(t, err)
	assert.Equal(t, goswitch.Ok[int, string](2), r)
	assert.Equal(t, []string{"subject", "bind", "continuation"}, order)
}

func TestResultAsync_Combinators(t *testing.T) {
	ctx := context.Background()
	okTask := goswitch.FromResult(goswitch.Ok[int, string](3))
	errTask := goswitch.FromResult(goswitch.Error[int]("bad"))

	m, _ := goswitch.MapTask(okTask, func(v int) int { return v + 1 }).Await(ctx)
	assert.Equal(t, goswitch.Ok[int, string](4), m, "MapTask")
	m, _ = goswitch.MapTaskAsync(errTask, func(v int) goswitch.Task[int] { return goswitch.Completed(v + 1) }).Await(ctx)
	assert.Equal(t, goswitch.Error[int]("bad"), m, "MapTaskAsync on error")
	m, _ = goswitch.MapAsync(goswitch.Ok[int, string](1), func(v int) goswitch.Task[int] { return goswitch.Completed(v * 5) }).Await(ctx)
	assert.Equal(t, goswitch.Ok[int, string](5), m, "MapAsync")
	m, _ = goswitch.BindTask(okTask, half).Await(ctx)
	assert.Equal(t, goswitch.Error[int]("odd: 3"), m, "BindTask")

	calledOk := false
	s, _ := goswitch.MatchAsync(goswitch.Error[int]("bad"),
		func(int) goswitch.Task[string] { calledOk = true; return goswitch.Completed("ok") },
		func(e string) goswitch.Task[string] { return goswitch.Completed("err " + e) },
	).Await(ctx)
	assert.Equal(t, "err bad", s)
	assert.False(t, calledOk, "ok branch must not be invoked")

	s, _ = goswitch.MatchTask(okTask, func(v int) string { return "ok" }, func(string) string { return "err" }).Await(ctx)
	assert.Equal(t, "ok", s)
	s, _ = goswitch.MatchTaskAsync(errTask,
		func(int) goswitch.Task[string] { return goswitch.Completed("ok") },
		func(e string) goswitch.Task[string] { return goswitch.Completed(e) },
	).Await(ctx)
	assert.Equal(t, "bad", s)
}

func TestTryTask(t *testing.T) {
	r, err := goswitch.TryTask(goswitch.Failed[int](errors.New("down")), goswitch.ErrorMessage).Await(context.Background())
	require.NoError(t, err, "TryTask must not fail")
	assert.Equal(t, goswitch.Error[int]("down"), r)
}
