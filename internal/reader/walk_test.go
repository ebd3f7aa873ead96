package reader

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWalk_DepthFirstInListingOrder(t *testing.T) {
	t.Parallel()
	root := openWidgets(t, widgets())

	var visited []string
	err := root.Walk(context.Background(), func(n Node, depth int) error {
		visited = append(visited, fmt.Sprintf("%d:%s", depth, n.Path()))
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{
		"1:src",
		"2:src/main.go",
		"2:src/util",
		"3:src/util/strings.go",
		"1:README.md",
	}, visited)
}

func TestWalk_SkipDir(t *testing.T) {
	t.Parallel()
	client := widgets()
	root := openWidgets(t, client)

	var visited []string
	err := root.Walk(context.Background(), func(n Node, _ int) error {
		visited = append(visited, n.Path())
		if n.Path() == "src/util" {
			return SkipDir
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"src", "src/main.go", "src/util", "README.md"}, visited)
	assert.Zero(t, client.callsFor("src/util"), "skipped directories are not expanded")
}

func TestWalk_StopsOnError(t *testing.T) {
	t.Parallel()
	stop := errors.New("stop")
	root := openWidgets(t, widgets())

	count := 0
	err := root.Walk(context.Background(), func(Node, int) error {
		count++
		if count == 2 {
			return stop
		}
		return nil
	})
	assert.Same(t, stop, err)
	assert.Equal(t, 2, count)
}

func TestWalk_FetchErrorKeepsLoadedSiblings(t *testing.T) {
	t.Parallel()
	boom := errors.New("GET src/util | returned http code 500")
	client := widgets()
	client.failures["src/util"] = []error{boom}
	root := openWidgets(t, client)
	ctx := context.Background()

	err := root.Walk(ctx, func(Node, int) error { return nil })
	assert.Same(t, boom, err)

	src, err := root.Find(ctx, "src")
	require.NoError(t, err)
	assert.True(t, root.Loaded())
	assert.True(t, src.(*Directory).Loaded())

	util, err := root.Lookup(ctx, "src/util")
	require.NoError(t, err)
	assert.False(t, util.(*Directory).Loaded())
}

func TestWalk_CanceledContext(t *testing.T) {
	t.Parallel()
	client := widgets()
	root := openWidgets(t, client)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := root.Walk(ctx, func(Node, int) error { return nil })
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, client.totalCalls())
}
