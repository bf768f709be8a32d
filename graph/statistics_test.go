package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateStatistics_ConnectedLine(t *testing.T) {
	g := New(TraversalTime)
	for _, v := range []string{"a", "b", "c"} {
		require.NoError(t, g.AddVertex(v))
	}
	require.NoError(t, g.DefineEdgeWeight("a", "b", Constant(1), true))
	require.NoError(t, g.DefineEdgeWeight("b", "c", Constant(1), true))

	stats := CalculateStatistics(g)
	assert.Equal(t, 3, stats.VertexCount)
	assert.Equal(t, 2, stats.EdgeCount)
	assert.True(t, stats.IsConnected)
	assert.Equal(t, 1, stats.ConnectedComponents)
}

func TestCalculateStatistics_DisconnectedVertex(t *testing.T) {
	g := New(TraversalTime)
	for _, v := range []string{"a", "b", "isolated"} {
		require.NoError(t, g.AddVertex(v))
	}
	require.NoError(t, g.DefineEdgeWeight("a", "b", Constant(1), true))

	stats := CalculateStatistics(g)
	assert.False(t, stats.IsConnected)
	assert.Equal(t, 2, stats.ConnectedComponents)
}

func TestCalculateStatistics_EmptyGraph(t *testing.T) {
	g := New(TraversalTime)
	stats := CalculateStatistics(g)
	assert.Equal(t, 0, stats.VertexCount)
	assert.Equal(t, 0, stats.MinOutDegree)
	assert.True(t, stats.IsConnected)
}

func TestCalculateStatistics_Degrees(t *testing.T) {
	g := New(TraversalTime)
	for _, v := range []string{"a", "b", "c"} {
		require.NoError(t, g.AddVertex(v))
	}
	require.NoError(t, g.DefineEdgeWeight("a", "b", Constant(1), true))
	require.NoError(t, g.DefineEdgeWeight("a", "c", Constant(1), true))

	stats := CalculateStatistics(g)
	assert.Equal(t, 2, stats.MaxOutDegree)
	assert.Equal(t, 0, stats.MinOutDegree)
}
