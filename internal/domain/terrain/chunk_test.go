package terrain

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChunks_RoundTripThroughAssemble(t *testing.T) {
	g, err := NewGenerator(NewPerlinField(21)).Build(context.Background(), 50)
	require.NoError(t, err)

	chunks := g.Chunks(16)
	require.Len(t, chunks, 16)
	last := chunks[len(chunks)-1]
	assert.Equal(t, ChunkCoord{X: 3, Y: 3}, last.Coord)
	assert.Equal(t, 2, last.Width)
	assert.Equal(t, 2, last.Height)

	back, err := AssembleGrid(50, 16, chunks)
	require.NoError(t, err)
	assert.Equal(t, g.Tiles(), back.Tiles())
}

func TestAssembleGrid_RejectsMissingChunks(t *testing.T) {
	g, err := NewGrid(8)
	require.NoError(t, err)
	chunks := g.Chunks(4)

	_, err = AssembleGrid(8, 4, chunks[:3])
	if !errors.Is(err, ErrInvalidDimensions) {
		t.Fatalf("expected ErrInvalidDimensions, got %v", err)
	}

	chunks[0].Tiles = chunks[0].Tiles[:5]
	_, err = AssembleGrid(8, 4, chunks)
	if !errors.Is(err, ErrInvalidDimensions) {
		t.Fatalf("expected ErrInvalidDimensions for short chunk, got %v", err)
	}
}
