package printing

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewChromedpRenderer_Defaults(t *testing.T) {
	r, err := NewChromedpRenderer(nil)
	require.NoError(t, err)
	defer r.Close()

	assert.Equal(t, defaultChromeTimeout, r.config.DefaultTimeout)
	assert.Equal(t, defaultScale, r.config.Scale)
	assert.NotNil(t, r.logger)
	assert.NotNil(t, r.allocCtx)
}

func TestNewChromedpRenderer_CopiesConfig(t *testing.T) {
	cfg := &ChromedpConfig{Scale: 0.8}
	r, err := NewChromedpRenderer(cfg)
	require.NoError(t, err)
	defer r.Close()

	assert.Zero(t, cfg.DefaultTimeout, "caller config is left untouched")
	assert.Equal(t, 0.8, r.config.Scale)
}

func TestPrintParams(t *testing.T) {
	a4 := printParams(&RenderRequest{
		PaperSize: PaperSizeA4,
		Margins:   Margins{Top: 10, Right: 5, Bottom: 10, Left: 5},
	}, 1.0)
	assert.InDelta(t, 8.2677, a4.PaperWidth, 0.001)
	assert.InDelta(t, 11.6929, a4.PaperHeight, 0.001)
	assert.InDelta(t, 0.3937, a4.MarginTop, 0.001)
	assert.InDelta(t, 0.1968, a4.MarginLeft, 0.001)
	assert.False(t, a4.PreferCSSPageSize)
	assert.True(t, a4.PrintBackground)

	roll := printParams(&RenderRequest{PaperSize: PaperSizeReceipt80MM}, 0.9)
	assert.InDelta(t, 3.1496, roll.PaperWidth, 0.001)
	assert.InDelta(t, float64(continuousHeightMM)/mmPerInch, roll.PaperHeight, 0.001)
	assert.Zero(t, roll.MarginLeft)
	assert.Equal(t, 0.9, roll.Scale)
	assert.True(t, roll.PreferCSSPageSize)
}

func TestAllocatorOptions(t *testing.T) {
	assert.Len(t, allocatorOptions(true), len(allocatorOptions(false))+1)
}

func TestChromedpRenderer_RejectsInvalidRequest(t *testing.T) {
	r, err := NewChromedpRenderer(&ChromedpConfig{DefaultTimeout: time.Second})
	require.NoError(t, err)
	defer r.Close()

	_, err = r.Render(context.Background(), &RenderRequest{PaperSize: PaperSizeReceipt80MM})
	assert.True(t, IsRenderErrorCode(err, ErrCodeInvalidHTML))
}
