package sweep

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OpenTraceLab/magnetorquer/internal/config"
	"github.com/OpenTraceLab/magnetorquer/pkg/spiral"
)

func smallConfig() *config.Config {
	cfg := config.Defaults()
	cfg.Spiral.XRadius, cfg.Spiral.YRadius = 0.02, 0.02
	cfg.Spiral.InnerRadius = 0.005
	cfg.Spiral.AngleStep = 0.2
	return cfg
}

func TestRun(t *testing.T) {
	cfg := smallConfig()
	results, err := Run(context.Background(), cfg, []int{2, 5, 4, 1}, 3)
	require.NoError(t, err)
	require.Len(t, results, 4)

	assert.Equal(t, 2, results[0].Layers)
	assert.Equal(t, 2, results[0].Realized)
	assert.Equal(t, 5, results[1].Layers)
	assert.Equal(t, 4, results[1].Realized)
	assert.Equal(t, 4, results[2].Realized)

	for _, r := range results[:3] {
		require.NoError(t, r.Err)
		require.NotNil(t, r.Report)
		require.Len(t, r.Report.Nets, 1)
		assert.NoError(t, r.Report.Nets[0].Continuity)
	}

	// Twice the layers means roughly twice the copper.
	l2 := results[0].Report.Nets[0].Length
	l4 := results[2].Report.Nets[0].Length
	assert.Greater(t, l4, 1.5*l2)

	// One bad variant does not sink the rest.
	assert.Error(t, results[3].Err)
	assert.Nil(t, results[3].Report)

	// The base configuration is left alone.
	assert.Equal(t, 6, cfg.Board.Layers)
}

func TestRunMatchesSequential(t *testing.T) {
	cfg := smallConfig()
	par, err := Run(context.Background(), cfg, []int{2, 4, 6}, 0)
	require.NoError(t, err)
	seq, err := Run(context.Background(), cfg, []int{2, 4, 6}, 1)
	require.NoError(t, err)
	assert.Equal(t, seq, par)
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Run(ctx, smallConfig(), []int{2, 4}, 2)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunInvalidLayout(t *testing.T) {
	cfg := smallConfig()
	cfg.Spiral.InnerRadius = 0.019
	results, err := Run(context.Background(), cfg, []int{2}, 1)
	require.NoError(t, err)
	assert.ErrorIs(t, results[0].Err, spiral.ErrInvalidParameter)
}
