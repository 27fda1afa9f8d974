package pipeline_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"tabtrain/pkg/data"
	"tabtrain/pkg/pipeline"
	"tabtrain/pkg/stats"
)

func batchOf(features ...float64) *data.Batch {
	n := len(features)
	return &data.Batch{
		Features: mat.NewDense(n, 1, features),
		Labels:   mat.NewDense(n, 1, nil),
	}
}

func TestPipeline_ClipThenStandardize(t *testing.T) {
	t.Parallel()

	clip, err := stats.NewPercentileClipper(25, 75)
	require.NoError(t, err)
	std := stats.NewStandardScaler()
	p := pipeline.NewPipeline(clip, std)
	require.Equal(t, 2, p.Len())

	b := batchOf(5, 1, 4, 2, 3)
	require.NoError(t, p.Fit(b))
	// Fit works on a copy.
	require.Equal(t, []float64{5, 1, 4, 2, 3}, mat.Col(nil, 0, b.Features))
	// The scaler was fitted on clipped values [3.75 1.25 3.75 2 3].
	require.InDelta(t, 2.75, std.Mean[0], 1e-12)

	require.NoError(t, p.Transform(b))
	want := batchOf(3.75, 1.25, 3.75, 2, 3)
	require.NoError(t, std.Transform(want))
	require.True(t, mat.EqualApprox(want.Features, b.Features, 1e-12))
}

func TestPipeline_Errors(t *testing.T) {
	t.Parallel()

	p := pipeline.NewPipeline(stats.NewStandardScaler())
	err := p.Transform(batchOf(1, 2))
	require.ErrorIs(t, err, stats.ErrNotFitted)
	require.ErrorContains(t, err, "step 0")

	require.NoError(t, p.FitTransform(batchOf(1, 2)))
	wide := &data.Batch{Features: mat.NewDense(1, 2, []float64{1, 2}), Labels: mat.NewDense(1, 1, nil)}
	require.ErrorIs(t, p.Transform(wide), stats.ErrDimensionMismatch)
}

func TestPipeline_Empty(t *testing.T) {
	t.Parallel()

	p := pipeline.NewPipeline()
	b := batchOf(1, 2, 3)
	require.NoError(t, p.FitTransform(b))
	require.Equal(t, []float64{1, 2, 3}, mat.Col(nil, 0, b.Features))
}
