package HeartWall

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/ibtargets/types"
)

const refContents = `0.0 0.0 1.0 2.0
0.5 0.5 0.5 -0.5
-1.0 2.0 3.0 -4.0
`

var (
	refPhase1 = [][2]float64{{0, 0}, {0.5, 0.5}, {-1, 2}}
	refPhase2 = [][2]float64{{1, 2}, {0.5, -0.5}, {3, -4}}
)

func writeReference(t *testing.T, contents string) (path string) {
	path = filepath.Join(t.TempDir(), "All_Positions.txt")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0644))
	return
}

func newTargets(t *testing.T) (tt *types.TargetTable) {
	var err error
	tt, err = types.NewTargetTable([]types.TargetPoint{
		{ID: 1, OriginalX: 0.1, OriginalY: 0.1, Stiffness: 1.e4},
		{ID: 2, OriginalX: 0.2, OriginalY: 0.2, Stiffness: 2.e4},
		{ID: 3, OriginalX: 0.3, OriginalY: 0.3, Stiffness: 3.e4},
	})
	require.NoError(t, err)
	return
}

func TestPhase(t *testing.T) {
	var (
		tol = 1.e-12
	)
	ph, tau := Phase(0)
	assert.Equal(t, PhaseA, ph)
	assert.Equal(t, 0., tau)
	ph, tau = Phase(0.025)
	assert.Equal(t, PhaseA, ph)
	assert.InDelta(t, 0.5, tau, tol)
	ph, tau = Phase(0.05)
	assert.Equal(t, PhaseA, ph)
	assert.Equal(t, 1., tau)
	ph, tau = Phase(0.075)
	assert.Equal(t, PhaseB, ph)
	assert.InDelta(t, 0.5, tau, tol)
	ph, tau = Phase(0.1)
	assert.Equal(t, PhaseA, ph)
	assert.Equal(t, 0., tau)
	// Negative times wrap onto the cycle
	ph, tau = Phase(-0.025)
	assert.Equal(t, PhaseB, ph)
	assert.InDelta(t, 0.5, tau, tol)
	assert.Equal(t, "PhaseB", PhaseB.String())
}

func TestBlend(t *testing.T) {
	c := LegacyCoefficients
	{ // End points are exact
		assert.Equal(t, 0., c.G(0))
		assert.Equal(t, 1., c.G(1))
		assert.Equal(t, 0., c.DG(0))
		assert.Equal(t, 0., c.DG(1))
	}
	{ // Regime selection
		assert.InDelta(t, c.A*0.05*0.05, c.G(0.05), 1.e-15)
		assert.InDelta(t, c.C*0.125+c.D*0.25+c.E*0.5+c.H, c.G(0.5), 1.e-15)
		assert.InDelta(t, 1-c.B*0.05*0.05, c.G(0.95), 1.e-15)
	}
	{ // The legacy constants are rounded: small but nonzero boundary jumps
		value, slope := c.Jumps()
		for i := 0; i < 2; i++ {
			assert.Less(t, math.Abs(value[i]), 3.e-4)
			assert.Less(t, math.Abs(slope[i]), 2.e-2)
		}
		assert.InDelta(t, c.G(0.1)-c.A*0.01, value[0], 1.e-15)
	}
	{ // Non decreasing apart from the boundary jumps
		prev := c.G(0)
		for i := 1; i <= 1000; i++ {
			g := c.G(float64(i) / 1000)
			assert.GreaterOrEqual(t, g, prev-3.e-4)
			prev = g
		}
	}
}

func TestDeriveCoefficients(t *testing.T) {
	c, err := DeriveCoefficients(LegacyCoefficients.A, 0.1, 0.9)
	require.NoError(t, err)
	value, slope := c.Jumps()
	for i := 0; i < 2; i++ {
		assert.InDelta(t, 0, value[i], 1.e-9)
		assert.InDelta(t, 0, slope[i], 1.e-9)
	}
	// Continuity checked from both sides of each boundary
	for _, tb := range []float64{0.1, 0.9} {
		eps := 1.e-10
		assert.InDelta(t, c.G(tb-eps), c.G(tb+eps), 1.e-9)
		assert.InDelta(t, c.DG(tb-eps), c.DG(tb+eps), 1.e-8)
	}
	assert.Equal(t, 0., c.G(0))
	assert.Equal(t, 1., c.G(1))
	// Symmetric blend passes through the midpoint
	assert.InDelta(t, 0.5, c.G(0.5), 1.e-12)

	_, err = DeriveCoefficients(1, 0.9, 0.1)
	assert.Error(t, err)
	_, err = DeriveCoefficients(1, 0, 0.5)
	assert.Error(t, err)
}

func TestUpdateBoundaries(t *testing.T) {
	var (
		ref = writeReference(t, refContents)
		u   = NewUpdater()
		tol = 1.e-14
	)
	check := func(currentTime float64, want [][2]float64) {
		tt := newTargets(t)
		out, err := u.Update(1.e-4, currentTime, tt, ref)
		require.NoError(t, err)
		assert.Same(t, tt, out)
		for i, tp := range out.Points {
			assert.InDelta(t, want[i][0], tp.X, tol, "time %v, ID %d", currentTime, tp.ID)
			assert.InDelta(t, want[i][1], tp.Y, tol, "time %v, ID %d", currentTime, tp.ID)
		}
	}
	check(0, refPhase1)
	check(0.05, refPhase2)
	check(0.1, refPhase1)

	// Middle of phase A, blended toward phase 2
	tt := newTargets(t)
	_, err := u.Update(1.e-4, 0.025, tt, ref)
	require.NoError(t, err)
	g := LegacyCoefficients.G(0.5)
	for i, tp := range tt.Points {
		assert.InDelta(t, refPhase1[i][0]+g*(refPhase2[i][0]-refPhase1[i][0]), tp.X, 1.e-12)
		assert.InDelta(t, refPhase1[i][1]+g*(refPhase2[i][1]-refPhase1[i][1]), tp.Y, 1.e-12)
	}
	// Phase B runs back from phase 2 toward phase 1
	tt = newTargets(t)
	_, err = u.Update(1.e-4, 0.06, tt, ref)
	require.NoError(t, err)
	g = LegacyCoefficients.G(0.2)
	for i, tp := range tt.Points {
		assert.InDelta(t, refPhase2[i][0]+g*(refPhase1[i][0]-refPhase2[i][0]), tp.X, 1.e-12)
		assert.InDelta(t, refPhase2[i][1]+g*(refPhase1[i][1]-refPhase2[i][1]), tp.Y, 1.e-12)
	}
}

func TestUpdateProperties(t *testing.T) {
	var (
		ref = writeReference(t, refContents)
		u   = NewUpdater()
	)
	{ // Periodicity
		for _, tm := range []float64{0.013, 0.03, 0.07, 0.0875} {
			tt1, tt2 := newTargets(t), newTargets(t)
			_, err := u.Update(1.e-4, tm, tt1, ref)
			require.NoError(t, err)
			_, err = u.Update(1.e-4, tm+Period, tt2, ref)
			require.NoError(t, err)
			for i := range tt1.Points {
				assert.InDelta(t, tt1.Points[i].X, tt2.Points[i].X, 1.e-9)
				assert.InDelta(t, tt1.Points[i].Y, tt2.Points[i].Y, 1.e-9)
			}
		}
	}
	{ // Only positions change, dt has no effect
		tt1, tt2 := newTargets(t), newTargets(t)
		orig := tt1.Clone()
		_, err := u.Update(1.e-4, 0.042, tt1, ref)
		require.NoError(t, err)
		_, err = u.Update(10, 0.042, tt2, ref)
		require.NoError(t, err)
		for i, tp := range tt1.Points {
			assert.Equal(t, orig.Points[i].ID, tp.ID)
			assert.Equal(t, orig.Points[i].Stiffness, tp.Stiffness)
			assert.Equal(t, orig.Points[i].OriginalX, tp.OriginalX)
			assert.Equal(t, orig.Points[i].OriginalY, tp.OriginalY)
			assert.Equal(t, tt2.Points[i], tp)
		}
	}
	{ // Fewer targets than reference rows uses the leading rows
		tt, err := types.NewTargetTable([]types.TargetPoint{{ID: 1}})
		require.NoError(t, err)
		_, err = u.Update(0, 0.05, tt, ref)
		require.NoError(t, err)
		assert.InDelta(t, refPhase2[0][0], tt.Points[0].X, 1.e-14)
		assert.InDelta(t, refPhase2[0][1], tt.Points[0].Y, 1.e-14)
	}
}

func TestUpdateErrors(t *testing.T) {
	u := NewUpdater()
	{ // Non finite times leave the table untouched
		ref := writeReference(t, refContents)
		for _, tm := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
			tt := newTargets(t)
			orig := tt.Clone()
			out, err := u.Update(0, tm, tt, ref)
			assert.Nil(t, out)
			assert.Error(t, err)
			assert.Equal(t, orig.Points, tt.Points)
		}
	}
	{ // Malformed reference row leaves the table untouched
		ref := writeReference(t, "0.0 0.0 1.0 2.0\n0.5 0.5 0.5\n")
		tt := newTargets(t)
		orig := tt.Clone()
		out, err := u.Update(0, 0.025, tt, ref)
		assert.Nil(t, out)
		assert.True(t, errors.Is(err, types.ErrMalformedInput))
		assert.Equal(t, orig.Points, tt.Points)
	}
	{ // More targets than reference rows
		ref := writeReference(t, "0.0 0.0 1.0 2.0\n0.5 0.5 0.5 -0.5\n")
		tt := newTargets(t)
		orig := tt.Clone()
		_, err := u.Update(0, 0.025, tt, ref)
		assert.True(t, errors.Is(err, types.ErrIndexOutOfRange))
		assert.Equal(t, orig.Points, tt.Points)
	}
	{
		_, err := u.Update(0, 0.025, newTargets(t), filepath.Join(t.TempDir(), "none.txt"))
		assert.True(t, errors.Is(err, types.ErrFileNotFound))
	}
	{
		cached := NewUpdater(WithReferenceCache())
		_, err := cached.Update(0, 0.025, newTargets(t), filepath.Join(t.TempDir(), "none.txt"))
		assert.True(t, errors.Is(err, types.ErrFileNotFound))
	}
}

func TestReferenceCache(t *testing.T) {
	var (
		ref    = writeReference(t, refContents)
		plain  = NewUpdater()
		cached = NewUpdater(WithReferenceCache())
	)
	for _, tm := range []float64{0, 0.01, 0.033, 0.05, 0.061, 0.099} {
		tt1, tt2 := newTargets(t), newTargets(t)
		_, err := plain.Update(0, tm, tt1, ref)
		require.NoError(t, err)
		_, err = cached.Update(0, tm, tt2, ref)
		require.NoError(t, err)
		assert.Equal(t, tt1.Points, tt2.Points)
	}

	// Same size and timestamp: the cached copy is served
	fi, err := os.Stat(ref)
	require.NoError(t, err)
	swapped := "1.0 2.0 0.0 0.0\n0.5 -0.5 0.5 0.5\n3.0 -4.0 -1.0 2.0\n"
	require.Equal(t, len(refContents), len(swapped))
	require.NoError(t, os.WriteFile(ref, []byte(swapped), 0644))
	require.NoError(t, os.Chtimes(ref, fi.ModTime(), fi.ModTime()))
	tt := newTargets(t)
	_, err = cached.Update(0, 0, tt, ref)
	require.NoError(t, err)
	assert.InDelta(t, refPhase1[0][0], tt.Points[0].X, 1.e-14)
	assert.InDelta(t, refPhase1[0][1], tt.Points[0].Y, 1.e-14)

	// A new timestamp invalidates it
	later := fi.ModTime().Add(2 * time.Second)
	require.NoError(t, os.Chtimes(ref, later, later))
	tt = newTargets(t)
	_, err = cached.Update(0, 0, tt, ref)
	require.NoError(t, err)
	assert.InDelta(t, refPhase2[0][0], tt.Points[0].X, 1.e-14)
	assert.InDelta(t, refPhase2[0][1], tt.Points[0].Y, 1.e-14)
}

func TestWithCoefficients(t *testing.T) {
	c, err := DeriveCoefficients(2, 0.2, 0.8)
	require.NoError(t, err)
	u := NewUpdater(WithCoefficients(c))
	assert.Equal(t, c, u.Coefficients())
	ref := writeReference(t, refContents)
	tt := newTargets(t)
	_, err = u.Update(0, 0.025, tt, ref)
	require.NoError(t, err)
	g := c.G(0.5)
	assert.InDelta(t, refPhase1[0][0]+g*(refPhase2[0][0]-refPhase1[0][0]), tt.Points[0].X, 1.e-12)
}
