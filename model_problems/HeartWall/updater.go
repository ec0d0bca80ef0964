package HeartWall

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/notargets/ibtargets/geometry2D"
	"github.com/notargets/ibtargets/readfiles"
	"github.com/notargets/ibtargets/types"
	"github.com/notargets/ibtargets/utils"
)

// Updater moves target points between the two reference configurations of a
// pulsing wall. The zero value is not usable, use NewUpdater.
type Updater struct {
	coeffs Coefficients
	cache  *referenceCache
}

type Option func(*Updater)

// WithReferenceCache keeps the parsed reference file between calls until the
// file's modification time or size changes. Results are identical to
// re-reading the file every call.
func WithReferenceCache() Option {
	return func(u *Updater) { u.cache = &referenceCache{} }
}

func WithCoefficients(c Coefficients) Option {
	return func(u *Updater) { u.coeffs = c }
}

func NewUpdater(opts ...Option) (u *Updater) {
	u = &Updater{coeffs: LegacyCoefficients}
	for _, opt := range opts {
		opt(u)
	}
	return
}

func (u *Updater) Coefficients() Coefficients { return u.coeffs }

// Update sets the current position of every target point for currentTime
// from the reference file and returns the same table. dt is part of the
// driver callback signature and is not used for position targets.
// A non finite currentTime is rejected. On error the table is left unmodified.
func (u *Updater) Update(dt, currentTime float64, targets *types.TargetTable,
	referencePath string) (tt *types.TargetTable, err error) {
	var (
		phase1, phase2 geometry2D.PointSet
	)
	if !utils.IsFinite(currentTime) {
		return nil, fmt.Errorf("current time must be finite, have %v", currentTime)
	}
	if phase1, phase2, err = u.reference(referencePath); err != nil {
		return
	}
	if len(phase1) != len(phase2) {
		return nil, types.NewFileError(types.ErrMalformedInput, referencePath, 0,
			"phase 1 has %d points, phase 2 has %d", len(phase1), len(phase2))
	}
	if targets.MaxID() > len(phase1) {
		return nil, fmt.Errorf("%w: target point ID %d, reference file %s has %d rows",
			types.ErrIndexOutOfRange, targets.MaxID(), referencePath, len(phase1))
	}
	X, Y := u.Positions(currentTime, phase1[:targets.Len()], phase2[:targets.Len()])
	for i, tp := range targets.Points {
		if err = targets.SetPosition(tp.ID, X[i], Y[i]); err != nil {
			return
		}
	}
	return targets, nil
}

// Positions evaluates the blended configuration at currentTime.
func (u *Updater) Positions(currentTime float64, phase1, phase2 geometry2D.PointSet) (X, Y []float64) {
	var (
		phase, tau = Phase(currentTime)
		g          = u.coeffs.G(tau)
		start, end = phase1, phase2
	)
	if phase == PhaseB {
		start, end = phase2, phase1
	}
	sX, sY := start.XY()
	eX, eY := end.XY()
	X, Y = make([]float64, len(sX)), make([]float64, len(sY))
	// pos = start + g*(end - start)
	floats.AddScaledTo(X, sX, g, floats.SubTo(eX, eX, sX))
	floats.AddScaledTo(Y, sY, g, floats.SubTo(eY, eY, sY))
	return
}

func (u *Updater) reference(path string) (phase1, phase2 geometry2D.PointSet, err error) {
	if u.cache != nil {
		return u.cache.load(path)
	}
	return readfiles.ReadReferencePositions(path)
}
