package HeartWall

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/notargets/ibtargets/utils"
)

// Durations of the two half cycles of the wall motion
const (
	TPhase1 = 0.05
	TPhase2 = 0.05
	Period  = TPhase1 + TPhase2
)

type PhaseName uint8

const (
	PhaseA PhaseName = iota // phase 1 positions toward phase 2 positions
	PhaseB                  // phase 2 positions back toward phase 1 positions
)

func (p PhaseName) String() string {
	switch p {
	case PhaseA:
		return "PhaseA"
	case PhaseB:
		return "PhaseB"
	}
	return fmt.Sprintf("PhaseName(%d)", uint8(p))
}

// Phase wraps the simulation time onto the cycle and returns the active half
// cycle along with the normalized progress tau in [0,1] through it.
func Phase(currentTime float64) (phase PhaseName, tau float64) {
	t := math.Mod(currentTime, Period)
	if t < 0 {
		t += Period
	}
	if t <= TPhase1 {
		return PhaseA, t / TPhase1
	}
	return PhaseB, (t - TPhase1) / TPhase2
}

// Coefficients define the blend g(tau) between the two endpoint configurations:
//
//	g = A*tau^2                          tau <  Tau1
//	g = C*tau^3 + D*tau^2 + E*tau + H    Tau1 <= tau < Tau2
//	g = 1 - B*(tau-1)^2                  tau >= Tau2
//
// g(0) = 0 and g(1) = 1 hold for any A, B. The cubic is meant to match the
// value and slope of the end parabolas at Tau1 and Tau2, which is four linear
// conditions on C, D, E, H for a given A = B; DeriveCoefficients solves them.
type Coefficients struct {
	A, B, C, D, E, H float64
	Tau1, Tau2       float64
}

// LegacyCoefficients are the published heart tube constants, A = B = 1/0.365.
// They do not satisfy the matching conditions exactly, the value at Tau1 and
// Tau2 is off by about 2.5e-4. Jumps reports the mismatch.
var LegacyCoefficients = Coefficients{
	A:    2.739726027397260,
	B:    2.739726027397260,
	C:    -2.029426686960933,
	D:    3.044140030441400,
	E:    -0.015220700152207,
	H:    0.000253678335870,
	Tau1: 0.1,
	Tau2: 0.9,
}

func (c Coefficients) G(tau float64) float64 {
	switch {
	case tau < c.Tau1:
		return c.A * utils.POW(tau, 2)
	case tau < c.Tau2:
		return utils.Horner(tau, c.C, c.D, c.E, c.H)
	default:
		return -c.B*utils.POW(tau-1, 2) + 1
	}
}

// DG is dg/dtau.
func (c Coefficients) DG(tau float64) float64 {
	switch {
	case tau < c.Tau1:
		return 2 * c.A * tau
	case tau < c.Tau2:
		return utils.Horner(tau, 3*c.C, 2*c.D, c.E)
	default:
		return -2 * c.B * (tau - 1)
	}
}

// Jumps returns the value and slope discontinuities (right minus left limit)
// at Tau1 and Tau2.
func (c Coefficients) Jumps() (value, slope [2]float64) {
	var (
		cubic  = func(tau float64) float64 { return utils.Horner(tau, c.C, c.D, c.E, c.H) }
		dCubic = func(tau float64) float64 { return utils.Horner(tau, 3*c.C, 2*c.D, c.E) }
		t1, t2 = c.Tau1, c.Tau2
	)
	value[0] = cubic(t1) - c.A*t1*t1
	slope[0] = dCubic(t1) - 2*c.A*t1
	value[1] = (1 - c.B*utils.POW(t2-1, 2)) - cubic(t2)
	slope[1] = -2*c.B*(t2-1) - dCubic(t2)
	return
}

// DeriveCoefficients builds a blend with A = B = a whose cubic segment matches
// the value and slope of both end parabolas at tau1 and tau2.
func DeriveCoefficients(a, tau1, tau2 float64) (c Coefficients, err error) {
	if !(0 < tau1 && tau1 < tau2 && tau2 < 1) {
		err = fmt.Errorf("regime boundaries must satisfy 0 < tau1 < tau2 < 1, have %v, %v", tau1, tau2)
		return
	}
	var (
		A = mat.NewDense(4, 4, []float64{
			tau1 * tau1 * tau1, tau1 * tau1, tau1, 1,
			3 * tau1 * tau1, 2 * tau1, 1, 0,
			tau2 * tau2 * tau2, tau2 * tau2, tau2, 1,
			3 * tau2 * tau2, 2 * tau2, 1, 0,
		})
		rhs = mat.NewVecDense(4, []float64{
			a * tau1 * tau1,
			2 * a * tau1,
			1 - a*(tau2-1)*(tau2-1),
			-2 * a * (tau2 - 1),
		})
		x mat.VecDense
	)
	if err = x.SolveVec(A, rhs); err != nil {
		err = fmt.Errorf("unable to solve blend continuity system: %w", err)
		return
	}
	c = Coefficients{
		A: a, B: a,
		C: x.AtVec(0), D: x.AtVec(1), E: x.AtVec(2), H: x.AtVec(3),
		Tau1: tau1, Tau2: tau2,
	}
	return
}
