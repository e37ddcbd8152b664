// Package decay maps exponential decay measurements onto a straight-line fit and back.
//
// A decay V(t) = V0 * e^(-Γt) becomes linear after taking the natural logarithm:
//
//	ln V = ln V0 - Γt   or   Y = A + B*X  with  X = t, Y = ln V, A = ln V0, B = -Γ
//
// Linearize performs the forward transform, including the uncertainty dY = dV/V, so the
// result can be handed to regression.FitWeighted. FromLinearFit performs the inverse
// transform on the fitted parameters and propagates their standard errors to first order:
//
//	Γ  = -B,        σ_Γ  = σ_B
//	V0 = e^A,       σ_V0 = V0 * σ_A
//
// The propagation ignores the covariance between A and B, matching the usual
// textbook treatment of semi-log fits.
package decay
