package utils

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// ErrIllConditioned accompanies a least squares answer for a near singular system
var ErrIllConditioned = errors.New("ill conditioned system")

// ConditionLimit is the condition number above which RobustSolve3 stops
// trusting the LU solve
const ConditionLimit = 1.e12

// ConditionNumber is the ratio of the largest to smallest singular value
func ConditionNumber(A mat.Matrix) float64 {
	var svd mat.SVD
	if !svd.Factorize(A, mat.SVDNone) {
		return math.Inf(1)
	}
	values := svd.Values(nil)
	if len(values) == 0 || values[len(values)-1] < NODETOL*NODETOL {
		return math.Inf(1)
	}
	return values[0] / values[len(values)-1]
}

/*
RobustSolve3 solves A x = b for a 3x3 system given by rows. Well conditioned
systems are solved by LU, otherwise x is the minimum norm least squares answer
from the SVD pseudo inverse and err wraps ErrIllConditioned. x is usable in
both cases, a failed factorization leaves x zero.
*/
func RobustSolve3(A [3][3]float64, b [3]float64) (x [3]float64, cond float64, err error) {
	var (
		a   = mat.NewDense(3, 3, []float64{A[0][0], A[0][1], A[0][2], A[1][0], A[1][1], A[1][2], A[2][0], A[2][1], A[2][2]})
		bv  = mat.NewVecDense(3, []float64{b[0], b[1], b[2]})
		xv  mat.VecDense
		svd mat.SVD
	)
	if !svd.Factorize(a, mat.SVDFull) {
		err = fmt.Errorf("%w: SVD factorization failed", ErrIllConditioned)
		return x, math.Inf(1), err
	}
	values := svd.Values(nil)
	if values[2] > 0 {
		cond = values[0] / values[2]
	} else {
		cond = math.Inf(1)
	}
	if cond < ConditionLimit {
		var lu mat.LU
		lu.Factorize(a)
		if lu.SolveVecTo(&xv, false, bv) == nil {
			for i := range x {
				x[i] = xv.AtVec(i)
			}
			return
		}
	}
	var (
		u, v mat.Dense
		utb  mat.VecDense
		tol  = values[0] * NODETOL
	)
	svd.UTo(&u)
	svd.VTo(&v)
	utb.MulVec(u.T(), bv)
	for i, s := range values {
		if s > tol {
			utb.SetVec(i, utb.AtVec(i)/s)
		} else {
			utb.SetVec(i, 0)
		}
	}
	xv.MulVec(&v, &utb)
	for i := range x {
		x[i] = xv.AtVec(i)
	}
	err = fmt.Errorf("%w: condition number %.3g", ErrIllConditioned, cond)
	return
}
