// Copyright 2020 ConsenSys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package poly implements dense polynomials over the BLS12-381 scalar field,
// tagged with the basis their values are expressed in.
//
// Three bases are supported:
//   - Monomial: values are the coefficients c₀,…,c_{d} of Σ cᵢ Xⁱ
//   - Lagrange (size n): values at the n-th roots of unity ω⁰,…,ωⁿ⁻¹
//   - LagrangeCoset (size 4n): values at h·μ⁰,…,h·μ⁴ⁿ⁻¹ where μ⁴ⁿ=1 and h is
//     a coset offset with hⁿ≠1, so the vanishing polynomial Xⁿ-1 is nonzero
//     on the whole evaluation domain
//
// Arithmetic is permitted only between polynomials of the same basis and
// size; a mismatch is a programmer error and panics. Data-dependent failures
// (pointwise division by zero) are returned as errors.
package poly

import (
	"errors"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr/fft"

	"github.com/TalDerei/plonkathon/internal/utils"
)

// Basis tags the evaluation basis of a Polynomial.
type Basis uint8

const (
	Monomial Basis = iota
	Lagrange
	LagrangeCoset
)

var (
	ErrBasisMismatch = errors.New("poly: operands must share the same basis")
	ErrSizeMismatch  = errors.New("poly: operands must share the same size")
	ErrDivideByZero  = errors.New("poly: pointwise division by zero")
)

// Polynomial is a dense polynomial in the basis indicated by its tag.
type Polynomial struct {
	Values []fr.Element
	Basis  Basis
}

// New builds a polynomial from values, taking ownership of the slice.
func New(values []fr.Element, basis Basis) *Polynomial {
	return &Polynomial{Values: values, Basis: basis}
}

// NewConstant builds the constant polynomial of the given basis and size.
// In an evaluation basis every value is v; in the monomial basis only the
// degree-zero coefficient is set.
func NewConstant(v fr.Element, basis Basis, size int) *Polynomial {
	values := make([]fr.Element, size)
	if basis == Monomial {
		values[0].Set(&v)
	} else {
		for i := range values {
			values[i].Set(&v)
		}
	}
	return &Polynomial{Values: values, Basis: basis}
}

// Clone returns a deep copy of p.
func (p *Polynomial) Clone() *Polynomial {
	values := make([]fr.Element, len(p.Values))
	copy(values, p.Values)
	return &Polynomial{Values: values, Basis: p.Basis}
}

// Size returns the number of values (domain size, or coefficient count).
func (p *Polynomial) Size() int {
	return len(p.Values)
}

// Equal reports whether p and q have the same basis, size and values.
func (p *Polynomial) Equal(q *Polynomial) bool {
	if p.Basis != q.Basis || len(p.Values) != len(q.Values) {
		return false
	}
	for i := range p.Values {
		if !p.Values[i].Equal(&q.Values[i]) {
			return false
		}
	}
	return true
}

func (p *Polynomial) mustMatch(q *Polynomial) {
	if p.Basis != q.Basis {
		panic(ErrBasisMismatch)
	}
	if len(p.Values) != len(q.Values) {
		panic(ErrSizeMismatch)
	}
}

// Add returns p + q.
func (p *Polynomial) Add(q *Polynomial) *Polynomial {
	p.mustMatch(q)
	res := make([]fr.Element, len(p.Values))
	for i := range res {
		res[i].Add(&p.Values[i], &q.Values[i])
	}
	return &Polynomial{Values: res, Basis: p.Basis}
}

// Sub returns p - q.
func (p *Polynomial) Sub(q *Polynomial) *Polynomial {
	p.mustMatch(q)
	res := make([]fr.Element, len(p.Values))
	for i := range res {
		res[i].Sub(&p.Values[i], &q.Values[i])
	}
	return &Polynomial{Values: res, Basis: p.Basis}
}

// Mul returns the pointwise product p·q. Only meaningful in an evaluation
// basis; multiplying monomial coefficient vectors pointwise is rejected.
func (p *Polynomial) Mul(q *Polynomial) *Polynomial {
	if p.Basis == Monomial {
		panic(ErrBasisMismatch)
	}
	p.mustMatch(q)
	res := make([]fr.Element, len(p.Values))
	utils.Parallelize(len(res), func(start, end int) {
		for i := start; i < end; i++ {
			res[i].Mul(&p.Values[i], &q.Values[i])
		}
	})
	return &Polynomial{Values: res, Basis: p.Basis}
}

// Div returns the pointwise quotient p/q in an evaluation basis. Every value
// of q must be nonzero on the domain; a zero divisor returns ErrDivideByZero.
func (p *Polynomial) Div(q *Polynomial) (*Polynomial, error) {
	if p.Basis == Monomial {
		panic(ErrBasisMismatch)
	}
	p.mustMatch(q)
	for i := range q.Values {
		if q.Values[i].IsZero() {
			return nil, ErrDivideByZero
		}
	}
	invs := fr.BatchInvert(q.Values)
	res := make([]fr.Element, len(p.Values))
	utils.Parallelize(len(res), func(start, end int) {
		for i := start; i < end; i++ {
			res[i].Mul(&p.Values[i], &invs[i])
		}
	})
	return &Polynomial{Values: res, Basis: p.Basis}, nil
}

// ScalarMul returns s·p.
func (p *Polynomial) ScalarMul(s fr.Element) *Polynomial {
	res := make([]fr.Element, len(p.Values))
	for i := range res {
		res[i].Mul(&p.Values[i], &s)
	}
	return &Polynomial{Values: res, Basis: p.Basis}
}

// AddConstant returns p + s, lifting the scalar to the constant polynomial
// of p's basis and size.
func (p *Polynomial) AddConstant(s fr.Element) *Polynomial {
	res := make([]fr.Element, len(p.Values))
	copy(res, p.Values)
	if p.Basis == Monomial {
		res[0].Add(&res[0], &s)
	} else {
		for i := range res {
			res[i].Add(&res[i], &s)
		}
	}
	return &Polynomial{Values: res, Basis: p.Basis}
}

// SubConstant returns p - s.
func (p *Polynomial) SubConstant(s fr.Element) *Polynomial {
	var neg fr.Element
	neg.Neg(&s)
	return p.AddConstant(neg)
}

// Shift returns P(X·ωᵏ) on the same Lagrange domain, i.e. the values rotated
// left by k.
func (p *Polynomial) Shift(k int) *Polynomial {
	if p.Basis != Lagrange {
		panic(ErrBasisMismatch)
	}
	n := len(p.Values)
	k = ((k % n) + n) % n
	res := make([]fr.Element, n)
	copy(res, p.Values[k:])
	copy(res[n-k:], p.Values[:k])
	return &Polynomial{Values: res, Basis: Lagrange}
}

// Evaluate computes P(z) for a Lagrange polynomial at an arbitrary point,
// using the barycentric formula
//
//	P(z) = (zⁿ-1)/n · Σᵢ vᵢ·ωⁱ/(z-ωⁱ)
//
// When z coincides with a root of unity the value is read off directly,
// avoiding the 0/0 in the closed form. d must be the domain of p.
func (p *Polynomial) Evaluate(z fr.Element, d *fft.Domain) fr.Element {
	if p.Basis != Lagrange {
		panic(ErrBasisMismatch)
	}
	n := len(p.Values)
	if uint64(n) != d.Cardinality {
		panic(ErrSizeMismatch)
	}

	dens := make([]fr.Element, n)
	w := fr.One()
	for i := 0; i < n; i++ {
		dens[i].Sub(&z, &w)
		if dens[i].IsZero() {
			return p.Values[i]
		}
		w.Mul(&w, &d.Generator)
	}
	invs := fr.BatchInvert(dens)

	var res, t fr.Element
	w = fr.One()
	for i := 0; i < n; i++ {
		t.Mul(&p.Values[i], &w).Mul(&t, &invs[i])
		res.Add(&res, &t)
		w.Mul(&w, &d.Generator)
	}

	var zn, one fr.Element
	one.SetOne()
	zn.Exp(z, big.NewInt(int64(n))).Sub(&zn, &one).Mul(&zn, &d.CardinalityInv)
	res.Mul(&res, &zn)
	return res
}

// ToMonomial converts a Lagrange polynomial to monomial coefficients via an
// inverse FFT on its domain. A monomial polynomial is returned as a copy.
func (p *Polynomial) ToMonomial(d *fft.Domain) *Polynomial {
	switch p.Basis {
	case Monomial:
		return p.Clone()
	case Lagrange:
		if uint64(len(p.Values)) != d.Cardinality {
			panic(ErrSizeMismatch)
		}
		res := make([]fr.Element, len(p.Values))
		copy(res, p.Values)
		d.FFTInverse(res, fft.DIF)
		fft.BitReverse(res)
		return &Polynomial{Values: res, Basis: Monomial}
	default:
		// the coset offset is needed to undo a coset extension
		panic(ErrBasisMismatch)
	}
}

// ToLagrange converts a monomial polynomial to its values on the domain.
func (p *Polynomial) ToLagrange(d *fft.Domain) *Polynomial {
	switch p.Basis {
	case Lagrange:
		return p.Clone()
	case Monomial:
		if uint64(len(p.Values)) != d.Cardinality {
			panic(ErrSizeMismatch)
		}
		res := make([]fr.Element, len(p.Values))
		copy(res, p.Values)
		d.FFT(res, fft.DIF)
		fft.BitReverse(res)
		return &Polynomial{Values: res, Basis: Lagrange}
	default:
		panic(ErrBasisMismatch)
	}
}

// ToLagrangeCoset expands p (Lagrange or monomial, size n = small.Cardinality)
// to its values on the coset h·μⁱ of the big domain: iFFT to monomial form,
// scale the i-th coefficient by hⁱ, zero-pad to the big domain size and FFT.
func (p *Polynomial) ToLagrangeCoset(h fr.Element, small, big *fft.Domain) *Polynomial {
	var coeffs []fr.Element
	switch p.Basis {
	case Monomial:
		coeffs = p.Values
	case Lagrange:
		coeffs = p.ToMonomial(small).Values
	default:
		panic(ErrBasisMismatch)
	}
	if uint64(len(coeffs)) > big.Cardinality {
		panic(ErrSizeMismatch)
	}

	res := make([]fr.Element, big.Cardinality)
	hi := fr.One()
	for i := range coeffs {
		res[i].Mul(&coeffs[i], &hi)
		hi.Mul(&hi, &h)
	}
	big.FFT(res, fft.DIF)
	fft.BitReverse(res)
	return &Polynomial{Values: res, Basis: LagrangeCoset}
}

// CosetToMonomial undoes ToLagrangeCoset: iFFT on the big domain, then scale
// the i-th coefficient by h⁻ⁱ. The result is a monomial polynomial of the
// big domain size; the caller asserts whatever degree bound it expects.
func (p *Polynomial) CosetToMonomial(h fr.Element, big *fft.Domain) *Polynomial {
	if p.Basis != LagrangeCoset {
		panic(ErrBasisMismatch)
	}
	if uint64(len(p.Values)) != big.Cardinality {
		panic(ErrSizeMismatch)
	}
	res := make([]fr.Element, len(p.Values))
	copy(res, p.Values)
	big.FFTInverse(res, fft.DIF)
	fft.BitReverse(res)

	var hInv fr.Element
	hInv.Inverse(&h)
	hi := fr.One()
	for i := range res {
		res[i].Mul(&res[i], &hi)
		hi.Mul(&hi, &hInv)
	}
	return &Polynomial{Values: res, Basis: Monomial}
}
