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

package poly

import (
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr/fft"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/require"
)

const testSize = 8

func elements(vals []uint64) []fr.Element {
	res := make([]fr.Element, len(vals))
	for i, v := range vals {
		res[i].SetUint64(v)
	}
	return res
}

func evalHorner(coeffs []fr.Element, z fr.Element) fr.Element {
	var res fr.Element
	for i := len(coeffs) - 1; i >= 0; i-- {
		res.Mul(&res, &z).Add(&res, &coeffs[i])
	}
	return res
}

func TestRoundTrips(t *testing.T) {
	small := fft.NewDomain(testSize)
	big := fft.NewDomain(4 * testSize)

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50
	properties := gopter.NewProperties(parameters)

	properties.Property("ifft(fft(p)) == p", prop.ForAll(
		func(vals []uint64) bool {
			p := New(elements(vals), Monomial)
			return p.ToLagrange(small).ToMonomial(small).Equal(p)
		},
		gen.SliceOfN(testSize, gen.UInt64()),
	))

	properties.Property("coset extension round trips, top coefficients zero", prop.ForAll(
		func(vals []uint64, hSeed uint64) bool {
			p := New(elements(vals), Lagrange)
			var h fr.Element
			h.SetUint64(hSeed)
			if h.IsZero() {
				h.SetOne()
				h.Double(&h)
			}
			back := p.ToLagrangeCoset(h, small, big).CosetToMonomial(h, big)
			for i := testSize; i < 4*testSize; i++ {
				if !back.Values[i].IsZero() {
					return false
				}
			}
			return New(back.Values[:testSize], Monomial).ToLagrange(small).Equal(p)
		},
		gen.SliceOfN(testSize, gen.UInt64()),
		gen.UInt64(),
	))

	properties.Property("barycentric evaluation matches values at the roots of unity", prop.ForAll(
		func(vals []uint64) bool {
			p := New(elements(vals), Lagrange)
			w := fr.One()
			for i := 0; i < testSize; i++ {
				if got := p.Evaluate(w, small); !got.Equal(&p.Values[i]) {
					return false
				}
				w.Mul(&w, &small.Generator)
			}
			return true
		},
		gen.SliceOfN(testSize, gen.UInt64()),
	))

	properties.Property("barycentric evaluation matches Horner off the domain", prop.ForAll(
		func(vals []uint64, zSeed uint64) bool {
			p := New(elements(vals), Monomial)
			var z fr.Element
			z.SetUint64(zSeed)
			want := evalHorner(p.Values, z)
			got := p.ToLagrange(small).Evaluate(z, small)
			return got.Equal(&want)
		},
		gen.SliceOfN(testSize, gen.UInt64()),
		gen.UInt64(),
	))

	properties.Property("shift composes with evaluation: P.Shift(1)(z) == P(z·ω)", prop.ForAll(
		func(vals []uint64, zSeed uint64) bool {
			p := New(elements(vals), Lagrange)
			var z, zw fr.Element
			z.SetUint64(zSeed)
			zw.Mul(&z, &small.Generator)
			want := p.Evaluate(zw, small)
			got := p.Shift(1).Evaluate(z, small)
			return got.Equal(&want)
		},
		gen.SliceOfN(testSize, gen.UInt64()),
		gen.UInt64(),
	))

	properties.TestingRun(t)
}

func TestArithmetic(t *testing.T) {
	assert := require.New(t)

	p := New(elements([]uint64{1, 2, 3, 4}), Lagrange)
	q := New(elements([]uint64{5, 6, 7, 8}), Lagrange)

	sum := p.Add(q)
	assert.True(sum.Equal(New(elements([]uint64{6, 8, 10, 12}), Lagrange)))

	diff := q.Sub(p)
	assert.True(diff.Equal(NewConstant(elements([]uint64{4})[0], Lagrange, 4)))

	prod := p.Mul(q)
	assert.True(prod.Equal(New(elements([]uint64{5, 12, 21, 32}), Lagrange)))

	quot, err := prod.Div(q)
	assert.NoError(err)
	assert.True(quot.Equal(p))

	var s fr.Element
	s.SetUint64(10)
	assert.True(p.AddConstant(s).Equal(New(elements([]uint64{11, 12, 13, 14}), Lagrange)))
	assert.True(p.ScalarMul(s).Equal(New(elements([]uint64{10, 20, 30, 40}), Lagrange)))

	// scalar promotion in the monomial basis touches only the constant term
	m := New(elements([]uint64{1, 2}), Monomial)
	assert.True(m.AddConstant(s).Equal(New(elements([]uint64{11, 2}), Monomial)))
}

func TestDivByZero(t *testing.T) {
	assert := require.New(t)
	p := New(elements([]uint64{1, 2, 3, 4}), Lagrange)
	q := New(elements([]uint64{5, 0, 7, 8}), Lagrange)
	_, err := p.Div(q)
	assert.ErrorIs(err, ErrDivideByZero)
}

func TestBasisMismatchPanics(t *testing.T) {
	assert := require.New(t)
	p := New(elements([]uint64{1, 2, 3, 4}), Lagrange)
	q := New(elements([]uint64{1, 2, 3, 4}), Monomial)

	assert.PanicsWithValue(ErrBasisMismatch, func() { p.Add(q) })
	assert.PanicsWithValue(ErrBasisMismatch, func() { q.Mul(q) })
	assert.PanicsWithValue(ErrBasisMismatch, func() { q.Shift(1) })

	r := New(elements([]uint64{1, 2}), Lagrange)
	assert.PanicsWithValue(ErrSizeMismatch, func() { p.Add(r) })
}

func TestShiftRotates(t *testing.T) {
	assert := require.New(t)
	p := New(elements([]uint64{1, 2, 3, 4}), Lagrange)
	assert.True(p.Shift(1).Equal(New(elements([]uint64{2, 3, 4, 1}), Lagrange)))
	assert.True(p.Shift(4).Equal(p))
	assert.True(p.Shift(-1).Equal(New(elements([]uint64{4, 1, 2, 3}), Lagrange)))
}
