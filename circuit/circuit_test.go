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

package circuit

import (
	"bytes"
	"sort"
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr/fft"
	"github.com/stretchr/testify/require"

	"github.com/TalDerei/plonkathon/poly"
)

func TestNewRejectsNonPowerOfTwo(t *testing.T) {
	assert := require.New(t)
	for _, n := range []uint64{0, 3, 6, 12} {
		_, err := New(n)
		assert.ErrorIs(err, ErrNotPowerOfTwo)
	}
	_, err := New(8)
	assert.NoError(err)
}

func TestWireMap(t *testing.T) {
	assert := require.New(t)
	p, err := New(8)
	assert.NoError(err)
	assert.NoError(p.PublicInput("pub"))
	assert.NoError(p.AddGate(Mul("a", "b", "c")))

	wires := p.Wires()
	assert.Len(wires, 8)
	assert.Equal(Wires{L: "pub"}, wires[0])
	assert.Equal(Wires{L: "a", R: "b", O: "c"}, wires[1])
	// padding rows carry the zero wire
	assert.Equal(Wires{}, wires[7])

	assert.Equal([]string{"pub"}, p.PublicAssignments())
}

func TestPublicInputErrors(t *testing.T) {
	assert := require.New(t)
	p, _ := New(8)
	assert.NoError(p.PublicInput("x"))
	assert.ErrorIs(p.PublicInput("x"), ErrDuplicatePublic)
	assert.ErrorIs(p.PublicInput(""), ErrReservedWire)
}

func TestCircuitFull(t *testing.T) {
	assert := require.New(t)
	p, _ := New(2)
	assert.NoError(p.AddGate(Mul("a", "b", "c")))
	assert.NoError(p.AddGate(Mul("d", "e", "f")))
	assert.ErrorIs(p.AddGate(Mul("g", "h", "i")), ErrCircuitFull)
	assert.ErrorIs(p.PublicInput("x"), ErrCircuitFull)
}

func TestSelectorLayout(t *testing.T) {
	assert := require.New(t)
	p, _ := New(8)
	assert.NoError(p.PublicInput("pub"))
	assert.NoError(p.AddGate(Mul("a", "b", "c")))

	cpi := p.CommonPreprocessedInput()
	one := fr.One()
	var minusOne fr.Element
	minusOne.SetInt64(-1)

	// public placeholder row: ql = 1, everything else zero
	assert.True(cpi.QL.Values[0].Equal(&one))
	assert.True(cpi.QM.Values[0].IsZero())

	// multiplication gate row
	assert.True(cpi.QM.Values[1].Equal(&one))
	assert.True(cpi.QO.Values[1].Equal(&minusOne))
	assert.True(cpi.QL.Values[1].IsZero())

	// padding rows are all-zero
	for i := 2; i < 8; i++ {
		assert.True(cpi.QL.Values[i].IsZero())
		assert.True(cpi.QC.Values[i].IsZero())
	}
}

// permutationValues returns the multiset of values of the three permutation
// polynomials, sorted by string representation.
func permutationValues(cpi *CommonPreprocessedInput) []string {
	var all []string
	for _, s := range []*poly.Polynomial{cpi.S1, cpi.S2, cpi.S3} {
		for i := range s.Values {
			all = append(all, s.Values[i].String())
		}
	}
	sort.Strings(all)
	return all
}

func TestPermutationIsAPermutationOfTheIdentifiers(t *testing.T) {
	assert := require.New(t)
	n := 8
	p, _ := New(uint64(n))
	assert.NoError(p.AddGate(Mul("a", "b", "c")))
	assert.NoError(p.AddGate(Add("c", "b", "d")))
	assert.NoError(p.Connect("d", "a"))

	cpi := p.CommonPreprocessedInput()

	// expected identifiers k·ωⁱ, k = 1, 2, 3
	domain := fft.NewDomain(uint64(n))
	var ids []string
	var k fr.Element
	for col := 0; col < 3; col++ {
		k.SetUint64(uint64(col + 1))
		w := fr.One()
		for row := 0; row < n; row++ {
			var id fr.Element
			id.Mul(&k, &w)
			ids = append(ids, id.String())
			w.Mul(&w, &domain.Generator)
		}
	}
	sort.Strings(ids)

	assert.Equal(ids, permutationValues(cpi))
}

func TestPermutationEncodesCopyCycles(t *testing.T) {
	assert := require.New(t)
	n := 8
	p, _ := New(uint64(n))
	// "x" appears in slot (L, row 0) and slot (R, row 1): a 2-cycle
	assert.NoError(p.AddGate(Mul("x", "b", "c")))
	assert.NoError(p.AddGate(Mul("a", "x", "d")))

	cpi := p.CommonPreprocessedInput()
	domain := fft.NewDomain(uint64(n))

	// S1[0] must identify slot (R, row 1): 2·ω
	var want fr.Element
	want.SetUint64(2)
	want.Mul(&want, &domain.Generator)
	assert.True(cpi.S1.Values[0].Equal(&want))

	// S2[1] must point back to slot (L, row 0): 1·ω⁰ = 1
	one := fr.One()
	assert.True(cpi.S2.Values[1].Equal(&one))
}

func TestWitnessValue(t *testing.T) {
	assert := require.New(t)
	w := Witness{"a": -2}

	v, ok := w.Value("a")
	assert.True(ok)
	var want fr.Element
	want.SetInt64(-2)
	assert.True(v.Equal(&want))

	// the zero wire always resolves to zero
	v, ok = w.Value("")
	assert.True(ok)
	assert.True(v.IsZero())

	_, ok = w.Value("missing")
	assert.False(ok)
}

func TestMarshalRoundTrip(t *testing.T) {
	assert := require.New(t)
	p, _ := New(8)
	assert.NoError(p.PublicInput("pub"))
	assert.NoError(p.AddGate(Mul("a", "b", "c")))
	assert.NoError(p.AddGate(Add("c", "x", "y")))
	assert.NoError(p.Connect("y", "a"))

	var buf bytes.Buffer
	_, err := p.WriteTo(&buf)
	assert.NoError(err)

	var q Program
	_, err = q.ReadFrom(&buf)
	assert.NoError(err)

	assert.Equal(p.GroupOrder(), q.GroupOrder())
	assert.Equal(p.PublicAssignments(), q.PublicAssignments())
	assert.Equal(p.Wires(), q.Wires())

	// the rebuilt copy constraints yield the same permutation
	cp, cq := p.CommonPreprocessedInput(), q.CommonPreprocessedInput()
	assert.True(cp.S1.Equal(cq.S1))
	assert.True(cp.S2.Equal(cq.S2))
	assert.True(cp.S3.Equal(cq.S3))
	assert.True(cp.QM.Equal(cq.QM))
}
