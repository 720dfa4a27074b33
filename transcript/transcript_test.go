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

package transcript

import (
	"math/big"
	"testing"

	curve "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr/kzg"
	"github.com/stretchr/testify/require"
)

func dummyDigests(seeds ...int64) []kzg.Digest {
	// distinct, well-formed G1 points: multiples of the generator
	_, _, g1, _ := curve.Generators()
	res := make([]kzg.Digest, len(seeds))
	for i, s := range seeds {
		res[i].ScalarMultiplication(&g1, big.NewInt(s))
	}
	return res
}

func TestDeterminism(t *testing.T) {
	assert := require.New(t)
	ds := dummyDigests(2, 3, 5)

	run := func() [6]fr.Element {
		ts, err := New("plonk")
		assert.NoError(err)
		assert.NoError(ts.BindPreprocessed(8, ds, nil))
		beta, gamma, err := ts.Round1(&ds[0], &ds[1], &ds[2])
		assert.NoError(err)
		alpha, eta, err := ts.Round2(&ds[0])
		assert.NoError(err)
		zeta, err := ts.Round3(&ds[0], &ds[1], &ds[2])
		assert.NoError(err)
		var e fr.Element
		e.SetUint64(7)
		v, err := ts.Round4(e, e, e, e, e, e)
		assert.NoError(err)
		return [6]fr.Element{beta, gamma, alpha, eta, zeta, v}
	}

	first := run()
	second := run()
	assert.Equal(first, second)
}

func TestChallengesAreDistinct(t *testing.T) {
	assert := require.New(t)
	ds := dummyDigests(2, 3, 5)

	ts, err := New("plonk")
	assert.NoError(err)
	assert.NoError(ts.BindPreprocessed(8, ds, nil))
	beta, gamma, err := ts.Round1(&ds[0], &ds[1], &ds[2])
	assert.NoError(err)
	alpha, eta, err := ts.Round2(&ds[0])
	assert.NoError(err)

	// distinct domain-separation labels: no cross-round reuse
	assert.False(beta.Equal(&gamma))
	assert.False(gamma.Equal(&alpha))
	assert.False(alpha.Equal(&eta))
}

func TestBindingSeparatesCircuits(t *testing.T) {
	assert := require.New(t)
	ds := dummyDigests(2, 3, 5)
	dsOther := dummyDigests(3, 2, 5) // two commitments swapped

	derive := func(digests []kzg.Digest) fr.Element {
		ts, err := New("plonk")
		assert.NoError(err)
		assert.NoError(ts.BindPreprocessed(8, digests, nil))
		beta, _, err := ts.Round1(&ds[0], &ds[1], &ds[2])
		assert.NoError(err)
		return beta
	}

	a, b := derive(ds), derive(dsOther)
	assert.False(a.Equal(&b))
}

func TestPublicInputsBindTranscript(t *testing.T) {
	assert := require.New(t)
	ds := dummyDigests(2, 3, 5)

	derive := func(pi int64) fr.Element {
		var v fr.Element
		v.SetInt64(pi)
		ts, err := New("plonk")
		assert.NoError(err)
		assert.NoError(ts.BindPreprocessed(8, ds, []fr.Element{v}))
		beta, _, err := ts.Round1(&ds[0], &ds[1], &ds[2])
		assert.NoError(err)
		return beta
	}

	a, b := derive(-7), derive(-8)
	assert.False(a.Equal(&b))
}

func TestLabelSeparatesProtocols(t *testing.T) {
	assert := require.New(t)
	ds := dummyDigests(2, 3, 5)

	derive := func(label string) fr.Element {
		ts, err := New(label)
		assert.NoError(err)
		beta, _, err := ts.Round1(&ds[0], &ds[1], &ds[2])
		assert.NoError(err)
		return beta
	}

	a, b := derive("plonk"), derive("plonk-v2")
	assert.False(a.Equal(&b))
}
