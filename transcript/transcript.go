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

// Package transcript derives the prover's challenges by Fiat-Shamir. It is
// an append-only sponge: every prover message is absorbed before the round's
// challenges are squeezed, each under its own domain-separation label, and
// each challenge hash chains the previous one, so no challenge can be
// replayed across rounds. Same absorptions, same challenges.
package transcript

import (
	"crypto/sha256"
	"encoding/binary"
	"errors"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr/kzg"
	fiatshamir "github.com/consensys/gnark-crypto/fiat-shamir"
)

// ErrZeroChallenge reports the (overwhelmingly improbable) derivation of a
// challenge the protocol requires to be nonzero.
var ErrZeroChallenge = errors.New("transcript: derived a zero challenge")

// Transcript derives the five-round challenge schedule
// β, γ, α, η (coset offset), ζ, v.
type Transcript struct {
	fs fiatshamir.Transcript
}

// New returns a transcript seeded with the protocol label.
func New(label string) (*Transcript, error) {
	t := &Transcript{
		fs: fiatshamir.NewTranscript(sha256.New(), "beta", "gamma", "alpha", "eta", "zeta", "v"),
	}
	if err := t.fs.Bind("beta", []byte(label)); err != nil {
		return nil, err
	}
	return t, nil
}

// BindPreprocessed absorbs the circuit and the instance before any
// challenge: the group order, the commitments to the selector and
// permutation polynomials, and the public-input values. This binds the proof
// to the circuit being proven.
func (t *Transcript) BindPreprocessed(groupOrder uint64, digests []kzg.Digest, publicInputs []fr.Element) error {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], groupOrder)
	if err := t.fs.Bind("beta", b[:]); err != nil {
		return err
	}
	for i := range digests {
		if err := t.fs.Bind("beta", digests[i].Marshal()); err != nil {
			return err
		}
	}
	for i := range publicInputs {
		if err := t.fs.Bind("beta", publicInputs[i].Marshal()); err != nil {
			return err
		}
	}
	return nil
}

// Round1 absorbs the wire commitments a₁, b₁, c₁ and returns (β, γ).
func (t *Transcript) Round1(a1, b1, c1 *kzg.Digest) (beta, gamma fr.Element, err error) {
	if beta, err = t.challenge("beta", a1, b1, c1); err != nil {
		return
	}
	gamma, err = t.challenge("gamma")
	return
}

// Round2 absorbs the grand product commitment z₁ and returns (α, η) where η
// is the coset offset of the quotient computation. Both are nonzero.
func (t *Transcript) Round2(z1 *kzg.Digest) (alpha, eta fr.Element, err error) {
	if alpha, err = t.challenge("alpha", z1); err != nil {
		return
	}
	if eta, err = t.challenge("eta"); err != nil {
		return
	}
	if alpha.IsZero() || eta.IsZero() {
		err = ErrZeroChallenge
	}
	return
}

// Round3 absorbs the quotient commitments and returns the evaluation
// point ζ.
func (t *Transcript) Round3(tLo, tMid, tHi *kzg.Digest) (fr.Element, error) {
	return t.challenge("zeta", tLo, tMid, tHi)
}

// Round4 absorbs the claimed evaluations and returns the opening batching
// challenge v.
func (t *Transcript) Round4(evals ...fr.Element) (fr.Element, error) {
	for i := range evals {
		if err := t.fs.Bind("v", evals[i].Marshal()); err != nil {
			return fr.Element{}, err
		}
	}
	return t.challenge("v")
}

func (t *Transcript) challenge(name string, points ...*kzg.Digest) (fr.Element, error) {
	var r fr.Element
	for _, p := range points {
		if err := t.fs.Bind(name, p.Marshal()); err != nil {
			return r, err
		}
	}
	b, err := t.fs.ComputeChallenge(name)
	if err != nil {
		return r, err
	}
	r.SetBytes(b)
	return r, nil
}
