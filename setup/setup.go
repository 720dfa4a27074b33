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

// Package setup wraps the structured reference string of a one-time trusted
// setup and exposes the KZG commitment operation on basis-tagged
// polynomials.
package setup

import (
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr/fft"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr/kzg"

	"github.com/TalDerei/plonkathon/poly"
)

// Setup holds the SRS [1]₁, [τ]₁, …, [τᵈ]₁.
type Setup struct {
	srs *kzg.SRS
}

// New wraps an existing SRS, e.g. one deserialized from a ceremony output.
func New(srs *kzg.SRS) *Setup {
	return &Setup{srs: srs}
}

// NewSRS generates an SRS of the given size from the secret tau.
// Test and development use only: knowing tau breaks soundness.
func NewSRS(size uint64, tau *big.Int) (*Setup, error) {
	srs, err := kzg.NewSRS(size, tau)
	if err != nil {
		return nil, err
	}
	return &Setup{srs: srs}, nil
}

// SRS exposes the underlying reference string.
func (s *Setup) SRS() *kzg.SRS {
	return s.srs
}

// Commit computes [P(τ)]₁ = Σ cᵢ·[τⁱ]₁. A Lagrange polynomial is first
// moved to monomial form on d; coset-extended polynomials are not
// committable directly.
func (s *Setup) Commit(p *poly.Polynomial, d *fft.Domain) (kzg.Digest, error) {
	if p.Basis == poly.LagrangeCoset {
		panic(poly.ErrBasisMismatch)
	}
	c := p
	if p.Basis == poly.Lagrange {
		c = p.ToMonomial(d)
	}
	return kzg.Commit(c.Values, s.srs)
}
