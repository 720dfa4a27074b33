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
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr/fft"

	"github.com/TalDerei/plonkathon/poly"
)

// CommonPreprocessedInput is the circuit-dependent, witness-independent part
// of a PLONK instance: the selector polynomials and the permutation
// polynomials, all in the Lagrange basis of size GroupOrder.
type CommonPreprocessedInput struct {
	GroupOrder uint64

	QL, QR, QM, QO, QC *poly.Polynomial
	S1, S2, S3         *poly.Polynomial
}

// CommonPreprocessedInput derives the selector and permutation polynomials
// of the program.
//
// The permutation acts on the 3n wire slots laid out column-major
// (L‖R‖O). Slots carrying the same wire (same name, or names merged by
// Connect) form one cycle, each slot mapping to the next occurrence.
// Slot (column k, row i) is identified by the field element k·ωⁱ with the
// column identifiers k = 1, 2, 3 — quadratic-nonresidue-separated cosets of
// the evaluation domain — and Sₖ holds the identifiers of the permuted slots.
func (p *Program) CommonPreprocessedInput() *CommonPreprocessedInput {
	n := int(p.groupOrder)

	ql := make([]fr.Element, n)
	qr := make([]fr.Element, n)
	qm := make([]fr.Element, n)
	qo := make([]fr.Element, n)
	qc := make([]fr.Element, n)

	for i := range p.public {
		ql[i].SetOne()
	}
	offset := len(p.public)
	for i, g := range p.gates {
		ql[offset+i].Set(&g.QL)
		qr[offset+i].Set(&g.QR)
		qm[offset+i].Set(&g.QM)
		qo[offset+i].Set(&g.QO)
		qc[offset+i].Set(&g.QC)
	}

	s1, s2, s3 := p.permutationPolynomials(n)

	return &CommonPreprocessedInput{
		GroupOrder: p.groupOrder,
		QL:         poly.New(ql, poly.Lagrange),
		QR:         poly.New(qr, poly.Lagrange),
		QM:         poly.New(qm, poly.Lagrange),
		QO:         poly.New(qo, poly.Lagrange),
		QC:         poly.New(qc, poly.Lagrange),
		S1:         poly.New(s1, poly.Lagrange),
		S2:         poly.New(s2, poly.Lagrange),
		S3:         poly.New(s3, poly.Lagrange),
	}
}

// permutationPolynomials builds the copy permutation over the 3n slots and
// returns its identifier encoding, one column per returned slice.
func (p *Program) permutationPolynomials(n int) ([]fr.Element, []fr.Element, []fr.Element) {
	wires := p.Wires()

	// group slots by canonical wire
	slot := func(col, row int) int { return col*n + row }
	occurrences := make(map[string][]int)
	for col := 0; col < 3; col++ {
		for row := 0; row < n; row++ {
			var name string
			switch col {
			case 0:
				name = wires[row].L
			case 1:
				name = wires[row].R
			default:
				name = wires[row].O
			}
			root := p.find(name)
			occurrences[root] = append(occurrences[root], slot(col, row))
		}
	}

	// each slot maps to the next slot of its cycle
	sigma := make([]int, 3*n)
	for _, slots := range occurrences {
		for i, s := range slots {
			sigma[s] = slots[(i+1)%len(slots)]
		}
	}

	// identifier of slot (col, row) is (col+1)·ω^row
	domain := fft.NewDomain(uint64(n))
	ids := make([]fr.Element, 3*n)
	var k fr.Element
	for col := 0; col < 3; col++ {
		k.SetUint64(uint64(col + 1))
		w := fr.One()
		for row := 0; row < n; row++ {
			ids[slot(col, row)].Mul(&k, &w)
			w.Mul(&w, &domain.Generator)
		}
	}

	s1 := make([]fr.Element, n)
	s2 := make([]fr.Element, n)
	s3 := make([]fr.Element, n)
	for row := 0; row < n; row++ {
		s1[row].Set(&ids[sigma[slot(0, row)]])
		s2[row].Set(&ids[sigma[slot(1, row)]])
		s3[row].Set(&ids[sigma[slot(2, row)]])
	}
	return s1, s2, s3
}
