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

// Package plonk implements the PLONK prover over BLS12-381: five rounds of
// polynomial construction, commitment and Fiat-Shamir interaction turning a
// satisfied circuit and its witness into a fifteen-field proof.
package plonk

import (
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr/fft"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr/kzg"
	"golang.org/x/sync/errgroup"

	"github.com/TalDerei/plonkathon/circuit"
	"github.com/TalDerei/plonkathon/logger"
	"github.com/TalDerei/plonkathon/poly"
	"github.com/TalDerei/plonkathon/setup"
	"github.com/TalDerei/plonkathon/transcript"
)

// ErrInvariantViolation is the class of every proving failure: a malformed
// witness or an implementation bug, never retried. The concrete causes below
// wrap it; errors.Is matches either level.
var ErrInvariantViolation = errors.New("plonk: proving invariant violation")

var (
	// ErrUnsatisfiedConstraint reports a witness failing the gate
	// constraints (round 1).
	ErrUnsatisfiedConstraint = fmt.Errorf("%w: witness does not satisfy the gate constraints", ErrInvariantViolation)
	// ErrGrandProduct reports the permutation accumulator not closing to
	// one (round 2), i.e. violated copy constraints.
	ErrGrandProduct = fmt.Errorf("%w: permutation grand product does not close to one", ErrInvariantViolation)
	// ErrDegreeBound reports nonzero high coefficients where divisibility
	// by the vanishing polynomial requires zeroes (rounds 3 and 5).
	ErrDegreeBound = fmt.Errorf("%w: polynomial degree bound exceeded", ErrInvariantViolation)
	// ErrLinearizationNonZero reports R(ζ) ≠ 0 (round 5).
	ErrLinearizationNonZero = fmt.Errorf("%w: linearization polynomial does not vanish at the evaluation point", ErrInvariantViolation)
	// ErrChallengeCollision reports a degenerate challenge: zero where the
	// protocol needs nonzero, a coset offset with ηⁿ = 1, or an evaluation
	// domain hitting the opening point.
	ErrChallengeCollision = fmt.Errorf("%w: degenerate transcript challenge", ErrInvariantViolation)
)

// Proof is the prover's output. Field order matches the wire format:
// commitments a₁ b₁ c₁ z₁ t_lo₁ t_mid₁ t_hi₁, the six claimed evaluations,
// and the two opening witnesses W_ζ₁ and W_ζω₁.
type Proof struct {
	// Commitments to the wire polynomials A, B, C
	LRO [3]kzg.Digest

	// Commitment to Z, the permutation grand product polynomial
	Z kzg.Digest

	// Commitments to T1, T2, T3: T = T1 + Xⁿ·T2 + X²ⁿ·T3 is the quotient
	H [3]kzg.Digest

	// Claimed evaluations at ζ (and at ζω for Z)
	AZeta, BZeta, CZeta fr.Element
	S1Zeta, S2Zeta      fr.Element
	ZShiftedZeta        fr.Element

	// KZG opening witnesses at ζ and ζω
	Wzeta, WzetaOmega kzg.Digest
}

// Prover proves one fixed circuit. It owns the preprocessed input and the
// FFT domains; each Prove call owns its polynomials exclusively and shares
// no state with other calls.
type Prover struct {
	setup   *setup.Setup
	program *circuit.Program
	cpi     *circuit.CommonPreprocessedInput

	// Domain[0] has cardinality n, Domain[1] cardinality 4n (the coset
	// extension of the quotient computation)
	domain [2]*fft.Domain

	// commitments to QL, QR, QM, QO, QC, S1, S2, S3, absorbed into the
	// transcript of every proof to bind it to the circuit
	circuitDigests [8]kzg.Digest
}

// NewProver preprocesses the program: selector and permutation polynomials,
// FFT domains, and the circuit commitments bound into every transcript.
func NewProver(s *setup.Setup, program *circuit.Program) (*Prover, error) {
	pr := &Prover{
		setup:   s,
		program: program,
		cpi:     program.CommonPreprocessedInput(),
	}
	n := program.GroupOrder()
	pr.domain[0] = fft.NewDomain(n)
	pr.domain[1] = fft.NewDomain(4 * n)

	for i, p := range []*poly.Polynomial{
		pr.cpi.QL, pr.cpi.QR, pr.cpi.QM, pr.cpi.QO, pr.cpi.QC,
		pr.cpi.S1, pr.cpi.S2, pr.cpi.S3,
	} {
		var err error
		if pr.circuitDigests[i], err = s.Commit(p, pr.domain[0]); err != nil {
			return nil, err
		}
	}
	return pr, nil
}

// instance is the per-proof state: one Prove call creates it, the five
// rounds fill it in order, and it is discarded when Prove returns.
type instance struct {
	pr    *Prover
	ts    *transcript.Transcript
	proof *Proof

	witness circuit.Witness

	// round challenges
	beta, gamma, alpha, eta, zeta, v fr.Element

	// Lagrange(n) polynomials
	pi, a, b, c, z, l0 *poly.Polynomial

	// coset-extended polynomials of round 3, reused in round 5
	a4, b4, c4, z4          *poly.Polynomial
	ql4, qr4, qm4, qo4, qc4 *poly.Polynomial
	s14, s24, s34           *poly.Polynomial
	x4                      *poly.Polynomial

	// quotient limbs, monomial form, size n each
	t1, t2, t3 *poly.Polynomial

	// claimed evaluations
	aZeta, bZeta, cZeta, s1Zeta, s2Zeta, zShiftedZeta fr.Element
}

// Prove runs the five rounds on the given witness and returns the proof.
// Any invariant violation aborts with an error wrapping
// ErrInvariantViolation; there is no partial proof and no retry.
func (pr *Prover) Prove(witness circuit.Witness) (*Proof, error) {
	log := logger.Logger().With().
		Str("curve", "bls12_381").
		Uint64("n", pr.program.GroupOrder()).
		Str("backend", "plonk").Logger()
	start := time.Now()

	ts, err := transcript.New("plonk")
	if err != nil {
		return nil, err
	}

	s := &instance{
		pr:      pr,
		ts:      ts,
		proof:   &Proof{},
		witness: witness,
	}

	if err := s.bindPublicData(); err != nil {
		return nil, err
	}
	for i, round := range []func() error{
		s.round1, s.round2, s.round3, s.round4, s.round5,
	} {
		if err := round(); err != nil {
			return nil, err
		}
		log.Debug().Int("round", i+1).Msg("round completed")
	}

	log.Debug().Dur("took", time.Since(start)).Msg("prover done")
	return s.proof, nil
}

// bindPublicData builds the public-inputs polynomial PI (value −witness[v]
// at the row of public input v, zero elsewhere) and absorbs the circuit
// commitments, the group order and the public-input values into the
// transcript, before any challenge is derived.
func (s *instance) bindPublicData() error {
	n := int(s.pr.program.GroupOrder())
	public := s.pr.program.PublicAssignments()

	piValues := make([]fr.Element, n)
	for i, name := range public {
		v, ok := s.witness.Value(name)
		if !ok {
			return fmt.Errorf("%w: %q", circuit.ErrMissingAssignment, name)
		}
		piValues[i].Neg(&v)
	}
	s.pi = poly.New(piValues, poly.Lagrange)

	return s.ts.BindPreprocessed(
		uint64(n),
		s.pr.circuitDigests[:],
		piValues[:len(public)],
	)
}

// round1 builds the wire polynomials A, B, C in Lagrange form from the wire
// map, commits to them, and checks the witness satisfies the gate
// constraints on the whole domain.
func (s *instance) round1() error {
	pr := s.pr
	n := int(pr.program.GroupOrder())

	aValues := make([]fr.Element, n)
	bValues := make([]fr.Element, n)
	cValues := make([]fr.Element, n)
	for i, w := range pr.program.Wires() {
		for _, col := range []struct {
			name string
			dst  *fr.Element
		}{{w.L, &aValues[i]}, {w.R, &bValues[i]}, {w.O, &cValues[i]}} {
			v, ok := s.witness.Value(col.name)
			if !ok {
				return fmt.Errorf("%w: %q", circuit.ErrMissingAssignment, col.name)
			}
			col.dst.Set(&v)
		}
	}
	s.a = poly.New(aValues, poly.Lagrange)
	s.b = poly.New(bValues, poly.Lagrange)
	s.c = poly.New(cValues, poly.Lagrange)

	if err := s.commitOverlapped(
		[]*poly.Polynomial{s.a, s.b, s.c},
		[]*kzg.Digest{&s.proof.LRO[0], &s.proof.LRO[1], &s.proof.LRO[2]},
	); err != nil {
		return err
	}

	// A·QL + B·QR + A·B·QM + C·QO + PI + QC must vanish on the domain
	cpi := pr.cpi
	residue := s.a.Mul(cpi.QL).
		Add(s.b.Mul(cpi.QR)).
		Add(s.a.Mul(s.b).Mul(cpi.QM)).
		Add(s.c.Mul(cpi.QO)).
		Add(s.pi).
		Add(cpi.QC)
	for i := range residue.Values {
		if !residue.Values[i].IsZero() {
			return fmt.Errorf("%w (gate %d)", ErrUnsatisfiedConstraint, i)
		}
	}

	var err error
	s.beta, s.gamma, err = s.ts.Round1(&s.proof.LRO[0], &s.proof.LRO[1], &s.proof.LRO[2])
	return err
}

// round2 builds the permutation grand product
//
//	Z₀ = 1
//	Zᵢ₊₁ = Zᵢ · rlc(Aᵢ,ωⁱ)·rlc(Bᵢ,2ωⁱ)·rlc(Cᵢ,3ωⁱ)
//	           / ( rlc(Aᵢ,S1ᵢ)·rlc(Bᵢ,S2ᵢ)·rlc(Cᵢ,S3ᵢ) )
//
// checks the closing value Zₙ equals one, and commits to Z = (Z₀,…,Zₙ₋₁).
// Denominators are inverted in one batch.
func (s *instance) round2() error {
	pr := s.pr
	n := int(pr.program.GroupOrder())
	cpi := pr.cpi

	var two, three fr.Element
	two.SetUint64(2)
	three.SetUint64(3)

	num := make([]fr.Element, n)
	den := make([]fr.Element, n)
	w := fr.One()
	for i := 0; i < n; i++ {
		var id2, id3, t fr.Element
		id2.Mul(&two, &w)
		id3.Mul(&three, &w)

		num[i] = s.rlc(s.a.Values[i], w)
		t = s.rlc(s.b.Values[i], id2)
		num[i].Mul(&num[i], &t)
		t = s.rlc(s.c.Values[i], id3)
		num[i].Mul(&num[i], &t)

		den[i] = s.rlc(s.a.Values[i], cpi.S1.Values[i])
		t = s.rlc(s.b.Values[i], cpi.S2.Values[i])
		den[i].Mul(&den[i], &t)
		t = s.rlc(s.c.Values[i], cpi.S3.Values[i])
		den[i].Mul(&den[i], &t)
		if den[i].IsZero() {
			return ErrChallengeCollision
		}

		w.Mul(&w, &pr.domain[0].Generator)
	}
	denInv := fr.BatchInvert(den)

	zValues := make([]fr.Element, n)
	zValues[0].SetOne()
	for i := 1; i < n; i++ {
		zValues[i].Mul(&zValues[i-1], &num[i-1]).Mul(&zValues[i], &denInv[i-1])
	}
	var closing fr.Element
	closing.Mul(&zValues[n-1], &num[n-1]).Mul(&closing, &denInv[n-1])
	if !closing.IsOne() {
		return ErrGrandProduct
	}
	s.z = poly.New(zValues, poly.Lagrange)

	var err error
	if s.proof.Z, err = pr.setup.Commit(s.z, pr.domain[0]); err != nil {
		return err
	}
	if s.alpha, s.eta, err = s.ts.Round2(&s.proof.Z); err != nil {
		if errors.Is(err, transcript.ErrZeroChallenge) {
			return ErrChallengeCollision
		}
		return err
	}

	// the coset offset must keep Xⁿ-1 nonzero on the extended domain
	var etaN fr.Element
	etaN.Exp(s.eta, big.NewInt(int64(n)))
	if etaN.IsOne() {
		return ErrChallengeCollision
	}
	return nil
}

// round3 computes the quotient polynomial on the coset η·μⁱ of the 4n
// domain:
//
//	T = ( GATES + α·PERM + α²·(Z-1)·L0 ) / Z_H
//
// converts it to monomial form, checks deg T < 3n, splits it into T1, T2,
// T3 of size n and commits to them.
func (s *instance) round3() error {
	pr := s.pr
	n := int(pr.program.GroupOrder())
	small, big4 := pr.domain[0], pr.domain[1]
	cpi := pr.cpi

	expand := func(p *poly.Polynomial) *poly.Polynomial {
		return p.ToLagrangeCoset(s.eta, small, big4)
	}

	s.a4, s.b4, s.c4 = expand(s.a), expand(s.b), expand(s.c)
	pi4 := expand(s.pi)
	s.ql4, s.qr4, s.qm4 = expand(cpi.QL), expand(cpi.QR), expand(cpi.QM)
	s.qo4, s.qc4 = expand(cpi.QO), expand(cpi.QC)
	s.s14, s.s24, s.s34 = expand(cpi.S1), expand(cpi.S2), expand(cpi.S3)
	s.z4 = expand(s.z)
	zw4 := expand(s.z.Shift(1))

	l0Values := make([]fr.Element, n)
	l0Values[0].SetOne()
	s.l0 = poly.New(l0Values, poly.Lagrange)
	l04 := expand(s.l0)

	// identity polynomial on the coset: value η·μⁱ at index i
	xValues := make([]fr.Element, 4*n)
	acc := s.eta
	for i := range xValues {
		xValues[i].Set(&acc)
		acc.Mul(&acc, &big4.Generator)
	}
	s.x4 = poly.New(xValues, poly.LagrangeCoset)

	// Z_H(η·μⁱ) = ηⁿ·μⁱⁿ - 1 cycles with period 4 since μⁿ is a primitive
	// fourth root of unity
	var etaN, muN, one fr.Element
	one.SetOne()
	bn := big.NewInt(int64(n))
	etaN.Exp(s.eta, bn)
	muN.Exp(big4.Generator, bn)
	zhValues := make([]fr.Element, 4*n)
	cycle := etaN
	for k := 0; k < 4; k++ {
		var v fr.Element
		v.Sub(&cycle, &one)
		for i := k; i < 4*n; i += 4 {
			zhValues[i].Set(&v)
		}
		cycle.Mul(&cycle, &muN)
	}
	zh4 := poly.New(zhValues, poly.LagrangeCoset)

	gates := s.a4.Mul(s.ql4).
		Add(s.b4.Mul(s.qr4)).
		Add(s.a4.Mul(s.b4).Mul(s.qm4)).
		Add(s.c4.Mul(s.qo4)).
		Add(pi4).
		Add(s.qc4)

	var alpha2 fr.Element
	alpha2.Square(&s.alpha)
	perm := s.rlcPoly(s.a4, s.x4).
		Mul(s.rlcPoly(s.b4, s.x4.ScalarMul(twoFr()))).
		Mul(s.rlcPoly(s.c4, s.x4.ScalarMul(threeFr()))).
		Mul(s.z4).
		Sub(s.rlcPoly(s.a4, s.s14).
			Mul(s.rlcPoly(s.b4, s.s24)).
			Mul(s.rlcPoly(s.c4, s.s34)).
			Mul(zw4)).
		ScalarMul(s.alpha).
		Add(s.z4.SubConstant(one).Mul(l04).ScalarMul(alpha2))

	t4, err := gates.Add(perm).Div(zh4)
	if err != nil {
		return ErrChallengeCollision
	}

	tCoeffs := t4.CosetToMonomial(s.eta, big4)
	for i := 3 * n; i < 4*n; i++ {
		if !tCoeffs.Values[i].IsZero() {
			return ErrDegreeBound
		}
	}
	s.t1 = poly.New(append([]fr.Element{}, tCoeffs.Values[:n]...), poly.Monomial)
	s.t2 = poly.New(append([]fr.Element{}, tCoeffs.Values[n:2*n]...), poly.Monomial)
	s.t3 = poly.New(append([]fr.Element{}, tCoeffs.Values[2*n:3*n]...), poly.Monomial)

	// recombine at η: T1(η) + ηⁿ·T2(η) + η²ⁿ·T3(η) must equal T(η·μ⁰)
	var recombined, tmp, eta2N fr.Element
	eta2N.Square(&etaN)
	recombined = evalMonomial(s.t1, s.eta)
	tmp = evalMonomial(s.t2, s.eta)
	tmp.Mul(&tmp, &etaN)
	recombined.Add(&recombined, &tmp)
	tmp = evalMonomial(s.t3, s.eta)
	tmp.Mul(&tmp, &eta2N)
	recombined.Add(&recombined, &tmp)
	if !recombined.Equal(&t4.Values[0]) {
		return fmt.Errorf("%w: quotient split recombination mismatch", ErrInvariantViolation)
	}

	if err := s.commitOverlapped(
		[]*poly.Polynomial{s.t1, s.t2, s.t3},
		[]*kzg.Digest{&s.proof.H[0], &s.proof.H[1], &s.proof.H[2]},
	); err != nil {
		return err
	}

	s.zeta, err = s.ts.Round3(&s.proof.H[0], &s.proof.H[1], &s.proof.H[2])
	return err
}

// round4 opens A, B, C, S1, S2 at ζ and Z at ζω by barycentric evaluation
// on the small domain. C's permutation term and S3 are not opened; they are
// absorbed into the linearization polynomial in round 5.
func (s *instance) round4() error {
	pr := s.pr
	small := pr.domain[0]
	cpi := pr.cpi

	s.aZeta = s.a.Evaluate(s.zeta, small)
	s.bZeta = s.b.Evaluate(s.zeta, small)
	s.cZeta = s.c.Evaluate(s.zeta, small)
	s.s1Zeta = cpi.S1.Evaluate(s.zeta, small)
	s.s2Zeta = cpi.S2.Evaluate(s.zeta, small)

	var zetaOmega fr.Element
	zetaOmega.Mul(&s.zeta, &small.Generator)
	s.zShiftedZeta = s.z.Evaluate(zetaOmega, small)

	s.proof.AZeta = s.aZeta
	s.proof.BZeta = s.bZeta
	s.proof.CZeta = s.cZeta
	s.proof.S1Zeta = s.s1Zeta
	s.proof.S2Zeta = s.s2Zeta
	s.proof.ZShiftedZeta = s.zShiftedZeta

	var err error
	s.v, err = s.ts.Round4(s.aZeta, s.bZeta, s.cZeta, s.s1Zeta, s.s2Zeta, s.zShiftedZeta)
	return err
}

// round5 builds the linearization polynomial R — linear in the committed
// but unopened polynomials, every other factor replaced by its evaluation
// at ζ — checks R(ζ) = 0, and produces the two KZG opening witnesses
//
//	W_ζ  = ( R + v(A-a) + v²(B-b) + v³(C-c) + v⁴(S1-s1) + v⁵(S2-s2) ) / (X-ζ)
//	W_ζω = ( Z - z_shifted ) / (X-ζω)
//
// by pointwise division on the coset.
func (s *instance) round5() error {
	pr := s.pr
	n := int(pr.program.GroupOrder())
	small, big4 := pr.domain[0], pr.domain[1]

	var one fr.Element
	one.SetOne()

	l0Zeta := s.l0.Evaluate(s.zeta, small)
	piZeta := s.pi.Evaluate(s.zeta, small)

	bn := big.NewInt(int64(n))
	var zetaN, zeta2N, zhZeta fr.Element
	zetaN.Exp(s.zeta, bn)
	zeta2N.Square(&zetaN)
	zhZeta.Sub(&zetaN, &one)

	t14 := s.t1.ToLagrangeCoset(s.eta, small, big4)
	t24 := s.t2.ToLagrangeCoset(s.eta, small, big4)
	t34 := s.t3.ToLagrangeCoset(s.eta, small, big4)

	// gate part, selectors weighted by the claimed evaluations
	var ab fr.Element
	ab.Mul(&s.aZeta, &s.bZeta)
	gates := s.ql4.ScalarMul(s.aZeta).
		Add(s.qr4.ScalarMul(s.bZeta)).
		Add(s.qm4.ScalarMul(ab)).
		Add(s.qo4.ScalarMul(s.cZeta)).
		AddConstant(piZeta).
		Add(s.qc4)

	// permutation part: Z carries the identity-side product, S3 the
	// sigma-side one; only those two stay polynomial
	var idSide, tmp, zeta2, zeta3 fr.Element
	two, three := twoFr(), threeFr()
	zeta2.Mul(&s.zeta, &two)
	zeta3.Mul(&s.zeta, &three)
	idSide = s.rlc(s.aZeta, s.zeta)
	tmp = s.rlc(s.bZeta, zeta2)
	idSide.Mul(&idSide, &tmp)
	tmp = s.rlc(s.cZeta, zeta3)
	idSide.Mul(&idSide, &tmp)

	var sigmaSide fr.Element
	sigmaSide = s.rlc(s.aZeta, s.s1Zeta)
	tmp = s.rlc(s.bZeta, s.s2Zeta)
	sigmaSide.Mul(&sigmaSide, &tmp)
	sigmaSide.Mul(&sigmaSide, &s.zShiftedZeta)

	var cGamma fr.Element
	cGamma.Add(&s.cZeta, &s.gamma)
	rlcCS3 := s.s34.ScalarMul(s.beta).AddConstant(cGamma)

	perm := s.z4.ScalarMul(idSide).
		Sub(rlcCS3.ScalarMul(sigmaSide)).
		ScalarMul(s.alpha)

	var alpha2L0 fr.Element
	alpha2L0.Square(&s.alpha)
	alpha2L0.Mul(&alpha2L0, &l0Zeta)
	startsAtOne := s.z4.SubConstant(one).ScalarMul(alpha2L0)

	quotient := t14.
		Add(t24.ScalarMul(zetaN)).
		Add(t34.ScalarMul(zeta2N)).
		ScalarMul(zhZeta)

	rArg := gates.Add(perm).Add(startsAtOne).Sub(quotient)

	rCoeffs := rArg.CosetToMonomial(s.eta, big4)
	for i := n; i < 4*n; i++ {
		if !rCoeffs.Values[i].IsZero() {
			return ErrDegreeBound
		}
	}
	r := poly.New(rCoeffs.Values[:n], poly.Monomial)
	if rZeta := evalMonomial(r, s.zeta); !rZeta.IsZero() {
		return ErrLinearizationNonZero
	}

	// W_ζ: batched opening witness of R and the five evaluated polynomials
	vPow := s.v
	wzNum := rArg.Add(s.a4.SubConstant(s.aZeta).ScalarMul(vPow))
	for _, term := range []struct {
		p *poly.Polynomial
		e fr.Element
	}{
		{s.b4, s.bZeta},
		{s.c4, s.cZeta},
		{s.s14, s.s1Zeta},
		{s.s24, s.s2Zeta},
	} {
		vPow.Mul(&vPow, &s.v)
		wzNum = wzNum.Add(term.p.SubConstant(term.e).ScalarMul(vPow))
	}
	wz, err := s.openingQuotient(wzNum, s.zeta)
	if err != nil {
		return err
	}

	// W_ζω: opening witness of Z at the shifted point
	var zetaOmega fr.Element
	zetaOmega.Mul(&s.zeta, &small.Generator)
	wzw, err := s.openingQuotient(s.z4.SubConstant(s.zShiftedZeta), zetaOmega)
	if err != nil {
		return err
	}

	if s.proof.Wzeta, err = pr.setup.Commit(wz, small); err != nil {
		return err
	}
	s.proof.WzetaOmega, err = pr.setup.Commit(wzw, small)
	return err
}

// openingQuotient divides a coset-basis numerator vanishing at point by
// (X - point), checks the quotient has degree < n, and returns it in
// monomial form.
func (s *instance) openingQuotient(num *poly.Polynomial, point fr.Element) (*poly.Polynomial, error) {
	pr := s.pr
	n := int(pr.program.GroupOrder())

	q, err := num.Div(s.x4.SubConstant(point))
	if err != nil {
		return nil, ErrChallengeCollision
	}
	coeffs := q.CosetToMonomial(s.eta, pr.domain[1])
	for i := n; i < 4*n; i++ {
		if !coeffs.Values[i].IsZero() {
			return nil, ErrDegreeBound
		}
	}
	return poly.New(coeffs.Values[:n], poly.Monomial), nil
}

// commitOverlapped commits the given polynomials concurrently; the
// multi-scalar multiplications dominate round latency.
func (s *instance) commitOverlapped(ps []*poly.Polynomial, digests []*kzg.Digest) error {
	var g errgroup.Group
	for i := range ps {
		i := i
		g.Go(func() error {
			d, err := s.pr.setup.Commit(ps[i], s.pr.domain[0])
			if err == nil {
				*digests[i] = d
			}
			return err
		})
	}
	return g.Wait()
}

// rlc is the random linear combination x + β·y + γ.
func (s *instance) rlc(x, y fr.Element) fr.Element {
	var r fr.Element
	r.Mul(&s.beta, &y).Add(&r, &x).Add(&r, &s.gamma)
	return r
}

// rlcPoly is rlc with both operands polynomial, pointwise.
func (s *instance) rlcPoly(x, y *poly.Polynomial) *poly.Polynomial {
	return x.Add(y.ScalarMul(s.beta)).AddConstant(s.gamma)
}

func evalMonomial(p *poly.Polynomial, z fr.Element) fr.Element {
	var res fr.Element
	for i := len(p.Values) - 1; i >= 0; i-- {
		res.Mul(&res, &z).Add(&res, &p.Values[i])
	}
	return res
}

func twoFr() fr.Element {
	var v fr.Element
	v.SetUint64(2)
	return v
}

func threeFr() fr.Element {
	var v fr.Element
	v.SetUint64(3)
	return v
}
