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

// Package circuit describes PLONK arithmetic circuits: a list of standard
// gates ql·a + qr·b + qm·a·b + qo·c + qc + PI = 0 over named wires, public
// input declarations, and copy constraints. From a Program it derives the
// common preprocessed input consumed by the prover: the selector polynomials
// and the permutation polynomials S1, S2, S3 encoding the wire copy cycles.
package circuit

import (
	"errors"
	"fmt"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"golang.org/x/exp/slices"
)

var (
	ErrNotPowerOfTwo     = errors.New("circuit: group order must be a power of two")
	ErrCircuitFull       = errors.New("circuit: number of rows exceeds the group order")
	ErrDuplicatePublic   = errors.New("circuit: public input already declared")
	ErrMissingAssignment = errors.New("circuit: witness misses an assignment")
	ErrReservedWire      = errors.New("circuit: the empty wire name is reserved for the zero wire")
)

// Witness maps wire names to signed integer assignments. The empty name is
// the constant-zero wire; it is taken as 0 whether or not it is present.
type Witness map[string]int64

// Value returns the field element assigned to name. The zero wire always
// resolves; any other absent name reports false.
func (w Witness) Value(name string) (fr.Element, bool) {
	var v fr.Element
	if name == "" {
		return v, true
	}
	x, ok := w[name]
	if !ok {
		return v, false
	}
	v.SetInt64(x)
	return v, true
}

// Gate is one row of the constraint system:
//
//	ql·L + qr·R + qm·L·R + qo·O + qc + PI = 0
type Gate struct {
	L, R, O            string
	QL, QR, QM, QO, QC fr.Element
}

// Wires names the three wire slots of a row.
type Wires struct {
	L, R, O string
}

// Mul returns the gate enforcing a·b = c.
func Mul(a, b, c string) Gate {
	var g Gate
	g.L, g.R, g.O = a, b, c
	g.QM.SetOne()
	g.QO.SetInt64(-1)
	return g
}

// Add returns the gate enforcing a + b = c.
func Add(a, b, c string) Gate {
	var g Gate
	g.L, g.R, g.O = a, b, c
	g.QL.SetOne()
	g.QR.SetOne()
	g.QO.SetInt64(-1)
	return g
}

// Constant returns the gate enforcing a = k.
func Constant(a string, k int64) Gate {
	var g Gate
	g.L = a
	g.QL.SetOne()
	g.QC.SetInt64(-k)
	return g
}

// Program is a fixed circuit: public input declarations, gates and copy
// constraints, over a power-of-two group order. The public input rows occupy
// the leading positions of the wire map, in declaration order.
type Program struct {
	groupOrder uint64
	public     []string
	gates      []Gate

	// union-find over wire names, recording Connect merges
	parent map[string]string
	links  [][2]string
}

// New returns an empty program over a domain of the given order.
func New(groupOrder uint64) (*Program, error) {
	if groupOrder == 0 || groupOrder&(groupOrder-1) != 0 {
		return nil, ErrNotPowerOfTwo
	}
	return &Program{
		groupOrder: groupOrder,
		parent:     make(map[string]string),
	}, nil
}

// GroupOrder returns the size of the evaluation domain.
func (p *Program) GroupOrder() uint64 {
	return p.groupOrder
}

func (p *Program) rows() int {
	return len(p.public) + len(p.gates)
}

// PublicInput declares a public input wire. Its placeholder row carries
// ql=1; the prover completes it with the public-inputs polynomial, whose
// value at that row is the negated assignment.
func (p *Program) PublicInput(name string) error {
	if name == "" {
		return ErrReservedWire
	}
	if slices.Contains(p.public, name) {
		return ErrDuplicatePublic
	}
	if uint64(p.rows()) >= p.groupOrder {
		return ErrCircuitFull
	}
	p.public = append(p.public, name)
	return nil
}

// AddGate appends a gate row.
func (p *Program) AddGate(g Gate) error {
	if uint64(p.rows()) >= p.groupOrder {
		return ErrCircuitFull
	}
	p.gates = append(p.gates, g)
	return nil
}

// Connect adds a copy constraint between two distinct wire names: their
// slots are merged into one permutation cycle, so the permutation argument
// enforces equality of their assignments without renaming either.
func (p *Program) Connect(a, b string) error {
	if a == "" || b == "" {
		return ErrReservedWire
	}
	p.union(a, b)
	p.links = append(p.links, [2]string{a, b})
	return nil
}

func (p *Program) find(name string) string {
	root := name
	for {
		parent, ok := p.parent[root]
		if !ok || parent == root {
			return root
		}
		root = parent
	}
}

func (p *Program) union(a, b string) {
	ra, rb := p.find(a), p.find(b)
	if ra != rb {
		p.parent[rb] = ra
	}
}

// Wires returns the wire map: one (L, R, O) triple per row of the domain.
// Rows beyond the declared gates carry the zero wire.
func (p *Program) Wires() []Wires {
	rows := make([]Wires, p.groupOrder)
	for i, v := range p.public {
		rows[i] = Wires{L: v}
	}
	offset := len(p.public)
	for i, g := range p.gates {
		rows[offset+i] = Wires{L: g.L, R: g.R, O: g.O}
	}
	return rows
}

// PublicAssignments returns the public input names in declaration order.
func (p *Program) PublicAssignments() []string {
	return slices.Clone(p.public)
}

// String implements fmt.Stringer; it never includes assignments.
func (p *Program) String() string {
	return fmt.Sprintf("circuit{n=%d, public=%d, gates=%d, links=%d}",
		p.groupOrder, len(p.public), len(p.gates), len(p.links))
}
