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
	"io"

	"github.com/fxamacker/cbor/v2"
)

// serializedProgram is the cbor wire shape of a Program. Selector
// coefficients travel as fr.Element limb arrays, the way gnark serializes
// constraint systems.
type serializedProgram struct {
	GroupOrder uint64
	Public     []string
	Gates      []Gate
	Links      [][2]string
}

// WriteTo serializes the program with cbor.
func (p *Program) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	enc := cbor.NewEncoder(cw)
	err := enc.Encode(serializedProgram{
		GroupOrder: p.groupOrder,
		Public:     p.public,
		Gates:      p.gates,
		Links:      p.links,
	})
	return cw.n, err
}

// ReadFrom deserializes a program written by WriteTo, rebuilding the copy
// constraint merges from the recorded links.
func (p *Program) ReadFrom(r io.Reader) (int64, error) {
	cr := &countingReader{r: r}
	dec := cbor.NewDecoder(cr)
	var sp serializedProgram
	if err := dec.Decode(&sp); err != nil {
		return cr.n, err
	}
	if sp.GroupOrder == 0 || sp.GroupOrder&(sp.GroupOrder-1) != 0 {
		return cr.n, ErrNotPowerOfTwo
	}
	p.groupOrder = sp.GroupOrder
	p.public = sp.Public
	p.gates = sp.Gates
	p.parent = make(map[string]string)
	p.links = nil
	for _, l := range sp.Links {
		if err := p.Connect(l[0], l[1]); err != nil {
			return cr.n, err
		}
	}
	return cr.n, nil
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(b []byte) (int, error) {
	n, err := c.w.Write(b)
	c.n += int64(n)
	return n, err
}

type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(b []byte) (int, error) {
	n, err := c.r.Read(b)
	c.n += int64(n)
	return n, err
}
