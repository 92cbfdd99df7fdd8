// Package kyberedwards implements curvegroup.Group over edwards25519 using
// github.com/drand/kyber, the same library the teacher repo's network-key
// groups are drawn from.
package kyberedwards

import (
	"crypto/sha256"
	"errors"
	"io"

	"github.com/drand/kyber"
	"github.com/drand/kyber/group/edwards25519"
	"github.com/drand/kyber/util/random"

	"github.com/drand/frost-signer/curvegroup"
)

var errZeroInverse = errors.New("kyberedwards: cannot invert zero scalar")

// Scalar wraps a kyber.Scalar to implement curvegroup.Scalar.
type Scalar struct {
	inner kyber.Scalar
}

func (s *Scalar) Add(a, b curvegroup.Scalar) curvegroup.Scalar {
	s.inner.Add(a.(*Scalar).inner, b.(*Scalar).inner)
	return s
}

func (s *Scalar) Sub(a, b curvegroup.Scalar) curvegroup.Scalar {
	s.inner.Sub(a.(*Scalar).inner, b.(*Scalar).inner)
	return s
}

func (s *Scalar) Mul(a, b curvegroup.Scalar) curvegroup.Scalar {
	s.inner.Mul(a.(*Scalar).inner, b.(*Scalar).inner)
	return s
}

func (s *Scalar) Negate(a curvegroup.Scalar) curvegroup.Scalar {
	s.inner.Neg(a.(*Scalar).inner)
	return s
}

func (s *Scalar) Invert(a curvegroup.Scalar) (curvegroup.Scalar, error) {
	aScalar := a.(*Scalar)
	if aScalar.IsZero() {
		return nil, errZeroInverse
	}
	s.inner.Inv(aScalar.inner)
	return s, nil
}

func (s *Scalar) Set(a curvegroup.Scalar) curvegroup.Scalar {
	s.inner.Set(a.(*Scalar).inner)
	return s
}

func (s *Scalar) Bytes() []byte {
	b, _ := s.inner.MarshalBinary()
	return b
}

func (s *Scalar) SetBytes(data []byte) (curvegroup.Scalar, error) {
	if err := s.inner.UnmarshalBinary(data); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Scalar) Equal(b curvegroup.Scalar) bool {
	return s.inner.Equal(b.(*Scalar).inner)
}

func (s *Scalar) IsZero() bool {
	return s.inner.Equal(s.inner.Clone().Zero())
}

// Point wraps a kyber.Point to implement curvegroup.Point.
type Point struct {
	inner kyber.Point
}

func (p *Point) Add(a, b curvegroup.Point) curvegroup.Point {
	p.inner.Add(a.(*Point).inner, b.(*Point).inner)
	return p
}

func (p *Point) Sub(a, b curvegroup.Point) curvegroup.Point {
	p.inner.Sub(a.(*Point).inner, b.(*Point).inner)
	return p
}

func (p *Point) Negate(a curvegroup.Point) curvegroup.Point {
	p.inner.Neg(a.(*Point).inner)
	return p
}

func (p *Point) ScalarMult(s curvegroup.Scalar, q curvegroup.Point) curvegroup.Point {
	p.inner.Mul(s.(*Scalar).inner, q.(*Point).inner)
	return p
}

func (p *Point) Set(a curvegroup.Point) curvegroup.Point {
	p.inner.Set(a.(*Point).inner)
	return p
}

func (p *Point) Bytes() []byte {
	b, _ := p.inner.MarshalBinary()
	return b
}

func (p *Point) SetBytes(data []byte) (curvegroup.Point, error) {
	if err := p.inner.UnmarshalBinary(data); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Point) Equal(b curvegroup.Point) bool {
	return p.inner.Equal(b.(*Point).inner)
}

func (p *Point) IsIdentity() bool {
	return p.inner.Equal(p.inner.Clone().Null())
}

// Group implements curvegroup.Group over edwards25519.
type Group struct {
	suite kyber.Group
}

// New returns a curvegroup.Group backed by kyber's edwards25519 suite.
func New() *Group {
	return &Group{suite: edwards25519.NewBlakeSHA256Ed25519()}
}

func (g *Group) NewScalar() curvegroup.Scalar {
	return &Scalar{inner: g.suite.Scalar()}
}

func (g *Group) NewPoint() curvegroup.Point {
	return &Point{inner: g.suite.Point()}
}

func (g *Group) Generator() curvegroup.Point {
	return &Point{inner: g.suite.Point().Base()}
}

func (g *Group) RandomScalar(r io.Reader) (curvegroup.Scalar, error) {
	return &Scalar{inner: g.suite.Scalar().Pick(random.New(r))}, nil
}

func (g *Group) HashToScalar(data ...[]byte) (curvegroup.Scalar, error) {
	h := sha256.New()
	for _, d := range data {
		h.Write(d)
	}
	s := g.suite.Scalar().SetBytes(h.Sum(nil))
	return &Scalar{inner: s}, nil
}

func (g *Group) Name() string {
	return "kyberedwards25519"
}
