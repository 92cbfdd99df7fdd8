// Package gnarkbjj implements curvegroup.Group over BabyJubJub (a twisted
// Edwards curve defined over the BN254 scalar field) using
// github.com/consensys/gnark-crypto.
package gnarkbjj

import (
	"crypto/sha256"
	"errors"
	"io"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/gnark-crypto/ecc/bn254/twistededwards"

	"github.com/drand/frost-signer/curvegroup"
)

// Scalar wraps gnark-crypto's fr.Element to implement curvegroup.Scalar.
type Scalar struct {
	inner fr.Element
}

func (s *Scalar) Add(a, b curvegroup.Scalar) curvegroup.Scalar {
	s.inner.Add(&a.(*Scalar).inner, &b.(*Scalar).inner)
	return s
}

func (s *Scalar) Sub(a, b curvegroup.Scalar) curvegroup.Scalar {
	s.inner.Sub(&a.(*Scalar).inner, &b.(*Scalar).inner)
	return s
}

func (s *Scalar) Mul(a, b curvegroup.Scalar) curvegroup.Scalar {
	s.inner.Mul(&a.(*Scalar).inner, &b.(*Scalar).inner)
	return s
}

func (s *Scalar) Negate(a curvegroup.Scalar) curvegroup.Scalar {
	s.inner.Neg(&a.(*Scalar).inner)
	return s
}

var errZeroInverse = errors.New("gnarkbjj: cannot invert zero scalar")

func (s *Scalar) Invert(a curvegroup.Scalar) (curvegroup.Scalar, error) {
	aScalar := a.(*Scalar)
	if aScalar.IsZero() {
		return nil, errZeroInverse
	}
	s.inner.Inverse(&aScalar.inner)
	return s, nil
}

func (s *Scalar) Set(a curvegroup.Scalar) curvegroup.Scalar {
	s.inner.Set(&a.(*Scalar).inner)
	return s
}

func (s *Scalar) Bytes() []byte {
	b := s.inner.Bytes()
	return b[:]
}

func (s *Scalar) SetBytes(data []byte) (curvegroup.Scalar, error) {
	s.inner.SetBytes(data)
	return s, nil
}

func (s *Scalar) Equal(b curvegroup.Scalar) bool {
	return s.inner.Equal(&b.(*Scalar).inner)
}

func (s *Scalar) IsZero() bool {
	return s.inner.IsZero()
}

// Point wraps gnark-crypto's twisted-Edwards affine point to implement
// curvegroup.Point.
type Point struct {
	inner twistededwards.PointAffine
}

func (p *Point) Add(a, b curvegroup.Point) curvegroup.Point {
	p.inner.Add(&a.(*Point).inner, &b.(*Point).inner)
	return p
}

func (p *Point) Sub(a, b curvegroup.Point) curvegroup.Point {
	var negB twistededwards.PointAffine
	negB.Neg(&b.(*Point).inner)
	p.inner.Add(&a.(*Point).inner, &negB)
	return p
}

func (p *Point) Negate(a curvegroup.Point) curvegroup.Point {
	p.inner.Neg(&a.(*Point).inner)
	return p
}

func (p *Point) ScalarMult(s curvegroup.Scalar, q curvegroup.Point) curvegroup.Point {
	var sBigInt big.Int
	s.(*Scalar).inner.BigInt(&sBigInt)
	p.inner.ScalarMultiplication(&q.(*Point).inner, &sBigInt)
	return p
}

func (p *Point) Set(a curvegroup.Point) curvegroup.Point {
	p.inner.Set(&a.(*Point).inner)
	return p
}

func (p *Point) Bytes() []byte {
	b := p.inner.Bytes()
	return b[:]
}

func (p *Point) SetBytes(data []byte) (curvegroup.Point, error) {
	if err := p.inner.Unmarshal(data); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Point) Equal(b curvegroup.Point) bool {
	return p.inner.Equal(&b.(*Point).inner)
}

func (p *Point) IsIdentity() bool {
	return p.inner.IsZero()
}

// Group implements curvegroup.Group for the BabyJubJub curve.
type Group struct{}

// New returns a curvegroup.Group backed by gnark-crypto's BabyJubJub curve.
func New() *Group {
	return &Group{}
}

func (g *Group) NewScalar() curvegroup.Scalar {
	return &Scalar{}
}

func (g *Group) NewPoint() curvegroup.Point {
	var p Point
	p.inner.X.SetZero()
	p.inner.Y.SetOne()
	return &p
}

func (g *Group) Generator() curvegroup.Point {
	var p Point
	p.inner = twistededwards.GetEdwardsCurve().Base
	return &p
}

func (g *Group) RandomScalar(r io.Reader) (curvegroup.Scalar, error) {
	var buf [32]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return nil, err
	}
	var s Scalar
	s.inner.SetBytes(buf[:])
	return &s, nil
}

func (g *Group) HashToScalar(data ...[]byte) (curvegroup.Scalar, error) {
	h := sha256.New()
	for _, d := range data {
		h.Write(d)
	}
	var s Scalar
	s.inner.SetBytes(h.Sum(nil))
	return &s, nil
}

func (g *Group) Name() string {
	return "gnark-babyjubjub"
}
