// Package curvegroup defines the minimal scalar/point arithmetic a FROST
// backend needs, so package frost can implement the threshold-signing math
// once and be instantiated over more than one elliptic curve (see
// frost/kyberfrost and frost/gnarkfrost).
package curvegroup

import "io"

// Scalar is an element of a group's scalar field. Every arithmetic method
// uses a mutable-receiver, chainable style: it stores the result in the
// receiver and returns it, so callers write
// g.NewScalar().Add(a, b) instead of threading temporaries by hand.
type Scalar interface {
	Add(a, b Scalar) Scalar
	Sub(a, b Scalar) Scalar
	Mul(a, b Scalar) Scalar
	Negate(a Scalar) Scalar
	// Invert sets the receiver to a^{-1} and returns it, or an error if a is zero.
	Invert(a Scalar) (Scalar, error)
	Set(a Scalar) Scalar
	Bytes() []byte
	SetBytes(data []byte) (Scalar, error)
	Equal(b Scalar) bool
	IsZero() bool
}

// Point is an element of a cryptographic group, typically a point on an
// elliptic curve. Like Scalar, every method uses the mutable-receiver style.
type Point interface {
	Add(a, b Point) Point
	Sub(a, b Point) Point
	Negate(a Point) Point
	ScalarMult(s Scalar, p Point) Point
	Set(a Point) Point
	Bytes() []byte
	SetBytes(data []byte) (Point, error)
	Equal(b Point) bool
	IsIdentity() bool
}

// Group is a cryptographic group suitable for FROST: it creates scalars and
// points, exposes the generator, and provides randomness/hash-to-scalar.
type Group interface {
	NewScalar() Scalar
	NewPoint() Point
	Generator() Point
	RandomScalar(r io.Reader) (Scalar, error)
	HashToScalar(data ...[]byte) (Scalar, error)
	// Name identifies the concrete backend, e.g. for log fields.
	Name() string
}
