package billiards

import (
	"fmt"
	"math"
)

// Shape names the kind of region a table allows initial positions in.
type Shape string

const (
	ShapeRectangular Shape = "rectangular"
	ShapeCircular    Shape = "circular"
)

// boundaryTolerance absorbs rounding from the sqrt projection so a clamped
// point on the circle is always accepted by Valid.
const boundaryTolerance = 1e-9

// Axis is the position coordinate that was just edited.
type Axis int

const (
	AxisX Axis = iota
	AxisY
)

// Vec2 is a 2D point in table coordinates.
type Vec2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func NewVec2(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

// Domain is the allowed region for initial ball positions. Exactly one of
// the shape-specific fields is meaningful, selected by Shape.
type Domain struct {
	Shape  Shape   `json:"shape" yaml:"shape"`
	Width  float64 `json:"width,omitempty" yaml:"width,omitempty"`
	Height float64 `json:"height,omitempty" yaml:"height,omitempty"`
	Radius float64 `json:"radius,omitempty" yaml:"radius,omitempty"`
}

// Rectangular returns the region [0,width]x[0,height].
func Rectangular(width, height float64) Domain {
	return Domain{Shape: ShapeRectangular, Width: width, Height: height}
}

// Circular returns the disc x²+y² <= radius² centred on the origin.
func Circular(radius float64) Domain {
	return Domain{Shape: ShapeCircular, Radius: radius}
}

// Validate reports whether the domain parameters describe a usable region.
func (d Domain) Validate() error {
	switch d.Shape {
	case ShapeRectangular:
		if d.Width <= 0 || d.Height <= 0 {
			return fmt.Errorf("rectangular domain needs positive width and height, got %gx%g", d.Width, d.Height)
		}
	case ShapeCircular:
		if d.Radius <= 0 {
			return fmt.Errorf("circular domain needs a positive radius, got %g", d.Radius)
		}
	default:
		return fmt.Errorf("unknown domain shape %q", d.Shape)
	}
	return nil
}

// Valid reports whether p lies inside the domain.
func (d Domain) Valid(p Vec2) bool {
	switch d.Shape {
	case ShapeRectangular:
		return p.X >= 0 && p.X <= d.Width && p.Y >= 0 && p.Y <= d.Height
	case ShapeCircular:
		r2 := d.Radius * d.Radius
		return p.X*p.X+p.Y*p.Y <= r2*(1+boundaryTolerance)
	}
	return false
}

// Clamp moves p into the domain. For circular domains the result depends on
// which axis was edited: the other coordinate is held and the edited one is
// projected onto the circle. Points that are already valid are returned
// unchanged, so Clamp is idempotent. Unlike Valid, Clamp applies no boundary
// tolerance: anything beyond the radius is projected.
func (d Domain) Clamp(p Vec2, edited Axis) Vec2 {
	switch d.Shape {
	case ShapeRectangular:
		return Vec2{
			X: clampRange(p.X, 0, d.Width),
			Y: clampRange(p.Y, 0, d.Height),
		}
	case ShapeCircular:
		r := d.Radius
		if p.X*p.X+p.Y*p.Y <= r*r {
			return p
		}
		if edited == AxisY {
			x := clampRange(p.X, -r, r)
			return Vec2{X: x, Y: math.Copysign(math.Sqrt(math.Max(r*r-x*x, 0)), p.Y)}
		}
		y := clampRange(p.Y, -r, r)
		return Vec2{X: math.Copysign(math.Sqrt(math.Max(r*r-y*y, 0)), p.X), Y: y}
	}
	return p
}

func clampRange(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}
