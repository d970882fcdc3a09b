package game

import (
	"math"

	"github.com/bunTree/BrickFast/internal/core"
)

// SpeedTolerance is the largest allowed gap between a ball's velocity
// magnitude and its nominal speed.
const SpeedTolerance = 0.1

// minPaddleDX is the smallest horizontal speed a paddle rebound leaves.
const minPaddleDX = 0.5

// Ball is a moving ball. Pos is the center.
type Ball struct {
	Pos    core.Vec
	Vel    core.Vec
	Radius float64
	Speed  float64 // nominal speed
}

// NewBall creates a ball at (x, y) heading along (dx, dy). The velocity is
// rescaled to speed when it is outside SpeedTolerance.
func NewBall(x, y, dx, dy, radius, speed float64) Ball {
	b := Ball{
		Pos:    core.Vec{X: x, Y: y},
		Vel:    core.Vec{X: dx, Y: dy},
		Radius: radius,
		Speed:  speed,
	}
	if b.Drifted() {
		b.Normalize()
	}
	return b
}

// Magnitude returns the current velocity magnitude.
func (b Ball) Magnitude() float64 {
	return math.Hypot(b.Vel.X, b.Vel.Y)
}

// Drifted reports whether the velocity magnitude is outside SpeedTolerance.
// A NaN or infinite velocity always counts as drifted.
func (b Ball) Drifted() bool {
	return !(math.Abs(b.Magnitude()-b.Speed) <= SpeedTolerance)
}

// Normalize rescales the velocity to the nominal speed. A zero velocity
// becomes straight up. This is the only place the speed invariant is restored.
func (b *Ball) Normalize() {
	m := b.Magnitude()
	if m == 0 || math.IsNaN(m) || math.IsInf(m, 0) {
		b.Vel = core.Vec{X: 0, Y: -b.Speed}
		return
	}
	f := b.Speed / m
	b.Vel.X *= f
	b.Vel.Y *= f
}

// Move integrates one step.
func (b *Ball) Move() {
	b.Pos = b.Pos.Add(b.Vel)
}

// Bounds returns the ball's bounding box.
func (b Ball) Bounds() core.Rect {
	return core.CenteredRect(b.Pos.X, b.Pos.Y, 2*b.Radius, 2*b.Radius)
}

// Paddle is the player-controlled bar. X, Y is the top-left corner.
type Paddle struct {
	X, Y  float64
	W, H  float64
	Speed float64 // units per frame at full intent
	VX    float64 // last applied horizontal velocity
}

// Rect returns the paddle rectangle.
func (p Paddle) Rect() core.Rect {
	return core.NewRect(p.X, p.Y, p.W, p.H)
}

// CenterX returns the horizontal center.
func (p Paddle) CenterX() float64 {
	return p.X + p.W/2
}

// Move applies a horizontal intent in {-1, 0, +1} and clamps the paddle to
// [0, width].
func (p *Paddle) Move(intent int, width float64) {
	p.VX = float64(intent) * p.Speed
	p.X = core.ClampF(p.X+p.VX, 0, width-p.W)
}

// Center places the paddle in the middle of a field of the given width.
func (p *Paddle) Center(width float64) {
	p.X = (width - p.W) / 2
	p.VX = 0
}

// CollisionSide indicates which face of a rectangle a ball struck.
type CollisionSide int

const (
	CollisionNone CollisionSide = iota
	CollisionTop
	CollisionBottom
	CollisionLeft
	CollisionRight
)

// String returns the side name.
func (s CollisionSide) String() string {
	switch s {
	case CollisionTop:
		return "top"
	case CollisionBottom:
		return "bottom"
	case CollisionLeft:
		return "left"
	case CollisionRight:
		return "right"
	default:
		return "none"
	}
}

// Vertical reports whether the side reflects the vertical velocity.
func (s CollisionSide) Vertical() bool {
	return s == CollisionTop || s == CollisionBottom
}

// ReflectWalls bounces the ball off the left, right and top bounds of a
// width-wide field and clamps it back inside. The bottom is open.
// Reports whether any wall was hit.
func ReflectWalls(b *Ball, width float64) bool {
	hit := false
	if b.Pos.X-b.Radius < 0 {
		b.Vel.X = -b.Vel.X
		b.Pos.X = b.Radius
		hit = true
	} else if b.Pos.X+b.Radius > width {
		b.Vel.X = -b.Vel.X
		b.Pos.X = width - b.Radius
		hit = true
	}
	if b.Pos.Y-b.Radius < 0 {
		b.Vel.Y = -b.Vel.Y
		b.Pos.Y = b.Radius
		hit = true
	}
	return hit
}

// BelowFloor reports whether the ball has left the bottom of the field.
func BelowFloor(b Ball, height float64) bool {
	return b.Pos.Y+b.Radius > height
}

// HitsPaddle reports whether a downward-moving ball overlaps the paddle.
func HitsPaddle(b Ball, p Paddle) bool {
	return b.Vel.Y > 0 && b.Bounds().Intersects(p.Rect())
}

// PaddleDeflection returns the horizontal velocity after a rebound at x.
// The offset from the paddle center is clamped to [-1, 1] and scaled by the
// ball speed; magnitudes below 0.5 are raised to 0.5, keeping the sign
// (an exact center hit goes left).
func PaddleDeflection(x float64, p Paddle, speed float64) float64 {
	offset := core.ClampF((x-p.CenterX())/(p.W/2), -1, 1)
	dx := offset * speed
	if math.Abs(dx) < minPaddleDX {
		if dx > 0 {
			return minPaddleDX
		}
		return -minPaddleDX
	}
	return dx
}

// BouncePaddle rests the ball on the paddle top and sends it upward with a
// deflection that depends on where it struck. The horizontal component never
// ends below minPaddleDX.
func BouncePaddle(b *Ball, p Paddle) {
	b.Pos.Y = p.Y - b.Radius
	b.Vel.Y = -math.Abs(b.Vel.Y)
	b.Vel.X = PaddleDeflection(b.Pos.X, p, b.Speed)
	if !b.Drifted() {
		return
	}
	b.Normalize()
	if math.Abs(b.Vel.X) < minPaddleDX && b.Speed > minPaddleDX {
		b.Vel.X = math.Copysign(minPaddleDX, b.Vel.X)
		b.Vel.Y = -math.Sqrt(b.Speed*b.Speed - minPaddleDX*minPaddleDX)
	}
}

// CheckBrickCollision returns the face of r the ball penetrated least, or
// CollisionNone when they do not overlap. Ties prefer the vertical faces.
func CheckBrickCollision(b Ball, r core.Rect) CollisionSide {
	if !b.Bounds().Intersects(r) {
		return CollisionNone
	}

	overlapLeft := b.Pos.X + b.Radius - r.X
	overlapRight := r.Right() - (b.Pos.X - b.Radius)
	overlapTop := b.Pos.Y + b.Radius - r.Y
	overlapBottom := r.Bottom() - (b.Pos.Y - b.Radius)

	smallest := min(overlapLeft, overlapRight, overlapTop, overlapBottom)
	switch smallest {
	case overlapTop:
		return CollisionTop
	case overlapBottom:
		return CollisionBottom
	case overlapLeft:
		return CollisionLeft
	default:
		return CollisionRight
	}
}

// ApplyCollisionBounce reflects the velocity axis for side.
func ApplyCollisionBounce(b *Ball, side CollisionSide) {
	switch {
	case side == CollisionNone:
		return
	case side.Vertical():
		b.Vel.Y = -b.Vel.Y
	default:
		b.Vel.X = -b.Vel.X
	}
}

// NearBrick is the broad-phase test: the distance between the ball and brick
// centers is within the corner reach plus margin.
func NearBrick(b Ball, r core.Rect, margin float64) bool {
	cx, cy := r.Center()
	reach := math.Hypot(r.W/2+b.Radius, r.H/2+b.Radius)
	return math.Hypot(b.Pos.X-cx, b.Pos.Y-cy) <= reach+margin
}
