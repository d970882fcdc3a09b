package game

import (
	"math"
	"testing"

	"github.com/bunTree/BrickFast/internal/core"
	"github.com/stretchr/testify/assert"
)

func testPaddle() Paddle {
	return Paddle{X: 350, Y: 570, W: 100, H: 20, Speed: 8}
}

func TestBallNormalize(t *testing.T) {
	tests := []struct {
		name   string
		dx, dy float64
		wantX  float64
		wantY  float64
	}{
		{"zero goes straight up", 0, 0, 0, -5},
		{"scales up", 0.3, 0.4, 3, 4},
		{"scales down", -30, 40, -3, 4},
		{"already normal", 3, -4, 3, -4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := Ball{Vel: core.Vec{X: tt.dx, Y: tt.dy}, Speed: 5, Radius: 5}
			b.Normalize()
			assert.InDelta(t, tt.wantX, b.Vel.X, 1e-9)
			assert.InDelta(t, tt.wantY, b.Vel.Y, 1e-9)
			assert.False(t, b.Drifted())
		})
	}
}

func TestBallNormalizeNaN(t *testing.T) {
	b := Ball{Vel: core.Vec{X: math.NaN(), Y: 1}, Speed: 5}
	b.Normalize()
	assert.Equal(t, core.Vec{X: 0, Y: -5}, b.Vel)
}

func TestBallDrifted(t *testing.T) {
	b := NewBall(0, 0, 3, 4, 5, 5)
	assert.False(t, b.Drifted())

	b.Vel.X = 3.05
	assert.False(t, b.Drifted(), "within tolerance")

	b.Vel = core.Vec{X: 6, Y: 8}
	assert.True(t, b.Drifted())
}

func TestReflectWalls(t *testing.T) {
	tests := []struct {
		name    string
		ball    Ball
		wantPos core.Vec
		wantVel core.Vec
		wantHit bool
	}{
		{"left", NewBall(2, 300, -3, -4, 5, 5), core.Vec{X: 5, Y: 300}, core.Vec{X: 3, Y: -4}, true},
		{"right", NewBall(798, 300, 3, -4, 5, 5), core.Vec{X: 795, Y: 300}, core.Vec{X: -3, Y: -4}, true},
		{"top", NewBall(400, 1, 3, -4, 5, 5), core.Vec{X: 400, Y: 5}, core.Vec{X: 3, Y: 4}, true},
		{"corner", NewBall(1, 1, -3, -4, 5, 5), core.Vec{X: 5, Y: 5}, core.Vec{X: 3, Y: 4}, true},
		{"inside", NewBall(400, 300, 3, -4, 5, 5), core.Vec{X: 400, Y: 300}, core.Vec{X: 3, Y: -4}, false},
		{"bottom is open", NewBall(400, 599, 3, 4, 5, 5), core.Vec{X: 400, Y: 599}, core.Vec{X: 3, Y: 4}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := tt.ball
			hit := ReflectWalls(&b, 800)
			assert.Equal(t, tt.wantHit, hit)
			assert.InDelta(t, tt.wantPos.X, b.Pos.X, 1e-9)
			assert.InDelta(t, tt.wantPos.Y, b.Pos.Y, 1e-9)
			assert.InDelta(t, tt.wantVel.X, b.Vel.X, 1e-9)
			assert.InDelta(t, tt.wantVel.Y, b.Vel.Y, 1e-9)
		})
	}
}

func TestPaddleDeflection(t *testing.T) {
	p := testPaddle()

	tests := []struct {
		x    float64
		want float64
	}{
		{400, -0.5}, // dead center goes left
		{401, 0.5},  // raised to the minimum
		{399, -0.5},
		{425, 2.5},
		{450, 5},
		{500, 5}, // beyond the edge is clamped
		{300, -5},
		{350, -5},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, PaddleDeflection(tt.x, p, 5), 1e-9, "x=%g", tt.x)
	}
}

func TestPaddleDeflectionMonotonicAndBounded(t *testing.T) {
	p := testPaddle()
	prev := math.Inf(-1)
	for x := 280.0; x <= 520; x += 0.5 {
		dx := PaddleDeflection(x, p, 5)
		assert.GreaterOrEqual(t, dx, prev, "x=%g", x)
		assert.GreaterOrEqual(t, math.Abs(dx), minPaddleDX, "x=%g", x)
		assert.LessOrEqual(t, math.Abs(dx), 5.0, "x=%g", x)
		prev = dx
	}
}

func TestBouncePaddle(t *testing.T) {
	p := testPaddle()
	b := NewBall(440, 571, 0, 5, 5, 5)
	assert.True(t, HitsPaddle(b, p))

	BouncePaddle(&b, p)
	assert.Equal(t, 565.0, b.Pos.Y)
	assert.Negative(t, b.Vel.Y)
	assert.Positive(t, b.Vel.X, "right half deflects right")
	assert.False(t, b.Drifted())
}

func TestBouncePaddleKeepsMinimumDeflection(t *testing.T) {
	tests := []struct {
		name  string
		x, vy float64
		wantX float64
	}{
		{"dead center", 400, 5, -0.5},
		{"just right of center", 402, 5, 0.5},
		{"just left of center", 399.9, 5, -0.5},
		{"fast within tolerance", 400, 5.09, -0.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBall(tt.x, 571, 0, tt.vy, 5, 5)
			BouncePaddle(&b, testPaddle())

			assert.InDelta(t, tt.wantX, b.Vel.X, 1e-9)
			assert.GreaterOrEqual(t, math.Abs(b.Vel.X), minPaddleDX)
			assert.Negative(t, b.Vel.Y)
			assert.False(t, b.Drifted())
		})
	}
}

func TestNewBallKeepsVelocityWithinTolerance(t *testing.T) {
	b := NewBall(0, 0, 0, -5.05, 5, 5)
	assert.Equal(t, core.Vec{X: 0, Y: -5.05}, b.Vel)

	b = NewBall(0, 0, 0, -1, 5, 5)
	assert.Equal(t, core.Vec{X: 0, Y: -5}, b.Vel)
}

func TestHitsPaddleNeedsDownwardMotion(t *testing.T) {
	p := testPaddle()
	assert.False(t, HitsPaddle(NewBall(400, 575, 0, -5, 5, 5), p))
	assert.False(t, HitsPaddle(NewBall(200, 575, 0, 5, 5, 5), p), "beside the paddle")
	assert.True(t, HitsPaddle(NewBall(347, 575, 0, 5, 5, 5), p), "radius reaches the edge")
}

func TestPaddleMoveClamps(t *testing.T) {
	p := testPaddle()
	p.Move(1, 800)
	assert.Equal(t, 358.0, p.X)
	assert.Equal(t, 8.0, p.VX)

	p.X = 5
	p.Move(-1, 800)
	assert.Equal(t, 0.0, p.X)

	p.X = 698
	p.Move(1, 800)
	assert.Equal(t, 700.0, p.X)

	p.Move(0, 800)
	assert.Equal(t, 0.0, p.VX)

	p.Center(800)
	assert.Equal(t, 400.0, p.CenterX())
}

func TestCheckBrickCollision(t *testing.T) {
	brick := core.NewRect(100, 100, 35, 10)

	tests := []struct {
		name string
		x, y float64
		want CollisionSide
	}{
		{"from above", 117.5, 97, CollisionTop},
		{"from below", 117.5, 113, CollisionBottom},
		{"from the left", 98, 105, CollisionLeft},
		{"from the right", 137, 105, CollisionRight},
		{"corner tie prefers vertical", 97, 97, CollisionTop},
		{"apart", 90, 90, CollisionNone},
		{"touching edge only", 95, 105, CollisionNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBall(tt.x, tt.y, 0, -5, 5, 5)
			assert.Equal(t, tt.want, CheckBrickCollision(b, brick))
		})
	}
}

func TestApplyCollisionBounce(t *testing.T) {
	b := NewBall(0, 0, 3, -4, 5, 5)
	ApplyCollisionBounce(&b, CollisionBottom)
	assert.Equal(t, core.Vec{X: 3, Y: 4}, b.Vel)

	ApplyCollisionBounce(&b, CollisionLeft)
	assert.Equal(t, core.Vec{X: -3, Y: 4}, b.Vel)

	ApplyCollisionBounce(&b, CollisionNone)
	assert.Equal(t, core.Vec{X: -3, Y: 4}, b.Vel)
}

func TestNearBrick(t *testing.T) {
	brick := core.NewRect(100, 100, 35, 10)
	assert.True(t, NearBrick(NewBall(117.5, 105, 0, 1, 5, 5), brick, 10))
	assert.True(t, NearBrick(NewBall(140, 118, 0, 1, 5, 5), brick, 10))
	assert.False(t, NearBrick(NewBall(300, 300, 0, 1, 5, 5), brick, 10))
}
