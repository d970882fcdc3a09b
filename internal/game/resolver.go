package game

// FrameResult summarizes one resolver pass.
type FrameResult struct {
	Points     int  // score gained this frame
	BricksHit  int  // bricks destroyed this frame
	Spawned    int  // power-ups dropped
	Fallen     int  // balls that left through the floor
	Normalized int  // balls whose drifted speed was corrected
	Trimmed    int  // balls removed by the cap before moving
	Exhausted  bool // no ball survived the frame
	Cleared    bool // no brick was left standing after the frame
}

// CollisionResolver advances every ball one step and resolves walls, paddle,
// floor and bricks in that order. Balls are processed in pool order, so the
// earlier ball wins a brick two balls reach in the same frame.
type CollisionResolver struct {
	width, height float64
	margin        float64

	active   []Brick
	survived []Ball
}

// NewCollisionResolver creates a resolver for a field of the given size.
// margin widens the center-distance broad phase.
func NewCollisionResolver(width, height, margin float64) *CollisionResolver {
	return &CollisionResolver{width: width, height: height, margin: margin}
}

// Resolve runs one frame. Power-ups for destroyed bricks are rolled on
// powerups, which may be nil.
func (r *CollisionResolver) Resolve(pool *EntityPool, paddle Paddle, field *BrickField, powerups *PowerupSystem) FrameResult {
	var res FrameResult

	res.Trimmed = pool.EnforceCap()

	// Snapshot alive bricks once; hits remove from this list so a brick is
	// claimed by at most one ball.
	r.active = field.ActiveSet(r.active[:0])

	balls := pool.Balls()
	survived := r.survived[:0]

	for i := range balls {
		b := balls[i]

		if b.Drifted() {
			b.Normalize()
			res.Normalized++
		}

		b.Move()
		ReflectWalls(&b, r.width)

		if HitsPaddle(b, paddle) {
			BouncePaddle(&b, paddle)
		}

		if BelowFloor(b, r.height) {
			res.Fallen++
			continue
		}

		r.hitBrick(&b, field, powerups, &res)
		survived = append(survived, b)
	}

	// Swap buffers: the pool takes the survivors, the old slice becomes scratch.
	r.survived = balls[:0]
	pool.Replace(survived)

	res.Exhausted = len(survived) == 0
	res.Cleared = len(r.active) == 0
	return res
}

func (r *CollisionResolver) hitBrick(b *Ball, field *BrickField, powerups *PowerupSystem, res *FrameResult) {
	for i, brick := range r.active {
		if !NearBrick(*b, brick.Rect, r.margin) {
			continue
		}
		side := CheckBrickCollision(*b, brick.Rect)
		if side == CollisionNone {
			continue
		}

		ApplyCollisionBounce(b, side)
		if b.Drifted() {
			b.Normalize()
		}

		r.active = append(r.active[:i], r.active[i+1:]...)
		points, center, ok := field.Destroy(brick.Col, brick.Row)
		if ok {
			res.Points += points
			res.BricksHit++
			if powerups != nil {
				if _, spawned := powerups.MaybeSpawn(center); spawned {
					res.Spawned++
				}
			}
		}
		return
	}
}
