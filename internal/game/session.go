package game

// StartingLives is the number of lives a new session begins with.
const StartingLives = 3

// Session is the per-run progress.
type Session struct {
	Score int
	Lives int
	Level int
}

// NewSession returns a fresh session starting at level.
func NewSession(level int) Session {
	return Session{Score: 0, Lives: StartingLives, Level: level}
}

// AddScore adds non-negative points. Score never decreases.
func (s *Session) AddScore(points int) {
	if points > 0 {
		s.Score += points
	}
}

// LoseLife removes one life and reports whether none are left.
func (s *Session) LoseLife() bool {
	if s.Lives > 0 {
		s.Lives--
	}
	return s.Lives == 0
}
