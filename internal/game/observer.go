package game

import "github.com/bunTree/BrickFast/internal/layout"

// Observer receives engine notifications. Calls happen synchronously inside
// Step and Start; implementations must not call back into the Game.
type Observer interface {
	ScoreChanged(score int)
	LivesChanged(lives int)
	StateChanged(from, to State)
	LevelUp(level int, next *layout.Layout)
	GameOver(score int)
	Completed(score int)
}

// NopObserver ignores every notification. Embed it to implement only some
// callbacks.
type NopObserver struct{}

func (NopObserver) ScoreChanged(int) {}
func (NopObserver) LivesChanged(int) {}
func (NopObserver) StateChanged(State, State) {}
func (NopObserver) LevelUp(int, *layout.Layout) {}
func (NopObserver) GameOver(int) {}
func (NopObserver) Completed(int) {}
