package tui

import (
	"fmt"

	"github.com/bunTree/BrickFast/internal/core"
	"github.com/bunTree/BrickFast/internal/game"
	"github.com/bunTree/BrickFast/internal/layout"
)

// noticeBoard turns engine notifications into short banners shown on the
// bottom row. Every call is forwarded to next.
type noticeBoard struct {
	next  game.Observer
	hold  int
	text  string
	color core.Color
	left  int
}

func newNoticeBoard(next game.Observer, holdFrames int) *noticeBoard {
	if next == nil {
		next = game.NopObserver{}
	}
	return &noticeBoard{next: next, hold: max(1, holdFrames)}
}

func (n *noticeBoard) show(c core.Color, format string, args ...any) {
	n.text = fmt.Sprintf(format, args...)
	n.color = c
	n.left = n.hold
}

// tick ages the current banner by one frame.
func (n *noticeBoard) tick() {
	if n.left > 0 {
		n.left--
	}
}

// current returns the visible banner, if any.
func (n *noticeBoard) current() (string, core.Color, bool) {
	if n.left == 0 {
		return "", core.ColorDefault, false
	}
	return n.text, n.color, true
}

func (n *noticeBoard) ScoreChanged(score int) { n.next.ScoreChanged(score) }

func (n *noticeBoard) LivesChanged(lives int) {
	n.next.LivesChanged(lives)
	if lives > 0 && lives < game.StartingLives {
		n.show(core.ColorRed, "Ball lost! %d lives left", lives)
	}
}

func (n *noticeBoard) StateChanged(from, to game.State) { n.next.StateChanged(from, to) }

func (n *noticeBoard) LevelUp(level int, next *layout.Layout) {
	n.next.LevelUp(level, next)
	n.show(core.ColorGreen, "Level cleared! Next: %s", next.Name)
}

func (n *noticeBoard) GameOver(score int) { n.next.GameOver(score) }

func (n *noticeBoard) Completed(score int) {
	n.next.Completed(score)
	n.show(core.ColorYellow, "Every layout cleared with %d points", score)
}
