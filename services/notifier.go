package services

import "github.com/qianlnk/hotel/models"

// Notifier receives what the engine publishes for outside observers. Every
// value handed over is a copy; implementations may keep it.
type Notifier interface {
	Publish(board models.BoardView)
	Announce(day int, text string)
}

type nopNotifier struct{}

func (nopNotifier) Publish(models.BoardView) {}

func (nopNotifier) Announce(int, string) {}
