package domain

import "time"

type Worker struct {
	ID        string
	Name      string
	PIN       string
	Active    bool
	CreatedAt time.Time
}
