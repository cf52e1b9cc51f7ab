package domain

import "time"

type Product struct {
	ID        string
	Name      string
	Points    int
	Quantity  int // 0 means untracked or depleted
	Active    bool
	CreatedAt time.Time
}
