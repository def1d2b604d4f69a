package domain

import "time"

// Bar is an establishment staff users operate under. Key is the public
// workplace key staff supply at login.
type Bar struct {
	ID        int64     `json:"id"`
	Key       string    `json:"key"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// Cocktail is a menu entry; only the fields needed for the workplace
// favorites list returned on staff login.
type Cocktail struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
