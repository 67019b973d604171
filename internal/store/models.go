package store

import "time"

type Post struct {
	ID        int64
	Slug      string
	Title     string
	Excerpt   string
	Content   string
	CreatedAt time.Time
}

type Message struct {
	ID        int64
	Name      string
	Email     string
	Body      string
	CreatedAt time.Time
}
