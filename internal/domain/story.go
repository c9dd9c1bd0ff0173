package domain

import "time"

// Story is a community story shared on the story wall. Author is nil when the
// story was posted anonymously; anonymity is decided at share time and the
// authorship is simply never recorded.
type Story struct {
	ID     StoryID
	Author *SubjectID

	Title    string
	Content  string
	Category string

	Anonymous bool
	Approved  bool
	Likes     int

	CreatedAt time.Time
}
