package domain

import "time"

// Message is the slice of a chat message this system cares about. The
// message itself is owned by the chat platform; the only side effect we
// ever apply to one is the reply.
type Message struct {
	ID        string
	ChannelID string
	Content   string
	AuthorTag string
	CreatedAt time.Time
}

// Artifact is a downloaded video file. It is owned exclusively by the
// processing of one URL and must not survive past it, whether or not the
// reply succeeded.
type Artifact struct {
	Path     string
	Uploader string
}
