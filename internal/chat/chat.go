// Package chat defines the entities held by the server's data layer.
package chat

import (
	"time"

	"github.com/roach88/chatstore/internal/ident"
)

// User is a registered participant. Names are not required to be unique.
type User struct {
	ID       ident.UUID
	Name     string
	Creation time.Time
}

// Conversation is a titled thread owned by a user.
type Conversation struct {
	ID       ident.UUID
	Owner    ident.UUID
	Creation time.Time
	Title    string
}

// Message is one entry in a conversation.
// Previous and Next link neighbouring messages of the same conversation
// and are the zero UUID at either end.
type Message struct {
	ID           ident.UUID
	Conversation ident.UUID
	Author       ident.UUID
	Creation     time.Time
	Content      string
	Previous     ident.UUID
	Next         ident.UUID
}
