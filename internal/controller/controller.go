// Package controller turns client requests into fully formed entities
// and hands them to the model.
//
// The controller owns identifier assignment for every entity kind: one
// LinearGenerator rooted at the server's id. On startup the counter is
// moved past the largest id already restored into the model, so users
// created after a restart never reuse a persisted id.
package controller

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/roach88/chatstore/internal/chat"
	"github.com/roach88/chatstore/internal/ident"
	"github.com/roach88/chatstore/internal/model"
)

var (
	// ErrInvalidArgument indicates a request field failed validation.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrUnknownUser indicates a referenced user is not indexed.
	ErrUnknownUser = errors.New("unknown user")

	// ErrUnknownConversation indicates a referenced conversation is not indexed.
	ErrUnknownConversation = errors.New("unknown conversation")
)

// Controller validates requests and creates entities.
// Safe for concurrent use.
type Controller struct {
	model  *model.Model
	ids    *ident.LinearGenerator
	now    func() time.Time
	logger *slog.Logger

	// msgMu serializes NewMessage so each message links to its
	// predecessor. tails maps a conversation's canonical id to its
	// newest message.
	msgMu sync.Mutex
	tails map[string]ident.UUID
}

// Option configures New.
type Option func(*Controller)

// WithClock overrides the wall clock used to stamp creation times.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		if now != nil {
			c.now = now
		}
	}
}

// WithLogger sets the logger. Defaults to discard.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New creates a controller that issues ids under root.
func New(m *model.Model, root ident.UUID, opts ...Option) *Controller {
	c := &Controller{
		model:  m,
		now:    time.Now,
		logger: slog.New(slog.DiscardHandler),
		tails:  make(map[string]ident.UUID),
	}
	for _, opt := range opts {
		opt(c)
	}

	start := uint32(1)
	exhausted := false
	if last, ok := m.UserByID().Last(); ok {
		// Ids are compared by number first, so the last user carries the
		// largest id issued under any root.
		if last.ID.ID() == math.MaxUint32 {
			start, exhausted = math.MaxUint32, true
		} else {
			start = last.ID.ID() + 1
		}
	}
	for _, msg := range m.MessageByTime().All() {
		c.tails[msg.Conversation.String()] = msg.ID
	}

	c.ids = ident.NewLinearGenerator(&root, start, math.MaxUint32)
	if exhausted {
		_, _ = c.ids.Make()
	}
	c.logger.Debug("controller ready", "root", root.String(), "next_id", start)
	return c
}

// NewUser creates and persists a user.
func (c *Controller) NewUser(ctx context.Context, name string) (chat.User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return chat.User{}, fmt.Errorf("new user: %w: name is empty", ErrInvalidArgument)
	}

	id, err := c.ids.Make()
	if err != nil {
		return chat.User{}, fmt.Errorf("new user: %w", err)
	}

	u := chat.User{
		ID:       id,
		Name:     name,
		Creation: c.timestamp(),
	}
	if err := c.model.AddUser(ctx, u); err != nil {
		return chat.User{}, fmt.Errorf("new user: %w", err)
	}

	c.logger.Info("user created", "id", u.ID.String(), "name", u.Name)
	return u, nil
}

// NewConversation creates a conversation owned by an existing user.
func (c *Controller) NewConversation(ctx context.Context, title string, owner ident.UUID) (chat.Conversation, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return chat.Conversation{}, fmt.Errorf("new conversation: %w: title is empty", ErrInvalidArgument)
	}
	if len(c.model.UserByID().At(owner)) == 0 {
		return chat.Conversation{}, fmt.Errorf("new conversation: %w: %s", ErrUnknownUser, owner)
	}

	id, err := c.ids.Make()
	if err != nil {
		return chat.Conversation{}, fmt.Errorf("new conversation: %w", err)
	}

	conv := chat.Conversation{
		ID:       id,
		Owner:    owner,
		Creation: c.timestamp(),
		Title:    title,
	}
	if err := c.model.AddConversation(conv); err != nil {
		return chat.Conversation{}, fmt.Errorf("new conversation: %w", err)
	}

	c.logger.Info("conversation created", "id", conv.ID.String(), "owner", owner.String())
	return conv, nil
}

// NewMessage appends a message to a conversation. The message's Previous
// link points at the latest message already in the conversation.
func (c *Controller) NewMessage(ctx context.Context, author, conversation ident.UUID, body string) (chat.Message, error) {
	if body == "" {
		return chat.Message{}, fmt.Errorf("new message: %w: body is empty", ErrInvalidArgument)
	}
	if len(c.model.UserByID().At(author)) == 0 {
		return chat.Message{}, fmt.Errorf("new message: %w: %s", ErrUnknownUser, author)
	}
	if len(c.model.ConversationByID().At(conversation)) == 0 {
		return chat.Message{}, fmt.Errorf("new message: %w: %s", ErrUnknownConversation, conversation)
	}

	c.msgMu.Lock()
	defer c.msgMu.Unlock()

	id, err := c.ids.Make()
	if err != nil {
		return chat.Message{}, fmt.Errorf("new message: %w", err)
	}

	key := conversation.String()
	msg := chat.Message{
		ID:           id,
		Conversation: conversation,
		Author:       author,
		Creation:     c.timestamp(),
		Content:      body,
		Previous:     c.tails[key],
	}
	if err := c.model.AddMessage(msg); err != nil {
		return chat.Message{}, fmt.Errorf("new message: %w", err)
	}
	c.tails[key] = msg.ID
	return msg, nil
}

// timestamp truncates to the millisecond, the resolution of durable storage.
func (c *Controller) timestamp() time.Time {
	return c.now().Truncate(time.Millisecond)
}
