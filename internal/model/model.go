package model

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/roach88/chatstore/internal/chat"
	"github.com/roach88/chatstore/internal/ident"
	"github.com/roach88/chatstore/internal/ordered"
	"github.com/roach88/chatstore/internal/store"
)

// UserLog is the durable record of users. *store.Store implements it.
type UserLog interface {
	WriteUser(ctx context.Context, rec store.UserRecord) error
	ReadUsers(ctx context.Context) ([]store.UserRecord, error)
}

// Stats summarizes the model.
type Stats struct {
	Users         int
	Conversations int
	Messages      int
	Generation    ident.UUID

	// GenerationsLeft is how many more users can be added before
	// IDENTIFIER_EXHAUSTED.
	GenerationsLeft uint64
}

// Model is the server's in-memory entity aggregate.
// Safe for concurrent use.
type Model struct {
	log     UserLog
	logger  *slog.Logger
	metrics *metrics

	users         *index[chat.User]
	conversations *index[chat.Conversation]
	messages      *index[chat.Message]

	// generations and generation are guarded by users.mu.
	generations *ident.LinearGenerator
	generation  ident.UUID
}

type options struct {
	logger     *slog.Logger
	registerer prometheus.Registerer
	genStart   uint32
	genEnd     uint32
}

// Option configures New.
type Option func(*options)

// WithLogger sets the logger for replay diagnostics. Defaults to discard.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithRegisterer registers model counters on reg. Nil disables registration.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(o *options) {
		o.registerer = reg
	}
}

// WithGenerationRange bounds the user generation counter to [start, end].
// Defaults to [1, math.MaxUint32].
func WithGenerationRange(start, end uint32) Option {
	return func(o *options) {
		o.genStart = start
		o.genEnd = end
	}
}

// New creates a model backed by log and replays every persisted user.
// A nil log keeps users in memory only.
//
// Returns an error if the log cannot be read or the generation range is
// exhausted during replay. Malformed rows are logged and skipped.
func New(ctx context.Context, log UserLog, opts ...Option) (*Model, error) {
	o := options{
		logger:   slog.New(slog.DiscardHandler),
		genStart: 1,
		genEnd:   math.MaxUint32,
	}
	for _, opt := range opts {
		opt(&o)
	}

	m := &Model{
		log:     log,
		logger:  o.logger,
		metrics: newMetrics(o.registerer),
		users: newIndex[chat.User](func(u chat.User) (ident.UUID, time.Time, string) {
			return u.ID, u.Creation, u.Name
		}),
		conversations: newIndex[chat.Conversation](func(c chat.Conversation) (ident.UUID, time.Time, string) {
			return c.ID, c.Creation, c.Title
		}),
		messages: newIndex[chat.Message](func(msg chat.Message) (ident.UUID, time.Time, string) {
			return msg.ID, msg.Creation, msg.Content
		}),
		generations: ident.NewLinearGenerator(nil, o.genStart, o.genEnd),
	}

	first, err := m.generations.Make()
	if err != nil {
		return nil, newError(ErrCodeIdentifierExhausted, err, "issue initial user generation")
	}
	m.generation = first

	if log != nil {
		if err := m.replay(ctx); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// replay indexes every persisted user through RestoreUser.
func (m *Model) replay(ctx context.Context) error {
	records, err := m.log.ReadUsers(ctx)
	if err != nil {
		return newError(ErrCodePersistenceFailure, err, "read persisted users")
	}

	restored, skipped := 0, 0
	for _, rec := range records {
		if rec.Err != nil {
			perr := newError(ErrCodePersistenceFailure, rec.Err, "skip persisted user")
			m.logger.Warn("skipping persisted user", "id", rec.ID, "name", rec.Name, "error", perr)
			m.metrics.replaySkipped.Inc()
			skipped++
			continue
		}

		id, err := ident.Parse(rec.ID)
		if err != nil {
			perr := newError(ErrCodeIdentifierParse, err, "skip persisted user")
			m.logger.Warn("skipping persisted user", "id", rec.ID, "name", rec.Name, "error", perr)
			m.metrics.replaySkipped.Inc()
			skipped++
			continue
		}

		u := chat.User{
			ID:       id,
			Name:     rec.Name,
			Creation: time.UnixMilli(rec.TimeMs),
		}
		if err := m.RestoreUser(u); err != nil {
			if IsDuplicateIdentifier(err) {
				m.logger.Warn("skipping persisted user", "id", rec.ID, "name", rec.Name, "error", err)
				m.metrics.replaySkipped.Inc()
				skipped++
				continue
			}
			return err
		}
		restored++
	}

	m.logger.Info("replayed users", "restored", restored, "skipped", skipped)
	return nil
}

// AddUser persists u and then makes it visible in all three user
// orderings. If persisting fails, no ordering changes and the user
// generation is left as it was.
func (m *Model) AddUser(ctx context.Context, u chat.User) error {
	m.users.mu.Lock()
	defer m.users.mu.Unlock()

	return m.addUserLocked(ctx, u, true)
}

// RestoreUser indexes u without writing it to the log. Used when
// replaying users that are already durable.
func (m *Model) RestoreUser(u chat.User) error {
	m.users.mu.Lock()
	defer m.users.mu.Unlock()

	return m.addUserLocked(context.Background(), u, false)
}

func (m *Model) addUserLocked(ctx context.Context, u chat.User, persist bool) error {
	if m.users.containsLocked(u.ID) {
		return newError(ErrCodeDuplicateIdentifier, nil, "user %s already indexed", u.ID)
	}

	gen, err := m.generations.Make()
	if err != nil {
		return newError(ErrCodeIdentifierExhausted, err, "issue user generation for %s", u.ID)
	}

	if persist && m.log != nil {
		err := m.log.WriteUser(ctx, store.UserRecord{
			ID:     u.ID.String(),
			TimeMs: u.Creation.UnixMilli(),
			Name:   u.Name,
		})
		if err != nil {
			m.metrics.persistenceFailures.Inc()
			if errors.Is(err, store.ErrDuplicateID) {
				return newError(ErrCodeDuplicateIdentifier, err, "user %s already persisted", u.ID)
			}
			return newError(ErrCodePersistenceFailure, err, "persist user %s", u.ID)
		}
	}

	m.generation = gen
	m.users.insertLocked(u)
	if persist {
		m.metrics.usersAdded.Inc()
	} else {
		m.metrics.usersRestored.Inc()
	}
	return nil
}

// UserGeneration returns the most recently issued user generation.
func (m *Model) UserGeneration() ident.UUID {
	m.users.mu.RLock()
	defer m.users.mu.RUnlock()
	return m.generation
}

func (m *Model) UserByID() ordered.Accessor[ident.UUID, chat.User] {
	return m.users.guarded().ByID
}

func (m *Model) UserByTime() ordered.Accessor[time.Time, chat.User] {
	return m.users.guarded().ByTime
}

func (m *Model) UserByText() ordered.Accessor[string, chat.User] {
	return m.users.guarded().ByText
}

// ViewUsers calls fn with all user orderings under one read lock.
// fn must not call back into the model's user methods.
func (m *Model) ViewUsers(fn func(Indices[chat.User])) {
	m.users.view(fn)
}

// AddConversation indexes c. Conversations are not persisted.
func (m *Model) AddConversation(c chat.Conversation) error {
	m.conversations.mu.Lock()
	defer m.conversations.mu.Unlock()

	if m.conversations.containsLocked(c.ID) {
		return newError(ErrCodeDuplicateIdentifier, nil, "conversation %s already indexed", c.ID)
	}
	m.conversations.insertLocked(c)
	m.metrics.conversationsAdded.Inc()
	return nil
}

func (m *Model) ConversationByID() ordered.Accessor[ident.UUID, chat.Conversation] {
	return m.conversations.guarded().ByID
}

func (m *Model) ConversationByTime() ordered.Accessor[time.Time, chat.Conversation] {
	return m.conversations.guarded().ByTime
}

func (m *Model) ConversationByText() ordered.Accessor[string, chat.Conversation] {
	return m.conversations.guarded().ByText
}

// ViewConversations calls fn with all conversation orderings under one
// read lock.
func (m *Model) ViewConversations(fn func(Indices[chat.Conversation])) {
	m.conversations.view(fn)
}

// AddMessage indexes msg. Messages are not persisted.
func (m *Model) AddMessage(msg chat.Message) error {
	m.messages.mu.Lock()
	defer m.messages.mu.Unlock()

	if m.messages.containsLocked(msg.ID) {
		return newError(ErrCodeDuplicateIdentifier, nil, "message %s already indexed", msg.ID)
	}
	m.messages.insertLocked(msg)
	m.metrics.messagesAdded.Inc()
	return nil
}

func (m *Model) MessageByID() ordered.Accessor[ident.UUID, chat.Message] {
	return m.messages.guarded().ByID
}

func (m *Model) MessageByTime() ordered.Accessor[time.Time, chat.Message] {
	return m.messages.guarded().ByTime
}

func (m *Model) MessageByText() ordered.Accessor[string, chat.Message] {
	return m.messages.guarded().ByText
}

// ViewMessages calls fn with all message orderings under one read lock.
func (m *Model) ViewMessages(fn func(Indices[chat.Message])) {
	m.messages.view(fn)
}

// Stats returns entity counts and the current user generation.
func (m *Model) Stats() Stats {
	return Stats{
		Users:         m.users.len(),
		Conversations: m.conversations.len(),
		Messages:      m.messages.len(),
		Generation:    m.UserGeneration(),

		GenerationsLeft: m.generations.Remaining(),
	}
}
