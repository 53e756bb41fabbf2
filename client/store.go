package client

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"chatstarter/internal/model"
)

var (
	// ErrNoConversationSelected is returned by operations that need an active
	// conversation when none is selected.
	ErrNoConversationSelected = errors.New("no conversation selected")

	// ErrSendInFlight is returned when a send is attempted while another one
	// has not resolved yet. One submission at a time per store.
	ErrSendInFlight = errors.New("another message send is in flight")
)

// Status describes where a message entry is in its lifecycle.
type Status string

const (
	StatusSending Status = "sending"
	StatusSent    Status = "sent"
	StatusFailed  Status = "failed"
)

// Entry is one row of the message list: either a locally created Pending
// entry awaiting server confirmation, or a Confirmed entry owned by the
// server. Keeping the two as distinct types avoids overloading one id field
// with both local and server-assigned values.
type Entry interface {
	Status() Status
}

// Pending is an optimistic, not-yet-confirmed message. It only ever carries
// the user role.
type Pending struct {
	LocalID        string
	ConversationID string
	Content        string
	CreatedAt      time.Time
	Failed         bool
	Err            string
}

func (p Pending) Status() Status {
	if p.Failed {
		return StatusFailed
	}
	return StatusSending
}

// Confirmed wraps a server-authoritative message.
type Confirmed struct {
	Message model.Message
}

func (Confirmed) Status() Status { return StatusSent }

// Snapshot is an immutable view of the store state. Mutating a snapshot has
// no effect on the store.
type Snapshot struct {
	Conversations        []*model.Conversation
	ActiveConversationID string
	Entries              []Entry
	SendingMessage       bool
	LoadingMessages      bool
	Err                  string
}

// ChatStore holds the conversation list, the active conversation and its
// message entries. All mutations go through methods; construct one store per
// session. Safe for concurrent use.
type ChatStore struct {
	api     ChatAPI
	persist Persister

	mu             sync.Mutex
	conversations  []*model.Conversation
	activeID       string
	entries        []Entry
	sending        bool
	loading        bool
	err            string
	epoch          uint64
	cancelInFlight context.CancelFunc
}

// NewChatStore creates a store backed by api. persist may be nil; when given,
// the previously active conversation id is restored from it.
func NewChatStore(api ChatAPI, persist Persister) *ChatStore {
	s := &ChatStore{api: api, persist: persist}
	if persist != nil {
		if id, err := persist.LoadActiveConversation(); err == nil {
			s.activeID = id
		}
	}
	return s
}

// Snapshot returns a copy of the current state.
func (s *ChatStore) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		ActiveConversationID: s.activeID,
		SendingMessage:       s.sending,
		LoadingMessages:      s.loading,
		Err:                  s.err,
	}
	snap.Conversations = make([]*model.Conversation, len(s.conversations))
	copy(snap.Conversations, s.conversations)
	snap.Entries = make([]Entry, len(s.entries))
	copy(snap.Entries, s.entries)
	return snap
}

// SelectConversation makes id the active conversation. The message list and
// any store-wide error are discarded, and an in-flight send or load for the
// previous conversation is cancelled; its late result will not be applied.
func (s *ChatStore) SelectConversation(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selectLocked(id)
}

func (s *ChatStore) selectLocked(id string) {
	s.epoch++
	if s.cancelInFlight != nil {
		s.cancelInFlight()
		s.cancelInFlight = nil
	}
	s.activeID = id
	s.entries = nil
	s.err = ""
	s.persistActive(id)
}

// persistActive is best effort; losing the persisted selection only costs the
// user a click on next load.
func (s *ChatStore) persistActive(id string) {
	if s.persist != nil {
		_ = s.persist.SaveActiveConversation(id)
	}
}

// LoadConversations refreshes the conversation list from the server.
func (s *ChatStore) LoadConversations(ctx context.Context) error {
	convs, err := s.api.ListConversations(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.err = err.Error()
		return err
	}
	s.conversations = convs
	s.err = ""
	return nil
}

// CreateConversation creates a conversation, prepends it to the list and
// makes it active.
func (s *ChatStore) CreateConversation(ctx context.Context, params CreateConversationParams) (*model.Conversation, error) {
	conv, err := s.api.CreateConversation(ctx, params)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.err = err.Error()
		return nil, err
	}
	s.conversations = append([]*model.Conversation{conv}, s.conversations...)
	s.selectLocked(conv.ID)
	return conv, nil
}

// DeleteConversation deletes a conversation. Deleting the active conversation
// also clears the selection and the message list; deleting any other one only
// removes it from the list.
func (s *ChatStore) DeleteConversation(ctx context.Context, id string) error {
	if err := s.api.DeleteConversation(ctx, id); err != nil {
		s.mu.Lock()
		s.err = err.Error()
		s.mu.Unlock()
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i, conv := range s.conversations {
		if conv.ID == id {
			s.conversations = append(s.conversations[:i], s.conversations[i+1:]...)
			break
		}
	}
	if s.activeID == id {
		s.selectLocked("")
	}
	return nil
}

// LoadMessages fetches the message history of the active conversation. A
// result arriving after the selection changed is discarded.
func (s *ChatStore) LoadMessages(ctx context.Context) error {
	s.mu.Lock()
	if s.activeID == "" {
		s.mu.Unlock()
		return ErrNoConversationSelected
	}
	conversationID := s.activeID
	epoch := s.epoch
	s.loading = true
	loadCtx, cancel := context.WithCancel(ctx)
	s.cancelInFlight = cancel
	s.mu.Unlock()

	messages, err := s.api.ListMessages(loadCtx, conversationID)
	cancel()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	s.cancelInFlight = nil
	if epoch != s.epoch {
		return nil
	}
	if err != nil {
		s.err = err.Error()
		return err
	}
	entries := make([]Entry, 0, len(messages))
	for _, msg := range messages {
		entries = append(entries, Confirmed{Message: msg})
	}
	s.entries = entries
	s.err = ""
	return nil
}

// SendMessage optimistically appends a pending user entry, posts the content
// to the active conversation and, on success, replaces the pending entry with
// the two server-confirmed messages. On failure the pending entry stays in
// the list marked failed so the caller can retry or remove it. The returned
// local id identifies the pending entry either way.
func (s *ChatStore) SendMessage(ctx context.Context, content string) (string, error) {
	s.mu.Lock()
	if s.activeID == "" {
		s.mu.Unlock()
		return "", ErrNoConversationSelected
	}
	if s.sending {
		s.mu.Unlock()
		return "", ErrSendInFlight
	}

	localID := uuid.NewString()
	s.entries = append(s.entries, Pending{
		LocalID:        localID,
		ConversationID: s.activeID,
		Content:        content,
		CreatedAt:      time.Now().UTC(),
	})
	conversationID := s.activeID
	s.beginSendLocked()
	epoch := s.epoch
	sendCtx, cancel := context.WithCancel(ctx)
	s.cancelInFlight = cancel
	s.mu.Unlock()

	pair, err := s.api.SendMessage(sendCtx, conversationID, content)
	cancel()

	return localID, s.completeSend(localID, epoch, pair, err)
}

// RetryMessage re-sends a failed pending entry. Calling it on an unknown id
// or on an entry that is not failed is a no-op.
func (s *ChatStore) RetryMessage(ctx context.Context, localID string) error {
	s.mu.Lock()
	idx, pending := s.findPendingLocked(localID)
	if idx < 0 || !pending.Failed {
		s.mu.Unlock()
		return nil
	}
	if s.sending {
		s.mu.Unlock()
		return ErrSendInFlight
	}

	pending.Failed = false
	pending.Err = ""
	s.entries[idx] = pending
	s.beginSendLocked()
	epoch := s.epoch
	sendCtx, cancel := context.WithCancel(ctx)
	s.cancelInFlight = cancel
	s.mu.Unlock()

	pair, err := s.api.SendMessage(sendCtx, pending.ConversationID, pending.Content)
	cancel()

	return s.completeSend(localID, epoch, pair, err)
}

// RemoveMessage unconditionally drops an entry from the list, matching
// pending entries by local id and confirmed ones by server id. No server-side
// effect; meant for discarding entries stuck in failed.
func (s *ChatStore) RemoveMessage(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, entry := range s.entries {
		switch e := entry.(type) {
		case Pending:
			if e.LocalID != id {
				continue
			}
		case Confirmed:
			if e.Message.ID != id {
				continue
			}
		}
		s.entries = append(s.entries[:i], s.entries[i+1:]...)
		return
	}
}

func (s *ChatStore) beginSendLocked() {
	s.sending = true
}

// completeSend applies the outcome of a send started at the given epoch. A
// result belonging to a superseded selection is dropped without touching the
// entry list.
func (s *ChatStore) completeSend(localID string, epoch uint64, pair *model.MessagePair, sendErr error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sending = false
	s.cancelInFlight = nil

	if epoch != s.epoch {
		return nil
	}

	idx, pending := s.findPendingLocked(localID)
	if idx < 0 {
		// Removed while in flight; nothing to transition.
		return sendErr
	}

	if sendErr != nil {
		pending.Failed = true
		pending.Err = sendErr.Error()
		s.entries[idx] = pending
		s.err = sendErr.Error()
		return sendErr
	}

	replacement := []Entry{
		Confirmed{Message: pair.UserMessage},
		Confirmed{Message: pair.AssistantMessage},
	}
	s.entries = append(s.entries[:idx], append(replacement, s.entries[idx+1:]...)...)
	s.err = ""
	return nil
}

func (s *ChatStore) findPendingLocked(localID string) (int, Pending) {
	for i, entry := range s.entries {
		if pending, ok := entry.(Pending); ok && pending.LocalID == localID {
			return i, pending
		}
	}
	return -1, Pending{}
}
