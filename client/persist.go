package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Persister stores the small slice of client state that survives restarts.
// Only the active conversation id is persisted; message lists and transient
// statuses are rebuilt from the server on next load.
type Persister interface {
	SaveActiveConversation(id string) error
	LoadActiveConversation() (string, error)
}

type persistedState struct {
	ActiveConversationID string `json:"active_conversation_id"`
}

// FilePersister keeps the persisted state in a JSON file.
type FilePersister struct {
	path string
}

// NewFilePersister persists to the given file path, creating parent
// directories on first save.
func NewFilePersister(path string) *FilePersister {
	return &FilePersister{path: path}
}

func (p *FilePersister) SaveActiveConversation(id string) error {
	if err := os.MkdirAll(filepath.Dir(p.path), 0o755); err != nil {
		return fmt.Errorf("could not create state directory: %w", err)
	}

	data, err := json.Marshal(persistedState{ActiveConversationID: id})
	if err != nil {
		return fmt.Errorf("could not encode state: %w", err)
	}
	if err := os.WriteFile(p.path, data, 0o600); err != nil {
		return fmt.Errorf("could not write state: %w", err)
	}
	return nil
}

func (p *FilePersister) LoadActiveConversation() (string, error) {
	data, err := os.ReadFile(p.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("could not read state: %w", err)
	}

	var state persistedState
	if err := json.Unmarshal(data, &state); err != nil {
		return "", fmt.Errorf("could not decode state: %w", err)
	}
	return state.ActiveConversationID, nil
}
