package client

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

const tokenFileName = "auth_token.json"

// TokenStore persists the session token between process runs.
type TokenStore interface {
	Load() (string, error)
	Save(token string) error
	Clear() error
}

type storedToken struct {
	Token string `json:"token"`
}

// FileTokenStore keeps the token in a JSON file under the user's home
// directory (~/.payroll/auth_token.json), readable only by the owner.
type FileTokenStore struct {
	path string
}

// NewFileTokenStore resolves the default token path.
func NewFileTokenStore() (*FileTokenStore, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("find home directory: %w", err)
	}
	return &FileTokenStore{path: filepath.Join(home, ".payroll", tokenFileName)}, nil
}

// NewFileTokenStoreAt uses an explicit path instead of the default.
func NewFileTokenStoreAt(path string) *FileTokenStore {
	return &FileTokenStore{path: path}
}

// Load returns the stored token, or empty string if none is stored.
func (s *FileTokenStore) Load() (string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("read token file: %w", err)
	}
	var stored storedToken
	if err := json.Unmarshal(data, &stored); err != nil {
		return "", fmt.Errorf("parse token file: %w", err)
	}
	return stored.Token, nil
}

func (s *FileTokenStore) Save(token string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	data, err := json.MarshalIndent(storedToken{Token: token}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal token: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("write token file: %w", err)
	}
	return nil
}

func (s *FileTokenStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove token file: %w", err)
	}
	return nil
}

// MemoryTokenStore holds the token in memory only. Used in tests and
// for callers that manage persistence themselves.
type MemoryTokenStore struct {
	mu    sync.Mutex
	token string
}

func NewMemoryTokenStore() *MemoryTokenStore {
	return &MemoryTokenStore{}
}

func (s *MemoryTokenStore) Load() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token, nil
}

func (s *MemoryTokenStore) Save(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	return nil
}

func (s *MemoryTokenStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	return nil
}
