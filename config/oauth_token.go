package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/oauth2"
)

// GoogleTokenStore persists the Google OAuth token as plaintext JSON in
// the data directory. The file is 0600 inside a 0700 directory; the token
// grants access to the user's own documents only.
type GoogleTokenStore struct {
	dataDir string
	mu      sync.RWMutex
}

// NewGoogleTokenStore creates a persistent token store rooted at dataDir.
func NewGoogleTokenStore(dataDir string) *GoogleTokenStore {
	return &GoogleTokenStore{dataDir: dataDir}
}

// Load reads the stored token. A missing file is not an error: it returns
// (nil, nil) and the caller starts the consent flow.
func (s *GoogleTokenStore) Load() (*oauth2.Token, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tokenPath := s.tokenPath()

	switch _, err := os.Stat(tokenPath); {
	case os.IsNotExist(err):
		return nil, nil
	case err != nil:
		return nil, fmt.Errorf("failed to stat token file: %w", err)
	}

	data, err := os.ReadFile(tokenPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read token file: %w", err)
	}

	var token oauth2.Token
	if err := json.Unmarshal(data, &token); err != nil {
		return nil, fmt.Errorf("failed to unmarshal token: %w", err)
	}

	return &token, nil
}

// Save writes the token to disk, creating the data directory if needed.
func (s *GoogleTokenStore) Save(token *oauth2.Token) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(token, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal token: %w", err)
	}

	if err := os.MkdirAll(s.dataDir, 0700); err != nil {
		return fmt.Errorf("failed to create token directory: %w", err)
	}

	if err := os.WriteFile(s.tokenPath(), data, 0600); err != nil {
		return fmt.Errorf("failed to write token file: %w", err)
	}

	return nil
}

func (s *GoogleTokenStore) tokenPath() string {
	return filepath.Join(s.dataDir, "google_token.json")
}
