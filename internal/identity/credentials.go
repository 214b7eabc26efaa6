package identity

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Roles recognized by the backend for authenticated calls.
const (
	RoleAdmin   = "admin"
	RoleTeacher = "teacher"
)

// Credentials is the stored login token and role gating route access.
type Credentials struct {
	Token string `json:"token"`
	Role  string `json:"role"`
}

// CredentialStore reads and writes the stored login credentials.
type CredentialStore struct {
	path string
}

// NewCredentialStore constructs a store for the given file path.
func NewCredentialStore(path string) *CredentialStore {
	return &CredentialStore{path: path}
}

// Load returns the stored credentials, failing with a tagged *Error when
// nothing is stored, the content is unreadable, or a field is empty.
func (s *CredentialStore) Load() (Credentials, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return Credentials{}, &Error{Kind: KindMissing, Reason: "not logged in"}
		}
		return Credentials{}, fmt.Errorf("read credentials: %w", err)
	}
	var creds Credentials
	if err := json.Unmarshal(data, &creds); err != nil {
		return Credentials{}, &Error{Kind: KindInvalid, Reason: "stored credentials are not parseable"}
	}
	if creds.Token == "" {
		return Credentials{}, &Error{Kind: KindIncomplete, Reason: "token is empty"}
	}
	if creds.Role != RoleAdmin && creds.Role != RoleTeacher {
		return Credentials{}, &Error{Kind: KindIncomplete, Reason: fmt.Sprintf("unknown role %q", creds.Role)}
	}
	return creds, nil
}

// Save persists credentials atomically.
func (s *CredentialStore) Save(creds Credentials) error {
	payload, err := json.MarshalIndent(creds, "", "  ")
	if err != nil {
		return err
	}
	return writeFileAtomic(s.path, payload)
}

// Clear removes the stored credentials. A missing file is not an error.
func (s *CredentialStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("clear credentials: %w", err)
	}
	return nil
}

// writeFileAtomic writes payload to a temp file and renames it into place.
func writeFileAtomic(path string, payload []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	tmpPath := path + ".tmp"
	file, err := os.OpenFile(tmpPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return err
	}
	_, writeErr := file.Write(payload)
	syncErr := file.Sync()
	closeErr := file.Close()
	for _, err := range []error{writeErr, syncErr, closeErr} {
		if err != nil {
			_ = os.Remove(tmpPath)
			return err
		}
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	return nil
}
