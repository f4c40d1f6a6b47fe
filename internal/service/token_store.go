package service

import (
	"os"
	"path/filepath"
	"strings"

	"docuflow/internal/state"
)

const tokenFileName = "token"

// TokenStore holds the bearer token in a reactive cell mirrored to a single
// file under the state directory. The cell is the single source of truth for
// "authenticated"; the file only survives restarts. Single-writer: only the
// auth service sets it.
type TokenStore struct {
	dir  string
	cell *state.Cell[string]
}

// NewTokenStore loads any persisted token from dir and returns the store.
func NewTokenStore(dir string) *TokenStore {
	token := ""
	if data, err := os.ReadFile(filepath.Join(dir, tokenFileName)); err == nil {
		token = strings.TrimSpace(string(data))
	}
	return &TokenStore{
		dir:  dir,
		cell: state.NewCell(token),
	}
}

// Token returns the current bearer token, or "" when anonymous.
func (s *TokenStore) Token() string {
	return s.cell.Get()
}

// Set persists the token (or clears it when empty) and updates the cell
// synchronously, so observers and the file never disagree.
func (s *TokenStore) Set(token string) error {
	if token == "" {
		if err := os.Remove(filepath.Join(s.dir, tokenFileName)); err != nil && !os.IsNotExist(err) {
			return err
		}
	} else {
		if err := os.MkdirAll(s.dir, 0o700); err != nil {
			return err
		}
		if err := os.WriteFile(filepath.Join(s.dir, tokenFileName), []byte(token), 0o600); err != nil {
			return err
		}
	}
	s.cell.Set(token)
	return nil
}

// Clear removes the whole state directory, dropping the token and any other
// locally persisted keys, and resets the cell.
func (s *TokenStore) Clear() error {
	if err := os.RemoveAll(s.dir); err != nil {
		return err
	}
	s.cell.Set("")
	return nil
}

// Subscribe registers fn to run whenever the token changes.
func (s *TokenStore) Subscribe(fn func(string)) func() {
	return s.cell.Subscribe(fn)
}
