// Package auth stores the bearer token that guards the JSON API.
package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const EnvToken = "TODO_TOKEN"

var ErrNoToken = errors.New("no token configured")

// Token sources reported by TokenInfo.Source.
const (
	SourceEnv  = "env"
	SourceFile = "file"
)

type TokenInfo struct {
	Token     string    `json:"token"`
	Source    string    `json:"source"`
	CreatedAt time.Time `json:"created_at"`
}

// File is the on-disk credentials document.
type File struct {
	Path string
}

// homeDir is a var so tests can point it at a temp dir.
var homeDir = os.UserHomeDir

// DefaultFile is ~/.todo/credentials.json.
func DefaultFile() (File, error) {
	home, err := homeDir()
	if err != nil {
		return File{}, fmt.Errorf("locate home: %w", err)
	}
	return File{Path: filepath.Join(home, ".todo", "credentials.json")}, nil
}

// Read returns the saved token, or ErrNoToken when the file is absent or blank.
func (f File) Read() (*TokenInfo, error) {
	raw, err := os.ReadFile(f.Path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return nil, ErrNoToken
	case err != nil:
		return nil, fmt.Errorf("read %s: %w", f.Path, err)
	}
	info := new(TokenInfo)
	if err := json.Unmarshal(raw, info); err != nil {
		return nil, fmt.Errorf("decode %s: %w", f.Path, err)
	}
	if info.Token = normalize(info.Token); info.Token == "" {
		return nil, ErrNoToken
	}
	info.Source = SourceFile
	return info, nil
}

// Write replaces the file, creating its directory owner-only.
func (f File) Write(token string, now time.Time) error {
	token = normalize(token)
	if token == "" {
		return errors.New("token is empty")
	}
	doc, err := json.MarshalIndent(TokenInfo{Token: token, Source: SourceFile, CreatedAt: now.UTC()}, "", "  ")
	if err != nil {
		return fmt.Errorf("encode token: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(f.Path), 0o700); err != nil {
		return fmt.Errorf("create %s: %w", filepath.Dir(f.Path), err)
	}
	return os.WriteFile(f.Path, doc, 0o600)
}

// Remove deletes the file. Removing a file that is not there succeeds.
func (f File) Remove() error {
	if err := os.Remove(f.Path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("delete %s: %w", f.Path, err)
	}
	return nil
}

// GetToken prefers TODO_TOKEN over the credentials file.
func GetToken() (*TokenInfo, error) {
	if tok := normalize(os.Getenv(EnvToken)); tok != "" {
		return &TokenInfo{Token: tok, Source: SourceEnv}, nil
	}
	f, err := DefaultFile()
	if err != nil {
		return nil, err
	}
	return f.Read()
}

func SetToken(token string) error {
	f, err := DefaultFile()
	if err != nil {
		return err
	}
	return f.Write(token, time.Now())
}

func DeleteToken() error {
	f, err := DefaultFile()
	if err != nil {
		return err
	}
	return f.Remove()
}

// BearerToken extracts the token from an Authorization header value.
// Anything other than the Bearer scheme yields "".
func BearerToken(header string) string {
	scheme, tok, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "bearer") {
		return ""
	}
	return strings.TrimSpace(tok)
}

// normalize accepts a raw token or a full "Bearer <token>" value.
func normalize(s string) string {
	s = strings.TrimSpace(s)
	if tok := BearerToken(s); tok != "" {
		return tok
	}
	if strings.EqualFold(s, "bearer") {
		return ""
	}
	return s
}
