// Copyright (c) 2025 wstl-notebook authors
// Licensed under the MIT License. See LICENSE file in the project root for details.

package shell

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"

	"github.com/google/uuid"

	"wstl/notebook/internal/errors"
)

const sessionFile = "session.json"

// Session is a file-backed namespace plus the incremental transformation
// session id. The notebook used the kernel's session number; the CLI keeps a
// generated id in the XDG state dir and reuses it until reset.
type Session struct {
	path string

	ID   string                     `json:"id"`
	Vars map[string]json.RawMessage `json:"vars,omitempty"`
}

// Open loads the session stored under dir, creating a fresh one (new id,
// empty namespace) when none exists.
func Open(dir string) (*Session, error) {
	s := &Session{
		path: filepath.Join(dir, sessionFile),
		Vars: map[string]json.RawMessage{},
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			s.ID = uuid.NewString()
			return s, nil
		}
		return nil, err
	}
	if err := json.Unmarshal(data, s); err != nil {
		return nil, err
	}
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	if s.Vars == nil {
		s.Vars = map[string]json.RawMessage{}
	}
	return s, nil
}

// Save writes the session with 0600 permissions.
func (s *Session) Save() error {
	b, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, b, 0o600)
}

// Reset discards the session id and namespace. The next Save persists a
// brand-new session.
func (s *Session) Reset() {
	s.ID = uuid.NewString()
	s.Vars = map[string]json.RawMessage{}
}

// Lookup implements Namespace. Stored JSON decodes to string, map[string]any
// or []any, the shapes Serialize accepts.
func (s *Session) Lookup(name string) (any, bool) {
	raw, ok := s.Vars[name]
	if !ok {
		return nil, false
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, false
	}
	return v, true
}

// Set stores a variable after checking the payload is valid JSON.
func (s *Session) Set(name string, raw []byte) error {
	if name == "" {
		return errors.New(errors.InvalidArgument, "variable name must not be empty")
	}
	if !json.Valid(raw) {
		return errors.Newf(errors.InvalidArgument, "value for variable %s is not valid JSON", name)
	}
	s.Vars[name] = json.RawMessage(raw)
	return nil
}

// Raw returns the stored JSON for a variable.
func (s *Session) Raw(name string) (json.RawMessage, bool) {
	raw, ok := s.Vars[name]
	return raw, ok
}

// Unset removes a variable; it reports whether the variable existed.
func (s *Session) Unset(name string) bool {
	if _, ok := s.Vars[name]; !ok {
		return false
	}
	delete(s.Vars, name)
	return true
}

// Names lists defined variables in sorted order.
func (s *Session) Names() []string {
	names := make([]string, 0, len(s.Vars))
	for name := range s.Vars {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
