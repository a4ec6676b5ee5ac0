// Copyright (c) 2025 wstl-notebook authors
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package keychain provides centralized, thread-safe keychain operations for
// the wstl notebook tools. The only secret this CLI holds is the access token
// presented to the whistle translation service; it never belongs in the JSON
// config file, so it lives in the OS credential store.
package keychain

import (
	"errors"
	"sync"

	"github.com/99designs/keyring"
)

// Global keychain manager instance
var (
	globalManager *Manager
	globalError   error
	mu            sync.Mutex
)

// Manager provides centralized, thread-safe operations for the OS keychain.
type Manager struct {
	mu   sync.RWMutex
	ring keyring.Keyring
}

// ServiceName identifies our keychain/credential store namespace.
const ServiceName = "wstl-notebook"

// KeyAccessToken stores the whistle service bearer token.
const KeyAccessToken = "service_access_token"

// NewManager creates a new keychain manager with the OS keyring initialized.
func NewManager() (*Manager, error) {
	ring, err := keyring.Open(keyring.Config{
		ServiceName: ServiceName,
		PassPrefix:  ServiceName,
	})
	if err != nil {
		return nil, err
	}
	return &Manager{ring: ring}, nil
}

// GetManager returns the global keychain manager instance.
// If not initialized, it will be created on first call.
// If initialization fails, it will retry on subsequent calls.
func GetManager() (*Manager, error) {
	mu.Lock()
	defer mu.Unlock()

	if globalManager != nil {
		return globalManager, nil
	}

	globalManager, globalError = NewManager()
	if globalError != nil {
		return nil, globalError
	}
	return globalManager, nil
}

// SaveAccessToken stores the service access token in the OS keychain.
// This method is thread-safe.
func (m *Manager) SaveAccessToken(token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if token == "" {
		return errors.New("empty access token")
	}
	return m.ring.Set(keyring.Item{Key: KeyAccessToken, Data: []byte(token)})
}

// LoadAccessToken retrieves the service access token from the keychain.
// This method is thread-safe.
func (m *Manager) LoadAccessToken() (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	it, err := m.ring.Get(KeyAccessToken)
	if err != nil {
		return "", err
	}
	if len(it.Data) == 0 {
		return "", errors.New("empty access token")
	}
	return string(it.Data), nil
}

// ClearAccessToken removes the stored service access token.
// This method is thread-safe.
func (m *Manager) ClearAccessToken() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.ring.Remove(KeyAccessToken)
}
