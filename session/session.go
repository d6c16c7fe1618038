package session

import "sync"

// Reader is the read side of the credential store. Request handlers only
// ever need this.
type Reader interface {
	AccessToken() string
	RefreshToken() string
	Authorized() bool
}

// Store holds the single process-wide access/refresh token pair.
// The zero value is an empty store.
type Store struct {
	mu      sync.RWMutex
	access  string
	refresh string
}

// ProvideStore creates the empty credential store at process start.
func ProvideStore() *Store {
	return &Store{}
}

// AccessToken returns the current bearer token, or "" before the first exchange.
func (s *Store) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.access
}

// RefreshToken returns the stored refresh token, or "" if none was obtained.
func (s *Store) RefreshToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.refresh
}

// Set replaces both tokens after a successful code exchange.
func (s *Store) Set(access, refresh string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.access = access
	s.refresh = refresh
}

// SetAccessToken replaces the access token only. The refresh token is kept.
func (s *Store) SetAccessToken(access string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.access = access
}

// Authorized reports whether an access token has been obtained.
func (s *Store) Authorized() bool {
	return s.AccessToken() != ""
}

var Options = ProvideStore
