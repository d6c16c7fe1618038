package session

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStoreStartsEmpty(t *testing.T) {
	s := ProvideStore()

	assert.Empty(t, s.AccessToken())
	assert.Empty(t, s.RefreshToken())
	assert.False(t, s.Authorized())
}

func TestStoreSetAccessTokenKeepsRefreshToken(t *testing.T) {
	s := ProvideStore()
	s.Set("access-1", "refresh-1")
	assert.True(t, s.Authorized())

	s.SetAccessToken("access-2")

	assert.Equal(t, "access-2", s.AccessToken())
	assert.Equal(t, "refresh-1", s.RefreshToken())
}

func TestStoreConcurrentAccess(t *testing.T) {
	s := ProvideStore()
	s.Set("a", "r")

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			s.SetAccessToken("b")
		}()
		go func() {
			defer wg.Done()
			tok := s.AccessToken()
			assert.Contains(t, []string{"a", "b"}, tok)
		}()
	}
	wg.Wait()

	assert.Equal(t, "r", s.RefreshToken())
}
