package authstore

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
	jsoniter "github.com/json-iterator/go"
	"github.com/tkb-shop/storefront/internal/domain"
	"github.com/tkb-shop/storefront/internal/store"
	"go.uber.org/zap"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Store mirrors the web client's auth storage: the user profile and
// bearer token each live under a fixed key, in either the persistent
// or the session-scoped store depending on the remember-me choice.
type Store struct {
	persistent store.KV
	session    store.KV
}

func New(persistent, session store.KV) *Store {
	return &Store{persistent: persistent, session: session}
}

// Set stores the profile and token. Both scopes are cleared first so a
// login never leaves a stale record in the other scope.
func (s *Store) Set(user domain.User, token string, remember bool) error {
	s.Clear()
	target := s.session
	if remember {
		target = s.persistent
	}
	data, err := json.Marshal(user)
	if err != nil {
		return err
	}
	if err := target.Put(store.BucketAuth, store.KeyAuthUser, data); err != nil {
		return err
	}
	return target.Put(store.BucketAuth, store.KeyAuthToken, []byte(token))
}

// Stored returns the current profile and token, persistent scope
// first. A corrupt profile record yields a nil user, not an error.
func (s *Store) Stored() (*domain.User, string) {
	userRaw := s.read(store.KeyAuthUser)
	token := string(s.read(store.KeyAuthToken))

	var user *domain.User
	if len(userRaw) > 0 {
		var u domain.User
		if err := json.Unmarshal(userRaw, &u); err != nil {
			zap.S().Warnf("authstore: stored profile unparsable: %v", err)
		} else {
			user = &u
		}
	}
	return user, token
}

func (s *Store) StoredUser() *domain.User {
	u, _ := s.Stored()
	return u
}

func (s *Store) StoredToken() string {
	_, t := s.Stored()
	return t
}

// UpdateUser rewrites the profile in whichever scope currently holds
// an auth record; persistent wins and is the default.
func (s *Store) UpdateUser(user domain.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return err
	}
	target := s.persistent
	if !s.hasRecord(s.persistent) && s.hasRecord(s.session) {
		target = s.session
	}
	return target.Put(store.BucketAuth, store.KeyAuthUser, data)
}

// Clear wipes both scopes.
func (s *Store) Clear() {
	for _, kv := range []store.KV{s.persistent, s.session} {
		_ = kv.Delete(store.BucketAuth, store.KeyAuthUser)
		_ = kv.Delete(store.BucketAuth, store.KeyAuthToken)
	}
}

// TokenValid reports whether a token is present and not expired. The
// exp claim is read without signature verification; the backend is the
// authority on token validity, this only avoids sending dead tokens.
func (s *Store) TokenValid(now time.Time) bool {
	token := s.StoredToken()
	if token == "" {
		return false
	}
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return false
	}
	if claims.ExpiresAt == nil {
		return true
	}
	return claims.ExpiresAt.After(now)
}

func (s *Store) read(key string) []byte {
	for _, kv := range []store.KV{s.persistent, s.session} {
		if data, found, err := kv.Get(store.BucketAuth, key); err == nil && found {
			return data
		}
	}
	return nil
}

func (s *Store) hasRecord(kv store.KV) bool {
	for _, key := range []string{store.KeyAuthUser, store.KeyAuthToken} {
		if _, found, err := kv.Get(store.BucketAuth, key); err == nil && found {
			return true
		}
	}
	return false
}
