package service

import (
	"testing"
	"time"

	"github.com/JasonChow320/DeeJay/forms"
	"github.com/JasonChow320/DeeJay/kv"
	"github.com/JasonChow320/DeeJay/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const sessionTTL = 12 * time.Hour

func addTestAccount(t *testing.T, database *fakeDatabase, username, password string) models.Account {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	return database.add(models.Account{Username: username, Password: string(hash)})
}

func TestLoginMintsSession(t *testing.T) {
	store := kv.NewMemoryKV()
	database := newFakeDatabase()
	svc := NewUserService(store, database, sessionTTL)

	now := time.Now()
	store.SetClock(func() time.Time { return now })

	acc := addTestAccount(t, database, "alice", "hunter2")

	sess, err := svc.Login(forms.LoginForm{Username: "alice", Password: "hunter2"})
	require.NoError(t, err)
	assert.Len(t, sess.SessionID, 16)
	assert.Len(t, sess.UpdateSecret, 8)
	assert.False(t, sess.HaveSpotify)

	secret, err := store.Get("UserSession:" + sess.SessionID)
	require.NoError(t, err)
	assert.Equal(t, sess.UpdateSecret, secret)

	ttl, ok := store.TTL("UserSession:" + sess.SessionID)
	require.True(t, ok)
	assert.Equal(t, sessionTTL, ttl)

	saved := database.get(acc.ID)
	assert.Equal(t, sess.SessionID, saved.SessionID)
	assert.Equal(t, sess.UpdateSecret, saved.UpdateSecret)
}

func TestLoginExtendsLiveSession(t *testing.T) {
	store := kv.NewMemoryKV()
	database := newFakeDatabase()
	svc := NewUserService(store, database, sessionTTL)

	now := time.Now()
	store.SetClock(func() time.Time { return now })

	addTestAccount(t, database, "alice", "hunter2")

	first, err := svc.Login(forms.LoginForm{Username: "alice", Password: "hunter2"})
	require.NoError(t, err)

	now = now.Add(6 * time.Hour)

	second, err := svc.Login(forms.LoginForm{Username: "alice", Password: "hunter2"})
	require.NoError(t, err)
	assert.Equal(t, first.SessionID, second.SessionID, "re-login must reuse the live session id")

	ttl, ok := store.TTL("UserSession:" + first.SessionID)
	require.True(t, ok)
	assert.Equal(t, sessionTTL, ttl, "re-login must reset the TTL to the full session lifetime")
}

func TestLoginMintsNewSessionAfterExpiry(t *testing.T) {
	store := kv.NewMemoryKV()
	database := newFakeDatabase()
	svc := NewUserService(store, database, sessionTTL)

	now := time.Now()
	store.SetClock(func() time.Time { return now })

	addTestAccount(t, database, "alice", "hunter2")

	first, err := svc.Login(forms.LoginForm{Username: "alice", Password: "hunter2"})
	require.NoError(t, err)

	now = now.Add(sessionTTL + time.Minute)

	second, err := svc.Login(forms.LoginForm{Username: "alice", Password: "hunter2"})
	require.NoError(t, err)
	assert.NotEqual(t, first.SessionID, second.SessionID)
}

func TestLoginWrongPassword(t *testing.T) {
	store := kv.NewMemoryKV()
	database := newFakeDatabase()
	svc := NewUserService(store, database, sessionTTL)

	addTestAccount(t, database, "alice", "hunter2")

	_, err := svc.Login(forms.LoginForm{Username: "alice", Password: "wrong"})
	assert.Error(t, err)
	assert.Empty(t, store.Keys(), "failed login must not create a session")
}

func TestRegister(t *testing.T) {
	store := kv.NewMemoryKV()
	database := newFakeDatabase()
	svc := NewUserService(store, database, sessionTTL)

	sess, err := svc.Register(forms.RegisterForm{Username: "carol", Password: "pw12345", Email: "carol@example.com"})
	require.NoError(t, err)
	assert.Len(t, sess.SessionID, 16)
	assert.False(t, sess.HaveSpotify)

	acc, err := database.FindByUsername("carol")
	require.NoError(t, err)
	assert.NotEqual(t, "pw12345", acc.Password, "password must be stored hashed")

	_, err = svc.Register(forms.RegisterForm{Username: "carol", Password: "pw12345", Email: "carol@example.com"})
	assert.Error(t, err, "duplicate usernames are rejected")
}

func TestValidate(t *testing.T) {
	store := kv.NewMemoryKV()
	database := newFakeDatabase()
	svc := NewUserService(store, database, sessionTTL)

	addTestAccount(t, database, "alice", "hunter2")

	sess, err := svc.Login(forms.LoginForm{Username: "alice", Password: "hunter2"})
	require.NoError(t, err)

	acc, err := svc.Validate(sess.SessionID)
	require.NoError(t, err)
	assert.Equal(t, "alice", acc.Username)

	_, err = svc.Validate("nonexistent")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSignOutInvalidatesImmediately(t *testing.T) {
	store := kv.NewMemoryKV()
	database := newFakeDatabase()
	svc := NewUserService(store, database, sessionTTL)

	addTestAccount(t, database, "alice", "hunter2")

	sess, err := svc.Login(forms.LoginForm{Username: "alice", Password: "hunter2"})
	require.NoError(t, err)

	require.NoError(t, svc.SignOut(sess.SessionID))

	_, err = svc.Validate(sess.SessionID)
	assert.ErrorIs(t, err, ErrSessionNotFound)

	assert.ErrorIs(t, svc.SignOut(sess.SessionID), ErrSessionNotFound)
}
