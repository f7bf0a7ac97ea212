package service

import (
	"errors"
	"log/slog"
	"time"

	"github.com/JasonChow320/DeeJay/db"
	"github.com/JasonChow320/DeeJay/forms"
	"github.com/JasonChow320/DeeJay/kv"
	"github.com/JasonChow320/DeeJay/models"
	"golang.org/x/crypto/bcrypt"
)

// UserService issues and validates application login sessions. The cache
// entry UserSession:<sessionId> -> updateSecret is the authority on
// whether a session is live; the account stores the same pair so a
// re-login can extend the existing session instead of minting a new one.
type UserService struct {
	kv kv.KeyValueStore
	db db.Database

	sessionTTL time.Duration
}

func NewUserService(store kv.KeyValueStore, database db.Database, sessionTTL time.Duration) *UserService {
	return &UserService{
		kv:         store,
		db:         database,
		sessionTTL: sessionTTL,
	}
}

// Login verifies the account credentials and returns a login session. An
// account with a still-valid session gets the same session id back with
// its TTL reset to the full session lifetime.
func (s *UserService) Login(form forms.LoginForm) (models.UserSession, error) {
	acc, err := s.db.FindByUsername(form.Username)
	if err != nil {
		return models.UserSession{}, errors.New("username or password is incorrect")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(acc.Password), []byte(form.Password)); err != nil {
		slog.Warn("failed login attempt", "username", form.Username)
		return models.UserSession{}, errors.New("username or password is incorrect")
	}

	if acc.SessionID != "" {
		if _, err := s.kv.Get(userSessionKey(acc.SessionID)); err == nil {
			// still valid, extend instead of minting a new id
			if err := s.kv.Set(userSessionKey(acc.SessionID), acc.UpdateSecret, s.sessionTTL); err != nil {
				return models.UserSession{}, err
			}
			return models.UserSession{
				SessionID:    acc.SessionID,
				UpdateSecret: acc.UpdateSecret,
				HaveSpotify:  acc.HaveSpotify,
			}, nil
		}
	}

	return s.mintSession(acc)
}

// Register creates a new account with a hashed password and mints its
// first login session.
func (s *UserService) Register(form forms.RegisterForm) (models.UserSession, error) {
	exists, err := s.db.UsernameExists(form.Username)
	if err != nil {
		slog.Error("failed to check if username exists", "error", err)
		return models.UserSession{}, errors.New("something went wrong, please try again later")
	}
	if exists {
		return models.UserSession{}, errors.New("username was already taken!! Try another username")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(form.Password), bcrypt.DefaultCost)
	if err != nil {
		slog.Error("failed to hash password", "error", err)
		return models.UserSession{}, errors.New("something went wrong, please try again later")
	}

	acc, err := s.db.CreateAccount(db.CreateAccount{
		Username: form.Username,
		Email:    form.Email,
		PwdHash:  string(hashedPassword),
	})
	if err != nil {
		return models.UserSession{}, errors.New("something went wrong, please try again later")
	}

	return s.mintSession(acc)
}

func (s *UserService) mintSession(acc models.Account) (models.UserSession, error) {
	sessionID := randomString(sessionIDLength)
	secret := randomString(updateSecretLength)

	if err := s.kv.Set(userSessionKey(sessionID), secret, s.sessionTTL); err != nil {
		return models.UserSession{}, err
	}

	if err := s.db.SaveSession(acc.ID, sessionID, secret); err != nil {
		slog.Error("failed to save session on account", "error", err, "account_id", acc.ID.String())
		return models.UserSession{}, err
	}

	return models.UserSession{
		SessionID:    sessionID,
		UpdateSecret: secret,
		HaveSpotify:  acc.HaveSpotify,
	}, nil
}

// Validate resolves a session id to its account.
func (s *UserService) Validate(sessionID string) (models.Account, error) {
	secret, err := s.kv.Get(userSessionKey(sessionID))
	if err != nil {
		return models.Account{}, ErrSessionNotFound
	}

	acc, err := s.db.FindByUpdateSecret(secret)
	if err != nil {
		return models.Account{}, ErrSessionNotFound
	}

	return acc, nil
}

// SignOut invalidates the session immediately rather than waiting for the
// TTL to lapse.
func (s *UserService) SignOut(sessionID string) error {
	if _, err := s.kv.Del(userSessionKey(sessionID)); err != nil {
		return ErrSessionNotFound
	}

	return nil
}

// Delete removes the account behind the username.
func (s *UserService) Delete(username string) error {
	acc, err := s.db.FindByUsername(username)
	if err != nil {
		return err
	}

	return s.db.DeleteAccount(acc.ID)
}

// Accounts lists every account. Admin use only; the controller gates it.
func (s *UserService) Accounts() ([]models.Account, error) {
	return s.db.ListAccounts()
}
