package db

import (
	"errors"

	"github.com/JasonChow320/DeeJay/models"
)

// ErrNotFound is returned when no account matches the lookup.
var ErrNotFound = errors.New("db: account not found")

// Database is the account store. The oauth broker is the only writer of
// the refreshtoken/havespotify fields, the session registry the only
// writer of the session linkage fields.
type Database interface {
	UsernameExists(username string) (bool, error)
	FindByUsername(username string) (models.Account, error)
	FindByUpdateSecret(secret string) (models.Account, error)

	GetAccount(id models.AccountID) (models.Account, error)
	CreateAccount(acc CreateAccount) (models.Account, error)
	DeleteAccount(id models.AccountID) error
	ListAccounts() ([]models.Account, error)

	SaveSession(id models.AccountID, sessionID, updateSecret string) error
	SaveRefreshToken(id models.AccountID, refreshToken string) error
}

type CreateAccount struct {
	Username string
	Email    string
	PwdHash  string
}
