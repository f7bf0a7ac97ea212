package service

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/JasonChow320/DeeJay/db"
	"github.com/JasonChow320/DeeJay/models"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// fakeDatabase is an in-memory db.Database for the service tests.
type fakeDatabase struct {
	mu       sync.Mutex
	accounts map[string]models.Account

	saveRefreshErr error
}

var _ db.Database = (*fakeDatabase)(nil)

func newFakeDatabase() *fakeDatabase {
	return &fakeDatabase{accounts: make(map[string]models.Account)}
}

func (f *fakeDatabase) add(acc models.Account) models.Account {
	f.mu.Lock()
	defer f.mu.Unlock()

	if acc.ID == (models.AccountID{}) {
		acc.ID = models.AccountID(bson.NewObjectID())
	}
	f.accounts[acc.ID.String()] = acc
	return acc
}

func (f *fakeDatabase) get(id models.AccountID) models.Account {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.accounts[id.String()]
}

func (f *fakeDatabase) UsernameExists(username string) (bool, error) {
	_, err := f.FindByUsername(username)
	if err == db.ErrNotFound {
		return false, nil
	}
	return err == nil, err
}

func (f *fakeDatabase) FindByUsername(username string) (models.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, acc := range f.accounts {
		if acc.Username == username {
			return acc, nil
		}
	}
	return models.Account{}, db.ErrNotFound
}

func (f *fakeDatabase) FindByUpdateSecret(secret string) (models.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, acc := range f.accounts {
		if acc.UpdateSecret == secret {
			return acc, nil
		}
	}
	return models.Account{}, db.ErrNotFound
}

func (f *fakeDatabase) GetAccount(id models.AccountID) (models.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	acc, ok := f.accounts[id.String()]
	if !ok {
		return models.Account{}, db.ErrNotFound
	}
	return acc, nil
}

func (f *fakeDatabase) CreateAccount(create db.CreateAccount) (models.Account, error) {
	return f.add(models.Account{
		Username: create.Username,
		Email:    create.Email,
		Password: create.PwdHash,
	}), nil
}

func (f *fakeDatabase) DeleteAccount(id models.AccountID) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.accounts[id.String()]; !ok {
		return db.ErrNotFound
	}
	delete(f.accounts, id.String())
	return nil
}

func (f *fakeDatabase) ListAccounts() ([]models.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	accs := make([]models.Account, 0, len(f.accounts))
	for _, acc := range f.accounts {
		accs = append(accs, acc)
	}
	return accs, nil
}

func (f *fakeDatabase) SaveSession(id models.AccountID, sessionID, updateSecret string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	acc, ok := f.accounts[id.String()]
	if !ok {
		return db.ErrNotFound
	}
	acc.SessionID = sessionID
	acc.UpdateSecret = updateSecret
	f.accounts[id.String()] = acc
	return nil
}

func (f *fakeDatabase) SaveRefreshToken(id models.AccountID, refreshToken string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.saveRefreshErr != nil {
		return f.saveRefreshErr
	}

	acc, ok := f.accounts[id.String()]
	if !ok {
		return db.ErrNotFound
	}
	acc.RefreshToken = refreshToken
	acc.HaveSpotify = true
	f.accounts[id.String()] = acc
	return nil
}

// fakeTokenEndpoint fakes the Spotify accounts token endpoint and counts
// exchanges per grant type.
type fakeTokenEndpoint struct {
	mu     sync.Mutex
	counts map[string]int

	accessToken string
	expiresIn   int
	rejectAll   bool
}

func newFakeTokenEndpoint(accessToken string, expiresIn int) *fakeTokenEndpoint {
	return &fakeTokenEndpoint{
		counts:      make(map[string]int),
		accessToken: accessToken,
		expiresIn:   expiresIn,
	}
}

func (f *fakeTokenEndpoint) calls(grantType string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.counts[grantType]
}

func (f *fakeTokenEndpoint) total() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	n := 0
	for _, c := range f.counts {
		n += c
	}
	return n
}

func (f *fakeTokenEndpoint) server(t *testing.T) *httptest.Server {
	t.Helper()

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, _, ok := r.BasicAuth(); !ok {
			t.Error("token endpoint called without basic auth")
		}
		if err := r.ParseForm(); err != nil {
			t.Errorf("failed to parse token request form: %v", err)
		}

		grant := r.PostFormValue("grant_type")
		f.mu.Lock()
		f.counts[grant]++
		f.mu.Unlock()

		if f.rejectAll {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(map[string]string{"error": "invalid_grant"})
			return
		}

		resp := map[string]interface{}{
			"access_token": f.accessToken,
			"token_type":   "Bearer",
			"expires_in":   f.expiresIn,
		}
		if grant == "authorization_code" {
			resp["refresh_token"] = "refresh-" + f.accessToken
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
}
