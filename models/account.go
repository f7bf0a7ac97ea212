package models

import (
	"go.mongodb.org/mongo-driver/v2/bson"
)

// Account is a DeeJay application account. The Spotify refresh token is
// persisted here long-term; access tokens only ever live in the cache.
type Account struct {
	ID        AccountID `json:"id" bson:"_id"`
	CreatedAt int64     `json:"-" bson:"created_at"`
	UpdatedAt int64     `json:"-" bson:"updated_at"`
	DeletedAt int64     `json:"-" bson:"deleted_at"`

	Username string `json:"username" bson:"username"`
	Email    string `json:"email" bson:"email"`
	Password string `json:"-" bson:"password"`

	HaveSpotify  bool   `json:"havespotify" bson:"havespotify"`
	RefreshToken string `json:"-" bson:"refreshtoken"`

	// SessionID and UpdateSecret mirror the live UserSession cache entry so
	// a re-login can find and extend the existing session instead of
	// minting a new one.
	SessionID    string `json:"-" bson:"session_id"`
	UpdateSecret string `json:"-" bson:"update_secret"`
}

type AccountID bson.ObjectID

func ParseAccountID(id string) (AccountID, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return AccountID{}, err
	}

	return AccountID(oid), nil
}

func (id AccountID) String() string {
	return bson.ObjectID(id).Hex()
}
