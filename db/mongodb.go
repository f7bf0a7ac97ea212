package db

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/JasonChow320/DeeJay/models"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// verify MongoDB implements database interface in compile time
var _ Database = (*MongoDB)(nil)

const (
	ACCOUNT_COLL = "accounts"

	queryTimeout = 5 * time.Second
)

type MongoDB struct {
	client *mongo.Client
	db     string
}

func NewMongoDB(conn string, db string) (*MongoDB, error) {
	client, err := mongo.Connect(options.Client().ApplyURI(conn))
	if err != nil {
		return nil, err
	}

	return &MongoDB{client: client, db: db}, nil
}

func (m *MongoDB) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}

func (m *MongoDB) accounts() *mongo.Collection {
	return m.client.Database(m.db).Collection(ACCOUNT_COLL)
}

func (m *MongoDB) CreateAccount(acc CreateAccount) (models.Account, error) {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	dbacc := models.Account{
		ID:        models.AccountID(bson.NewObjectID()),
		CreatedAt: time.Now().Unix(),
		UpdatedAt: time.Now().Unix(),
		DeletedAt: 0,
		Username:  strings.ToLower(strings.TrimSpace(acc.Username)),
		Email:     strings.ToLower(strings.TrimSpace(acc.Email)),
		Password:  acc.PwdHash,
	}

	result, err := m.accounts().InsertOne(ctx, dbacc)
	if err != nil {
		log.Printf("failed to insert account into database: %v", err)
		return models.Account{}, err
	}

	dbacc.ID = models.AccountID(result.InsertedID.(bson.ObjectID))
	return dbacc, nil
}

func (m *MongoDB) UsernameExists(username string) (bool, error) {
	_, err := m.FindByUsername(username)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	return true, nil
}

func (m *MongoDB) FindByUsername(username string) (models.Account, error) {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	username = strings.ToLower(strings.TrimSpace(username))

	var acc models.Account
	err := m.accounts().FindOne(ctx, bson.D{{Key: "username", Value: username}}).Decode(&acc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Account{}, ErrNotFound
	}

	return acc, err
}

func (m *MongoDB) FindByUpdateSecret(secret string) (models.Account, error) {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	var acc models.Account
	err := m.accounts().FindOne(ctx, bson.D{{Key: "update_secret", Value: secret}}).Decode(&acc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Account{}, ErrNotFound
	}

	return acc, err
}

func (m *MongoDB) GetAccount(id models.AccountID) (models.Account, error) {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	var acc models.Account
	err := m.accounts().FindOne(ctx, bson.D{{Key: "_id", Value: bson.ObjectID(id)}}).Decode(&acc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Account{}, ErrNotFound
	}

	return acc, err
}

func (m *MongoDB) DeleteAccount(id models.AccountID) error {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	result, err := m.accounts().DeleteOne(ctx, bson.D{{Key: "_id", Value: bson.ObjectID(id)}})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}

	return nil
}

func (m *MongoDB) ListAccounts() ([]models.Account, error) {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	cursor, err := m.accounts().Find(ctx, bson.D{})
	if err != nil {
		return nil, err
	}

	var accs []models.Account
	if err := cursor.All(ctx, &accs); err != nil {
		return nil, err
	}

	return accs, nil
}

func (m *MongoDB) SaveSession(id models.AccountID, sessionID, updateSecret string) error {
	return m.update(id, bson.D{
		{Key: "session_id", Value: sessionID},
		{Key: "update_secret", Value: updateSecret},
	})
}

func (m *MongoDB) SaveRefreshToken(id models.AccountID, refreshToken string) error {
	return m.update(id, bson.D{
		{Key: "refreshtoken", Value: refreshToken},
		{Key: "havespotify", Value: true},
	})
}

func (m *MongoDB) update(id models.AccountID, fields bson.D) error {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	fields = append(fields, bson.E{Key: "updated_at", Value: time.Now().Unix()})

	result, err := m.accounts().UpdateOne(ctx,
		bson.D{{Key: "_id", Value: bson.ObjectID(id)}},
		bson.D{{Key: "$set", Value: fields}})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}

	return nil
}
