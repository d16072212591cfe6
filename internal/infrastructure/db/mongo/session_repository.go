package mongo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/courtside/auth-gateway/internal/core/domain"
	"github.com/courtside/auth-gateway/internal/core/ports"
)

const sessionCollection = "sessions"

// SessionRepository persists the denormalized session record per gateway
// session id. The record itself is stored as a JSON payload so that a corrupt
// entry is detectable independently of the document schema.
type SessionRepository struct {
	coll *mongo.Collection
}

var _ ports.SessionRepository = (*SessionRepository)(nil)

func NewSessionRepository(db *mongo.Database) *SessionRepository {
	return &SessionRepository{coll: db.Collection(sessionCollection)}
}

type sessionDoc struct {
	SID     string `bson:"_id"`
	Payload string `bson:"payload"`
	// UpdatedAt is a BSON date so the TTL index can expire abandoned records.
	UpdatedAt time.Time `bson:"updated_at"`
}

// EnsureIndexes creates the TTL index expiring session records ttl after
// their last save. The redis token expires with its key; this keeps the mongo
// copy from outliving it for sids nobody hydrates again.
func (r *SessionRepository) EnsureIndexes(ctx context.Context, ttl time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, sessionTTLIndex(ttl))
	if err != nil {
		return fmt.Errorf("session ttl index: %w", err)
	}
	return nil
}

func sessionTTLIndex(ttl time.Duration) mongo.IndexModel {
	return mongo.IndexModel{
		Keys:    bson.D{{Key: "updated_at", Value: 1}},
		Options: options.Index().SetExpireAfterSeconds(int32(ttl / time.Second)),
	}
}

func (r *SessionRepository) Save(ctx context.Context, sid string, sess *domain.Session) error {
	payload, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}

	doc := sessionDoc{
		SID:       sid,
		Payload:   string(payload),
		UpdatedAt: time.Now().UTC(),
	}

	_, err = r.coll.ReplaceOne(ctx, bson.M{"_id": sid}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (r *SessionRepository) Load(ctx context.Context, sid string) (*domain.Session, error) {
	var doc sessionDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": sid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, fmt.Errorf("load session: %w", err)
	}

	return decodeSession([]byte(doc.Payload))
}

func (r *SessionRepository) Clear(ctx context.Context, sid string) error {
	if _, err := r.coll.DeleteOne(ctx, bson.M{"_id": sid}); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// decodeSession unmarshals a stored payload. Malformed data reports
// domain.ErrSessionCorrupt so the service can treat it as "not authenticated"
// and purge it rather than raising.
func decodeSession(payload []byte) (*domain.Session, error) {
	var sess domain.Session
	if err := json.Unmarshal(payload, &sess); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrSessionCorrupt, err)
	}
	return &sess, nil
}
