package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/courtside/auth-gateway/internal/core/domain"
	"github.com/courtside/auth-gateway/internal/core/ports"
)

const auditCollection = "auth_events"

// AuditRepository appends auth trail entries. Write-only from the gateway's
// point of view; reporting reads the collection out of band.
type AuditRepository struct {
	coll *mongo.Collection
}

var _ ports.AuditRepository = (*AuditRepository)(nil)

func NewAuditRepository(db *mongo.Database) *AuditRepository {
	return &AuditRepository{coll: db.Collection(auditCollection)}
}

type auditDoc struct {
	Kind       string `bson:"kind"`
	Subject    string `bson:"subject"`
	UserID     int64  `bson:"user_id,omitempty"`
	Source     string `bson:"source,omitempty"`
	OccurredAt int64  `bson:"occurred_at"`
}

func (r *AuditRepository) Insert(ctx context.Context, ev *domain.AuthEvent) error {
	doc := auditDoc{
		Kind:       string(ev.Kind),
		Subject:    ev.Subject,
		UserID:     ev.UserID,
		Source:     ev.Source,
		OccurredAt: ev.OccurredAt.Unix(),
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert auth event: %w", err)
	}
	return nil
}
