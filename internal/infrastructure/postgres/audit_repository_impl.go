package postgres

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/catalog-backoffice/internal/domain/repository"
)

type AuditRepository struct {
	pool *pgxpool.Pool
}

func NewAuditRepository(pool *pgxpool.Pool) *AuditRepository {
	return &AuditRepository{pool: pool}
}

func (r *AuditRepository) Record(ctx context.Context, e repository.AuditEntry) error {
	before, err := jsonOrNil(e.Before)
	if err != nil {
		return err
	}
	after, err := jsonOrNil(e.After)
	if err != nil {
		return err
	}
	var actor any
	if e.ActorID > 0 {
		actor = e.ActorID
	}
	_, err = r.pool.Exec(ctx, `
		INSERT INTO audit_logs (actor_user_id, action, resource, resource_id, before_json, after_json)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, actor, e.Action, e.Resource, e.ResourceID, before, after)
	return translate(err, "audit log not found")
}

func jsonOrNil(v any) ([]byte, error) {
	if v == nil {
		return nil, nil
	}
	return json.Marshal(v)
}

var _ repository.AuditRepository = (*AuditRepository)(nil)
