package application

import (
	"context"
	"expvar"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/catalog-backoffice/config"
	"github.com/oksasatya/catalog-backoffice/internal/domain/apperr"
	"github.com/oksasatya/catalog-backoffice/internal/domain/policy"
	repo "github.com/oksasatya/catalog-backoffice/internal/domain/repository"
)

// Result pairs a resource snapshot with the status message shown to the user.
type Result[T any] struct {
	Data    T
	Message string
}

// AssetStore persists uploaded binaries and returns their public URL.
type AssetStore interface {
	Put(ctx context.Context, objectPath, contentType string, r io.Reader) (string, error)
	Delete(ctx context.Context, objectPath string) error
}

// Publisher sends a JSON body to a named queue.
type Publisher interface {
	PublishJSON(ctx context.Context, queue string, body any) error
}

// SearchIndexer maintains the read-side projection of an entity.
type SearchIndexer interface {
	Put(ctx context.Context, index string, id int64, doc any) error
	Remove(ctx context.Context, index string, id int64) error
}

// Support bundles the side channels every resource service uses after a
// successful mutation. Every collaborator is optional.
type Support struct {
	Config    *config.Config
	Logger    *logrus.Logger
	Cache     *SnapshotCache
	Audit     repo.AuditRepository
	Publisher Publisher
	Search    SearchIndexer
	Assets    AssetStore
}

var mutationStats = expvar.NewMap("resource_mutations")

func countMutation(resource policy.Resource, action string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = string(apperr.KindOf(err))
	}
	mutationStats.Add(string(resource)+"."+action+"."+outcome, 1)
}

func (s *Support) index(ctx context.Context, index string, id int64, doc any) {
	if s.Search == nil || s.Config == nil || !s.Config.SearchIndexEnabled {
		return
	}
	_ = s.Search.Put(ctx, index, id, doc)
}

func (s *Support) unindex(ctx context.Context, index string, id int64) {
	if s.Search == nil || s.Config == nil || !s.Config.SearchIndexEnabled {
		return
	}
	_ = s.Search.Remove(ctx, index, id)
}

func (s *Support) warn(err error, m mutation, msg string) {
	if s.Logger == nil {
		return
	}
	s.Logger.WithError(err).WithFields(logrus.Fields{
		"resource":    m.resource,
		"resource_id": m.id,
		"action":      m.action,
	}).Warn(msg)
}

func (s *Support) maxUploadBytes() int64 {
	if s.Config == nil {
		return 0
	}
	return s.Config.UploadMaxBytes
}
