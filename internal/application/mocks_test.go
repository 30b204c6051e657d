package application

import (
	"context"
	"io"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/oksasatya/catalog-backoffice/config"
	"github.com/oksasatya/catalog-backoffice/internal/domain/entity"
	repo "github.com/oksasatya/catalog-backoffice/internal/domain/repository"
)

type mockUserRepo struct{ mock.Mock }

func (m *mockUserRepo) Create(ctx context.Context, u *entity.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	args := m.Called(ctx, id)
	if u := args.Get(0); u != nil {
		return u.(*entity.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	if u := args.Get(0); u != nil {
		return u.(*entity.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) Update(ctx context.Context, id int64, patch entity.UserPatch) (*entity.User, error) {
	args := m.Called(ctx, id, patch)
	if u := args.Get(0); u != nil {
		return u.(*entity.User), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockProductRepo struct{ mock.Mock }

func (m *mockProductRepo) Create(ctx context.Context, patch entity.ProductPatch) (*entity.Product, error) {
	args := m.Called(ctx, patch)
	if p := args.Get(0); p != nil {
		return p.(*entity.Product), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockProductRepo) GetByID(ctx context.Context, id int64, withDeleted bool) (*entity.Product, error) {
	args := m.Called(ctx, id, withDeleted)
	if p := args.Get(0); p != nil {
		return p.(*entity.Product), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockProductRepo) Update(ctx context.Context, id int64, patch entity.ProductPatch) (*entity.Product, error) {
	args := m.Called(ctx, id, patch)
	if p := args.Get(0); p != nil {
		return p.(*entity.Product), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockProductRepo) SoftDelete(ctx context.Context, id int64) (time.Time, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(time.Time), args.Error(1)
}

type mockCategoryRepo struct{ mock.Mock }

func (m *mockCategoryRepo) Create(ctx context.Context, c *entity.Category) error {
	return m.Called(ctx, c).Error(0)
}

func (m *mockCategoryRepo) GetByID(ctx context.Context, id int64) (*entity.Category, error) {
	args := m.Called(ctx, id)
	if c := args.Get(0); c != nil {
		return c.(*entity.Category), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCategoryRepo) Update(ctx context.Context, id int64, patch entity.CategoryPatch) (*entity.Category, error) {
	args := m.Called(ctx, id, patch)
	if c := args.Get(0); c != nil {
		return c.(*entity.Category), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCategoryRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type mockAudit struct{ mock.Mock }

func (m *mockAudit) Record(ctx context.Context, e repo.AuditEntry) error {
	return m.Called(ctx, e).Error(0)
}

type mockPublisher struct{ mock.Mock }

func (m *mockPublisher) PublishJSON(ctx context.Context, queue string, body any) error {
	return m.Called(ctx, queue, body).Error(0)
}

type mockIndexer struct{ mock.Mock }

func (m *mockIndexer) Put(ctx context.Context, index string, id int64, doc any) error {
	return m.Called(ctx, index, id, doc).Error(0)
}

func (m *mockIndexer) Remove(ctx context.Context, index string, id int64) error {
	return m.Called(ctx, index, id).Error(0)
}

type mockAssets struct{ mock.Mock }

func (m *mockAssets) Put(ctx context.Context, objectPath, contentType string, r io.Reader) (string, error) {
	body, _ := io.ReadAll(r)
	args := m.Called(ctx, objectPath, contentType, body)
	return args.String(0), args.Error(1)
}

func (m *mockAssets) Delete(ctx context.Context, objectPath string) error {
	return m.Called(ctx, objectPath).Error(0)
}

type harness struct {
	audit   *mockAudit
	pub     *mockPublisher
	search  *mockIndexer
	assets  *mockAssets
	support *Support
}

// newHarness wires every side channel to a mock. Side-channel calls are
// permissive by default; tests that care assert on them explicitly.
func newHarness() *harness {
	h := &harness{
		audit:  &mockAudit{},
		pub:    &mockPublisher{},
		search: &mockIndexer{},
		assets: &mockAssets{},
	}
	h.support = &Support{
		Config: &config.Config{
			UploadMaxBytes:      1 << 20,
			EventsEnabled:       true,
			RabbitMQEventsQueue: "admin.events",
			RabbitMQEmailQueue:  "emails",
			SearchIndexEnabled:  true,
			ESUsersIndex:        "users",
			ESProductsIndex:     "products",
		},
		Audit:     h.audit,
		Publisher: h.pub,
		Search:    h.search,
		Assets:    h.assets,
	}
	h.audit.On("Record", mock.Anything, mock.Anything).Return(nil).Maybe()
	h.pub.On("PublishJSON", mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()
	h.search.On("Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()
	h.search.On("Remove", mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()
	return h
}

// published returns the bodies published to queue.
func (h *harness) published(queue string) []any {
	var out []any
	for _, c := range h.pub.Calls {
		if c.Method == "PublishJSON" && c.Arguments.String(1) == queue {
			out = append(out, c.Arguments.Get(2))
		}
	}
	return out
}

func admin() *entity.Caller  { return &entity.Caller{UserID: 1, Role: entity.RoleAdmin} }
func member() *entity.Caller { return &entity.Caller{UserID: 42, Role: entity.RoleMember} }

// pngBytes is a PNG signature followed by padding, enough for content sniffing.
func pngBytes(n int) []byte {
	b := append([]byte("\x89PNG\r\n\x1a\n\x00\x00\x00\x0dIHDR"), make([]byte, n)...)
	return b
}
