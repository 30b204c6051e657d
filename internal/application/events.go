package application

import (
	"context"
	"time"

	"github.com/oksasatya/catalog-backoffice/internal/domain/entity"
	"github.com/oksasatya/catalog-backoffice/internal/domain/policy"
	repo "github.com/oksasatya/catalog-backoffice/internal/domain/repository"
	"github.com/oksasatya/catalog-backoffice/pkg/mailer"
	mailtpl "github.com/oksasatya/catalog-backoffice/pkg/mailer/templates"
)

const (
	ActionCreate = "create"
	ActionUpdate = "update"
	ActionDelete = "delete"
)

// EntityChanged is published on the events queue after every mutation.
type EntityChanged struct {
	Resource      string    `json:"resource"`
	ID            int64     `json:"id"`
	Action        string    `json:"action"`
	ActorID       int64     `json:"actor_id"`
	ChangedFields []string  `json:"changed_fields,omitempty"`
	At            time.Time `json:"at"`
}

type mutation struct {
	caller   *entity.Caller
	resource policy.Resource
	id       int64
	action   string
	before   any
	after    any
	changed  []string
}

// afterMutation runs the best-effort side effects of a committed change.
// Failures are logged and never surface to the caller.
func (s *Support) afterMutation(ctx context.Context, m mutation) {
	s.Cache.Invalidate(ctx, m.resource, m.id)

	var actor int64
	if m.caller != nil {
		actor = m.caller.UserID
	}
	if s.Audit != nil {
		err := s.Audit.Record(ctx, repo.AuditEntry{
			ActorID:    actor,
			Action:     m.action,
			Resource:   string(m.resource),
			ResourceID: m.id,
			Before:     m.before,
			After:      m.after,
		})
		if err != nil {
			s.warn(err, m, "audit record failed")
		}
	}

	if s.Publisher != nil && s.Config != nil && s.Config.EventsEnabled && s.Config.RabbitMQEventsQueue != "" {
		ev := EntityChanged{
			Resource:      string(m.resource),
			ID:            m.id,
			Action:        m.action,
			ActorID:       actor,
			ChangedFields: m.changed,
			At:            time.Now().UTC(),
		}
		if err := s.Publisher.PublishJSON(ctx, s.Config.RabbitMQEventsQueue, ev); err != nil {
			s.warn(err, m, "publish entity event failed")
		}
	}
}

// notifyProfileUpdated enqueues the profile_updated email for u.
func (s *Support) notifyProfileUpdated(ctx context.Context, u *entity.User, changed []string) {
	if s.Publisher == nil || s.Config == nil || !s.Config.MailSendEnabled || s.Config.RabbitMQEmailQueue == "" {
		return
	}
	if len(changed) == 0 || u.Email == "" {
		return
	}
	values := map[string]string{
		"name":    u.Name,
		"address": u.Address,
		"phone":   u.Phone,
		"email":   u.Email,
		"role":    string(u.Role),
	}
	job := mailer.EmailJob{
		To:       u.Email,
		Template: mailtpl.ProfileUpdated,
		Data:     mailtpl.NewProfileUpdatedData(s.Config, u.Name, u.Email, mailtpl.WithChanges(changed, values)),
	}
	if err := s.Publisher.PublishJSON(ctx, s.Config.RabbitMQEmailQueue, job); err != nil {
		s.warn(err, mutation{resource: policy.ResourceUsers, id: u.ID, action: ActionUpdate}, "enqueue profile email failed")
	}
}
