package templates

import (
	"time"

	"github.com/oksasatya/catalog-backoffice/config"
)

// secretFields never have their value shown in an email.
var secretFields = map[string]bool{"password": true}

type Option func(*EmailData)

func WithTime(t time.Time) Option {
	return func(d *EmailData) {
		utc := t.UTC()
		d.TimeAt = utc
		d.Time = utc.Format("02 January 2006, 15:04")
	}
}

// WithChanges lists changed field names. Values for non-secret fields may be
// given in values; everything else reads "updated".
func WithChanges(fields []string, values map[string]string) Option {
	return func(d *EmailData) {
		if len(fields) == 0 {
			return
		}
		d.Changes = make(map[string]string, len(fields))
		for _, f := range fields {
			v, ok := values[f]
			if !ok || secretFields[f] || v == "" {
				v = "updated"
			}
			d.Changes[f] = v
		}
	}
}

// NewBaseEmailData fills the common fields from config, then applies opts.
func NewBaseEmailData(cfg *config.Config, typ, name, email, recipient string, opts ...Option) EmailData {
	d := EmailData{
		Name:           name,
		Email:          email,
		RecipientEmail: recipient,
		Type:           typ,

		CompanyName:    cfg.CompanyName,
		CompanyAddress: cfg.CompanyAddress,
		AppName:        cfg.AppName,

		LogoURL:    cfg.LogoURL,
		SupportURL: cfg.SupportURL,
		AdminURL:   cfg.AdminURL,
	}
	for _, opt := range opts {
		opt(&d)
	}
	return d
}

func NewProfileUpdatedData(cfg *config.Config, name, email string, opts ...Option) map[string]any {
	opts = append([]Option{WithTime(time.Now())}, opts...)
	d := NewBaseEmailData(cfg, ProfileUpdated, name, email, email, opts...)
	return ToMap(d)
}
