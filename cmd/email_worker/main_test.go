package main

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/catalog-backoffice/pkg/mailer"
	mailtpl "github.com/oksasatya/catalog-backoffice/pkg/mailer/templates"
)

type fakeSender struct {
	to, subject, text, html string
	err                     error
}

func (f *fakeSender) Send(_ context.Context, to, subject, text, html string) error {
	f.to, f.subject, f.text, f.html = to, subject, text, html
	return f.err
}

func body(t *testing.T, job mailer.EmailJob) []byte {
	t.Helper()
	b, err := json.Marshal(job)
	require.NoError(t, err)
	return b
}

func TestHandleRendersTemplate(t *testing.T) {
	s := &fakeSender{}
	job := mailer.EmailJob{
		To:       "budi@example.com",
		Template: mailtpl.ProfileUpdated,
		Data:     map[string]any{"Name": "Budi", "AppName": "Catalog", "Changes": map[string]string{"phone": "0811"}},
	}

	require.NoError(t, handle(context.Background(), s, body(t, job)))
	assert.Equal(t, "budi@example.com", s.to)
	assert.Equal(t, "Catalog: your profile was updated", s.subject)
	assert.Contains(t, s.text, "- phone: 0811")
}

func TestHandlePlainMessage(t *testing.T) {
	s := &fakeSender{}
	job := mailer.EmailJob{To: "a@example.com", Subject: "hi", Text: "hello"}

	require.NoError(t, handle(context.Background(), s, body(t, job)))
	assert.Equal(t, "hi", s.subject)
	assert.Equal(t, "hello", s.text)
}

func TestHandleClassifiesFailures(t *testing.T) {
	err := handle(context.Background(), &fakeSender{}, []byte("{"))
	assert.ErrorIs(t, err, errUnrenderable)

	err = handle(context.Background(), &fakeSender{}, body(t, mailer.EmailJob{To: "a@example.com", Template: "nope"}))
	assert.ErrorIs(t, err, errUnrenderable)

	err = handle(context.Background(), &fakeSender{}, body(t, mailer.EmailJob{Subject: "x"}))
	assert.ErrorIs(t, err, errUnrenderable)

	boom := errors.New("mailgun down")
	err = handle(context.Background(), &fakeSender{err: boom}, body(t, mailer.EmailJob{To: "a@example.com", Subject: "x", Text: "y"}))
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, errUnrenderable)
}
