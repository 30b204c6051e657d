package application

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strconv"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"github.com/oksasatya/catalog-backoffice/internal/domain/apperr"
	"github.com/oksasatya/catalog-backoffice/internal/domain/policy"
	"github.com/oksasatya/catalog-backoffice/pkg/optional"
)

// sniffLen is enough for mimetype to recognise every image format it knows.
const sniffLen = 3072

var errNoAssetStore = errors.New("asset store not configured")

// FileUpload is a binary part received for an upload field.
type FileUpload struct {
	Field    string
	Filename string
	Size     int64
	Reader   io.Reader
}

type checkedUpload struct {
	field       string
	contentType string
	ext         string
	body        io.Reader
}

// checkImage sniffs the upload and rejects anything that is not an image.
// The returned body replays the sniffed bytes.
func checkImage(u *FileUpload, maxBytes int64) (*checkedUpload, error) {
	if u == nil {
		return nil, nil
	}
	if maxBytes > 0 && u.Size > maxBytes {
		return nil, apperr.ValidationField(u.Field, fmt.Sprintf("must be at most %d bytes", maxBytes))
	}
	head := make([]byte, sniffLen)
	n, err := io.ReadFull(u.Reader, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, apperr.Unexpected(err)
	}
	if n == 0 {
		return nil, apperr.ValidationField(u.Field, "must not be empty")
	}
	mt := mimetype.Detect(head[:n])
	if !strings.HasPrefix(mt.String(), "image/") {
		return nil, apperr.ValidationField(u.Field, "must be an image")
	}
	var body io.Reader = io.MultiReader(bytes.NewReader(head[:n]), u.Reader)
	if maxBytes > 0 {
		body = io.LimitReader(body, maxBytes)
	}
	return &checkedUpload{field: u.Field, contentType: mt.String(), ext: mt.Extension(), body: body}, nil
}

// storeUpload writes a checked upload under <resource>[/<id>]/<uuid><ext>.
// Calling discard removes the object again; it is meant for when the row
// that would reference it could not be written.
func (s *Support) storeUpload(ctx context.Context, resource policy.Resource, id int64, cu *checkedUpload) (url string, discard func(), err error) {
	if s.Assets == nil {
		return "", nil, apperr.Unexpected(errNoAssetStore)
	}
	name := uuid.NewString() + cu.ext
	objectPath := path.Join(string(resource), name)
	if id > 0 {
		objectPath = path.Join(string(resource), strconv.FormatInt(id, 10), name)
	}
	url, err = s.Assets.Put(ctx, objectPath, cu.contentType, cu.body)
	if err != nil {
		return "", nil, apperr.Unexpected(fmt.Errorf("store %s: %w", cu.field, err))
	}
	discard = func() {
		if dErr := s.Assets.Delete(context.WithoutCancel(ctx), objectPath); dErr != nil && s.Logger != nil {
			s.Logger.WithError(dErr).WithField("object", objectPath).Warn("orphaned upload not removed")
		}
	}
	return url, discard, nil
}

// resolveAssetField interprets a JSON value sent for an upload field.
// Echoing the stored URL is a no-op and an empty string clears the field.
// Any other value must arrive as a file part instead.
func resolveAssetField(field string, in optional.Field[string], current string, nullable bool) (optional.Field[string], error) {
	if !in.Set {
		return optional.Unset[string](), nil
	}
	v := in.OrElse("")
	switch {
	case v == current:
		return optional.Unset[string](), nil
	case v == "" && nullable:
		return optional.Field[string]{Set: true, Null: true}, nil
	case v == "":
		return optional.Of(""), nil
	}
	return optional.Unset[string](), apperr.ValidationField(field, "must be uploaded as a file")
}

// checkUpload folds an upload validation failure into errs so every field
// problem is reported together.
func (s *Support) checkUpload(upload *FileUpload, errs *map[string]string) (*checkedUpload, error) {
	checked, err := checkImage(upload, s.maxUploadBytes())
	if err == nil {
		return checked, nil
	}
	fields := apperr.FieldsOf(err)
	if fields == nil {
		return nil, err
	}
	for k, v := range fields {
		*errs = withField(*errs, k, v)
	}
	return nil, nil
}
