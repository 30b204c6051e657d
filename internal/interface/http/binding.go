package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"github.com/oksasatya/catalog-backoffice/internal/application"
	"github.com/oksasatya/catalog-backoffice/internal/domain/apperr"
	"github.com/oksasatya/catalog-backoffice/pkg/validation"
)

const (
	dataPart        = "data"
	multipartMemory = 8 << 20
)

// uploadFields lists the multipart parts treated as binary uploads.
var uploadFields = []string{"pict"}

// parseID reads the :id path parameter.
func parseID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperr.ValidationField("id", "must be a positive integer")
	}
	return id, nil
}

// bindPayload decodes a JSON body, or a multipart body whose "data" part holds
// the JSON, into dst. Per-field type and tag failures do not stop decoding:
// they come back as rejected reasons for the service to report once the
// caller is authorized. The returned upload, if any, must be closed by calling
// the cleanup func.
func bindPayload(c *gin.Context, dst any) (*application.FileUpload, map[string]string, func(), error) {
	noop := func() {}
	ct := c.ContentType()
	if !strings.HasPrefix(ct, "multipart/form-data") {
		if c.Request.Body == nil {
			return nil, nil, noop, bindError(io.EOF)
		}
		raw, err := io.ReadAll(c.Request.Body)
		if err != nil {
			return nil, nil, noop, bindError(err)
		}
		if len(bytes.TrimSpace(raw)) == 0 {
			return nil, nil, noop, bindError(io.EOF)
		}
		rejected, err := decodeFields(raw, dst)
		return nil, rejected, noop, err
	}

	if err := c.Request.ParseMultipartForm(multipartMemory); err != nil {
		if tooLarge(err) {
			return nil, nil, noop, bindError(err)
		}
		return nil, nil, noop, apperr.ValidationField("payload", "invalid multipart body")
	}
	raw, err := dataJSON(c.Request.MultipartForm)
	if err != nil {
		return nil, nil, noop, err
	}
	rejected, err := decodeFields(raw, dst)
	if err != nil {
		return nil, nil, noop, err
	}

	for _, field := range uploadFields {
		fh, err := c.FormFile(field)
		if errors.Is(err, http.ErrMissingFile) {
			continue
		}
		if err != nil {
			return nil, nil, noop, apperr.ValidationField(field, "invalid file")
		}
		f, err := fh.Open()
		if err != nil {
			return nil, nil, noop, apperr.Unexpected(err)
		}
		up := &application.FileUpload{Field: field, Filename: fh.Filename, Size: fh.Size, Reader: f}
		return up, rejected, func() { _ = f.Close() }, nil
	}
	return nil, rejected, noop, nil
}

// decodeFields fills dst one top-level key at a time so that a bad value in
// one field leaves the others decoded. Only a body that is not a JSON object
// fails outright.
func decodeFields(raw []byte, dst any) (map[string]string, error) {
	var rejected map[string]string
	reject := func(details map[string]string) {
		for field, reason := range details {
			if rejected == nil {
				rejected = map[string]string{}
			}
			if _, seen := rejected[field]; !seen {
				rejected[field] = reason
			}
		}
	}

	if len(bytes.TrimSpace(raw)) > 0 {
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(raw, &fields); err != nil {
			return nil, bindError(err)
		}
		for key, value := range fields {
			one, err := json.Marshal(map[string]json.RawMessage{key: value})
			if err != nil {
				return nil, apperr.Unexpected(err)
			}
			if err := json.Unmarshal(one, dst); err != nil {
				reject(validation.ToDetails(err))
			}
		}
	}
	if err := binding.Validator.ValidateStruct(dst); err != nil {
		reject(validation.ToDetails(err))
	}
	return rejected, nil
}
// dataJSON returns the "data" part, sent either as a form value or as a file part.
func dataJSON(form *multipart.Form) ([]byte, error) {
	if form == nil {
		return nil, nil
	}
	if v := form.Value[dataPart]; len(v) > 0 {
		return []byte(v[0]), nil
	}
	if files := form.File[dataPart]; len(files) > 0 {
		f, err := files[0].Open()
		if err != nil {
			return nil, apperr.Unexpected(err)
		}
		defer func() { _ = f.Close() }()
		return io.ReadAll(f)
	}
	return nil, nil
}

func tooLarge(err error) bool {
	var mbe *http.MaxBytesError
	return errors.As(err, &mbe)
}

func bindError(err error) error {
	if errors.Is(err, io.EOF) {
		return apperr.ValidationField("payload", "request body is empty")
	}
	if tooLarge(err) {
		return apperr.ValidationField("payload", "request body is too large")
	}
	return apperr.Validation(validation.ToDetails(err))
}
