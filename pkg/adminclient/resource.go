package adminclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
)

var assetType = reflect.TypeOf(Asset{})

// Resource is the typed client of one resource kind, mounted at path
// ("/users", "/products", "/categories").
type Resource[T any] struct {
	c    *Client
	path string
}

func NewResource[T any](c *Client, path string) *Resource[T] {
	return &Resource[T]{c: c, path: "/" + strings.Trim(path, "/")}
}

func (r *Resource[T]) itemPath(id int64) string {
	return r.path + "/" + strconv.FormatInt(id, 10)
}

func (r *Resource[T]) Get(ctx context.Context, id int64) (T, error) {
	var out T
	_, err := r.c.doJSON(ctx, http.MethodGet, r.itemPath(id), nil, &out)
	return out, err
}

// GetWithDeleted reads a soft-deleted row (admins only).
func (r *Resource[T]) GetWithDeleted(ctx context.Context, id int64) (T, error) {
	var out T
	_, err := r.c.doJSON(ctx, http.MethodGet, r.itemPath(id)+"?with_deleted=true", nil, &out)
	return out, err
}

func (r *Resource[T]) Create(ctx context.Context, v T) (T, string, error) {
	return r.send(ctx, r.path, v)
}

// Update posts the working copy. Only keys present in v's JSON are applied.
func (r *Resource[T]) Update(ctx context.Context, id int64, v T) (T, string, error) {
	return r.send(ctx, r.itemPath(id), v)
}

// Delete returns the server acknowledgement, decoded into out when non-nil.
func (r *Resource[T]) Delete(ctx context.Context, id int64, out any) (string, error) {
	return r.c.doJSON(ctx, http.MethodDelete, r.itemPath(id), nil, out)
}

func (r *Resource[T]) send(ctx context.Context, path string, v T) (T, string, error) {
	var out T
	assets := pendingAssets(v)
	if len(assets) == 0 {
		msg, err := r.c.doJSON(ctx, http.MethodPost, path, v, &out)
		return out, msg, err
	}
	for field, local := range assets {
		if err := checkLocal(field, local); err != nil {
			return out, "", err
		}
	}
	body, contentType, err := multipartBody(v, assets)
	if err != nil {
		return out, "", err
	}
	msg, err := r.c.do(ctx, http.MethodPost, path, contentType, body, &out)
	return out, msg, err
}

// pendingAssets maps the JSON name of each Asset field holding a local file
// to that file's path.
func pendingAssets(v any) map[string]string {
	rv := reflect.Indirect(reflect.ValueOf(v))
	if rv.Kind() != reflect.Struct {
		return nil
	}
	out := map[string]string{}
	for i := 0; i < rv.NumField(); i++ {
		f := rv.Type().Field(i)
		if f.Type != assetType || !f.IsExported() {
			continue
		}
		a := rv.Field(i).Interface().(Asset)
		if !a.Pending() {
			continue
		}
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "" {
			name = f.Name
		}
		out[name] = a.Local
	}
	return out
}

func multipartBody(v any, assets map[string]string) (io.Reader, string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, "", fmt.Errorf("failed to encode request: %w", err)
	}
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if err := mw.WriteField("data", string(data)); err != nil {
		return nil, "", err
	}
	for field, local := range assets {
		if err := copyFile(mw, field, local); err != nil {
			return nil, "", err
		}
	}
	if err := mw.Close(); err != nil {
		return nil, "", err
	}
	return &buf, mw.FormDataContentType(), nil
}

func copyFile(mw *multipart.Writer, field, local string) error {
	f, err := os.Open(local)
	if err != nil {
		return fmt.Errorf("open %s: %w", field, err)
	}
	defer func() { _ = f.Close() }()
	w, err := mw.CreateFormFile(field, filepath.Base(local))
	if err != nil {
		return err
	}
	_, err = io.Copy(w, f)
	return err
}
