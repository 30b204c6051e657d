package adminclient

import (
	"encoding/json"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// Asset is an upload field. It holds either the persisted URL or a pending
// local file. Only pending files are uploaded.
type Asset struct {
	URL   string
	Local string
}

// Pending reports whether a local file waits to be uploaded.
func (a Asset) Pending() bool { return a.Local != "" }

// MarshalJSON writes the persisted URL. A pending file is sent as a multipart
// part instead, so the JSON keeps the stored URL and the server ignores it.
func (a Asset) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.URL)
}

func (a *Asset) UnmarshalJSON(b []byte) error {
	var s *string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	a.Local = ""
	a.URL = ""
	if s != nil {
		a.URL = *s
	}
	return nil
}

var imageExts = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true, ".webp": true, ".bmp": true, ".svg": true,
}

// checkLocal rejects non-image files before any request is made.
func checkLocal(field, path string) error {
	if !imageExts[strings.ToLower(filepath.Ext(path))] {
		return &FieldError{Field: field, Reason: "must be an image"}
	}
	mt, err := mimetype.DetectFile(path)
	if err != nil {
		return &FieldError{Field: field, Reason: "cannot be read"}
	}
	if !strings.HasPrefix(mt.String(), "image/") {
		return &FieldError{Field: field, Reason: "must be an image"}
	}
	return nil
}
