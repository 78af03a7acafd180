package apiclient

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
)

// FileUpload is a file part of a multipart body.
type FileUpload struct {
	Filename    string
	ContentType string
	Content     []byte
}

// Multipart is a form with one JSON part and an optional file part, the
// shape the admin product endpoints expect.
type Multipart struct {
	JSONField string
	JSON      any
	FileField string
	File      *FileUpload
}

func (m *Multipart) encode() (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	data, err := json.Marshal(m.JSON)
	if err != nil {
		return nil, "", fmt.Errorf("encode %s part: %w", m.JSONField, err)
	}
	h := textproto.MIMEHeader{}
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename="blob"`, m.JSONField))
	h.Set("Content-Type", "application/json")
	part, err := w.CreatePart(h)
	if err != nil {
		return nil, "", fmt.Errorf("create %s part: %w", m.JSONField, err)
	}
	if _, err := part.Write(data); err != nil {
		return nil, "", fmt.Errorf("write %s part: %w", m.JSONField, err)
	}

	if m.File != nil {
		contentType := m.File.ContentType
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		h := textproto.MIMEHeader{}
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, m.FileField, m.File.Filename))
		h.Set("Content-Type", contentType)
		part, err := w.CreatePart(h)
		if err != nil {
			return nil, "", fmt.Errorf("create %s part: %w", m.FileField, err)
		}
		if _, err := part.Write(m.File.Content); err != nil {
			return nil, "", fmt.Errorf("write %s part: %w", m.FileField, err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart: %w", err)
	}
	return &buf, w.FormDataContentType(), nil
}
