// Package netx builds request payloads that are not plain JSON.
package netx

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
)

type filePart struct {
	field    string
	filename string
	content  io.Reader
}

// Multipart is a multipart/form-data payload. The API client recognises it
// and sends it with the matching Content-Type instead of JSON-encoding it.
type Multipart struct {
	fields [][2]string
	files  []filePart
}

func NewMultipart() *Multipart {
	return &Multipart{}
}

// AddField appends a plain form field.
func (m *Multipart) AddField(name, value string) *Multipart {
	m.fields = append(m.fields, [2]string{name, value})
	return m
}

// AddFile appends a file part read from content.
func (m *Multipart) AddFile(field, filename string, content io.Reader) *Multipart {
	m.files = append(m.files, filePart{field: field, filename: filename, content: content})
	return m
}

// Encode renders the payload and returns the body together with the
// Content-Type header value (including the boundary).
func (m *Multipart) Encode() (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for _, f := range m.fields {
		if err := w.WriteField(f[0], f[1]); err != nil {
			return nil, "", fmt.Errorf("write field %s: %w", f[0], err)
		}
	}

	for _, f := range m.files {
		part, err := w.CreateFormFile(f.field, f.filename)
		if err != nil {
			return nil, "", fmt.Errorf("create file part %s: %w", f.field, err)
		}
		if _, err := io.Copy(part, f.content); err != nil {
			return nil, "", fmt.Errorf("copy file part %s: %w", f.field, err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}

	return &buf, w.FormDataContentType(), nil
}
