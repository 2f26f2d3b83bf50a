package httpclient

import (
	"bytes"
	"fmt"
	"io"
	"maps"
	"mime/multipart"
	"net/textproto"
	"slices"
	"strings"
)

// MultipartBody is a multipart/form-data request body. Set it as
// Request.Body; the net/http transport encodes it and sets Content-Type.
type MultipartBody struct {
	// Fields are simple form fields, written in key order.
	Fields map[string]string
	// Files are file parts, written after the fields in slice order.
	Files []FileField
}

// FileField is one file part of a multipart body.
type FileField struct {
	FieldName string
	FileName  string
	// ContentType defaults to application/octet-stream.
	ContentType string
	// Data is used when Reader is nil.
	Data   []byte
	Reader io.Reader
}

// NewMultipartBody returns an empty multipart body.
func NewMultipartBody() *MultipartBody {
	return &MultipartBody{Fields: make(map[string]string)}
}

// AddField sets a form field and returns m for chaining.
func (m *MultipartBody) AddField(name, value string) *MultipartBody {
	if m.Fields == nil {
		m.Fields = make(map[string]string)
	}
	m.Fields[name] = value
	return m
}

// AddFile appends an in-memory file part and returns m for chaining.
func (m *MultipartBody) AddFile(fieldName, fileName, contentType string, data []byte) *MultipartBody {
	m.Files = append(m.Files, FileField{
		FieldName:   fieldName,
		FileName:    fileName,
		ContentType: contentType,
		Data:        data,
	})
	return m
}

func (m *MultipartBody) encode() (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for _, k := range slices.Sorted(maps.Keys(m.Fields)) {
		if err := w.WriteField(k, m.Fields[k]); err != nil {
			return nil, "", fmt.Errorf("multipart field %q: %w", k, err)
		}
	}

	for _, f := range m.Files {
		part, err := w.CreatePart(filePartHeader(f))
		if err != nil {
			return nil, "", fmt.Errorf("multipart file %q: %w", f.FieldName, err)
		}
		switch {
		case f.Reader != nil:
			_, err = io.Copy(part, f.Reader)
		case f.Data != nil:
			_, err = part.Write(f.Data)
		}
		if err != nil {
			return nil, "", fmt.Errorf("multipart file %q: %w", f.FieldName, err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}

var quoteEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

func filePartHeader(f FileField) textproto.MIMEHeader {
	ct := f.ContentType
	if ct == "" {
		ct = "application/octet-stream"
	}
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
		quoteEscaper.Replace(f.FieldName), quoteEscaper.Replace(f.FileName)))
	h.Set("Content-Type", ct)
	return h
}
