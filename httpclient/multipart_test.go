package httpclient

import (
	"io"
	"mime"
	"mime/multipart"
	"strings"
	"testing"
)

func TestMultipartBody_Encode(t *testing.T) {
	body := NewMultipartBody().
		AddField("b", "2").
		AddField("a", "1").
		AddFile("upload", `re"port.csv`, "text/csv", []byte("x,y"))
	body.Files = append(body.Files, FileField{FieldName: "stream", FileName: "s.bin", Reader: strings.NewReader("raw")})

	r, contentType, err := body.encode()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	mediaType, params, err := mime.ParseMediaType(contentType)
	if err != nil || mediaType != "multipart/form-data" {
		t.Fatalf("unexpected content type %q: %v", contentType, err)
	}

	mr := multipart.NewReader(r, params["boundary"])
	type part struct{ name, file, ct, data string }
	var parts []part
	for {
		p, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("next part: %v", err)
		}
		data, _ := io.ReadAll(p)
		parts = append(parts, part{p.FormName(), p.FileName(), p.Header.Get("Content-Type"), string(data)})
	}

	want := []part{
		{"a", "", "", "1"},
		{"b", "", "", "2"},
		{"upload", `re"port.csv`, "text/csv", "x,y"},
		{"stream", "s.bin", "application/octet-stream", "raw"},
	}
	if len(parts) != len(want) {
		t.Fatalf("expected %d parts, got %+v", len(want), parts)
	}
	for i := range want {
		if parts[i] != want[i] {
			t.Errorf("part %d: expected %+v, got %+v", i, want[i], parts[i])
		}
	}
}

func TestEncodeBody(t *testing.T) {
	tests := []struct {
		name string
		body any
		ct   string
		want string
	}{
		{"nil", nil, "", ""},
		{"bytes", []byte("raw"), "", "raw"},
		{"string", "hello", "text/plain; charset=utf-8", "hello"},
		{"reader", strings.NewReader("stream"), "", "stream"},
		{"json", map[string]int{"n": 1}, "application/json", `{"n":1}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, ct, err := encodeBody(tt.body)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if ct != tt.ct {
				t.Errorf("expected content type %q, got %q", tt.ct, ct)
			}
			if r == nil {
				if tt.want != "" {
					t.Fatal("expected a reader")
				}
				return
			}
			data, _ := io.ReadAll(r)
			if string(data) != tt.want {
				t.Errorf("expected %q, got %q", tt.want, data)
			}
		})
	}

	if _, _, err := encodeBody(make(chan int)); err == nil {
		t.Error("expected JSON encoding error for channel")
	}
}
