package response

import (
	"net/http"
)

// Builder accumulates status, headers and body before a single Write.
type Builder struct {
	w       http.ResponseWriter
	r       *http.Request
	status  int
	headers map[string]string
	body    []byte
}

// New creates a response builder with the common security headers preset.
func New(w http.ResponseWriter, r *http.Request) *Builder {
	return &Builder{
		w:      w,
		r:      r,
		status: http.StatusOK,
		headers: map[string]string{
			"X-Content-Type-Options": "nosniff",
			"X-Frame-Options":        "DENY",
		},
	}
}

func (b *Builder) WithStatus(status int) *Builder {
	b.status = status
	return b
}

func (b *Builder) WithHeader(key, value string) *Builder {
	b.headers[key] = value
	return b
}

func (b *Builder) WithBody(body []byte) *Builder {
	b.body = body
	return b
}

func (b *Builder) Write() {
	for key, value := range b.headers {
		b.w.Header().Set(key, value)
	}
	b.w.WriteHeader(b.status)
	if b.body != nil {
		_, _ = b.w.Write(b.body)
	}
}
