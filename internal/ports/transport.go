package ports

import (
	"context"
	"net/http"
)

type Request struct {
	Path   string
	Header http.Header
	Body   []byte
}

type Response struct {
	StatusCode int
	Status     string
	Header     http.Header
	Body       []byte
}

// Transport performs one POST exchange against the remote application.
type Transport interface {
	Send(ctx context.Context, req Request) (Response, error)
}
