package usecase

import (
	"context"
	"net/url"
	"sync"

	"github.com/goccy/go-json"

	"storeconsole-backend/internal/domain"
)

const testSiteID int64 = 123

type gatewayCall struct {
	Method string
	SiteID int64
	Path   string
	Query  url.Values
	Body   interface{}
}

type fakeReply struct {
	data       interface{}
	raw        string
	totalPages int
	total      int
	err        error
}

// fakeGateway answers by "METHOD path" and records every call.
type fakeGateway struct {
	mu      sync.Mutex
	replies map[string]fakeReply
	calls   []gatewayCall
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{replies: make(map[string]fakeReply)}
}

func (g *fakeGateway) on(method, path string, reply fakeReply) *fakeGateway {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.replies[method+" "+path] = reply
	return g
}

func (g *fakeGateway) called(method, path string) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	n := 0
	for _, c := range g.calls {
		if c.Method == method && c.Path == path {
			n++
		}
	}
	return n
}

func (g *fakeGateway) lastCall() gatewayCall {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.calls[len(g.calls)-1]
}

func (g *fakeGateway) answer(ctx context.Context, call gatewayCall) (*domain.Response, error) {
	g.mu.Lock()
	g.calls = append(g.calls, call)
	reply, ok := g.replies[call.Method+" "+call.Path]
	g.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !ok {
		return nil, &domain.TransportError{Code: "rest_no_route", Message: call.Path, Status: 404}
	}
	if reply.err != nil {
		return nil, reply.err
	}
	raw := []byte(reply.raw)
	if reply.raw == "" {
		var err error
		if raw, err = json.Marshal(reply.data); err != nil {
			return nil, err
		}
	}
	return &domain.Response{Data: raw, TotalPages: reply.totalPages, Total: reply.total}, nil
}

func (g *fakeGateway) Get(ctx context.Context, siteID int64, path string, query url.Values) (*domain.Response, error) {
	return g.answer(ctx, gatewayCall{Method: "GET", SiteID: siteID, Path: path, Query: query})
}

func (g *fakeGateway) Post(ctx context.Context, siteID int64, path string, body interface{}) (*domain.Response, error) {
	return g.answer(ctx, gatewayCall{Method: "POST", SiteID: siteID, Path: path, Body: body})
}

func (g *fakeGateway) Put(ctx context.Context, siteID int64, path string, body interface{}) (*domain.Response, error) {
	return g.answer(ctx, gatewayCall{Method: "PUT", SiteID: siteID, Path: path, Body: body})
}

func (g *fakeGateway) Delete(ctx context.Context, siteID int64, path string) (*domain.Response, error) {
	return g.answer(ctx, gatewayCall{Method: "DELETE", SiteID: siteID, Path: path})
}
