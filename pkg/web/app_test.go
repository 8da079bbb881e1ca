package web

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"

	"github.com/joejoe-am/routego/pkg/router"
)

func TestNew(t *testing.T) {
	r := router.New()
	r.Get("/health", func(ctx *fasthttp.RequestCtx, _ router.Params) {
		ctx.WriteString("OK")
	})

	s := New(r)
	require.NotNil(t, s.server)
	assert.Equal(t, "routego", s.server.Name)
	assert.Same(t, r, s.Router())

	// The server handler dispatches through the router.
	ctx := &fasthttp.RequestCtx{}
	ctx.Request.Header.SetMethod(fasthttp.MethodGet)
	ctx.Request.SetRequestURI("/health")
	s.server.Handler(ctx)
	assert.Equal(t, "OK", string(ctx.Response.Body()))
}

func TestNewWithConfig(t *testing.T) {
	s := New(router.New(), Config{Name: "custom"})
	assert.Equal(t, "custom", s.server.Name)
}
