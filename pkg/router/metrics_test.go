package router

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/valyala/fasthttp"
)

func TestRouterMetrics(t *testing.T) {
	r := New()
	r.Metrics = NewMetrics(prometheus.NewRegistry())

	r.Get("/foo", func(_ *fasthttp.RequestCtx, _ Params) {})
	r.Post("/foo", func(_ *fasthttp.RequestCtx, _ Params) {})

	// Two matches, a trailing slash redirect, a fixed path redirect,
	// a 405 and a 404.
	performRequest(r, fasthttp.MethodGet, "/foo")
	performRequest(r, fasthttp.MethodGet, "/foo")
	performRequest(r, fasthttp.MethodGet, "/foo/")
	performRequest(r, fasthttp.MethodGet, "/FOO")
	performRequest(r, fasthttp.MethodDelete, "/foo")
	performRequest(r, fasthttp.MethodGet, "/missing")

	m := r.Metrics
	assert.Equal(t, 2.0, testutil.ToFloat64(m.matches.WithLabelValues("GET")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.trailingSlashRedirs.WithLabelValues("GET")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.fixedPathRedirs.WithLabelValues("GET")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.methodNotAllowed.WithLabelValues("DELETE")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.notFound.WithLabelValues("GET")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.matchDuration))
}

func TestRouterNilMetrics(t *testing.T) {
	r := New()
	r.Get("/foo", func(_ *fasthttp.RequestCtx, _ Params) {})

	// A router without metrics attached must dispatch normally.
	ctx := performRequest(r, fasthttp.MethodGet, "/foo")
	assert.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
}
