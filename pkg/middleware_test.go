package tonic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMiddlewareChain(t *testing.T) {
	t.Run("runs in registration order and chains outputs", func(t *testing.T) {
		server := newStaticServer(t)
		var order []string

		server.Use(func(req *Request) *Request {
			order = append(order, "first")
			req.Headers["x-step"] = "first"
			return req
		})
		server.Use(func(req *Request) *Request {
			order = append(order, "second:"+req.Headers["x-step"])
			return req
		})

		out := server.runMiddleware(getRequest("/"))

		require.NotNil(t, out)
		assert.Equal(t, []string{"first", "second:first"}, order)
	})

	t.Run("a middleware may replace the request", func(t *testing.T) {
		server := newStaticServer(t)
		server.Use(func(req *Request) *Request {
			replaced := *req
			replaced.Path = "/rewritten"
			return &replaced
		})

		out := server.runMiddleware(getRequest("/original"))

		require.NotNil(t, out)
		assert.Equal(t, "/rewritten", out.Path)
	})

	t.Run("nil halts the chain", func(t *testing.T) {
		server := newStaticServer(t)
		ranAfter := false

		server.Use(func(req *Request) *Request { return nil })
		server.Use(func(req *Request) *Request {
			ranAfter = true
			return req
		})

		out := server.runMiddleware(getRequest("/"))

		assert.Nil(t, out)
		assert.False(t, ranAfter, "middleware after a veto must not run")
	})

	t.Run("a panic counts as a halt", func(t *testing.T) {
		server := newStaticServer(t)
		server.Use(func(req *Request) *Request { panic("bad middleware") })

		assert.Nil(t, server.runMiddleware(getRequest("/")))
	})

	t.Run("empty chain passes the request through", func(t *testing.T) {
		server := newStaticServer(t)
		req := getRequest("/x")

		assert.Same(t, req, server.runMiddleware(req))
	})
}
