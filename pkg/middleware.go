package tonic

import (
	"github.com/TomasBorquez/logger"
)

// Use appends a middleware. Registration order is execution order. Like the
// route table, the middleware list must be complete before Listen is called.
func (s *Server) Use(m Middleware) *Server {
	s.middleware = append(s.middleware, m)
	return s
}

// runMiddleware feeds the request through every registered middleware in
// order. A nil return from any of them halts the pipeline: the caller writes
// nothing and closes the connection. A panicking middleware is logged and
// treated the same as a halt.
func (s *Server) runMiddleware(req *Request) (out *Request) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("[TONIC]: Middleware panic: %v", r)
			out = nil
		}
	}()

	for _, m := range s.middleware {
		req = m(req)
		if req == nil {
			return nil
		}
	}
	return req
}
