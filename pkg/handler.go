package tonic

import (
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/TomasBorquez/logger"
)

// New builds a Server from the given configuration, filling missing fields
// from DefaultConfiguration. The document root is created if absent and
// canonicalized once, here; every static resolution is checked against that
// canonical path.
func New(config ...Configuration) (*Server, error) {
	cfg := DefaultConfiguration

	if len(config) > 0 {
		cfg = config[0]

		if cfg.Host == "" {
			cfg.Host = DefaultConfiguration.Host
		}

		if cfg.Port == 0 {
			cfg.Port = DefaultConfiguration.Port
		}

		if cfg.DocumentRoot == "" {
			cfg.DocumentRoot = DefaultConfiguration.DocumentRoot
		}

		if cfg.MaxRequestBytes == 0 {
			cfg.MaxRequestBytes = DefaultConfiguration.MaxRequestBytes
		}
	}

	if err := os.MkdirAll(cfg.DocumentRoot, 0o755); err != nil {
		return nil, fmt.Errorf("creating document root: %w", err)
	}

	root, err := filepath.Abs(cfg.DocumentRoot)
	if err != nil {
		return nil, fmt.Errorf("resolving document root: %w", err)
	}
	root, err = filepath.EvalSymlinks(root)
	if err != nil {
		return nil, fmt.Errorf("resolving document root: %w", err)
	}

	return &Server{
		config: cfg,
		root:   root,
		routes: map[string]map[string]Handler{},
	}, nil
}

// AddRoute registers a handler for an exact (path, method) pair. Matching is
// case-sensitive and a trailing slash is significant. Routes must all be
// registered before Listen.
func (s *Server) AddRoute(path, method string, handler Handler) *Server {
	if s.routes[path] == nil {
		s.routes[path] = map[string]Handler{}
	}
	s.routes[path][method] = handler
	return s
}

func (s *Server) Get(path string, handler Handler) *Server {
	return s.AddRoute(path, "GET", handler)
}

func (s *Server) Post(path string, handler Handler) *Server {
	return s.AddRoute(path, "POST", handler)
}

func (s *Server) Put(path string, handler Handler) *Server {
	return s.AddRoute(path, "PUT", handler)
}

func (s *Server) Delete(path string, handler Handler) *Server {
	return s.AddRoute(path, "DELETE", handler)
}

// Listen binds the configured address and serves until the listener fails or
// is closed via Close.
func (s *Server) Listen() error {
	return s.listen(nil)
}

// ListenNotify is Listen with a readiness signal: true once the listener is
// bound, false if binding failed. Tests use it to wait for the server.
func (s *Server) ListenNotify(ready chan bool) error {
	return s.listen(ready)
}

func (s *Server) listen(ready chan bool) error {
	addr := net.JoinHostPort(s.config.Host, strconv.Itoa(s.config.Port))

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		if ready != nil {
			ready <- false
		}
		logger.Error("[TONIC]: Error meanwhile listening: %v", err)
		return err
	}
	s.listener = listener

	if ready != nil {
		ready <- true
	}
	logger.Success("[TONIC]: Listening on http://" + addr)
	logger.Success("[TONIC]: Document root is " + s.root)

	for {
		connection, err := listener.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				logger.Success("[TONIC]: Server stopped")
				return nil
			}
			logger.Error("[TONIC]: Accept error: %v", err)
			return err
		}

		go s.HandleConnection(connection)
	}
}

// Close shuts the listener down. In-flight connections are not joined; each
// worker finishes its one response on its own.
func (s *Server) Close() {
	if s.listener != nil {
		s.listener.Close()
	}
}

// HandleConnection runs the whole pipeline for one connection: a single
// bounded read, parse, middleware, route, write, close. A request larger
// than MaxRequestBytes is truncated, not re-read.
func (s *Server) HandleConnection(connection net.Conn) {
	defer connection.Close()
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			logger.Error("[TONIC]: Connection error: %v", r)
			s.sendError(connection, 500)
		}
	}()

	buffer := make([]byte, s.config.MaxRequestBytes)
	n, err := connection.Read(buffer)
	if err != nil {
		logger.Error("[TONIC]: Error reading connection: %v", err)
		return
	}
	if n == 0 {
		return
	}

	req, err := ParseRequest(buffer[:n])
	if err != nil {
		s.sendError(connection, 400)
		return
	}

	req = s.runMiddleware(req)
	if req == nil {
		// Vetoed: close without writing a byte.
		return
	}

	response := s.route(req)
	if _, err := connection.Write(response); err != nil {
		logger.Error("[TONIC]: Error writing response: %v", err)
		return
	}

	if s.config.Logging {
		s.logAccess(req, response, start)
	}
}

// route dispatches a parsed request: exact route first, static files for
// unrouted GETs, 405 otherwise.
func (s *Server) route(req *Request) []byte {
	if methods, ok := s.routes[req.Path]; ok {
		if handler, ok := methods[req.Method]; ok {
			return s.invoke(handler, req)
		}
	}

	if req.Method == "GET" {
		return s.serveStatic(req.Path)
	}

	return BuildResponse(405, StatusText(405), nil, nil)
}

// invoke runs a route handler, converting an error or panic into a generic
// 500. The underlying failure is logged, never sent to the client.
func (s *Server) invoke(handler Handler, req *Request) (response []byte) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("[TONIC]: Route handler panic: %v", r)
			response = BuildResponse(500, StatusText(500), nil, nil)
		}
	}()

	response, err := handler(req)
	if err != nil {
		logger.Error("[TONIC]: Route handler error: %v", err)
		return BuildResponse(500, StatusText(500), nil, nil)
	}
	return response
}

// sendError writes a default error page. Best effort: the connection is
// closing regardless, so a failed write is swallowed.
func (s *Server) sendError(connection net.Conn, status int) {
	_, _ = connection.Write(BuildResponse(status, StatusText(status), nil, nil))
}

func (s *Server) logAccess(req *Request, response []byte, start time.Time) {
	status := statusOf(response)

	var color string
	switch {
	case status < 300:
		color = logger.Green
	case status < 400:
		color = logger.Blue
	case status < 500:
		color = logger.Orange
	default:
		color = logger.Red
	}

	logger.Custom("[TONIC]: %s%d%s - %dms | %s %s",
		color,
		status,
		logger.Reset,
		time.Since(start).Milliseconds(),
		req.Method,
		req.Path)
}
