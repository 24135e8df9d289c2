package tonic

import (
	"net"
	"net/url"
)

// Request is the parsed form of a single HTTP/1.1 request. It is built once
// per connection by ParseRequest, may be replaced by each middleware, and is
// discarded after the response is written.
type Request struct {
	Method  string
	Path    string
	Version string
	// Headers maps lower-cased, trimmed header names to trimmed values.
	// A repeated header overwrites the earlier value.
	Headers map[string]string
	// Body is the raw text after the blank line, right-trimmed of
	// whitespace. Reconstruction is line-based, so bodies relying on exact
	// blank-line framing are lossy.
	Body        string
	QueryParams url.Values
	// ClientIP is never set by the parser; the connection supplier may
	// fill it in.
	ClientIP string
}

// Handler produces a fully serialized HTTP response, typically via
// BuildResponse. A returned error or a panic becomes a generic 500.
type Handler = func(req *Request) ([]byte, error)

// Middleware transforms a request before routing. Returning nil halts
// processing: the connection is closed without writing any bytes.
type Middleware = func(req *Request) *Request

type Configuration struct {
	Host         string
	Port         int
	DocumentRoot string
	// MaxRequestBytes bounds the single read taken per connection. A
	// request larger than this is truncated, not re-read.
	MaxRequestBytes int
	Logging         bool
}

var DefaultConfiguration = Configuration{
	Host:            "localhost",
	Port:            8080,
	DocumentRoot:    "./public",
	MaxRequestBytes: 8192,
	Logging:         false,
}

// Server owns the listener, the route table and the middleware list. Both
// tables are populated before Listen and read-only afterwards, so request
// handling needs no locking.
type Server struct {
	config Configuration
	// root is the canonicalized document root every static resolution
	// must stay inside.
	root       string
	routes     map[string]map[string]Handler
	middleware []Middleware
	listener   net.Listener
}
