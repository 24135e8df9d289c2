package tonic

import (
	"errors"
	"net/url"
	"strings"
)

var errMalformedRequestLine = errors.New("malformed request line")

// ParseRequest turns one buffer of raw request bytes into a Request. The
// buffer is expected to hold the whole request already; there is no
// Content-Length framing and no second read.
func ParseRequest(raw []byte) (*Request, error) {
	lines := strings.Split(string(raw), "\r\n")
	if len(lines) == 0 {
		return nil, errMalformedRequestLine
	}

	requestLine := strings.Fields(lines[0])
	if len(requestLine) != 3 {
		return nil, errMalformedRequestLine
	}

	req := &Request{
		Method:      requestLine[0],
		Path:        requestLine[1],
		Version:     requestLine[2],
		Headers:     map[string]string{},
		QueryParams: url.Values{},
	}

	var body strings.Builder
	bodyStart := false
	for _, line := range lines[1:] {
		if !bodyStart {
			if line == "" {
				bodyStart = true
				continue
			}

			name, value, found := strings.Cut(line, ":")
			if !found {
				// Not a header, not an error either.
				continue
			}
			req.Headers[strings.ToLower(strings.TrimSpace(name))] = strings.TrimSpace(value)
			continue
		}

		body.WriteString(line)
		body.WriteString("\r\n")
	}
	req.Body = strings.TrimRight(body.String(), " \t\r\n")

	if path, query, found := strings.Cut(req.Path, "?"); found {
		req.Path = path
		// ParseQuery keeps every occurrence of a repeated key, in order.
		// Whatever it managed to parse before an error is kept.
		params, _ := url.ParseQuery(query)
		req.QueryParams = params
	}

	return req, nil
}
