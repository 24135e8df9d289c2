package tonic

import (
	"bytes"
	"fmt"
	"sort"
	"strconv"
	"time"
)

const serverName = "tonic/1.0"

// rfc1123GMT is the Date header format. time.RFC1123 would print the local
// zone name, responses always stamp UTC.
const rfc1123GMT = "Mon, 02 Jan 2006 15:04:05 GMT"

// BuildResponse serializes a complete HTTP/1.1 response. A nil body gets the
// default "<h1>status text</h1>" page. Default headers come first in a fixed
// order; caller headers win on collision and any remaining ones are appended
// after the defaults, sorted by name.
func BuildResponse(status int, statusText string, body []byte, headers map[string]string) []byte {
	if body == nil {
		body = []byte(fmt.Sprintf("<h1>%d %s</h1>", status, statusText))
	}

	defaults := []struct{ name, value string }{
		{"Server", serverName},
		{"Date", time.Now().UTC().Format(rfc1123GMT)},
		{"Content-Length", strconv.Itoa(len(body))},
		{"Connection", "close"},
		{"Author", "tonic"},
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "HTTP/1.1 %d %s\r\n", status, statusText)

	written := map[string]bool{}
	for _, h := range defaults {
		value := h.value
		if override, ok := headers[h.name]; ok {
			value = override
		}
		fmt.Fprintf(&buf, "%s: %s\r\n", h.name, value)
		written[h.name] = true
	}

	var extra []string
	for name := range headers {
		if !written[name] {
			extra = append(extra, name)
		}
	}
	sort.Strings(extra)
	for _, name := range extra {
		fmt.Fprintf(&buf, "%s: %s\r\n", name, headers[name])
	}

	buf.WriteString("\r\n")
	buf.Write(body)
	return buf.Bytes()
}
