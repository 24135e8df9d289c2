package tonic

// StatusText returns the standard reason phrase for an HTTP status code,
// or an empty string for a code it does not know.
func StatusText(code int) string {
	switch code {
	// 2xx Success
	case 200:
		return "OK"
	case 201:
		return "Created"
	case 202:
		return "Accepted"
	case 204:
		return "No Content"

	// 3xx Redirection
	case 301:
		return "Moved Permanently"
	case 302:
		return "Found"
	case 304:
		return "Not Modified"
	case 307:
		return "Temporary Redirect"
	case 308:
		return "Permanent Redirect"

	// 4xx Client Errors
	case 400:
		return "Bad Request"
	case 401:
		return "Unauthorized"
	case 403:
		return "Forbidden"
	case 404:
		return "Not Found"
	case 405:
		return "Method Not Allowed"
	case 408:
		return "Request Timeout"
	case 411:
		return "Length Required"
	case 413:
		return "Payload Too Large"
	case 414:
		return "URI Too Long"
	case 429:
		return "Too Many Requests"

	// 5xx Server Errors
	case 500:
		return "Internal Server Error"
	case 501:
		return "Not Implemented"
	case 502:
		return "Bad Gateway"
	case 503:
		return "Service Unavailable"
	case 504:
		return "Gateway Timeout"
	case 505:
		return "HTTP Version Not Supported"
	default:
		return ""
	}
}

// statusOf reads the status code back out of a serialized response, for the
// access log only. Anything unrecognizable counts as a 500.
func statusOf(response []byte) int {
	// "HTTP/1.1 NNN ..."
	if len(response) < 12 {
		return 500
	}
	code := 0
	for _, b := range response[9:12] {
		if b < '0' || b > '9' {
			return 500
		}
		code = code*10 + int(b-'0')
	}
	return code
}
