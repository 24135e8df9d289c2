package tonic

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"

	"github.com/a-h/templ"
	"github.com/dustin/go-humanize"
)

const listingStyle = `body { font-family: Arial, sans-serif; margin: 40px; }
h1 { color: #333; }
ul { list-style-type: none; padding: 0; }
li { margin: 5px 0; }
a { text-decoration: none; color: #0066cc; }
a:hover { text-decoration: underline; }
.file { color: #666; }
.dir { color: #0066cc; font-weight: bold; }`

// listingPage renders the directory listing for urlPath: a parent link
// (omitted at the root), then every entry in lexicographic order, directories
// linked with a trailing slash. Entry names are escaped before they reach the
// page.
func listingPage(urlPath string, entries []os.DirEntry) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		title := templ.EscapeString("Directory listing for /" + urlPath)

		if _, err := fmt.Fprintf(w,
			"<!DOCTYPE html>\n<html>\n<head>\n<title>%s</title>\n<style>\n%s\n</style>\n</head>\n<body>\n<h1>%s</h1>\n<ul>\n",
			title, listingStyle, title); err != nil {
			return err
		}

		if urlPath != "" {
			if _, err := io.WriteString(w, "<li><a href=\"../\" class=\"dir\">..</a></li>\n"); err != nil {
				return err
			}
		}

		for _, entry := range entries {
			if err := listingEntry(w, entry); err != nil {
				return err
			}
		}

		_, err := io.WriteString(w, "</ul>\n</body>\n</html>\n")
		return err
	})
}

func listingEntry(w io.Writer, entry os.DirEntry) error {
	name := entry.Name()
	if entry.IsDir() {
		_, err := fmt.Fprintf(w, "<li><a href=\"%s/\" class=\"dir\">%s/</a></li>\n",
			url.PathEscape(name), templ.EscapeString(name))
		return err
	}

	size := ""
	if info, err := entry.Info(); err == nil {
		size = " <span class=\"file\">(" + humanize.Bytes(uint64(info.Size())) + ")</span>"
	}
	_, err := fmt.Fprintf(w, "<li><a href=\"%s\" class=\"file\">%s</a>%s</li>\n",
		url.PathEscape(name), templ.EscapeString(name), size)
	return err
}
