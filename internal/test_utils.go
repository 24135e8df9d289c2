package internal

import (
	"io"
	"log"
)

const BaseUrl = "http://localhost:8484"

func ReadResponseBodyString(Body io.ReadCloser) string {
	body, err := io.ReadAll(Body)
	if err != nil {
		log.Fatalln(err)
	}

	return string(body)
}
