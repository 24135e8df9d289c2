package main

import (
	"encoding/json"
	"os"
	"os/signal"
	"time"

	"github.com/TomasBorquez/logger"
	tonic "tonic/pkg"
)

func main() {
	app, err := tonic.New(tonic.Configuration{
		Host:         "localhost",
		Port:         8080,
		DocumentRoot: "./public",
		Logging:      true,
	})
	if err != nil {
		logger.Error("%v", err)
		os.Exit(1)
	}

	app.Get("/api/hello", func(req *tonic.Request) ([]byte, error) {
		payload, err := json.MarshalIndent(map[string]string{
			"message":   "Hello from the API!",
			"method":    req.Method,
			"path":      req.Path,
			"timestamp": time.Now().Format(time.RFC3339),
		}, "", "  ")
		if err != nil {
			return nil, err
		}

		return tonic.BuildResponse(200, "OK", payload, map[string]string{
			"Content-Type": "application/json",
		}), nil
	})

	app.Use(func(req *tonic.Request) *tonic.Request {
		logger.Custom("[TONIC]: %s %s", req.Method, req.Path)
		return req
	})

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)
	go func() {
		<-interrupt
		app.Close()
	}()

	if err := app.Listen(); err != nil {
		os.Exit(1)
	}
}
