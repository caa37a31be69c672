// Command httpd serves static files from a document root over HTTP/1.0
// and HTTP/1.1, GET and HEAD only. Grounded on the __main__ block of
// hw5/httpd.py: the same four flags, the same validation of the document
// root, the same fixed worker pool size.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/ngalkov/httpd/internal/httpd"
)

func main() {
	os.Exit(run())
}

func run() int {
	address := flag.String("a", "localhost", "address to listen on")
	port := flag.Int("p", 8080, "port to listen on")
	workers := flag.Int("w", 10, "number of worker goroutines")
	docRoot := flag.String("r", "", "path to document root directory")
	flag.Parse()

	logger := log.New(os.Stderr, "", log.LstdFlags)

	if *docRoot == "" {
		fmt.Fprintln(os.Stderr, "missing required -r (document root directory)")
		return 1
	}

	root, err := filepath.Abs(*docRoot)
	if err != nil {
		fmt.Fprintln(os.Stderr, "unable to resolve document root directory")
		return 1
	}
	root, err = filepath.EvalSymlinks(root)
	if err != nil {
		fmt.Fprintln(os.Stderr, "unable to find document root directory")
		return 1
	}
	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		fmt.Fprintln(os.Stderr, "unable to find document root directory")
		return 1
	}

	if *workers < 1 {
		fmt.Fprintln(os.Stderr, "-w must be at least 1")
		return 1
	}

	cfg := httpd.Config{
		Address:     fmt.Sprintf("%s:%d", *address, *port),
		Workers:     *workers,
		DocRoot:     root,
		IdleTimeout: 100 * time.Second,
		Logger:      logger,
	}

	server, err := httpd.Listen(cfg)
	if err != nil {
		logger.Printf("unable to start server: %v", err)
		return 1
	}

	logger.Printf("starting server at %s", server.Addr())

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Serve()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			logger.Printf("server stopped: %v", err)
			return 1
		}
		return 0
	case <-sigCh:
		logger.Printf("shutting down")
		if err := server.Shutdown(); err != nil {
			logger.Printf("shutdown error: %v", err)
			return 1
		}
		<-errCh
		return 0
	}
}
