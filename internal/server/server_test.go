package server_test

import (
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/JaimeStill/pledge/internal/config"
	"github.com/JaimeStill/pledge/internal/server"
	"github.com/JaimeStill/pledge/pkg/lifecycle"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func availablePort(t *testing.T) int {
	t.Helper()
	ln, err := net.Listen("tcp", "localhost:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer ln.Close()
	return ln.Addr().(*net.TCPAddr).Port
}

func serverConfig(port int) *config.ServerConfig {
	return &config.ServerConfig{
		Host:         "localhost",
		Port:         port,
		ReadTimeout:  "5s",
		WriteTimeout: "5s",
	}
}

func TestStart_ServesAndShutsDown(t *testing.T) {
	port := availablePort(t)
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("pledge"))
	})

	lc := lifecycle.New()
	sys := server.New(serverConfig(port), handler, 5*time.Second, testLogger())
	if err := sys.Start(lc); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	url := fmt.Sprintf("http://localhost:%d/", port)
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET error = %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()

	if string(body) != "pledge" {
		t.Errorf("body = %q, want pledge", body)
	}

	if err := lc.Shutdown(5 * time.Second); err != nil {
		t.Fatalf("Shutdown() error = %v", err)
	}

	if _, err := http.Get(url); err == nil {
		t.Error("server still accepting connections after shutdown")
	}
}

func TestStart_BindError(t *testing.T) {
	ln, err := net.Listen("tcp", "localhost:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer ln.Close()

	port := ln.Addr().(*net.TCPAddr).Port
	sys := server.New(serverConfig(port), http.NotFoundHandler(), time.Second, testLogger())

	if err := sys.Start(lifecycle.New()); err == nil {
		t.Error("Start() on a bound port error = nil")
	}
}
