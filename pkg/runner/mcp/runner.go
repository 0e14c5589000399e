package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"

	"tableflip.dev/campusboard/pkg/board"
)

// Transport selects how the board is exposed.
type Transport string

const (
	TransportHTTP  Transport = "http"
	TransportStdio Transport = "stdio"
)

const (
	DefaultAddr = "127.0.0.1:8080"
	DefaultPath = "/mcp"

	shutdownGrace = 5 * time.Second
)

// ParseTransport maps a flag value to a Transport. Empty means HTTP.
func ParseTransport(v string) (Transport, error) {
	switch t := Transport(strings.ToLower(strings.TrimSpace(v))); t {
	case "", TransportHTTP:
		return TransportHTTP, nil
	case TransportStdio:
		return TransportStdio, nil
	default:
		return "", fmt.Errorf("unsupported transport %q (expected http or stdio)", v)
	}
}

// NormalizePath returns p with a leading slash, or DefaultPath when empty.
func NormalizePath(p string) string {
	p = strings.TrimSpace(p)
	if p == "" {
		return DefaultPath
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return p
}

// Runner serves the campus board over the Model Context Protocol.
type Runner struct {
	Board   *board.Board
	Version string
	Log     zerolog.Logger

	Transport Transport
	Addr      string
	Path      string
	CertFile  string
	KeyFile   string
	// Listening is called with the base URL once the HTTP listener is up.
	Listening func(url string)
}

func (r Runner) Do(ctx context.Context) error {
	if r.Board == nil {
		return errors.New("can not serve mcp, no board")
	}
	if (r.CertFile == "") != (r.KeyFile == "") {
		return errors.New("both --tls-cert and --tls-key are required for https")
	}
	version := r.Version
	if version == "" {
		version = "dev"
	}

	srv := server.NewMCPServer(
		"campusboard MCP",
		version,
		server.WithResourceCapabilities(false, false),
		server.WithToolCapabilities(false),
		server.WithInstructions("Read and manage campus notices and events, the event calendar, and the slideshow queue."),
		server.WithResourceRecovery(),
		server.WithRecovery(),
	)
	svc := NewService(r.Board)
	registerResources(srv, svc)
	registerTools(srv, svc)

	switch r.Transport {
	case "", TransportHTTP:
		return r.serveHTTP(ctx, srv)
	case TransportStdio:
		r.Log.Info().Str("version", version).Msg("mcp serving on stdio")
		return server.ServeStdio(srv)
	default:
		return fmt.Errorf("unknown MCP transport %q", r.Transport)
	}
}

func (r Runner) serveHTTP(ctx context.Context, srv *server.MCPServer) error {
	addr := r.Addr
	if addr == "" {
		addr = DefaultAddr
	}
	path := NormalizePath(r.Path)

	mux := http.NewServeMux()
	mux.Handle(path, server.NewStreamableHTTPServer(srv))
	mux.HandleFunc("/healthz", r.health)
	httpSrv := &http.Server{Handler: mux, ReadHeaderTimeout: 10 * time.Second}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("mcp listen %s: %w", addr, err)
	}
	tls := r.CertFile != ""
	url := ListenURL(ln.Addr(), tls, path)
	r.Log.Info().Str("url", url).Msg("mcp serving over http")
	if r.Listening != nil {
		r.Listening(url)
	}

	go func() {
		<-ctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		if err := httpSrv.Shutdown(sctx); err != nil {
			r.Log.Warn().Err(err).Msg("mcp shutdown")
		}
	}()

	if tls {
		err = httpSrv.ServeTLS(ln, r.CertFile, r.KeyFile)
	} else {
		err = httpSrv.Serve(ln)
	}
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// health reports the board counts so a probe can tell an empty board from a
// broken one.
func (r Runner) health(w http.ResponseWriter, _ *http.Request) {
	a := r.Board.Analytics()
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"status":  "ok",
		"notices": a.NoticesCount,
		"events":  a.EventsCount,
		"urgent":  a.UrgentCount,
	})
}

// ListenURL is the address clients should use to reach the endpoint. An
// unspecified listen host is shown as loopback.
func ListenURL(a net.Addr, tls bool, path string) string {
	scheme := "http"
	if tls {
		scheme = "https"
	}
	tcp, ok := a.(*net.TCPAddr)
	if !ok {
		return scheme + "://" + a.String() + path
	}
	host := "127.0.0.1"
	if tcp.IP != nil && !tcp.IP.IsUnspecified() {
		host = tcp.IP.String()
	}
	return fmt.Sprintf("%s://%s%s", scheme, net.JoinHostPort(host, fmt.Sprint(tcp.Port)), path)
}
