package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/campusboard/pkg/runner/mcp"
)

func addMCP(topLevel *cobra.Command) {
	var (
		transport string
		addr      string
		path      string
		certFile  string
		keyFile   string
	)

	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Serve the board over the Model Context Protocol",
		Long: `Launch an MCP server that exposes notices, events, the calendar and the
slideshow queue. Assistants can also publish and delete notices; deletes
require confirm=true.`,
		Example: `
campusboard mcp
campusboard mcp --addr :9000 --path /board
campusboard mcp --transport stdio
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			t, err := mcp.ParseTransport(transport)
			if err != nil {
				return err
			}

			// stdout carries the protocol on the stdio transport.
			env, err := openBoard(cmd.Context(), true)
			if err != nil {
				return err
			}
			defer env.Close()
			if err := env.Board.Watch(cmd.Context()); err != nil {
				env.Log.Warn().Err(err).Msg("watch disabled")
			}

			r := mcp.Runner{
				Board:     env.Board,
				Version:   version,
				Log:       env.Log,
				Transport: t,
				Addr:      strings.TrimSpace(addr),
				Path:      mcp.NormalizePath(path),
				CertFile:  strings.TrimSpace(certFile),
				KeyFile:   strings.TrimSpace(keyFile),
			}
			if t == mcp.TransportHTTP {
				r.Listening = func(url string) {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "MCP server listening on %s\n", url)
				}
			}
			return r.Do(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&transport, "transport", string(mcp.TransportHTTP), "Transport to use: http or stdio.")
	cmd.Flags().StringVar(&addr, "addr", mcp.DefaultAddr, "Listen address for the http transport. Port 0 picks a free port.")
	cmd.Flags().StringVar(&path, "path", mcp.DefaultPath, "HTTP endpoint path.")
	cmd.Flags().StringVar(&certFile, "tls-cert", "", "TLS certificate file; serves https together with --tls-key.")
	cmd.Flags().StringVar(&keyFile, "tls-key", "", "TLS private key file.")

	topLevel.AddCommand(cmd)
}
