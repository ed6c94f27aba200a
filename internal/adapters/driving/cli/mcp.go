package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/meow/internal/adapters/driving/mcp"
)

var mcpHTTPAddr string

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server so AI assistants can search
your files and refresh the index.

By default the server speaks JSON-RPC over stdio. With --http it serves
streamable HTTP instead, and Prometheus metrics at /metrics.

Examples:
  # Stdio mode, for desktop assistants
  meow mcp

  # HTTP mode, for MCP Inspector or remote access
  meow mcp --http localhost:8080

Assistant configuration:
  {
    "mcpServers": {
      "meow": {
        "command": "/path/to/meow",
        "args": ["mcp"]
      }
    }
  }`,
	Args: cobra.NoArgs,
	RunE: runMCP,
}

func init() {
	mcpCmd.Flags().StringVar(&mcpHTTPAddr, "http", "", "serve streamable HTTP on ADDR instead of stdio")
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, _ []string) error {
	server, err := mcp.NewServer(&mcp.Ports{
		Search:      searchService,
		Interpreter: interpreter,
		Index:       indexService,
		Status:      statusService,
	})
	if err != nil {
		return err
	}

	if mcpHTTPAddr != "" {
		if metricsHandler != nil {
			server.SetMetricsHandler(metricsHandler)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "MCP server listening on http://%s\n", mcpHTTPAddr)
		return server.RunHTTP(cmd.Context(), mcpHTTPAddr)
	}

	return server.Run(cmd.Context())
}
