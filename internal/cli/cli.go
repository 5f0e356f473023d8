// Package cli implements the bulletins command-line interface.
//
// # Commands
//
//   - serve: run the HTTP API with the configured storage backends
//   - style: run the inheritance engine over local style and field files
//   - doc: import, export, list, show and publish documents on a server;
//     inspect a local document file in an interactive view
//   - cache: inspect and clear the file cache of resolved styles
//   - version, completion
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging through the
// CLI's charmbracelet logger.
package cli

import (
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/bulletins/internal/config"
	"github.com/matzehuels/bulletins/pkg/client"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "bulletins"

	// envServerURL overrides the default server for document commands.
	envServerURL = "BULLETINS_URL"

	defaultServerURL = "http://localhost:8080"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	serverURL  string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// loadConfig reads the configuration file named by --config (or the
// default location) with environment overrides.
func (c *CLI) loadConfig() (config.Config, error) {
	return config.Load(c.configPath, os.Getenv)
}

// client returns an API client for --server, $BULLETINS_URL or the local
// default, in that order.
func (c *CLI) client() *client.Client {
	url := c.serverURL
	if url == "" {
		url = os.Getenv(envServerURL)
	}
	if url == "" {
		url = defaultServerURL
	}
	return client.New(url)
}
