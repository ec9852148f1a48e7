// ABOUTME: Entry point for the filmi-edge HTTP service
// ABOUTME: Loads configuration, sets up logging and runs the serve/health/mint commands

package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/fatih/color"

	"github.com/2389/filmi-edge/internal/auth"
	"github.com/2389/filmi-edge/internal/config"
	"github.com/2389/filmi-edge/internal/gateway"
)

// Version is set by goreleaser at build time.
var version = "dev"

const banner = `
   __ _ _           _               _
  / _(_) |_ __ ___ (_)      ___  __| | __ _  ___
 | |_| | | '_ ' _ \| |____ / _ \/ _' |/ _' |/ _ \
 |  _| | | | | | | | |____|  __/ (_| | (_| |  __/
 |_| |_|_|_| |_| |_|_|     \___|\__,_|\__, |\___|
                                      |___/
`

// getConfigPath returns the optional config file path.
// Priority: FILMI_CONFIG env var > XDG_CONFIG_HOME/filmi/edge.yaml > ~/.config/filmi/edge.yaml.
// An empty result means environment-only configuration.
func getConfigPath() string {
	if envPath := os.Getenv(config.EnvConfigPath); envPath != "" {
		return envPath
	}

	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configDir = filepath.Join(homeDir, ".config")
	}

	path := filepath.Join(configDir, "filmi", "edge.yaml")
	if _, err := os.Stat(path); err != nil {
		return ""
	}
	return path
}

func usage() {
	fmt.Println("Usage: filmi-edge <command>")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  serve     Start the HTTP server")
	fmt.Println("  health    Check server health")
	fmt.Println("  mint      Print a demo credential (requires DEMO=1)")
	fmt.Println("  version   Print the version")
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	var err error
	switch os.Args[1] {
	case "serve":
		err = runServe(ctx)
	case "health":
		err = runHealth(ctx)
	case "mint":
		err = runMint(os.Stdout)
	case "version":
		fmt.Println(version)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", os.Args[1])
		usage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, string, error) {
	configPath := getConfigPath()
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, configPath, fmt.Errorf("loading config: %w", err)
	}
	return cfg, configPath, nil
}

func runServe(ctx context.Context) error {
	cyan := color.New(color.FgCyan)
	cyan.Print(banner)

	gray := color.New(color.FgHiBlack)
	gray.Printf("    version: %s\n\n", version)

	cfg, configPath, err := loadConfig()
	if err != nil {
		return err
	}

	logger := setupLogger(cfg.Logging, os.Stdout)

	green := color.New(color.FgGreen)
	yellow := color.New(color.FgYellow)

	source := configPath
	if source == "" {
		source = "(environment)"
	}
	green.Print("    ▶ ")
	fmt.Printf("Config:    %s\n", source)
	green.Print("    ▶ ")
	fmt.Printf("HTTP:      %s\n", cfg.Addr())
	green.Print("    ▶ ")
	fmt.Printf("Origins:   %s\n", strings.Join(cfg.CORS.Origins, ", "))
	if cfg.Auth.Demo {
		yellow.Print("    ▶ ")
		fmt.Println("Demo:      enabled")
	}
	if cfg.Tailscale.Enabled {
		green.Print("    ▶ ")
		fmt.Printf("Tailscale: ")
		cyan.Print(cfg.Tailscale.Hostname)
		if cfg.Tailscale.Ephemeral {
			gray.Print(" (ephemeral)")
		}
		fmt.Println()
	}
	fmt.Println()

	logger.Info("starting filmi-edge", "config", source, "addr", cfg.Addr())

	gw, err := gateway.New(cfg, logger)
	if err != nil {
		return fmt.Errorf("creating gateway: %w", err)
	}

	return gw.Run(ctx)
}

func runHealth(ctx context.Context) error {
	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	url := fmt.Sprintf("http://127.0.0.1:%d/healthz", cfg.Server.Port)
	if err := checkHealth(ctx, url); err != nil {
		return err
	}

	fmt.Println("healthy")
	return nil
}

// checkHealth issues GET url and fails on anything but 200.
func checkHealth(ctx context.Context, url string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unhealthy: status %d", resp.StatusCode)
	}
	return nil
}

// runMint prints a demo credential as JSON, the same payload /api/mock-login returns.
func runMint(w io.Writer) error {
	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}
	return mint(cfg, w)
}

func mint(cfg *config.Config, w io.Writer) error {
	verifier, err := auth.NewJWTVerifier([]byte(cfg.Auth.JWTSecret))
	if err != nil {
		return fmt.Errorf("creating JWT verifier: %w", err)
	}

	issued, err := auth.NewIssuer(verifier, cfg.Auth.Demo, cfg.Auth.TokenTTL).IssueDemo()
	if errors.Is(err, auth.ErrDemoDisabled) {
		return fmt.Errorf("%w: set %s=1 to mint demo credentials", err, config.EnvDemo)
	}
	if err != nil {
		return err
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(issued)
}
