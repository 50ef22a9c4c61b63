// Command taskgate is a terminal client for the task-management backend:
// it keeps a session on disk and exposes login, task and notification
// operations over it.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/orchidsoft/taskgate"
	"github.com/orchidsoft/taskgate/api"
	"github.com/orchidsoft/taskgate/storage"
	"github.com/orchidsoft/taskgate/token"
)

type cliConfig struct {
	BaseURL string `yaml:"base_url"`
	// Timeout is a Go duration string, e.g. "15s".
	Timeout     string `yaml:"timeout"`
	DataDir     string `yaml:"data_dir"`
	RedisAddr   string `yaml:"redis_addr"`
	RedisPrefix string `yaml:"redis_prefix"`
}

func defaultCLIConfig() cliConfig {
	home, _ := os.UserHomeDir()
	return cliConfig{
		BaseURL: "http://localhost:8000",
		Timeout: "15s",
		DataDir: filepath.Join(home, ".taskgate"),
	}
}

func (c cliConfig) timeout() (time.Duration, error) {
	if c.Timeout == "" {
		return 15 * time.Second, nil
	}
	return time.ParseDuration(c.Timeout)
}

func loadCLIConfig(path string) (cliConfig, error) {
	cfg := defaultCLIConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// app bundles the wired client stack for subcommands.
type app struct {
	config  cliConfig
	session *taskgate.Session
	client  *api.Client
	tokens  *token.Repository
}

// buildApp wires storage, token repository, API client and session from
// the CLI configuration. Tokens live in a JSON file under DataDir; when
// a Redis address is configured the access token is additionally
// mirrored there. The refresh token stays on the file store alone.
func buildApp(cfg cliConfig) (*app, error) {
	fileStore := storage.NewFile(filepath.Join(cfg.DataDir, "tokens.json"))

	var accessStore storage.Store = fileStore
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		accessStore = storage.NewMirror(fileStore, storage.NewRedis(client, cfg.RedisPrefix),
			storage.WithHealTTL(token.DefaultAccessTTL))
	}

	repo := token.NewRepository(accessStore, fileStore)

	timeout, err := cfg.timeout()
	if err != nil {
		return nil, fmt.Errorf("invalid timeout: %w", err)
	}

	client, err := api.NewClient(api.Config{
		BaseURL: cfg.BaseURL,
		Timeout: timeout,
	}, repo)
	if err != nil {
		return nil, err
	}

	session, err := taskgate.New().
		WithGateway(client).
		WithTokenRepository(repo).
		Build()
	if err != nil {
		return nil, err
	}

	return &app{
		config:  cfg,
		session: session,
		client:  client,
		tokens:  repo,
	}, nil
}

// requireLogin restores the session from persisted tokens and fails the
// command when no session can be established.
func (a *app) requireLogin(ctx context.Context) error {
	if a.session.CheckLoginStatus(ctx) {
		return nil
	}
	return errors.New("not logged in, run `taskgate login` first")
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := newRootCommand()
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var configPath string
	var a *app

	root := &cobra.Command{
		Use:           "taskgate",
		Short:         "Terminal client for the task-management backend",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadCLIConfig(configPath)
			if err != nil {
				return err
			}
			a, err = buildApp(cfg)
			return err
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if a != nil {
				a.session.Close()
			}
		},
	}

	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to YAML config file")

	root.AddCommand(
		newLoginCommand(&a),
		newLogoutCommand(&a),
		newStatusCommand(&a),
		newTasksCommand(&a),
		newNotificationsCommand(&a),
	)

	return root
}
