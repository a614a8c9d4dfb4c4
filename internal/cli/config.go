package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/shonlittle/acme-invoice/internal/llm"
	"github.com/shonlittle/acme-invoice/internal/model"
	"github.com/shonlittle/acme-invoice/internal/refdata"
)

// Shared processing flags (process and batch commands).
var (
	refdataPath string
	noRefdataDB bool
	cacheTTL    time.Duration
	backend     string
	reasonModel string
	outputDir   string
)

func addProcessingFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&refdataPath, "refdata", "refdata.db", "reference data SQLite path")
	cmd.Flags().BoolVar(&noRefdataDB, "no-db", false, "use the built-in in-memory reference data instead of SQLite")
	cmd.Flags().DurationVar(&cacheTTL, "cache-ttl", 5*time.Minute, "reference data cache TTL (0 disables caching)")
	cmd.Flags().StringVar(&backend, "backend", "", "reasoning backend (grok, mock; default: grok when XAI_API_KEY is set)")
	cmd.Flags().StringVar(&reasonModel, "model", "grok-beta", "reasoning model name")
	cmd.Flags().StringVar(&outputDir, "out", "out", "output directory for result JSON files")
}

// buildConfig merges defaults, config file values and flags.
func buildConfig() *model.Config {
	cfg := model.DefaultConfig()

	if v := viper.GetString("server.addr"); v != "" {
		cfg.Server.Addr = v
	}
	if v := viper.GetString("server.samples_dir"); v != "" {
		cfg.Server.SamplesDir = v
	}
	if v := viper.GetInt("concurrency.workers"); v > 0 {
		cfg.Concurrency.Workers = v
	}

	cfg.RefData.Path = refdataPath
	cfg.RefData.CacheTTL = cacheTTL
	cfg.Reasoning.Model = reasonModel
	cfg.Output.Dir = outputDir
	cfg.Output.Verbose = verbose

	// Backend resolution happens exactly once, here: an explicit flag
	// wins; otherwise a configured credential selects the network
	// backend and its absence selects the deterministic one.
	cfg.Reasoning.APIKey = os.Getenv("XAI_API_KEY")
	switch {
	case backend != "":
		cfg.Reasoning.Backend = backend
	case cfg.Reasoning.APIKey != "":
		cfg.Reasoning.Backend = "grok"
	default:
		cfg.Reasoning.Backend = "mock"
	}

	return cfg
}

// buildGateway resolves the reference-data gateway for a run.
func buildGateway(cfg *model.Config) (refdata.Gateway, func(), error) {
	var gateway refdata.Gateway
	cleanup := func() {}

	if noRefdataDB {
		gateway = refdata.NewDemoStore()
	} else {
		store, err := refdata.OpenSQLite(cfg.RefData.Path, cfg.RefData.AutoSeed)
		if err != nil {
			return nil, nil, fmt.Errorf("open reference data: %w", err)
		}
		gateway = store
		cleanup = func() { _ = store.Close() }
	}

	if cfg.RefData.CacheTTL > 0 {
		gateway = refdata.NewCachedGateway(gateway, cfg.RefData.CacheTTL)
	}

	return gateway, cleanup, nil
}

// buildReasoner resolves the reflection backend for a run.
func buildReasoner(cfg *model.Config) (llm.Provider, error) {
	provider, err := llm.NewProvider(llm.Config{
		Backend:           cfg.Reasoning.Backend,
		Model:             cfg.Reasoning.Model,
		APIKey:            cfg.Reasoning.APIKey,
		BaseURL:           cfg.Reasoning.BaseURL,
		Timeout:           cfg.Reasoning.Timeout,
		MaxTokens:         cfg.Reasoning.MaxTokens,
		RequestsPerSecond: cfg.Reasoning.RequestsPerSecond,
	})
	if err != nil {
		return nil, fmt.Errorf("configure reasoning backend: %w", err)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Reasoning backend: %s\n", provider.Name())
	}
	return provider, nil
}

// configCmd groups configuration helpers
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and initialize configuration",
}

// configShowCmd prints the effective configuration
var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration as YAML",
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := yaml.Marshal(model.DefaultConfig())
		if err != nil {
			return fmt.Errorf("marshal config: %w", err)
		}
		fmt.Print(string(data))
		return nil
	},
}

// configInitCmd writes a starter config file
var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default config file to $HOME/.acme-invoice/config.yaml",
	RunE: func(cmd *cobra.Command, args []string) error {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("find home directory: %w", err)
		}

		dir := filepath.Join(home, ".acme-invoice")
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}

		path := filepath.Join(dir, "config.yaml")
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config file already exists: %s", path)
		}

		data, err := yaml.Marshal(model.DefaultConfig())
		if err != nil {
			return fmt.Errorf("marshal config: %w", err)
		}
		if err := os.WriteFile(path, data, 0644); err != nil {
			return fmt.Errorf("write config file: %w", err)
		}

		fmt.Printf("Wrote %s\n", path)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}
