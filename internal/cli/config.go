package cli

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"
	"github.com/tessro/heimdall/internal/config"
	herrors "github.com/tessro/heimdall/internal/errors"
)

var configForce bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long:  `Commands for viewing and editing heimdall configuration.`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Long:  `Display the effective configuration, including defaults and environment overrides.`,
	RunE:  runConfigShow,
}

var configEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Edit configuration file",
	Long:  `Open the configuration file in your default editor.`,
	RunE:  runConfigEdit,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration",
	Long:  `Create a new configuration file with default values.`,
	RunE:  runConfigInit,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value in the config file. The file is only written
if the resulting configuration is valid.

Examples:
  heimdall config set api.base_url https://heimdall.example
  heimdall config set player.args "--no-video --volume=60"
  heimdall config set tui.theme light`,
	Args:      cobra.ExactArgs(2),
	ValidArgs: config.Keys(),
	RunE:      runConfigSet,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show configuration and data locations",
	RunE:  runConfigPath,
}

func init() {
	configInitCmd.Flags().BoolVar(&configForce, "force", false, "overwrite an existing config file")

	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configEditCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configPathCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	if JSONOutput() {
		return printJSON(cfg)
	}

	// Pretty print as TOML
	encoder := toml.NewEncoder(os.Stdout)
	encoder.Indent = "  "
	return encoder.Encode(cfg)
}

func runConfigEdit(cmd *cobra.Command, args []string) error {
	configPath := getConfigPath()
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return herrors.WithSuggestion(
			fmt.Errorf("%w at %s", herrors.ErrConfigNotFound, configPath),
			"Run 'heimdall config init' to create one",
		)
	}

	editor := findEditor()
	if editor == "" {
		return fmt.Errorf("no editor found. Set EDITOR environment variable")
	}

	editorCmd := exec.Command(editor, configPath)
	editorCmd.Stdin = os.Stdin
	editorCmd.Stdout = os.Stdout
	editorCmd.Stderr = os.Stderr
	return editorCmd.Run()
}

// findEditor returns $EDITOR, $VISUAL or the first common editor on PATH.
func findEditor() string {
	for _, env := range []string{"EDITOR", "VISUAL"} {
		if e := os.Getenv(env); e != "" {
			return e
		}
	}
	for _, e := range []string{"nano", "vim", "vi", "notepad"} {
		if _, err := exec.LookPath(e); err == nil {
			return e
		}
	}
	return ""
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	configPath := getConfigPath()

	if _, err := os.Stat(configPath); err == nil && !configForce {
		return fmt.Errorf("config file already exists at %s (use --force to overwrite)", configPath)
	}

	if err := writeDefaultConfig(configPath); err != nil {
		return err
	}

	if JSONOutput() {
		return printJSON(map[string]string{
			"status": "created",
			"path":   configPath,
		})
	}

	fmt.Printf("Created config file: %s\n", configPath)
	fmt.Println("\nNext steps:")
	fmt.Println("  1. Point api.base_url at your Heimdall backend (or set HEIMDALL_API_URL)")
	fmt.Println("  2. Run 'heimdall login' to sign in")
	return nil
}

func writeDefaultConfig(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	return writeConfig(path, config.Default())
}

func writeConfig(path string, c *config.Config) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer func() { _ = f.Close() }()

	_, _ = fmt.Fprintln(f, "# Heimdall Configuration")
	_, _ = fmt.Fprintln(f, "")

	encoder := toml.NewEncoder(f)
	encoder.Indent = "  "
	if err := encoder.Encode(c); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key, value := args[0], args[1]
	configPath := getConfigPath()

	// Environment overrides must not end up in the file, so decode it
	// directly instead of using cfg.
	fileCfg := &config.Config{}
	if _, err := toml.DecodeFile(configPath, fileCfg); err != nil {
		if os.IsNotExist(err) {
			return herrors.WithSuggestion(
				fmt.Errorf("%w at %s", herrors.ErrConfigNotFound, configPath),
				"Run 'heimdall config init' to create one",
			)
		}
		return fmt.Errorf("failed to parse config: %w", err)
	}
	fileCfg.ApplyDefaults()

	if err := fileCfg.Set(key, value); err != nil {
		return herrors.WithSuggestion(err, "Valid keys: "+strings.Join(config.Keys(), ", "))
	}
	if err := fileCfg.Validate(); err != nil {
		return fmt.Errorf("%w: %w", herrors.ErrInvalidConfig, err)
	}
	if err := writeConfig(configPath, fileCfg); err != nil {
		return err
	}

	if JSONOutput() {
		return printJSON(map[string]string{
			"status": "updated",
			"key":    key,
			"value":  value,
		})
	}
	fmt.Printf("Set %s = %s\n", key, value)
	return nil
}

func runConfigPath(cmd *cobra.Command, args []string) error {
	configPath := getConfigPath()
	dataDir, err := config.DataDir()
	if err != nil {
		return err
	}

	_, statErr := os.Stat(configPath)
	exists := statErr == nil

	if JSONOutput() {
		return printJSON(map[string]any{
			"config":  configPath,
			"exists":  exists,
			"data":    dataDir,
			"storage": cfg.Storage.Backend,
		})
	}

	t := NewTable()
	t.Row("config", configPath, existsLabel(exists))
	t.Row("data", dataDir, "")
	t.Row("storage", cfg.Storage.Backend, "")
	t.Flush()
	return nil
}

func existsLabel(exists bool) string {
	if exists {
		return ""
	}
	return "(not created)"
}

func getConfigPath() string {
	if cfgFile != "" {
		return cfgFile
	}
	return config.Path()
}
