package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/narender/anime-explorer/common/config"
)

var (
	configFile    string
	port          string
	logLevel      string
	storageDriver string
	storagePath   string
	jikanBaseURL  string
)

var rootCmd = &cobra.Command{
	Use:   "anime-explorer",
	Short: "Anime catalog browser with accounts and favorites",
	Long: `anime-explorer serves the Jikan anime catalog over HTTP, together with
simulated accounts, per-user browsing state and persisted favorites.

Run without a subcommand to start the server.`,
	SilenceUsage: true,
	RunE:         runServe,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE:  runServe,
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Validate and print the effective configuration",
	RunE:  runConfig,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&configFile, "config", "c", "", "config file (yaml, json, toml or env)")
	flags.StringVar(&port, "port", "", "HTTP listen port")
	flags.StringVar(&logLevel, "log-level", "", "log level: debug, info, warn or error")
	flags.StringVar(&storageDriver, "storage", "", "storage driver: file, leveldb or memory")
	flags.StringVar(&storagePath, "storage-path", "", "storage file or directory")
	flags.StringVar(&jikanBaseURL, "jikan-url", "", "base URL of the Jikan API")

	rootCmd.AddCommand(serveCmd, configCmd)
}

// flagOptions turns the flags that were set into config overrides.
func flagOptions(cmd *cobra.Command) []config.Option {
	var opts []config.Option
	flags := cmd.Flags()
	if flags.Changed("port") {
		opts = append(opts, config.WithPort(port))
	}
	if flags.Changed("log-level") {
		opts = append(opts, config.WithLogLevel(logLevel))
	}
	if flags.Changed("jikan-url") {
		opts = append(opts, config.WithJikanBaseURL(jikanBaseURL))
	}
	if flags.Changed("storage") || flags.Changed("storage-path") {
		opts = append(opts, func(c *config.Config) {
			driver, path := c.StorageDriver, c.StoragePath
			if flags.Changed("storage") {
				driver = storageDriver
			}
			if flags.Changed("storage-path") {
				path = storagePath
			}
			config.WithStorage(driver, path)(c)
		})
	}
	return opts
}

func runConfig(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(configFile, flagOptions(cmd)...)
	if err != nil {
		return err
	}
	cfg.Log()
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
