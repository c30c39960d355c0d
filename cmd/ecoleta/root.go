package main

import (
	"encoding/json"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ecoleta/ecoleta/pkg/apiclient"
	"github.com/ecoleta/ecoleta/pkg/logger"
)

var (
	version = "dev"
	cfgFile string
)

var rootCmd = &cobra.Command{
	Use:     "ecoleta",
	Short:   "Command line client for the Ecoleta collection point directory",
	Version: version,
	Long: `Browse the recycling item catalog, search collection points and
register new ones against an Ecoleta API.

Configuration comes from flags, ECOLETA_* environment variables or a
config file (default: ./ecoleta.yaml, then ~/.config/ecoleta/config.yaml).`,
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file")
	rootCmd.PersistentFlags().String("api-url", "http://localhost:3333", "Ecoleta API base URL")
	rootCmd.PersistentFlags().String("log-level", "warn", "log level (debug, info, warn, error)")

	_ = viper.BindPFlag("api_url", rootCmd.PersistentFlags().Lookup("api-url"))
	_ = viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))

	rootCmd.AddCommand(itemsCmd, pointsCmd, pointCmd, registerCmd)
}

func initConfig() {
	viper.SetEnvPrefix("ecoleta")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("ecoleta")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(home + "/.config/ecoleta")
		}
	}

	// A missing config file is fine; flags and env still apply.
	_ = viper.ReadInConfig()
}

func newClient() *apiclient.Client {
	return apiclient.New(viper.GetString("api_url"))
}

func newLogger() logger.Logger {
	return logger.NewWithWriter(os.Stderr, viper.GetString("log_level"))
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
