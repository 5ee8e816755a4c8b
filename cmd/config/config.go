package config

import (
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/thomascamminady/filefocus/pkg/service"
)

var cfgFile string

// InitConfig wires viper to the config file and environment.
func InitConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		configDir := filepath.Join(home, ".config", "filefocus")
		viper.AddConfigPath(configDir)
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("FILEFOCUS")

	// Set defaults
	viper.SetDefault("data_dir", filepath.Join(os.Getenv("HOME"), ".local", "share", "filefocus"))

	// A missing config file is fine; defaults and env cover everything.
	_ = viper.ReadInConfig()
}

// InitService builds the service from the loaded configuration.
func InitService() (*service.Service, error) {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetLevel(logrus.WarnLevel) // Keep it quiet unless there are issues.

	cfg := &service.Config{
		DataDir: viper.GetString("data_dir"),
	}

	return service.New(cfg, logger)
}

// AddGlobalFlags registers the persistent flags shared by all commands.
func AddGlobalFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/filefocus/config.yaml)")
}
