package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for droidport
type Config struct {
	Import  ImportConfig  `mapstructure:"import"`
	Network NetworkConfig `mapstructure:"network"`
}

// ImportConfig holds import workflow configuration
type ImportConfig struct {
	// TmpDir is where cloned source trees are checked out
	TmpDir string `mapstructure:"tmp_dir"`
	// MetadataDir is where finished metadata records are written
	MetadataDir string `mapstructure:"metadata_dir"`
	// BuildDir is where imported source trees are kept after a successful run
	BuildDir string `mapstructure:"build_dir"`
	// Categories applied to every imported app unless overridden on the command line
	Categories []string `mapstructure:"categories"`
}

// NetworkConfig holds outbound HTTP configuration
type NetworkConfig struct {
	// Timeout applied to the project-page fetch; the classifier core
	// imposes none of its own
	Timeout time.Duration `mapstructure:"timeout"`
}

var defaultConfig = Config{
	Import: ImportConfig{
		TmpDir:      "tmp",
		MetadataDir: "metadata",
		BuildDir:    "build",
		Categories:  []string{},
	},
	Network: NetworkConfig{
		Timeout: 30 * time.Second,
	},
}

// LoadConfig loads configuration from file, environment, and defaults
func LoadConfig() (*Config, error) {
	v := viper.New()

	v.SetDefault("import.tmp_dir", defaultConfig.Import.TmpDir)
	v.SetDefault("import.metadata_dir", defaultConfig.Import.MetadataDir)
	v.SetDefault("import.build_dir", defaultConfig.Import.BuildDir)
	v.SetDefault("import.categories", defaultConfig.Import.Categories)
	v.SetDefault("network.timeout", defaultConfig.Network.Timeout)

	// Configuration file search paths
	v.SetConfigName("droidport")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME")

	// Environment variables
	v.SetEnvPrefix("DROIDPORT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Config file is optional; defaults apply when absent
	_ = v.ReadInConfig()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %v", err)
	}

	return &config, nil
}
