package config

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for our application
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Simulation SimulationConfig `mapstructure:"simulation"`
	Logging    LoggingConfig    `mapstructure:"logging"`
}

type ServerConfig struct {
	Port int    `mapstructure:"port"`
	Host string `mapstructure:"host"`
}

type DatabaseConfig struct {
	Host              string `mapstructure:"host"`
	Port              int    `mapstructure:"port"`
	Name              string `mapstructure:"name"`
	User              string `mapstructure:"user"`
	Password          string `mapstructure:"password"`
	SSLMode           string `mapstructure:"ssl_mode"`
	MaxConnections    int    `mapstructure:"max_connections"`
	ConnectionTimeout int    `mapstructure:"connection_timeout"`
}

// SimulationConfig locates the external toolkit's interpreter environment
// and the directory the bridge uses for per-run scratch space.
type SimulationConfig struct {
	Interpreter   string `mapstructure:"interpreter"`
	PackagesDir   string `mapstructure:"packages_dir"`
	WorkDir       string `mapstructure:"work_dir"`
	ScratchTTL    int    `mapstructure:"scratch_ttl_hours"`
	SweepSchedule string `mapstructure:"sweep_schedule"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from file and environment variables
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// First unmarshal into a map to handle type conversions
	var rawConfig map[string]interface{}
	if err := yaml.Unmarshal(data, &rawConfig); err != nil {
		return nil, fmt.Errorf("failed to unmarshal raw config: %w", err)
	}

	// Convert the map to YAML again
	data, err = yaml.Marshal(rawConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal raw config: %w", err)
	}

	// Expand environment variables
	expandedData := os.ExpandEnv(string(data))

	// Read through viper so omitted keys fall back to the defaults
	v := viper.New()
	v.SetConfigType("yaml")
	setDefaults(v)
	if err := v.ReadConfig(bytes.NewBufferString(expandedData)); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.host", "0.0.0.0")

	v.SetDefault("database.port", 5432)
	v.SetDefault("database.ssl_mode", "disable")
	v.SetDefault("database.max_connections", 10)
	v.SetDefault("database.connection_timeout", 5)

	v.SetDefault("simulation.work_dir", "/var/lib/comfortsim/simulation")
	v.SetDefault("simulation.scratch_ttl_hours", 72)
	v.SetDefault("simulation.sweep_schedule", "0 3 * * *")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
}
