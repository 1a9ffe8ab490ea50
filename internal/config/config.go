// Package config loads simulator configuration from a JSON file via viper,
// with defaults suitable for running scenarios locally.
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// StorageConfig selects and parameterizes the recording backend.
type StorageConfig struct {
	Type     string       `json:"type"`
	Memory   MemoryConfig `json:"memory"`
	Database DBConfig     `json:"database"`
}

// MemoryConfig holds in-memory/JSON storage backend settings.
type MemoryConfig struct {
	OutputDir      string `json:"outputDir"`
	CompressOutput bool   `json:"compressOutput"`
}

// DBConfig holds database backend connection settings.
type DBConfig struct {
	Host       string `json:"host"`
	Port       string `json:"port"`
	Username   string `json:"username"`
	Password   string `json:"password"`
	Database   string `json:"database"`
	SqlitePath string `json:"sqlitePath"`
}

// Load reads configuration from a JSON file and sets default values.
// configDir is the directory containing the config file; a missing file
// leaves the defaults in place.
func Load(configDir string) error {
	viper.SetDefault("logLevel", "info")
	viper.SetDefault("logsDir", "./logs")
	viper.SetDefault("seed", 1)

	viper.SetDefault("storage.type", "memory")
	viper.SetDefault("storage.memory.outputDir", "./recordings")
	viper.SetDefault("storage.memory.compressOutput", false)

	viper.SetDefault("storage.database.host", "localhost")
	viper.SetDefault("storage.database.port", "5432")
	viper.SetDefault("storage.database.username", "postgres")
	viper.SetDefault("storage.database.password", "postgres")
	viper.SetDefault("storage.database.database", "seaward")
	viper.SetDefault("storage.database.sqlitePath", "")

	viper.SetConfigName("seaward.cfg.json")
	viper.AddConfigPath(configDir)
	viper.SetConfigType("json")

	if err := viper.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); notFound {
			return nil
		}
		return fmt.Errorf("error reading config file: %w", err)
	}
	return nil
}

// Storage returns the storage section of the configuration. Values are read
// key by key so defaults survive for keys the config file omits.
func Storage() StorageConfig {
	return StorageConfig{
		Type: viper.GetString("storage.type"),
		Memory: MemoryConfig{
			OutputDir:      viper.GetString("storage.memory.outputDir"),
			CompressOutput: viper.GetBool("storage.memory.compressOutput"),
		},
		Database: DBConfig{
			Host:       viper.GetString("storage.database.host"),
			Port:       viper.GetString("storage.database.port"),
			Username:   viper.GetString("storage.database.username"),
			Password:   viper.GetString("storage.database.password"),
			Database:   viper.GetString("storage.database.database"),
			SqlitePath: viper.GetString("storage.database.sqlitePath"),
		},
	}
}

// GetString returns a string config value.
func GetString(key string) string {
	return viper.GetString(key)
}

// GetInt returns an int config value.
func GetInt(key string) int {
	return viper.GetInt(key)
}

// GetInt64 returns an int64 config value.
func GetInt64(key string) int64 {
	return viper.GetInt64(key)
}

// GetBool returns a bool config value.
func GetBool(key string) bool {
	return viper.GetBool(key)
}
