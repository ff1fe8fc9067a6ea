package config

import (
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// AppConfig is the application configuration, loaded from config.toml
// next to the executable.
type AppConfig struct {
	Server     ServerConfig     `toml:"server"`
	Data       DataConfig       `toml:"data"`
	Templates  TemplatesConfig  `toml:"templates"`
	Generation GenerationConfig `toml:"generation"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Port    int  `toml:"port"`
	DevMode bool `toml:"dev_mode"`
}

// DataConfig configures where the catalog database and uploads live.
type DataConfig struct {
	DataDir string `toml:"data_dir"`
}

// TemplatesConfig points at the document templates.
type TemplatesConfig struct {
	Cargo        string `toml:"cargo"`
	Autorizacion string `toml:"autorizacion"`
}

// GenerationConfig configures document generation.
type GenerationConfig struct {
	Workers   int    `toml:"workers"`
	OutputDir string `toml:"output_dir"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *AppConfig {
	return &AppConfig{
		Server: ServerConfig{
			Port:    20280,
			DevMode: false,
		},
		Data: DataConfig{
			DataDir: "data",
		},
		Templates: TemplatesConfig{
			Cargo:        filepath.Join("templates", "CARGO.tmpl"),
			Autorizacion: filepath.Join("templates", "AUTORIZACION.tmpl"),
		},
		Generation: GenerationConfig{
			Workers:   4,
			OutputDir: "output",
		},
	}
}

// GetExeDir returns the directory of the running executable.
func GetExeDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.Dir(exe), nil
}

// LoadConfig loads config.toml from the executable's directory. A missing
// file yields the defaults; a present file overrides them field by field.
// Environment variables override both.
func LoadConfig() (*AppConfig, error) {
	config := DefaultConfig()

	exeDir, err := GetExeDir()
	if err != nil {
		exeDir = "."
	}

	configPath := filepath.Join(exeDir, "config.toml")

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			applyEnvOverrides(config)
			return config, nil
		}
		return nil, err
	}

	if err := toml.Unmarshal(data, config); err != nil {
		return nil, err
	}

	applyEnvOverrides(config)
	return config, nil
}

// Environment overrides, used by local runs and end-to-end tests.
func applyEnvOverrides(config *AppConfig) {
	if v := os.Getenv("CARGOS_DATA_DIR"); v != "" {
		config.Data.DataDir = v
	}
	if v := os.Getenv("CARGOS_CARGO_TEMPLATE"); v != "" {
		config.Templates.Cargo = v
	}
	if v := os.Getenv("CARGOS_AUTORIZACION_TEMPLATE"); v != "" {
		config.Templates.Autorizacion = v
	}
	if v := os.Getenv("CARGOS_OUTPUT_DIR"); v != "" {
		config.Generation.OutputDir = v
	}
}

// SaveConfig writes config.toml back next to the executable.
func SaveConfig(config *AppConfig) error {
	exeDir, err := GetExeDir()
	if err != nil {
		exeDir = "."
	}

	configPath := filepath.Join(exeDir, "config.toml")

	data, err := toml.Marshal(config)
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0644)
}

// EnsureDataDir creates the data directory (and its subdirectories) next
// to the executable and returns its absolute path.
func EnsureDataDir(config *AppConfig) (string, error) {
	exeDir, err := GetExeDir()
	if err != nil {
		exeDir = "."
	}

	dataDir := config.Data.DataDir
	if !filepath.IsAbs(dataDir) {
		dataDir = filepath.Join(exeDir, dataDir)
	}

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return "", err
	}

	subdirs := []string{"uploads", "output"}
	for _, subdir := range subdirs {
		path := filepath.Join(dataDir, subdir)
		if err := os.MkdirAll(path, 0755); err != nil {
			return "", err
		}
	}

	return dataDir, nil
}

// DatabasePath returns the catalog database path inside the data directory.
func DatabasePath(dataDir string) string {
	return filepath.Join(dataDir, "cargos.db")
}
