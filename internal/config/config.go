package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/pelletier/go-toml/v2"
)

// AppConfig アプリ設定
type AppConfig struct {
	Server  ServerConfig  `toml:"server"`
	Data    DataConfig    `toml:"data"`
	Extract ExtractConfig `toml:"extract"`
}

// ServerConfig サーバ設定
type ServerConfig struct {
	Port    int  `toml:"port"`
	DevMode bool `toml:"dev_mode"`
}

// DataConfig データ設定
type DataConfig struct {
	DataDir string `toml:"data_dir"`
}

// ExtractConfig 抽出サービス設定
type ExtractConfig struct {
	Model      string `toml:"model"`
	TimeoutSec int    `toml:"timeout_sec"`
	MaxPDFMB   int    `toml:"max_pdf_mb"`
}

// DefaultConfig 既定の設定
func DefaultConfig() *AppConfig {
	return &AppConfig{
		Server: ServerConfig{
			Port:    20412,
			DevMode: false,
		},
		Data: DataConfig{
			DataDir: "data",
		},
		Extract: ExtractConfig{
			Model:      "gemini-2.0-flash",
			TimeoutSec: 60,
			MaxPDFMB:   20,
		},
	}
}

// GetExeDir 実行ファイルのディレクトリ
func GetExeDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.Dir(exe), nil
}

// LoadConfig 実行ファイルと同じディレクトリの config.toml を読み込む。
// ファイルが無ければ既定の設定を返す。環境変数での上書きにも対応する
func LoadConfig() (*AppConfig, error) {
	config := DefaultConfig()

	exeDir, err := GetExeDir()
	if err != nil {
		// 実行ファイルの場所が取れなければカレントディレクトリを使う
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

// applyEnvOverrides 環境変数による上書き（ローカル実行・E2E用）
func applyEnvOverrides(config *AppConfig) {
	if v := os.Getenv("PLSANKEY_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil && port > 0 {
			config.Server.Port = port
		}
	}
	if v := os.Getenv("PLSANKEY_EXTRACT_MODEL"); v != "" {
		config.Extract.Model = v
	}
}

// SaveConfig 設定を config.toml に保存する
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

// EnsureDataDir データディレクトリを作成して返す
func EnsureDataDir(config *AppConfig) (string, error) {
	exeDir, err := GetExeDir()
	if err != nil {
		exeDir = "."
	}

	dataDir := filepath.Join(exeDir, config.Data.DataDir)

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return "", err
	}

	for _, subdir := range []string{"uploads", "exports"} {
		if err := os.MkdirAll(filepath.Join(dataDir, subdir), 0755); err != nil {
			return "", err
		}
	}

	return dataDir, nil
}
