package config

import (
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

const configPathEnv = "VINCIPITCH_CONFIG"

// fileConfig espelha o YAML opcional. Campos vazios não sobrescrevem nada;
// variáveis de ambiente continuam valendo por cima do arquivo.
type fileConfig struct {
	LogLevel string `yaml:"logLevel"`

	API struct {
		BaseURL string `yaml:"baseUrl"`
		Timeout string `yaml:"timeout"`
	} `yaml:"api"`

	HTTP struct {
		Port              string `yaml:"port"`
		ReadHeaderTimeout string `yaml:"readHeaderTimeout"`
		ShutdownTimeout   string `yaml:"shutdownTimeout"`
	} `yaml:"http"`

	Rabbit struct {
		URI      string `yaml:"uri"`
		Exchange string `yaml:"exchange"`
		Queue    string `yaml:"queue"`
		Prefetch int    `yaml:"prefetch"`
	} `yaml:"rabbitmq"`

	Mongo struct {
		URI string `yaml:"uri"`
		DB  string `yaml:"db"`
	} `yaml:"mongo"`

	WS struct {
		Addr   string `yaml:"addr"`
		Replay int    `yaml:"replay"`
	} `yaml:"ws"`

	Polling struct {
		Interval          string `yaml:"interval"`
		Timeout           string `yaml:"timeout"`
		BatchInitialDelay string `yaml:"batchInitialDelay"`
		BatchInterval     string `yaml:"batchInterval"`
		BatchMaxTicks     int    `yaml:"batchMaxTicks"`
		BatchTimeout      string `yaml:"batchTimeout"`
		BatchConcurrency  int    `yaml:"batchConcurrency"`
	} `yaml:"polling"`

	Notifications struct {
		Max int `yaml:"max"`
	} `yaml:"notifications"`
}

func loadFile() fileConfig {
	var fc fileConfig
	path := os.Getenv(configPathEnv)
	if path == "" {
		return fc
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		slog.Warn("config_file_read_error", "path", path, "err", err)
		return fc
	}
	if err := yaml.Unmarshal(raw, &fc); err != nil {
		slog.Warn("config_file_parse_error", "path", path, "err", err)
		return fileConfig{}
	}
	return fc
}
