package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type SysConfig struct {
	Appid    string `yaml:"appid" json:"appid"`
	Location string `yaml:"location" json:"location"`
	Workdir  string `yaml:"workdir" json:"workdir"`
	Debug    bool   `yaml:"debug" json:"debug"`
}

type WebConfig struct {
	Host          string `yaml:"host" json:"host"`
	Port          int    `yaml:"port" json:"port"`
	Secret        string `yaml:"secret" json:"secret"`
	AdminUsername string `yaml:"admin_username" json:"admin_username"`
	AdminPassword string `yaml:"admin_password" json:"admin_password"`
}

type StorageConfig struct {
	// ProductsFile is the whole-collection JSON product database.
	ProductsFile string `yaml:"products_file" json:"products_file"`
	// ReadOnly accepts writes into the in-process cache only; nothing
	// is flushed to disk (hosting environments with a read-only fs).
	ReadOnly bool `yaml:"read_only" json:"read_only"`
}

type LogConfig struct {
	Mode       string `yaml:"mode" json:"mode"`
	FileEnable bool   `yaml:"file_enable" json:"file_enable"`
	Filename   string `yaml:"filename" json:"filename"`
}

type AppConfig struct {
	System  SysConfig     `yaml:"system" json:"system"`
	Web     WebConfig     `yaml:"web" json:"web"`
	Storage StorageConfig `yaml:"storage" json:"storage"`
	Logger  LogConfig     `yaml:"logger" json:"logger"`
}

var DefaultAppConfig = &AppConfig{
	System: SysConfig{
		Appid:    "bilahstore",
		Location: "Asia/Jakarta",
		Workdir:  "/var/bilahstore",
		Debug:    true,
	},
	Web: WebConfig{
		Host:          "0.0.0.0",
		Port:          1880,
		Secret:        "9b6de5cc-0001-1203-xxtt-0f568ac9da37",
		AdminUsername: "admin",
		AdminPassword: "bilahstore",
	},
	Storage: StorageConfig{
		ProductsFile: "/var/bilahstore/data/products.json",
		ReadOnly:     false,
	},
	Logger: LogConfig{
		Mode:       "development",
		FileEnable: true,
		Filename:   "/var/bilahstore/bilahstore.log",
	},
}

func setEnvValue(name string, f func(v string)) {
	var evalue = os.Getenv(name)
	if evalue != "" {
		f(evalue)
	}
}

func setEnvBoolValue(name string, f func(v bool)) {
	var evalue = os.Getenv(name)
	if evalue != "" {
		f(evalue == "true" || evalue == "1" || evalue == "on")
	}
}

// LoadConfig loads the yaml configuration file and applies BILAHSTORE_*
// environment overrides on top. A missing file falls back to defaults.
func LoadConfig(cfile string) *AppConfig {
	cfg := DefaultAppConfig
	if cfile != "" {
		if data, err := os.ReadFile(cfile); err == nil {
			cfg = new(AppConfig)
			if err := yaml.Unmarshal(data, cfg); err != nil {
				fmt.Fprintf(os.Stderr, "config parse error: %v\n", err)
				cfg = DefaultAppConfig
			}
		}
	}

	setEnvValue("BILAHSTORE_SYSTEM_WORKDIR", func(v string) { cfg.System.Workdir = v })
	setEnvValue("BILAHSTORE_SYSTEM_LOCATION", func(v string) { cfg.System.Location = v })
	setEnvBoolValue("BILAHSTORE_SYSTEM_DEBUG", func(v bool) { cfg.System.Debug = v })

	setEnvValue("BILAHSTORE_WEB_HOST", func(v string) { cfg.Web.Host = v })
	setEnvValue("BILAHSTORE_WEB_SECRET", func(v string) { cfg.Web.Secret = v })
	setEnvValue("BILAHSTORE_WEB_ADMIN_USERNAME", func(v string) { cfg.Web.AdminUsername = v })
	setEnvValue("BILAHSTORE_WEB_ADMIN_PASSWORD", func(v string) { cfg.Web.AdminPassword = v })

	setEnvValue("BILAHSTORE_STORAGE_PRODUCTS_FILE", func(v string) { cfg.Storage.ProductsFile = v })
	setEnvBoolValue("BILAHSTORE_STORAGE_READ_ONLY", func(v bool) { cfg.Storage.ReadOnly = v })

	setEnvValue("BILAHSTORE_LOGGER_MODE", func(v string) { cfg.Logger.Mode = v })
	setEnvBoolValue("BILAHSTORE_LOGGER_FILE_ENABLE", func(v bool) { cfg.Logger.FileEnable = v })

	return cfg
}
