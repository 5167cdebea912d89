package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/cast"
	"gopkg.in/yaml.v2"
)

type SysConfig struct {
	Appid    string `yaml:"appid" json:"appid"`
	Location string `yaml:"location" json:"location"`
	Workdir  string `yaml:"workdir" json:"workdir"`
	Debug    bool   `yaml:"debug" json:"debug"`
}

type WebConfig struct {
	Host      string `yaml:"host" json:"host"`
	Port      int    `yaml:"port" json:"port"`
	JwtSecret string `yaml:"secret" json:"secret"`
}

// BackendConfig points at the upstream shop REST service.
type BackendConfig struct {
	BaseURL string `yaml:"baseurl" json:"baseurl"`
	Timeout int    `yaml:"timeout" json:"timeout"` // seconds
}

type LoggerConfig struct {
	Mode       string `yaml:"mode" json:"mode"`
	FileEnable bool   `yaml:"file_enable" json:"file_enable"`
	Filename   string `yaml:"filename" json:"filename"`
}

type CatalogConfig struct {
	RefreshSpec string `yaml:"refresh_spec" json:"refresh_spec"`
	NewDays     int    `yaml:"new_days" json:"new_days"`
}

type CheckoutConfig struct {
	FreeShippingOver float64 `yaml:"free_shipping_over" json:"free_shipping_over"`
	ShippingFee      float64 `yaml:"shipping_fee" json:"shipping_fee"`
}

type AppConfig struct {
	System   SysConfig      `yaml:"system" json:"system"`
	Web      WebConfig      `yaml:"web" json:"web"`
	Backend  BackendConfig  `yaml:"backend" json:"backend"`
	Logger   LoggerConfig   `yaml:"logger" json:"logger"`
	Catalog  CatalogConfig  `yaml:"catalog" json:"catalog"`
	Checkout CheckoutConfig `yaml:"checkout" json:"checkout"`
}

var DefaultAppConfig = &AppConfig{
	System: SysConfig{
		Appid:    "Storefront",
		Location: "Africa/Abidjan",
		Workdir:  "/var/storefront",
		Debug:    true,
	},
	Web: WebConfig{
		Host:      "0.0.0.0",
		Port:      1816,
		JwtSecret: "9b6de5cc-0731-1203-xxtx-0f568ac9da37",
	},
	Backend: BackendConfig{
		BaseURL: "http://127.0.0.1:8000",
		Timeout: 15,
	},
	Logger: LoggerConfig{
		Mode:       "development",
		FileEnable: true,
		Filename:   "/var/storefront/storefront.log",
	},
	Catalog: CatalogConfig{
		RefreshSpec: "@every 10m",
		NewDays:     14,
	},
	Checkout: CheckoutConfig{
		FreeShippingOver: 100000,
		ShippingFee:      2000,
	},
}

func (c *AppConfig) InitDirs() {
	_ = os.MkdirAll(filepath.Join(c.System.Workdir), 0755)
	_ = os.MkdirAll(filepath.Join(c.System.Workdir, "data"), 0755)
}

// LoadConfig loads the yaml configuration file, falling back to defaults and
// applying environment overrides last.
func LoadConfig(cfile string) *AppConfig {
	cfg := new(AppConfig)
	*cfg = *DefaultAppConfig
	if cfile != "" {
		if data, err := os.ReadFile(cfile); err == nil {
			_ = yaml.Unmarshal(data, cfg)
		}
	}
	setEnvValue("STOREFRONT_SYSTEM_WORKDIR", &cfg.System.Workdir)
	setEnvBoolValue("STOREFRONT_SYSTEM_DEBUG", &cfg.System.Debug)
	setEnvValue("STOREFRONT_WEB_HOST", &cfg.Web.Host)
	setEnvIntValue("STOREFRONT_WEB_PORT", &cfg.Web.Port)
	setEnvValue("STOREFRONT_WEB_SECRET", &cfg.Web.JwtSecret)
	setEnvValue("STOREFRONT_BACKEND_BASEURL", &cfg.Backend.BaseURL)
	setEnvIntValue("STOREFRONT_BACKEND_TIMEOUT", &cfg.Backend.Timeout)
	setEnvValue("STOREFRONT_LOGGER_MODE", &cfg.Logger.Mode)
	return cfg
}

func setEnvValue(name string, val *string) {
	if evalue, ok := os.LookupEnv(name); ok {
		*val = evalue
	}
}

func setEnvBoolValue(name string, val *bool) {
	if evalue, ok := os.LookupEnv(name); ok {
		*val = cast.ToBool(evalue)
	}
}

func setEnvIntValue(name string, val *int) {
	if evalue, ok := os.LookupEnv(name); ok {
		*val = cast.ToInt(evalue)
	}
}
