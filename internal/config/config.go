package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// The values are read by Viper from a config file or environment variables.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	Sessions SessionsConfig `mapstructure:"sessions"`
	S3       S3Config       `mapstructure:"s3"`
	Assets   AssetsConfig   `mapstructure:"assets"`
	Picker   PickerConfig   `mapstructure:"picker"`
	TUI      TUIConfig      `mapstructure:"tui"`
}

type ServerConfig struct {
	Address string `mapstructure:"address"`
}

// JWTConfig signs the per-client screen session tokens.
type JWTConfig struct {
	Secret     string        `mapstructure:"secret"`
	Expiration time.Duration `mapstructure:"expiration"`
}

// SessionsConfig bounds the per-client screen sessions held by the server.
type SessionsConfig struct {
	Max int `mapstructure:"max"` // 0 disables the limit
}

// S3Config is optional; when BucketName is empty bundled images are served from Assets.Dir.
type S3Config struct {
	Endpoint        string `mapstructure:"endpoint"`
	Region          string `mapstructure:"region"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	BucketName      string `mapstructure:"bucket_name"`
	UseSSL          bool   `mapstructure:"use_ssl"`
	AssetPrefix     string `mapstructure:"asset_prefix"` // Key prefix of the bundled assets inside the bucket
}

// Enabled reports whether bundled assets live in an S3 bucket.
func (c S3Config) Enabled() bool { return c.BucketName != "" }

type AssetsConfig struct {
	Dir       string `mapstructure:"dir"`        // Directory holding bench_press.jpeg etc.
	URLPrefix string `mapstructure:"url_prefix"` // Route the directory is served under
}

// PickerConfig names the external file chooser used by the terminal screen.
type PickerConfig struct {
	Command string   `mapstructure:"command"`
	Args    []string `mapstructure:"args"`
}

type TUIConfig struct {
	LogFile string `mapstructure:"log_file"`
}

// LoadConfig reads configuration from file or environment variables.
func LoadConfig(path string) (config Config, err error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	// --- Environment Variable Handling ---
	// server.address -> SERVER_ADDRESS, jwt.expiration -> JWT_EXPIRATION
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(`.`, `_`))

	// --- Defaults ---
	v.SetDefault("server.address", ":8080")
	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.expiration", "24h")
	v.SetDefault("sessions.max", 10000)
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.access_key_id", "")
	v.SetDefault("s3.secret_access_key", "")
	v.SetDefault("s3.bucket_name", "")
	v.SetDefault("s3.use_ssl", true)
	v.SetDefault("s3.asset_prefix", "assets/")
	v.SetDefault("assets.dir", "./assets")
	v.SetDefault("assets.url_prefix", "/assets")
	v.SetDefault("picker.command", "")
	v.SetDefault("picker.args", []string{})
	v.SetDefault("tui.log_file", "exercises.log")

	// --- Read Config File ---
	// A missing file is fine; defaults and env vars still apply.
	err = v.ReadInConfig()
	if _, ok := err.(viper.ConfigFileNotFoundError); ok {
		err = nil
	} else if err != nil {
		return
	}

	if err = v.Unmarshal(&config); err != nil {
		return
	}
	return config, nil
}
