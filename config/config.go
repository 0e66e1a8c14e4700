package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Queue     QueueConfig     `mapstructure:"queue"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Pipeline  PipelineConfig  `mapstructure:"pipeline"`
	Webhook   WebhookConfig   `mapstructure:"webhook"`
	Cache     CacheConfig     `mapstructure:"cache"`
	CORS      CORSConfig      `mapstructure:"cors"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

type DatabaseConfig struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	Username     string `mapstructure:"username"`
	Password     string `mapstructure:"password"`
	Database     string `mapstructure:"database"`
	MaxIdleConns int    `mapstructure:"max_idle_conns"`
	MaxOpenConns int    `mapstructure:"max_open_conns"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
}

type QueueConfig struct {
	AnalysisQueue string `mapstructure:"analysis_queue"`
	MaxWorkers    int    `mapstructure:"max_workers"`
}

type RateLimitConfig struct {
	PerMinute    int `mapstructure:"per_minute"`    // 每分钟允许的 ingest 次数
	SweepMinutes int `mapstructure:"sweep_minutes"` // 清理多久未活跃的计数器
}

type PipelineConfig struct {
	DefaultTimeoutSeconds int  `mapstructure:"default_timeout_seconds"`
	StageDelayMS          int  `mapstructure:"stage_delay_ms"`
	FetchEnabled          bool `mapstructure:"fetch_enabled"`
}

type WebhookConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	URL     string `mapstructure:"url"`
}

type CacheConfig struct {
	ScoreTTLSeconds int `mapstructure:"score_ttl_seconds"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	AllowedMethods []string `mapstructure:"allowed_methods"`
	AllowedHeaders []string `mapstructure:"allowed_headers"`
}

func Load(configPath string) (*Config, error) {
	// 优先尝试读取 config.local.yaml（包含真实密钥，不提交到git）
	dir := filepath.Dir(configPath)
	localConfigPath := filepath.Join(dir, "config.local.yaml")

	if _, err := os.Stat(localConfigPath); err == nil {
		configPath = localConfigPath
	}

	viper.SetConfigFile(configPath)
	viper.SetConfigType("yaml")

	// 环境变量覆盖
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults() {
	viper.SetDefault("queue.analysis_queue", "trust_analysis_jobs")
	viper.SetDefault("queue.max_workers", 4)
	viper.SetDefault("rate_limit.per_minute", 3)
	viper.SetDefault("rate_limit.sweep_minutes", 10)
	viper.SetDefault("pipeline.default_timeout_seconds", 60)
	viper.SetDefault("pipeline.stage_delay_ms", 1000)
	viper.SetDefault("pipeline.fetch_enabled", true)
	viper.SetDefault("webhook.enabled", true)
	viper.SetDefault("cache.score_ttl_seconds", 900)
}
