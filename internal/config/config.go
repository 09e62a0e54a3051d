package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/hayuwidyas/commerce-api/internal/logger"

	"github.com/spf13/viper"
)

// Config 应用配置结构
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Log      LogConfig      `mapstructure:"log"`
	Database DatabaseConfig `mapstructure:"database"`
	Woo      WooConfig      `mapstructure:"woo"`
	Catalog  CatalogConfig  `mapstructure:"catalog"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Queue    QueueConfig    `mapstructure:"queue"`
	CORS     CORSConfig     `mapstructure:"cors"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // debug / release
}

// LogConfig 日志配置
type LogConfig struct {
	Dir        string `mapstructure:"dir"`
	Filename   string `mapstructure:"filename"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
	Compress   bool   `mapstructure:"compress"`
}

// ToLoggerOptions 转换为 logger 配置
func (c LogConfig) ToLoggerOptions() logger.Options {
	return logger.Options{
		Dir:        c.Dir,
		Filename:   c.Filename,
		MaxSizeMB:  c.MaxSizeMB,
		MaxBackups: c.MaxBackups,
		MaxAgeDays: c.MaxAgeDays,
		Compress:   c.Compress,
	}
}

// DatabasePoolConfig 数据库连接池配置
type DatabasePoolConfig struct {
	MaxOpenConns           int `mapstructure:"max_open_conns"`
	MaxIdleConns           int `mapstructure:"max_idle_conns"`
	ConnMaxLifetimeSeconds int `mapstructure:"conn_max_lifetime_seconds"`
	ConnMaxIdleTimeSeconds int `mapstructure:"conn_max_idle_time_seconds"`
}

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	Driver string             `mapstructure:"driver"` // 数据库驱动（sqlite/postgres）
	DSN    string             `mapstructure:"dsn"`    // 数据库连接串
	Pool   DatabasePoolConfig `mapstructure:"pool"`
}

// WooConfig 远端目录（WooCommerce REST API）配置
type WooConfig struct {
	BaseURL        string `mapstructure:"base_url"`        // 如 https://hayuwidyas.com/wp-json/wc/v3
	ConsumerKey    string `mapstructure:"consumer_key"`    // API key
	ConsumerSecret string `mapstructure:"consumer_secret"` // API secret
	TimeoutSeconds int    `mapstructure:"timeout_seconds"` // 单次请求超时
}

// Timeout 请求超时时长
func (c WooConfig) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 15 * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// CatalogConfig 商品目录缓存与刷新配置
type CatalogConfig struct {
	EvictionWindowMinutes   int `mapstructure:"eviction_window_minutes"`    // 缓存行最大存活时间
	DefaultPageSize         int `mapstructure:"default_page_size"`          // 查询默认分页大小
	CategoryCacheTTLSeconds int `mapstructure:"category_cache_ttl_seconds"` // 分类列表 Redis 缓存时长
	RefreshIntervalMinutes  int `mapstructure:"refresh_interval_minutes"`   // 定时预热刷新间隔（0 关闭）
}

// EvictionWindow 缓存老化窗口
func (c CatalogConfig) EvictionWindow() time.Duration {
	if c.EvictionWindowMinutes <= 0 {
		return 30 * time.Minute
	}
	return time.Duration(c.EvictionWindowMinutes) * time.Minute
}

// CategoryCacheTTL 分类缓存时长
func (c CatalogConfig) CategoryCacheTTL() time.Duration {
	if c.CategoryCacheTTLSeconds <= 0 {
		return 10 * time.Minute
	}
	return time.Duration(c.CategoryCacheTTLSeconds) * time.Second
}

// AuthConfig 用户身份配置：外部认证系统签发 JWT，本服务只做校验
type AuthConfig struct {
	UserJWTSecret string `mapstructure:"user_jwt_secret"`
}

// RedisConfig Redis 配置
type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Prefix   string `mapstructure:"prefix"`
}

// QueueConfig 异步队列配置
type QueueConfig struct {
	Enabled     bool           `mapstructure:"enabled"`
	Host        string         `mapstructure:"host"`
	Port        int            `mapstructure:"port"`
	Password    string         `mapstructure:"password"`
	DB          int            `mapstructure:"db"`
	Concurrency int            `mapstructure:"concurrency"`
	Queues      map[string]int `mapstructure:"queues"`
}

// CORSConfig 跨域配置
type CORSConfig struct {
	AllowedOrigins   []string `mapstructure:"allowed_origins"`
	AllowedMethods   []string `mapstructure:"allowed_methods"`
	AllowedHeaders   []string `mapstructure:"allowed_headers"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
	MaxAge           int      `mapstructure:"max_age"`
}

// Load 从 config.yml 加载配置
func Load() *Config {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("../")   // 如果从 cmd/server 运行
	viper.AddConfigPath("./etc") // etc 文件夹

	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", "8080")
	viper.SetDefault("server.mode", "debug")
	viper.SetDefault("log.dir", "")
	viper.SetDefault("log.filename", "commerce-api.log")
	viper.SetDefault("log.max_size_mb", 100)
	viper.SetDefault("log.max_backups", 7)
	viper.SetDefault("log.max_age_days", 30)
	viper.SetDefault("log.compress", true)
	viper.SetDefault("database.driver", "sqlite")
	viper.SetDefault("database.dsn", "./db/commerce.db")
	viper.SetDefault("database.pool.max_open_conns", 1)
	viper.SetDefault("database.pool.max_idle_conns", 1)
	viper.SetDefault("database.pool.conn_max_lifetime_seconds", 0)
	viper.SetDefault("database.pool.conn_max_idle_time_seconds", 0)
	viper.SetDefault("woo.base_url", "https://hayuwidyas.com/wp-json/wc/v3")
	viper.SetDefault("woo.consumer_key", "")
	viper.SetDefault("woo.consumer_secret", "")
	viper.SetDefault("woo.timeout_seconds", 15)
	viper.SetDefault("catalog.eviction_window_minutes", 30)
	viper.SetDefault("catalog.default_page_size", 20)
	viper.SetDefault("catalog.category_cache_ttl_seconds", 600)
	viper.SetDefault("catalog.refresh_interval_minutes", 0)
	viper.SetDefault("auth.user_jwt_secret", "change-me-in-production")
	viper.SetDefault("redis.enabled", false)
	viper.SetDefault("redis.host", "127.0.0.1")
	viper.SetDefault("redis.port", 6379)
	viper.SetDefault("redis.password", "")
	viper.SetDefault("redis.db", 0)
	viper.SetDefault("redis.prefix", "hw")
	viper.SetDefault("queue.enabled", false)
	viper.SetDefault("queue.host", "127.0.0.1")
	viper.SetDefault("queue.port", 6379)
	viper.SetDefault("queue.password", "")
	viper.SetDefault("queue.db", 1)
	viper.SetDefault("queue.concurrency", 10)
	viper.SetDefault("cors.allowed_origins", []string{"*"})
	viper.SetDefault("cors.allowed_methods", []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"})
	viper.SetDefault("cors.allowed_headers", []string{"Origin", "Content-Type", "Authorization", "X-Device-ID", "X-Request-ID"})
	viper.SetDefault("cors.allow_credentials", false)
	viper.SetDefault("cors.max_age", 3600)

	// 环境变量覆盖，如 HW_WOO_CONSUMER_KEY
	viper.SetEnvPrefix("HW")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		fmt.Printf("config file not found, using defaults and env: %v\n", err)
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		panic(fmt.Sprintf("unable to decode config: %v", err))
	}
	return &cfg
}
