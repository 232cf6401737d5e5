package config

import (
	"fmt"
	"strings"

	"github.com/rarebeats-player/internal/constants"
	"github.com/rarebeats-player/internal/logger"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config 应用配置结构
type Config struct {
	Server      ServerConfig      `mapstructure:"server"`
	Log         LogConfig         `mapstructure:"log"`
	Database    DatabaseConfig    `mapstructure:"database"`
	Redis       RedisConfig       `mapstructure:"redis"`
	Queue       QueueConfig       `mapstructure:"queue"`
	CORS        CORSConfig        `mapstructure:"cors"`
	Storefront  StorefrontConfig  `mapstructure:"storefront"`
	Nonce       NonceConfig       `mapstructure:"nonce"`
	Catalog     CatalogConfig     `mapstructure:"catalog"`
	WooCommerce WooCommerceConfig `mapstructure:"woocommerce"`
	Checkout    CheckoutConfig    `mapstructure:"checkout"`
	RateLimit   RateLimitConfig   `mapstructure:"rate_limit"`
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
	Driver string             `mapstructure:"driver"` // sqlite / postgres
	DSN    string             `mapstructure:"dsn"`
	Pool   DatabasePoolConfig `mapstructure:"pool"`
}

// RedisConfig Redis 配置（限流使用）
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

// StorefrontConfig 前台接口与嵌入配置
type StorefrontConfig struct {
	Namespace      string `mapstructure:"namespace"`        // REST 命名空间
	PublicURL      string `mapstructure:"public_url"`       // 对外访问地址，用于拼接 apiUrl
	AssetDir       string `mapstructure:"asset_dir"`        // 播放器构建产物目录
	AssetURLPrefix string `mapstructure:"asset_url_prefix"` // 静态资源 URL 前缀
	EmbedHeight    string `mapstructure:"embed_height"`     // 默认嵌入高度
	MountRetryMS   int    `mapstructure:"mount_retry_ms"`   // 挂载重试延迟
}

// NonceConfig 防伪令牌配置
type NonceConfig struct {
	Secret   string `mapstructure:"secret"`
	TTLHours int    `mapstructure:"ttl_hours"`
	Header   string `mapstructure:"header"`
	Required bool   `mapstructure:"required"` // 写操作是否必须携带有效令牌
}

// CatalogConfig 目录配置
type CatalogConfig struct {
	Source         string `mapstructure:"source"` // database / woocommerce
	DefaultPerPage int    `mapstructure:"default_per_page"`
	MaxPerPage     int    `mapstructure:"max_per_page"`
}

// WooCommerceConfig 外部商城配置
type WooCommerceConfig struct {
	BaseURL        string `mapstructure:"base_url"`
	ConsumerKey    string `mapstructure:"consumer_key"`
	ConsumerSecret string `mapstructure:"consumer_secret"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}

// CheckoutConfig 结账桥接配置
type CheckoutConfig struct {
	NativeCart                string `mapstructure:"native_cart"` // database / link
	CartPath                  string `mapstructure:"cart_path"`
	ClearStagingAfterCheckout bool   `mapstructure:"clear_staging_after_checkout"`
}

// RateLimitConfig 写接口限流配置
type RateLimitConfig struct {
	AddToCart RateLimitRuleConfig `mapstructure:"add_to_cart"`
	Checkout  RateLimitRuleConfig `mapstructure:"checkout"`
}

// RateLimitRuleConfig 单条限流规则
type RateLimitRuleConfig struct {
	WindowSeconds int `mapstructure:"window_seconds"`
	MaxRequests   int `mapstructure:"max_requests"`
}

// Load 从 config.yml 加载配置（.env 优先注入环境变量）
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		logger.Debugw("dotenv_not_loaded", "error", err)
	}

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./")
	viper.AddConfigPath("../")
	viper.AddConfigPath("./etc")

	setDefaults()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_")) // storefront.namespace -> STOREFRONT_NAMESPACE

	if err := viper.ReadInConfig(); err != nil {
		logger.Warnw("config_file_read_failed",
			"error", err,
			"fallback", "env_or_defaults",
		)
	} else {
		logger.Infow("config_file_loaded", "file", viper.ConfigFileUsed())
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		logger.Errorw("config_unmarshal_failed", "error", err)
		panic(fmt.Errorf("配置解析失败: %w", err))
	}
	cfg.Storefront.Namespace = NormalizeNamespace(cfg.Storefront.Namespace)

	return &cfg
}

func setDefaults() {
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", "8080")
	viper.SetDefault("server.mode", "debug")
	viper.SetDefault("log.dir", "")
	viper.SetDefault("log.filename", "app.log")
	viper.SetDefault("log.max_size_mb", 100)
	viper.SetDefault("log.max_backups", 7)
	viper.SetDefault("log.max_age_days", 30)
	viper.SetDefault("log.compress", true)
	viper.SetDefault("database.driver", "sqlite")
	viper.SetDefault("database.dsn", "./db/rarebeats.db")
	viper.SetDefault("database.pool.max_open_conns", 1)
	viper.SetDefault("database.pool.max_idle_conns", 1)
	viper.SetDefault("database.pool.conn_max_lifetime_seconds", 0)
	viper.SetDefault("database.pool.conn_max_idle_time_seconds", 0)
	viper.SetDefault("redis.enabled", false)
	viper.SetDefault("redis.host", "127.0.0.1")
	viper.SetDefault("redis.port", 6379)
	viper.SetDefault("redis.password", "")
	viper.SetDefault("redis.db", 0)
	viper.SetDefault("redis.prefix", "rb")
	viper.SetDefault("queue.enabled", false)
	viper.SetDefault("queue.host", "127.0.0.1")
	viper.SetDefault("queue.port", 6379)
	viper.SetDefault("queue.password", "")
	viper.SetDefault("queue.db", 1)
	viper.SetDefault("queue.concurrency", 5)
	viper.SetDefault("queue.queues", map[string]int{
		constants.QueueDefault: 1,
	})
	viper.SetDefault("cors.allowed_origins", []string{"*"})
	viper.SetDefault("cors.allowed_methods", []string{"GET", "POST", "DELETE", "OPTIONS"})
	viper.SetDefault("cors.allowed_headers", []string{
		"Content-Type",
		"Content-Length",
		"Accept-Encoding",
		"Cache-Control",
		"X-Requested-With",
		"X-Request-ID",
		constants.DefaultNonceHeader,
	})
	viper.SetDefault("cors.allow_credentials", false)
	viper.SetDefault("cors.max_age", 600)
	viper.SetDefault("storefront.namespace", constants.DefaultAPINamespace)
	viper.SetDefault("storefront.public_url", "http://localhost:8080")
	viper.SetDefault("storefront.asset_dir", "./player")
	viper.SetDefault("storefront.asset_url_prefix", "/player")
	viper.SetDefault("storefront.embed_height", constants.DefaultEmbedHeight)
	viper.SetDefault("storefront.mount_retry_ms", constants.DefaultMountRetryMillis)
	viper.SetDefault("nonce.secret", "change-me-in-production")
	viper.SetDefault("nonce.ttl_hours", 12)
	viper.SetDefault("nonce.header", constants.DefaultNonceHeader)
	viper.SetDefault("nonce.required", false)
	viper.SetDefault("catalog.source", constants.CatalogSourceDatabase)
	viper.SetDefault("catalog.default_per_page", constants.DefaultPerPage)
	viper.SetDefault("catalog.max_per_page", constants.DefaultMaxPerPage)
	viper.SetDefault("woocommerce.base_url", "")
	viper.SetDefault("woocommerce.consumer_key", "")
	viper.SetDefault("woocommerce.consumer_secret", "")
	viper.SetDefault("woocommerce.timeout_seconds", 30)
	viper.SetDefault("checkout.native_cart", constants.NativeCartDatabase)
	viper.SetDefault("checkout.cart_path", "/cart/")
	viper.SetDefault("checkout.clear_staging_after_checkout", false)
	viper.SetDefault("rate_limit.add_to_cart.window_seconds", 60)
	viper.SetDefault("rate_limit.add_to_cart.max_requests", 60)
	viper.SetDefault("rate_limit.checkout.window_seconds", 60)
	viper.SetDefault("rate_limit.checkout.max_requests", 10)
}

// NormalizeNamespace 统一命名空间格式：以 / 开头且无尾部 /
func NormalizeNamespace(namespace string) string {
	trimmed := strings.Trim(strings.TrimSpace(namespace), "/")
	if trimmed == "" {
		trimmed = strings.Trim(constants.DefaultAPINamespace, "/")
	}
	return "/" + trimmed
}

// APIURL 返回对外暴露的接口基础地址
func (c StorefrontConfig) APIURL() string {
	base := strings.TrimRight(strings.TrimSpace(c.PublicURL), "/")
	return base + NormalizeNamespace(c.Namespace)
}

// CartURL 返回原生购物车页面地址
func (c Config) CartURL() string {
	base := strings.TrimRight(strings.TrimSpace(c.WooCommerce.BaseURL), "/")
	if base == "" {
		base = strings.TrimRight(strings.TrimSpace(c.Storefront.PublicURL), "/")
	}
	path := strings.TrimSpace(c.Checkout.CartPath)
	if path == "" {
		path = "/cart/"
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return base + path
}
