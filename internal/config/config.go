package config

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/spf13/viper"
	"github.com/yourusername/quiz-pwa/internal/service/quizmanager"
)

// Драйверы хранилища ключей
const (
	StorageMemory   = "memory"
	StorageRedis    = "redis"
	StoragePostgres = "postgres"
)

// Config хранит все настройки приложения
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Storage   StorageConfig   `mapstructure:"storage"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Quiz      QuizConfig      `mapstructure:"quiz"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	CORS      CORSConfig      `mapstructure:"cors"`
}

// ServerConfig содержит настройки HTTP сервера
type ServerConfig struct {
	Port         string `mapstructure:"port"`
	ReadTimeout  int    `mapstructure:"read_timeout"`  // секунды
	WriteTimeout int    `mapstructure:"write_timeout"` // секунды
}

// StorageConfig выбирает бэкенд для истории и списка недавних вопросов
type StorageConfig struct {
	// Driver: "memory", "redis" или "postgres"
	Driver string `mapstructure:"driver"`
	// KeyPrefix добавляется ко всем ключам перед пространством клиента
	KeyPrefix string `mapstructure:"key_prefix"`
}

// DatabaseConfig содержит настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Host           string `mapstructure:"host"`
	Port           string `mapstructure:"port"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	DBName         string `mapstructure:"dbname"`
	SSLMode        string `mapstructure:"sslmode"`
	MigrationsPath string `mapstructure:"migrations_path"`
}

// RedisConfig содержит унифицированные настройки подключения к Redis
// Поддерживает режимы: single, sentinel, cluster
type RedisConfig struct {
	// Mode: "single", "sentinel" или "cluster". По умолчанию "single".
	Mode string `mapstructure:"mode"`

	// Addrs: список адресов (хост:порт). Для 'single' используется первый.
	Addrs []string `mapstructure:"addrs"`

	// Addr: адрес для 'single', если Addrs пуст
	Addr string `mapstructure:"addr"`

	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`

	// MasterName: только для режима "sentinel"
	MasterName string `mapstructure:"master_name"`

	MaxRetries      int `mapstructure:"max_retries"`
	MinRetryBackoff int `mapstructure:"min_retry_backoff"` // мс
	MaxRetryBackoff int `mapstructure:"max_retry_backoff"` // мс
}

// QuizConfig содержит настройки каталога и выбора вопросов
type QuizConfig struct {
	// QuestionsPath: путь к JSON с вопросами; пусто — встроенный набор
	QuestionsPath string `mapstructure:"questions_path"`
	Strategy      string `mapstructure:"strategy"`
	RecentLimit   int    `mapstructure:"recent_limit"`
	// Seed: 0 — от текущего времени
	Seed int64 `mapstructure:"seed"`
}

// RateLimitConfig ограничивает частоту записи ответов (работает только с Redis)
type RateLimitConfig struct {
	Enabled     bool `mapstructure:"enabled"`
	MaxRequests int  `mapstructure:"max_requests"`
	WindowSec   int  `mapstructure:"window_sec"`
}

// CORSConfig содержит разрешённые источники для PWA
type CORSConfig struct {
	AllowOrigins []string `mapstructure:"allow_origins"`
}

// PostgresConnectionString формирует строку подключения к PostgreSQL
func (d *DatabaseConfig) PostgresConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

// IsConfigured сообщает, задан ли адрес Redis
func (r *RedisConfig) IsConfigured() bool {
	return len(r.Addrs) > 0 || r.Addr != ""
}

// QuizManagerConfig переводит настройки в конфигурацию селектора
func (q *QuizConfig) QuizManagerConfig() *quizmanager.Config {
	return &quizmanager.Config{
		Strategy:    q.Strategy,
		RecentLimit: q.RecentLimit,
	}
}

func setDefaults(vip *viper.Viper) {
	vip.SetDefault("server.port", "8080")
	vip.SetDefault("server.read_timeout", 10)
	vip.SetDefault("server.write_timeout", 10)

	vip.SetDefault("storage.driver", StorageMemory)
	vip.SetDefault("storage.key_prefix", "quiz:")

	vip.SetDefault("database.host", "localhost")
	vip.SetDefault("database.port", "5432")
	vip.SetDefault("database.sslmode", "disable")
	vip.SetDefault("database.migrations_path", "migrations")

	vip.SetDefault("redis.mode", "single")

	vip.SetDefault("quiz.questions_path", "")
	vip.SetDefault("quiz.strategy", quizmanager.StrategyWeighted)
	vip.SetDefault("quiz.recent_limit", 5)
	vip.SetDefault("quiz.seed", 0)

	vip.SetDefault("rate_limit.enabled", true)
	vip.SetDefault("rate_limit.max_requests", 120)
	vip.SetDefault("rate_limit.window_sec", 60)

	vip.SetDefault("cors.allow_origins", []string{"http://localhost:5173"})
}

func bindEnv(vip *viper.Viper) {
	vip.BindEnv("server.port", "SERVER_PORT")

	vip.BindEnv("storage.driver", "STORAGE_DRIVER")
	vip.BindEnv("storage.key_prefix", "STORAGE_KEY_PREFIX")

	vip.BindEnv("database.host", "DATABASE_HOST")
	vip.BindEnv("database.port", "DATABASE_PORT")
	vip.BindEnv("database.user", "DATABASE_USER")
	vip.BindEnv("database.password", "DATABASE_PASSWORD")
	vip.BindEnv("database.dbname", "DATABASE_DBNAME")
	vip.BindEnv("database.sslmode", "DATABASE_SSLMODE")
	vip.BindEnv("database.migrations_path", "DATABASE_MIGRATIONS_PATH")

	vip.BindEnv("redis.mode", "REDIS_MODE")
	vip.BindEnv("redis.addrs", "REDIS_ADDRS")
	vip.BindEnv("redis.addr", "REDIS_ADDR")
	vip.BindEnv("redis.password", "REDIS_PASSWORD")
	vip.BindEnv("redis.db", "REDIS_DB")
	vip.BindEnv("redis.master_name", "REDIS_MASTER_NAME")

	vip.BindEnv("quiz.questions_path", "QUIZ_QUESTIONS_PATH")
	vip.BindEnv("quiz.strategy", "QUIZ_STRATEGY")
	vip.BindEnv("quiz.recent_limit", "QUIZ_RECENT_LIMIT")
	vip.BindEnv("quiz.seed", "QUIZ_SEED")

	vip.BindEnv("rate_limit.enabled", "RATE_LIMIT_ENABLED")
	vip.BindEnv("cors.allow_origins", "CORS_ALLOW_ORIGINS")
}

// Load загружает конфигурацию из файла и переменных окружения.
// Отсутствие файла не ошибка: остаются умолчания и env.
func Load(configPath string) (*Config, error) {
	vip := viper.New()

	setDefaults(vip)
	bindEnv(vip)

	if configPath != "" {
		vip.SetConfigFile(configPath)
		if err := vip.ReadInConfig(); err != nil {
			if _, statErr := os.Stat(configPath); os.IsNotExist(statErr) {
				log.Printf("Файл конфигурации '%s' не найден, используются переменные окружения/умолчания.", configPath)
			} else {
				return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
			}
		}
	}

	var cfg Config
	if err := vip.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Списки из env приходят одной строкой через запятую
	cfg.Redis.Addrs = splitList(cfg.Redis.Addrs)
	cfg.CORS.AllowOrigins = splitList(cfg.CORS.AllowOrigins)

	if os.Getenv("GIN_MODE") != "release" {
		log.Printf("--- Загруженные значения конфигурации ---")
		log.Printf("Server Port: %s", cfg.Server.Port)
		log.Printf("Storage Driver: %s (prefix %q)", cfg.Storage.Driver, cfg.Storage.KeyPrefix)
		log.Printf("Database Host: %s, Name: %s", cfg.Database.Host, cfg.Database.DBName)
		log.Printf("Redis Mode: %s, Addr: %s, Addrs: %v", cfg.Redis.Mode, cfg.Redis.Addr, cfg.Redis.Addrs)
		log.Printf("Quiz Strategy: %s, Recent Limit: %d", cfg.Quiz.Strategy, cfg.Quiz.RecentLimit)
		log.Printf("Rate Limit Enabled: %t", cfg.RateLimit.Enabled)
		log.Printf("-----------------------------------------")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate проверяет согласованность настроек
func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case StorageMemory:
	case StorageRedis:
		if !c.Redis.IsConfigured() {
			return fmt.Errorf("redis storage requires redis.addr or redis.addrs (check REDIS_ADDR env var)")
		}
	case StoragePostgres:
		if c.Database.Host == "" || c.Database.DBName == "" || c.Database.User == "" {
			return fmt.Errorf("database configuration (host, dbname, user) is incomplete in config (check DATABASE_HOST, DATABASE_DBNAME, DATABASE_USER env vars)")
		}
	default:
		return fmt.Errorf("unsupported storage driver: %q", c.Storage.Driver)
	}

	if err := c.Quiz.QuizManagerConfig().Validate(); err != nil {
		return fmt.Errorf("invalid quiz config: %w", err)
	}
	if c.RateLimit.Enabled && (c.RateLimit.MaxRequests <= 0 || c.RateLimit.WindowSec <= 0) {
		return fmt.Errorf("rate_limit.max_requests and rate_limit.window_sec must be positive")
	}
	return nil
}

func splitList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
