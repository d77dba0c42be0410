package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DriverFile   = "file"
	DriverBadger = "badger"
	DriverRedis  = "redis"
	DriverMySQL  = "mysql"

	envPrefix = "BLOG_"
)

type Config struct {
	Server  Server  `yaml:"server"`
	Log     Log     `yaml:"log"`
	Storage Storage `yaml:"storage"`
	Kafka   Kafka   `yaml:"kafka"`
	Mail    Mail    `yaml:"mail"`
}

type Server struct {
	Addr string `yaml:"addr" validate:"required"`
	// StaticDir 前端静态文件目录，空则不挂载
	StaticDir string `yaml:"static_dir"`
}

type Log struct {
	Level string `yaml:"level" validate:"oneof=debug info warn error"`
}

type Storage struct {
	Driver string `yaml:"driver" validate:"oneof=file badger redis mysql"`
	Dir    string `yaml:"dir" validate:"required_if=Driver file"`
	Badger Badger `yaml:"badger"`
	Redis  Redis  `yaml:"redis"`
	MySQL  MySQL  `yaml:"mysql"`
}

type Badger struct {
	Path       string `yaml:"path"`
	InMemory   bool   `yaml:"in_memory"`
	SyncWrites bool   `yaml:"sync_writes"`
}

type Redis struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db" validate:"gte=0"`
	Prefix   string `yaml:"prefix"`
}

type MySQL struct {
	DSN string `yaml:"dsn"`
}

// Kafka Brokers 为空表示不投递事件
type Kafka struct {
	Brokers []string `yaml:"brokers"`
	Topic   string   `yaml:"topic" validate:"required_with=Brokers"`
}

// Mail Host 为空表示不发审核邮件
type Mail struct {
	Host      string `yaml:"host"`
	Port      int    `yaml:"port" validate:"required_with=Host"`
	Username  string `yaml:"username"`
	Password  string `yaml:"password"`
	From      string `yaml:"from" validate:"required_with=Host"`
	Moderator string `yaml:"moderator" validate:"required_with=Host,omitempty,email"`
}

func Default() Config {
	return Config{
		Server:  Server{Addr: ":3000", StaticDir: "public"},
		Log:     Log{Level: "info"},
		Storage: Storage{Driver: DriverFile, Dir: "data", Badger: Badger{Path: "data/badger"}},
		Kafka:   Kafka{Topic: "blog-events"},
		Mail:    Mail{Port: 587},
	}
}

// Load 默认值 -> YAML 文件 -> .env -> BLOG_* 环境变量，最后统一校验。path 为空时跳过文件
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

var validate = validator.New()

func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	switch c.Storage.Driver {
	case DriverBadger:
		if c.Storage.Badger.Path == "" && !c.Storage.Badger.InMemory {
			return errors.New("invalid config: storage.badger.path is required unless in_memory")
		}
	case DriverRedis:
		if c.Storage.Redis.Addr == "" {
			return errors.New("invalid config: storage.redis.addr is required")
		}
	case DriverMySQL:
		if c.Storage.MySQL.DSN == "" {
			return errors.New("invalid config: storage.mysql.dsn is required")
		}
	}
	return nil
}

func (c *Config) applyEnv() error {
	str := func(name string, dst *string) {
		if v, ok := os.LookupEnv(envPrefix + name); ok {
			*dst = v
		}
	}
	num := func(name string, dst *int) error {
		v, ok := os.LookupEnv(envPrefix + name)
		if !ok {
			return nil
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("env %s%s: %w", envPrefix, name, err)
		}
		*dst = n
		return nil
	}
	flag := func(name string, dst *bool) error {
		v, ok := os.LookupEnv(envPrefix + name)
		if !ok {
			return nil
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("env %s%s: %w", envPrefix, name, err)
		}
		*dst = b
		return nil
	}

	str("SERVER_ADDR", &c.Server.Addr)
	str("STATIC_DIR", &c.Server.StaticDir)
	str("LOG_LEVEL", &c.Log.Level)

	str("STORAGE_DRIVER", &c.Storage.Driver)
	str("DATA_DIR", &c.Storage.Dir)
	str("BADGER_PATH", &c.Storage.Badger.Path)
	str("REDIS_ADDR", &c.Storage.Redis.Addr)
	str("REDIS_PASSWORD", &c.Storage.Redis.Password)
	str("REDIS_PREFIX", &c.Storage.Redis.Prefix)
	str("MYSQL_DSN", &c.Storage.MySQL.DSN)

	if v, ok := os.LookupEnv(envPrefix + "KAFKA_BROKERS"); ok {
		c.Kafka.Brokers = splitList(v)
	}
	str("KAFKA_TOPIC", &c.Kafka.Topic)

	str("SMTP_HOST", &c.Mail.Host)
	str("SMTP_USERNAME", &c.Mail.Username)
	str("SMTP_PASSWORD", &c.Mail.Password)
	str("SMTP_FROM", &c.Mail.From)
	str("MODERATOR_EMAIL", &c.Mail.Moderator)

	return errors.Join(
		flag("BADGER_IN_MEMORY", &c.Storage.Badger.InMemory),
		flag("BADGER_SYNC_WRITES", &c.Storage.Badger.SyncWrites),
		num("REDIS_DB", &c.Storage.Redis.DB),
		num("SMTP_PORT", &c.Mail.Port),
	)
}

func splitList(v string) []string {
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// SlogLevel 校验过后不会出现未知值
func (l Log) SlogLevel() slog.Level {
	switch l.Level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
