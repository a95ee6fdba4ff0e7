package config

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env        string           `yaml:"env" env:"APP_ENV" env-default:"development"` // environment
	HTTPServer HTTPServerConfig `yaml:"http_server"`
	Database   DatabaseConfig   `yaml:"database"`
	Downloads  DownloadsConfig  `yaml:"downloads"`
	Migrations MigrationsConfig `yaml:"migrations"`
}

// HTTPServerConfig структура http сервера
type HTTPServerConfig struct {
	Port        int           `yaml:"port" env:"PORT" env-default:"8000"`
	Timeout     time.Duration `yaml:"timeout" env-default:"4s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

// Address возвращает адрес прослушивания для http.Server.
func (c HTTPServerConfig) Address() string {
	return fmt.Sprintf(":%d", c.Port)
}

// DatabaseConfig структура по работе с БД.
// Пустой URL означает, что хранилище не сконфигурировано.
type DatabaseConfig struct {
	URL string `yaml:"-" env:"DATABASE_URL"`
}

// DownloadsConfig — корень, внутри которого разрешено отдавать файлы пакетов.
type DownloadsConfig struct {
	Root string `yaml:"root" env:"DOWNLOADS_ROOT" env-default:"."`
}

type MigrationsConfig struct {
	Path string `yaml:"path" env-default:"./migrations"`
}

// MustLoad загружает конфигурацию; без файла конфигурации читает только окружение.
func MustLoad() *Config {
	configPath := fetchConfigPath()
	if configPath == "" {
		var cfg Config
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			log.Fatalf("can't read config from environment: %v", err)
		}
		return &cfg
	}
	return MustLoadByPath(configPath)
}

func fetchConfigPath() string {
	var path string

	flag.StringVar(&path, "config", "", "path to config file")
	flag.Parse()

	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}
	return path
}

func MustLoadByPath(configPath string) *Config {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file not found: " + configPath)
	}

	var cfg Config
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("can't read config file %s", configPath)
	}

	return &cfg
}
