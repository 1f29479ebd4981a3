// Package config загружает настройки агента из переменных окружения, флагов и JSON-файла
// с тем же приоритетом, что и у сервера.
package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	serverconfig "github.com/levinOo/fleet-stats-collector/internal/config"
)

const (
	defaultAddr            = "localhost:8080"
	defaultCollectInterval = 300
	defaultLogLevel        = "info"

	MinCollectInterval = 2
	MaxCollectInterval = 86400
	MaxExpiration      = 999999999
)

// ConfigStruct описывает JSON-файл конфигурации агента.
type ConfigStruct struct {
	Addr            string `json:"address"`
	Key             string `json:"key"`
	Machine         string `json:"machine"`
	CollectInterval int    `json:"collect_interval"`
	Expiration      int    `json:"expiration"`
	LogLevel        string `json:"log_level"`
}

// Config содержит параметры агента.
type Config struct {
	Addr    string `env:"ADDRESS"`
	Key     string `env:"KEY"`
	Machine string `env:"MACHINE"`

	// CollectInterval — пауза между замерами в секундах.
	CollectInterval int `env:"COLLECT_INTERVAL"`

	// Expiration — время работы агента в секундах, 0 означает без ограничения.
	Expiration int `env:"EXPIRATION"`

	ConfigFilePath string `env:"CONFIG"`
	LogLevel       string `env:"LOG_LEVEL"`

	// Shutdown задаётся только флагом: агент отправляет /close и завершается.
	Shutdown bool
}

// CollectCycle возвращает длительность цикла сбора.
func (c Config) CollectCycle() time.Duration {
	return time.Duration(c.CollectInterval) * time.Second
}

// Lifetime возвращает время работы агента, 0 означает без ограничения.
func (c Config) Lifetime() time.Duration {
	return time.Duration(c.Expiration) * time.Second
}

// Validate проверяет диапазоны значений.
func (c Config) Validate() error {
	var errs []error
	if c.Addr == "" {
		errs = append(errs, errors.New("address is empty"))
	}
	if c.Shutdown {
		return errors.Join(errs...)
	}

	if c.Key == "" {
		errs = append(errs, errors.New("auth key is empty"))
	}
	if c.Machine == "" {
		errs = append(errs, errors.New("machine name is empty"))
	}
	if c.CollectInterval < MinCollectInterval || c.CollectInterval > MaxCollectInterval {
		errs = append(errs, fmt.Errorf("collect interval must be in %d..%d seconds, got %d",
			MinCollectInterval, MaxCollectInterval, c.CollectInterval))
	}
	if c.Expiration < 0 || c.Expiration > MaxExpiration {
		errs = append(errs, fmt.Errorf("expiration must be in 0..%d seconds, got %d", MaxExpiration, c.Expiration))
	}
	return errors.Join(errs...)
}

// GetAgentConfig загружает конфигурацию из аргументов и окружения процесса.
//
// Поддерживаемые флаги:
//
//	-a: адрес сервера (по умолчанию "localhost:8080")
//	-k: ключ аутентификации
//	-m: имя машины (по умолчанию имя хоста)
//	-t: интервал сбора в секундах, 2..86400 (по умолчанию 300)
//	-x: время работы в секундах, 0 без ограничения
//	-config: путь к JSON-файлу конфигурации
//	-l: уровень логирования
//	-shutdown: запросить остановку сервера и выйти
func GetAgentConfig() (Config, error) {
	return Parse(os.Args[1:], env.ToMap(os.Environ()))
}

// Parse разбирает аргументы и переменные окружения, переданные явно.
func Parse(args []string, environ map[string]string) (Config, error) {
	hostname, _ := os.Hostname()

	fs := flag.NewFlagSet("agent", flag.ContinueOnError)

	addr := fs.String("a", defaultAddr, "collector address")
	key := fs.String("k", "", "auth key")
	machine := fs.String("m", hostname, "machine name")
	collectInterval := fs.Int("t", defaultCollectInterval, "collect interval in seconds")
	expiration := fs.Int("x", 0, "expiration in seconds, 0 means never")
	configPath := fs.String("config", "", "path to config file")
	logLevel := fs.String("l", defaultLogLevel, "log level")
	shutdown := fs.Bool("shutdown", false, "request server shutdown and exit")

	if err := fs.Parse(args); err != nil {
		return Config{}, fmt.Errorf("parse flags: %w", err)
	}
	setFlags := serverconfig.VisitedFlags(fs)

	var fromEnv Config
	if err := env.ParseWithOptions(&fromEnv, env.Options{Environment: environ}); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	inEnv := func(name string) bool { return environ[name] != "" }

	path := serverconfig.Pick(inEnv("CONFIG"), fromEnv.ConfigFilePath, setFlags["config"], *configPath, "", "")
	file := ConfigStruct{}
	if err := serverconfig.LoadFile(path, &file); err != nil {
		return Config{}, err
	}

	cfg := Config{
		Addr:            serverconfig.Pick(inEnv("ADDRESS"), fromEnv.Addr, setFlags["a"], *addr, file.Addr, defaultAddr),
		Key:             serverconfig.Pick(inEnv("KEY"), fromEnv.Key, setFlags["k"], *key, file.Key, ""),
		Machine:         serverconfig.Pick(inEnv("MACHINE"), fromEnv.Machine, setFlags["m"], *machine, file.Machine, hostname),
		CollectInterval: serverconfig.Pick(inEnv("COLLECT_INTERVAL"), fromEnv.CollectInterval, setFlags["t"], *collectInterval, file.CollectInterval, defaultCollectInterval),
		Expiration:      serverconfig.Pick(inEnv("EXPIRATION"), fromEnv.Expiration, setFlags["x"], *expiration, file.Expiration, 0),
		ConfigFilePath:  path,
		LogLevel:        serverconfig.Pick(inEnv("LOG_LEVEL"), fromEnv.LogLevel, setFlags["l"], *logLevel, file.LogLevel, defaultLogLevel),
		Shutdown:        *shutdown,
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
