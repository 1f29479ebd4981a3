// Package config предоставляет функциональность для управления конфигурацией сервера.
// Настройки читаются из переменных окружения, флагов командной строки и JSON-файла.
// Приоритет: переменная окружения, затем явно заданный флаг, затем файл, затем значение по умолчанию.
package config

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/levinOo/fleet-stats-collector/internal/models"
)

const (
	defaultAddr          = "localhost:8080"
	defaultFlushInterval = 5
	defaultCycleTimeout  = 30
	defaultLogLevel      = "info"
)

// ConfigStruct описывает JSON-файл конфигурации.
type ConfigStruct struct {
	Addr          string `json:"address"`
	FlushInterval int    `json:"flush_interval"`
	CycleTimeout  int    `json:"cycle_timeout"`
	AddrDB        string `json:"database_dsn"`
	AuditFile     string `json:"audit_file"`
	AuditURL      string `json:"audit_url"`
	LogLevel      string `json:"log_level"`
	Credentials   string `json:"credentials"`
}

// Config содержит все параметры конфигурации сервера сбора статистики.
type Config struct {
	// Addr задает адрес и порт HTTP-сервера (например, "localhost:8080").
	Addr string `env:"ADDRESS"`

	// FlushInterval — длительность цикла сервера в секундах: как часто очередь
	// сбрасывается в хранилище и перечитываются учётные данные.
	FlushInterval int `env:"FLUSH_INTERVAL"`

	// CycleTimeout — предельное время записи партии и обновления учётных данных
	// на одном цикле, в секундах.
	CycleTimeout int `env:"CYCLE_TIMEOUT"`

	// AddrDB содержит строку подключения к PostgreSQL в формате URL.
	// Если не указано, используется хранилище в памяти.
	AddrDB string `env:"DATABASE_DSN"`

	ConfigFilePath string `env:"CONFIG"`

	// AuditFile указывает путь к файлу для записи аудит-событий.
	AuditFile string `env:"AUDIT_FILE"`

	// AuditURL содержит URL для отправки аудит-событий на внешний сервис.
	AuditURL string `env:"AUDIT_URL"`

	LogLevel string `env:"LOG_LEVEL"`

	// Credentials — список "машина:ключ" через запятую для хранилища в памяти.
	Credentials string `env:"CREDENTIALS"`
}

// FlushCycle возвращает длительность цикла сервера.
func (c Config) FlushCycle() time.Duration {
	return time.Duration(c.FlushInterval) * time.Second
}

// CycleDeadline возвращает предельное время ввода-вывода одного цикла.
func (c Config) CycleDeadline() time.Duration {
	return time.Duration(c.CycleTimeout) * time.Second
}

// ParseCredentials разбирает поле Credentials.
func (c Config) ParseCredentials() ([]models.Credential, error) {
	if strings.TrimSpace(c.Credentials) == "" {
		return nil, nil
	}

	var creds []models.Credential
	for _, pair := range strings.Split(c.Credentials, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		machine, key, ok := strings.Cut(pair, ":")
		if !ok || machine == "" || key == "" {
			return nil, fmt.Errorf("invalid credential %q: expected machine:key", pair)
		}
		creds = append(creds, models.Credential{Machine: machine, Key: key})
	}
	return creds, nil
}

// Validate проверяет значения, без которых сервер не может работать.
func (c Config) Validate() error {
	var errs []error
	if c.Addr == "" {
		errs = append(errs, errors.New("address is empty"))
	}
	if c.FlushInterval < 1 {
		errs = append(errs, fmt.Errorf("flush interval must be at least 1 second, got %d", c.FlushInterval))
	}
	if c.CycleTimeout < 1 {
		errs = append(errs, fmt.Errorf("cycle timeout must be at least 1 second, got %d", c.CycleTimeout))
	}
	if _, err := c.ParseCredentials(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// GetConfig загружает конфигурацию из аргументов и окружения процесса.
//
// Поддерживаемые флаги:
//
//	-a: адрес сервера (по умолчанию "localhost:8080")
//	-i: длительность цикла в секундах (по умолчанию 5)
//	-w: предельное время ввода-вывода цикла в секундах (по умолчанию 30)
//	-d: строка подключения к базе данных (по умолчанию "")
//	-config: путь к JSON-файлу конфигурации
//	-p: путь к файлу аудита
//	-u: URL для аудита
//	-l: уровень логирования (по умолчанию "info")
//	-creds: учётные данные для хранилища в памяти
//
// Соответствующие переменные окружения:
//
//	ADDRESS, FLUSH_INTERVAL, CYCLE_TIMEOUT, DATABASE_DSN, CONFIG,
//	AUDIT_FILE, AUDIT_URL, LOG_LEVEL, CREDENTIALS
func GetConfig() (Config, error) {
	return Parse(os.Args[1:], env.ToMap(os.Environ()))
}

// Parse разбирает аргументы и переменные окружения, переданные явно.
func Parse(args []string, environ map[string]string) (Config, error) {
	fs := flag.NewFlagSet("server", flag.ContinueOnError)

	addr := fs.String("a", defaultAddr, "HTTP server address")
	flushInterval := fs.Int("i", defaultFlushInterval, "flush interval in seconds")
	cycleTimeout := fs.Int("w", defaultCycleTimeout, "cycle I/O timeout in seconds")
	addrDB := fs.String("d", "", "database DSN")
	configPath := fs.String("config", "", "path to config file")
	auditFile := fs.String("p", "", "audit file path")
	auditURL := fs.String("u", "", "audit url")
	logLevel := fs.String("l", defaultLogLevel, "log level")
	creds := fs.String("creds", "", "machine:key pairs for the in-memory backend")

	if err := fs.Parse(args); err != nil {
		return Config{}, fmt.Errorf("parse flags: %w", err)
	}
	setFlags := VisitedFlags(fs)

	var fromEnv Config
	if err := env.ParseWithOptions(&fromEnv, env.Options{Environment: environ}); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	inEnv := func(name string) bool { return environ[name] != "" }

	path := Pick(inEnv("CONFIG"), fromEnv.ConfigFilePath, setFlags["config"], *configPath, "", "")
	file := ConfigStruct{}
	if err := LoadFile(path, &file); err != nil {
		return Config{}, err
	}

	cfg := Config{
		Addr:           Pick(inEnv("ADDRESS"), fromEnv.Addr, setFlags["a"], *addr, file.Addr, defaultAddr),
		FlushInterval:  Pick(inEnv("FLUSH_INTERVAL"), fromEnv.FlushInterval, setFlags["i"], *flushInterval, file.FlushInterval, defaultFlushInterval),
		CycleTimeout:   Pick(inEnv("CYCLE_TIMEOUT"), fromEnv.CycleTimeout, setFlags["w"], *cycleTimeout, file.CycleTimeout, defaultCycleTimeout),
		AddrDB:         Pick(inEnv("DATABASE_DSN"), fromEnv.AddrDB, setFlags["d"], *addrDB, file.AddrDB, ""),
		ConfigFilePath: path,
		AuditFile:      Pick(inEnv("AUDIT_FILE"), fromEnv.AuditFile, setFlags["p"], *auditFile, file.AuditFile, ""),
		AuditURL:       Pick(inEnv("AUDIT_URL"), fromEnv.AuditURL, setFlags["u"], *auditURL, file.AuditURL, ""),
		LogLevel:       Pick(inEnv("LOG_LEVEL"), fromEnv.LogLevel, setFlags["l"], *logLevel, file.LogLevel, defaultLogLevel),
		Credentials:    Pick(inEnv("CREDENTIALS"), fromEnv.Credentials, setFlags["creds"], *creds, file.Credentials, ""),
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Pick выбирает значение по приоритету: окружение, явно заданный флаг, файл, значение по умолчанию.
// Нулевое значение в файле считается незаданным.
func Pick[T comparable](envSet bool, envValue T, flagSet bool, flagValue T, fileValue, defValue T) T {
	var zero T
	switch {
	case envSet:
		return envValue
	case flagSet:
		return flagValue
	case fileValue != zero:
		return fileValue
	default:
		return defValue
	}
}

// VisitedFlags возвращает имена флагов, явно заданных в командной строке.
func VisitedFlags(fs *flag.FlagSet) map[string]bool {
	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) {
		set[f.Name] = true
	})
	return set
}

// LoadFile читает JSON-файл конфигурации в dst. Пустой путь означает отсутствие файла.
func LoadFile(path string, dst any) error {
	if path == "" {
		return nil
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open config file: %w", err)
	}
	defer f.Close()

	if err := json.NewDecoder(f).Decode(dst); err != nil {
		return fmt.Errorf("decode config file %s: %w", path, err)
	}
	return nil
}
