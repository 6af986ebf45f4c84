package configuration

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env"
	"gopkg.in/yaml.v2"

	"substitution-plan-notifier/util"
)

type TelegramSettings struct {
	Token  string  `yaml:"token" env:"TELEGRAM_TOKEN"`
	Owners []int64 `yaml:"owners"` // chats allowed to edit the whitelist
}

type SourceSettings struct {
	Urls     map[string]string `yaml:"urls"` // keyed by lower case English weekday
	Username string            `yaml:"username" env:"SOURCE_USERNAME"`
	Password string            `yaml:"password" env:"SOURCE_PASSWORD"`
	Timeout  time.Duration     `yaml:"timeout" env:"SOURCE_TIMEOUT"`
}

type ExtractionSettings struct {
	JavaPath  string `yaml:"java-path" env:"EXTRACTION_JAVA_PATH"`
	TabulaJar string `yaml:"tabula-jar" env:"EXTRACTION_TABULA_JAR"`
	TempDir   string `yaml:"temp-dir" env:"EXTRACTION_TEMP_DIR"`
}

type ReconstructionSettings struct {
	BlockTerminatorPrefix string `yaml:"block-terminator-prefix" env:"RECONSTRUCTION_BLOCK_TERMINATOR_PREFIX"`
}

type StorageSettings struct {
	Backend      string `yaml:"backend" env:"STORAGE_BACKEND"` // file or redis
	Directory    string `yaml:"directory" env:"STORAGE_DIRECTORY"`
	RedisAddress string `yaml:"redis-address" env:"STORAGE_REDIS_ADDRESS"`
}

type PollingSettings struct {
	Interval time.Duration `yaml:"interval" env:"POLLING_INTERVAL"`
}

type LoggingSettings struct {
	Level string `yaml:"level" env:"LOG_LEVEL"`
	Json  bool   `yaml:"json" env:"LOG_JSON"`
}

type MetricsSettings struct {
	ListenAddress string `yaml:"listen-address" env:"METRICS_LISTEN_ADDRESS"`
}

type Configuration struct {
	Telegram       TelegramSettings       `yaml:"telegram"`
	Source         SourceSettings         `yaml:"source"`
	Extraction     ExtractionSettings     `yaml:"extraction"`
	Reconstruction ReconstructionSettings `yaml:"reconstruction"`
	Storage        StorageSettings        `yaml:"storage"`
	Polling        PollingSettings        `yaml:"polling"`
	Whitelist      []string               `yaml:"whitelist"` // loaded into the class whitelist on start
	Logging        LoggingSettings        `yaml:"logging"`
	Metrics        MetricsSettings        `yaml:"metrics"`
}

func Default() Configuration {
	urls := map[string]string{}

	for _, day := range util.SchoolDays {
		urls[strings.ToLower(day.String())] = fmt.Sprintf(
			"https://buessing.schule/plaene/VertretungsplanA4_%s.pdf", util.ConvertToGermanWeek(day))
	}

	return Configuration{
		Source: SourceSettings{
			Urls:    urls,
			Timeout: 20 * time.Second,
		},
		Extraction: ExtractionSettings{
			JavaPath:  "java",
			TabulaJar: "./tabula/tabula.jar",
			TempDir:   os.TempDir(),
		},
		Reconstruction: ReconstructionSettings{BlockTerminatorPrefix: "-"},
		Storage:        StorageSettings{Backend: "file", Directory: "./storage"},
		Polling:        PollingSettings{Interval: 20 * time.Second},
		Logging:        LoggingSettings{Level: "info"},
	}
}

// Load reads the YAML file on top of the defaults and applies environment overrides.
func Load(path string) (Configuration, error) {
	config := Default()

	yamlFile, err := os.ReadFile(path)

	if err != nil {
		return config, err
	}

	if err = Parse(yamlFile, &config); err != nil {
		return config, err
	}

	return config, nil
}

func Parse(yamlFile []byte, config *Configuration) error {
	if err := yaml.Unmarshal(yamlFile, config); err != nil {
		return fmt.Errorf("decode config: %w", err)
	}

	sections := []interface{}{
		&config.Telegram,
		&config.Source,
		&config.Extraction,
		&config.Reconstruction,
		&config.Storage,
		&config.Polling,
		&config.Logging,
		&config.Metrics,
	}

	for _, section := range sections {
		if err := env.Parse(section); err != nil {
			return fmt.Errorf("read environment: %w", err)
		}
	}

	return config.Validate()
}

func (c Configuration) Validate() error {
	if c.Telegram.Token == "" {
		return errors.New("telegram token is missing")
	}

	if c.Storage.Backend != "file" && c.Storage.Backend != "redis" {
		return fmt.Errorf("unknown storage backend %q", c.Storage.Backend)
	}

	if c.Storage.Backend == "redis" && c.Storage.RedisAddress == "" {
		return errors.New("redis storage needs redis-address")
	}

	if c.Polling.Interval <= 0 {
		return errors.New("polling interval must be positive")
	}

	return nil
}

func (s SourceSettings) Url(weekday time.Weekday) string {
	return s.Urls[strings.ToLower(weekday.String())]
}

func (t TelegramSettings) IsOwner(chatId int64) bool {
	for _, owner := range t.Owners {
		if owner == chatId {
			return true
		}
	}

	return false
}
