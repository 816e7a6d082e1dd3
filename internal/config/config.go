package config

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

type HTTPServer struct {
	Addr string `yaml:"address" env:"HTTP_ADDR" env-default:"localhost:8080"`
}

type Storage struct {
	CatalogPath string `yaml:"catalog_path" env:"CATALOG_PATH" env-default:"jsons/infoProducts.json"`
	CartPath    string `yaml:"cart_path"    env:"CART_PATH"    env-default:"jsons/cart.json"`
	ExportDir   string `yaml:"export_dir"   env:"EXPORT_DIR"   env-default:"saved"`
}

// AuditDB configures the Postgres audit log. An empty host disables the sink
// entirely; the ledger then runs with a no-op sink.
type AuditDB struct {
	Host     string `yaml:"PG_HOST"     env:"PG_HOST"     env-default:""`
	Port     string `yaml:"PG_PORT"     env:"PG_PORT"     env-default:"5432"`
	User     string `yaml:"PG_USER"     env:"PG_USER"     env-default:"tungcart"`
	Password string `yaml:"PG_PASSWORD" env:"PG_PASSWORD" env-default:""`
	Name     string `yaml:"PG_DBNAME"   env:"PG_DBNAME"   env-default:"tungcart"`
	SSLMode  string `yaml:"PG_SSLMODE"  env:"PG_SSLMODE"  env-default:"disable"`
}

func (d *AuditDB) Enabled() bool {
	return d.Host != ""
}

func (d *AuditDB) GetDSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode)
}

type Config struct {
	Env        string `yaml:"env" env:"ENV" env-default:"production"`
	HTTPServer `yaml:"http_server"`
	Storage    Storage `yaml:"storage"`
	AuditDB    AuditDB `yaml:"audit_db"`
}

// MustLoad reads configuration from the file named by CONFIG_PATH or the
// -config flag, with environment overrides. Without a config file the
// environment and defaults alone apply.
func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")

	if configPath == "" {
		flags := flag.String("config", "", "path to the config file")

		flag.Parse()

		configPath = *flags
	}

	var cfg Config

	if configPath == "" {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			log.Fatalf("can not read config from environment: %s", err.Error())
		}

		return &cfg
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("config file does not exist: %s", configPath)
	}

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("can not read config file: %s", err.Error())
	}

	return &cfg
}
