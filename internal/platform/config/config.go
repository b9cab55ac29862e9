// Package config carga la configuración del proceso desde el entorno.
//
// Antes de leer variables se intenta cargar un archivo .env (opcional).
// Las variables ya presentes en el entorno tienen prioridad sobre el archivo.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
)

var (
	ErrMissingDSN = errors.New("database connection string is required (DB_DSN or MYSQL_CONNECTION_STRING)")
)

const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
)

type Config struct {
	Port    string `env:"PORT,default=8080"`
	AppName string `env:"APP_NAME,default=medication-log"`

	LogLevel  string `env:"LOG_LEVEL,default=info"`
	LogFormat string `env:"LOG_FORMAT,default=text"`

	DBDriver       string `env:"DB_DRIVER"`
	DBDSN          string `env:"DB_DSN"`
	MySQLDSN       string `env:"MYSQL_CONNECTION_STRING"` // nombre heredado del despliegue original
	DBMaxOpenConns int    `env:"DB_MAX_OPEN_CONNS,default=10"`
	DBMaxIdleConns int    `env:"DB_MAX_IDLE_CONNS,default=5"`
}

// Load lee los archivos .env indicados (default ".env"; ausentes se ignoran)
// y después decodifica el entorno.
func Load(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}

	var c Config
	if err := envdecode.Decode(&c); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return Config{}, fmt.Errorf("decode env: %w", err)
	}

	if err := c.normalize(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c *Config) normalize() error {
	c.DBDSN = strings.TrimSpace(c.DBDSN)
	if c.DBDSN == "" {
		c.DBDSN = strings.TrimSpace(c.MySQLDSN)
		if c.DBDSN != "" && strings.TrimSpace(c.DBDriver) == "" {
			c.DBDriver = DriverMySQL
		}
	}
	if c.DBDSN == "" {
		return ErrMissingDSN
	}

	c.DBDriver = strings.ToLower(strings.TrimSpace(c.DBDriver))
	if c.DBDriver == "" {
		c.DBDriver = InferDriver(c.DBDSN)
	}

	c.Port = strings.TrimSpace(c.Port)
	if c.Port == "" {
		c.Port = "8080"
	}
	return nil
}

// Addr devuelve la dirección de escucha del servidor HTTP.
func (c Config) Addr() string {
	return ":" + c.Port
}

// InferDriver adivina el dialecto a partir de la forma del DSN.
// Sin pistas claras asume mysql (formato nativo user:pass@tcp(host)/db).
func InferDriver(dsn string) string {
	d := strings.ToLower(strings.TrimSpace(dsn))
	switch {
	case strings.HasPrefix(d, "postgres://"), strings.HasPrefix(d, "postgresql://"):
		return DriverPostgres
	case strings.HasPrefix(d, "host="), strings.Contains(d, " dbname="):
		return DriverPostgres
	default:
		return DriverMySQL
	}
}
