package database

import (
	"fmt"

	"piggybank/internal/config"
)

// Config holds database configuration
type Config struct {
	Driver         string
	Path           string
	Host           string
	Port           string
	User           string
	Password       string
	DBName         string
	SSLMode        string
	MigrationsPath string
}

// NewConfig derives the database configuration from the application config.
func NewConfig(app *config.Config) (*Config, error) {
	switch app.DBDriver {
	case config.DriverSQLite, config.DriverPostgres:
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q (use %s or %s)", app.DBDriver, config.DriverSQLite, config.DriverPostgres)
	}

	return &Config{
		Driver:         app.DBDriver,
		Path:           app.DatabasePath,
		Host:           app.DBHost,
		Port:           app.DBPort,
		User:           app.DBUser,
		Password:       app.DBPassword,
		DBName:         app.DBName,
		SSLMode:        app.DBSSLMode,
		MigrationsPath: app.MigrationsPath,
	}, nil
}

// DSN returns the connection string for the configured driver. SQLite
// connections enable foreign keys so the transactions -> goals cascade holds.
func (c *Config) DSN() string {
	if c.Driver == config.DriverSQLite {
		return fmt.Sprintf("file:%s?_foreign_keys=1", c.Path)
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// MigrationURL returns the postgres:// URL used by golang-migrate.
func (c *Config) MigrationURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode)
}

// MigrationSource returns the file:// source URL for the SQL migrations.
func (c *Config) MigrationSource() string {
	return "file://" + c.MigrationsPath
}
