package config

import (
	"testing"
	"time"

	qt "github.com/frankban/quicktest"

	"todo-api/internal/store"
)

func setRequired(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/todos?sslmode=disable")
	t.Setenv("JWT_KEY", "secret")
}

func TestLoadDefaults(t *testing.T) {
	c := qt.New(t)
	setRequired(t)
	t.Setenv("DATABASE_DRIVER", "")
	t.Setenv("PORT", "")
	t.Setenv("TOKEN_TTL", "")
	t.Setenv("PAGE_SIZE", "")
	t.Setenv("LOG_LEVEL", "")

	cfg, err := Load()
	c.Assert(err, qt.IsNil)
	c.Assert(cfg.DatabaseDriver, qt.Equals, store.DriverPostgres)
	c.Assert(cfg.Port, qt.Equals, "8080")
	c.Assert(cfg.TokenTTL, qt.Equals, 24*time.Hour)
	c.Assert(cfg.PageSize, qt.Equals, 100)
	c.Assert(cfg.LogLevel, qt.Equals, "info")
}

func TestLoadOverrides(t *testing.T) {
	c := qt.New(t)
	setRequired(t)
	t.Setenv("DATABASE_DRIVER", store.DriverSQLite)
	t.Setenv("PORT", "9000")
	t.Setenv("TOKEN_TTL", "90m")
	t.Setenv("PAGE_SIZE", "25")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	c.Assert(err, qt.IsNil)
	c.Assert(cfg.DatabaseDriver, qt.Equals, store.DriverSQLite)
	c.Assert(cfg.Port, qt.Equals, "9000")
	c.Assert(cfg.TokenTTL, qt.Equals, 90*time.Minute)
	c.Assert(cfg.PageSize, qt.Equals, 25)
	c.Assert(cfg.LogLevel, qt.Equals, "debug")
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		err  string
	}{{
		name: "missing database url",
		env:  map[string]string{"DATABASE_URL": ""},
		err:  "DATABASE_URL environment variable is required",
	}, {
		name: "missing jwt key",
		env:  map[string]string{"JWT_KEY": ""},
		err:  "JWT_KEY environment variable is required",
	}, {
		name: "unknown driver",
		env:  map[string]string{"DATABASE_DRIVER": "mysql"},
		err:  `DATABASE_DRIVER must be .*`,
	}, {
		name: "bad ttl",
		env:  map[string]string{"TOKEN_TTL": "soon"},
		err:  `TOKEN_TTL must be a positive duration: "soon"`,
	}, {
		name: "page size too large",
		env:  map[string]string{"PAGE_SIZE": "5000"},
		err:  `PAGE_SIZE must be between 1 and 1000: "5000"`,
	}}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			c := qt.New(t)
			setRequired(t)
			for k, v := range test.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			c.Assert(err, qt.ErrorMatches, test.err)
		})
	}
}
