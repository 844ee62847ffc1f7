package config

import (
	"testing"
	"time"

	qt "github.com/frankban/quicktest"
	"github.com/spf13/viper"
)

func newViper(values map[string]interface{}) *viper.Viper {
	v := viper.New()
	setDefaults(v)
	for k, val := range values {
		v.Set(k, val)
	}
	return v
}

func TestFromViperDefaults(t *testing.T) {
	c := qt.New(t)

	cfg, err := fromViper(newViper(map[string]interface{}{"JWT_SECRET": "s3cret"}))
	c.Assert(err, qt.IsNil)

	c.Assert(cfg.Server.Port, qt.Equals, "5000")
	c.Assert(cfg.Server.Timeout, qt.Equals, 30*time.Second)
	c.Assert(cfg.Database.Driver, qt.Equals, DriverPostgres)
	c.Assert(cfg.Auth.JWTExpiresIn, qt.Equals, 24*time.Hour)
	c.Assert(cfg.Resume.MaxBytes, qt.Equals, int64(5<<20))
	c.Assert(cfg.Resume.SniffContent, qt.IsTrue)
	c.Assert(cfg.Resume.ServeStoredType, qt.IsFalse)
	c.Assert(cfg.Application.StrictTransitions, qt.IsFalse)
	c.Assert(cfg.CORS.AllowedOrigins, qt.DeepEquals, []string{"*"})
}

func TestFromViperOverrides(t *testing.T) {
	c := qt.New(t)

	cfg, err := fromViper(newViper(map[string]interface{}{
		"JWT_SECRET":                     "s3cret",
		"DB_DRIVER":                      "SQLITE3",
		"DATABASE_URL":                   "file:hirehub.db",
		"APPLICATION_STRICT_TRANSITIONS": "true",
		"CORS_ALLOWED_ORIGINS":           "http://localhost:5173, https://hirehub.example",
	}))
	c.Assert(err, qt.IsNil)

	c.Assert(cfg.Database.Driver, qt.Equals, DriverSQLite)
	c.Assert(cfg.Database.DSN(), qt.Equals, "file:hirehub.db")
	c.Assert(cfg.Application.StrictTransitions, qt.IsTrue)
	c.Assert(cfg.CORS.AllowedOrigins, qt.DeepEquals, []string{"http://localhost:5173", "https://hirehub.example"})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		values  map[string]interface{}
		wantErr string
	}{
		{
			name:    "missing secret",
			values:  map[string]interface{}{},
			wantErr: "JWT_SECRET tanımlanmalı",
		},
		{
			name:    "unknown driver",
			values:  map[string]interface{}{"JWT_SECRET": "x", "DB_DRIVER": "mysql"},
			wantErr: "desteklenmeyen veritabanı sürücüsü: mysql",
		},
		{
			name:    "sqlite without url",
			values:  map[string]interface{}{"JWT_SECRET": "x", "DB_DRIVER": "sqlite3"},
			wantErr: "sqlite3 sürücüsü için DATABASE_URL tanımlanmalı",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := qt.New(t)

			_, err := fromViper(newViper(tt.values))
			c.Assert(err, qt.ErrorMatches, tt.wantErr)
		})
	}
}

func TestPostgresDSN(t *testing.T) {
	c := qt.New(t)

	d := DatabaseConfig{Host: "db", Port: "5432", User: "app", Password: "pw", Name: "hirehub", SSLMode: "disable"}
	c.Assert(d.DSN(), qt.Equals, "host=db port=5432 user=app password=pw dbname=hirehub sslmode=disable")
}
