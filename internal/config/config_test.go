package config_test

import (
	"errors"
	"testing"
	"time"

	"github.com/okian/facultyhub/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New()

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.Addr, convey.ShouldEqual, ":5001")
			convey.So(cfg.StoreDriver, convey.ShouldEqual, "memory")
			convey.So(cfg.SQLitePath, convey.ShouldEqual, "faculty.db")
			convey.So(cfg.DefaultPageSize, convey.ShouldEqual, 24)
			convey.So(cfg.MaxPageSize, convey.ShouldEqual, 200)
			convey.So(cfg.CORSAllowOrigin, convey.ShouldEqual, "*")
			convey.So(cfg.RetryDelay(), convey.ShouldEqual, time.Second)
			convey.So(cfg.ShutdownTimeout(), convey.ShouldEqual, 5*time.Second)
			convey.So(cfg.ConnectTimeout(), convey.ShouldEqual, 5*time.Second)
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})
	})
}

func TestConfig_Validate(t *testing.T) {
	convey.Convey("Given configs with invalid values", t, func() {
		cases := []struct {
			name   string
			mutate func(*config.Config)
		}{
			{"empty addr", func(c *config.Config) { c.Addr = "" }},
			{"unknown driver", func(c *config.Config) { c.StoreDriver = "mongo" }},
			{"postgres without url", func(c *config.Config) { c.StoreDriver = "postgres" }},
			{"sqlite without path", func(c *config.Config) { c.StoreDriver = "sqlite"; c.SQLitePath = "" }},
			{"bad log level", func(c *config.Config) { c.LogLevel = "loud" }},
			{"bad log format", func(c *config.Config) { c.LogFormat = "xml" }},
			{"negative page size", func(c *config.Config) { c.DefaultPageSize = -1 }},
			{"default above max", func(c *config.Config) { c.DefaultPageSize = 500 }},
			{"negative retries", func(c *config.Config) { c.DBConnectRetries = -2 }},
		}

		for _, tc := range cases {
			convey.Convey("Then "+tc.name+" is rejected", func() {
				cfg := config.New()
				tc.mutate(cfg)
				err := cfg.Validate()
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		}

		convey.Convey("Then the driver name is normalized", func() {
			cfg := config.New()
			cfg.StoreDriver = " SQLite "
			convey.So(cfg.Validate(), convey.ShouldBeNil)
			convey.So(cfg.StoreDriver, convey.ShouldEqual, "sqlite")
		})

		convey.Convey("Then postgres with a URL is accepted", func() {
			cfg := config.New()
			cfg.StoreDriver = "postgres"
			cfg.DatabaseURL = "postgres://localhost/faculty"
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})
	})
}
