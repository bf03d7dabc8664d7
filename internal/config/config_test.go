package config

import (
	"strings"
	"testing"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"APP_PORT", "STORE_DRIVER", "MONGODB_URI", "MONGODB_DB_NAME",
		"GOOGLE_SHEETS_CREDENTIALS_PATH", "GOOGLE_SHEET_EXPORT_ID",
		"WHATSAPP_TOKEN", "WHATSAPP_PHONE_NUMBER_ID", "WHATSAPP_BASE_URL",
		"WHATSAPP_API_VERSION", "WHATSAPP_MANAGER_ID",
		"ALERT_CRON_SCHEDULE", "TIMEZONE", "CORS_ALLOWED_ORIGINS",
		"SEED_DEMO_DATA", "LOG_LEVEL",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("testdata/missing.env")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Server.Port != "8080" {
		t.Errorf("port = %q", cfg.Server.Port)
	}
	if cfg.Store.Driver != StoreMemory {
		t.Errorf("driver = %q", cfg.Store.Driver)
	}
	if cfg.MongoDB.DBName != "loombook" {
		t.Errorf("db name = %q", cfg.MongoDB.DBName)
	}
	if cfg.Alerts.CronSchedule != "0 8 * * *" || cfg.Alerts.Timezone != "Asia/Kolkata" {
		t.Errorf("alerts = %+v", cfg.Alerts)
	}
	if cfg.Sheets.Enabled() || cfg.WhatsApp.Enabled() || cfg.Store.SeedDemo {
		t.Errorf("optional integrations should be off by default")
	}
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("APP_PORT", "9090")
	t.Setenv("STORE_DRIVER", "Mongo")
	t.Setenv("MONGODB_URI", "mongodb://localhost:27017")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test, ,http://b.test")
	t.Setenv("SEED_DEMO_DATA", "true")

	cfg, err := Load("testdata/missing.env")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Store.Driver != StoreMongo {
		t.Errorf("driver = %q", cfg.Store.Driver)
	}
	if got := strings.Join(cfg.Server.AllowedOrigins, "|"); got != "http://a.test|http://b.test" {
		t.Errorf("origins = %q", got)
	}
	if !cfg.Store.SeedDemo {
		t.Error("seed demo should be on")
	}
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			Server: ServerConfig{Port: "8080"},
			Store:  StoreConfig{Driver: StoreMemory},
			Alerts: AlertsConfig{CronSchedule: "0 8 * * *", Timezone: "UTC"},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "unknown driver", mutate: func(c *Config) { c.Store.Driver = "sqlite" }, wantErr: "STORE_DRIVER"},
		{name: "mongo without uri", mutate: func(c *Config) { c.Store.Driver = StoreMongo }, wantErr: "MONGODB_URI"},
		{name: "sheets half configured", mutate: func(c *Config) { c.Sheets.SpreadsheetID = "sheet" }, wantErr: "set together"},
		{name: "whatsapp without manager", mutate: func(c *Config) {
			c.WhatsApp = WhatsAppConfig{AccessToken: "t", PhoneNumberID: "p", BaseURL: "u", APIVersion: "v"}
		}, wantErr: "WHATSAPP_MANAGER_ID"},
		{name: "bad cron schedule", mutate: func(c *Config) { c.Alerts.CronSchedule = "every morning" }, wantErr: "ALERT_CRON_SCHEDULE"},
		{name: "bad timezone", mutate: func(c *Config) { c.Alerts.Timezone = "Mars/Olympus" }, wantErr: "TIMEZONE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}
