package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pelletier/go-toml/v2"

	"mcjob/internal/config"
)

func isolateEnv(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	for _, key := range []string{
		"MCJOB_REGION", "AWS_REGION", "AWS_DEFAULT_REGION", "MCJOB_ENDPOINT_URL",
		"MCJOB_ROLE_ARN", "MCJOB_ACCESS_KEY_ID", "MCJOB_SECRET_ACCESS_KEY", "MCJOB_SESSION_TOKEN",
	} {
		t.Setenv(key, "")
	}
	chdir(t, t.TempDir())
	return home
}

func TestLoadDefaultsWhenFileMissing(t *testing.T) {
	home := isolateEnv(t)

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}
	if resolved != filepath.Join(home, ".config", "mcjob", "config.toml") {
		t.Fatalf("unexpected resolved path %q", resolved)
	}
	if cfg.Service.Region != "us-west-2" {
		t.Fatalf("unexpected region %q", cfg.Service.Region)
	}
	if cfg.Service.MaxEndpoints != 20 {
		t.Fatalf("unexpected max endpoints %d", cfg.Service.MaxEndpoints)
	}
	if cfg.Timeout() != 60*time.Second {
		t.Fatalf("unexpected timeout %s", cfg.Timeout())
	}
	if cfg.Credentials.Source != config.CredentialsDefault {
		t.Fatalf("unexpected credentials source %q", cfg.Credentials.Source)
	}
	if cfg.Output.Subdir != "mcjob/out/" {
		t.Fatalf("unexpected output subdir %q", cfg.Output.Subdir)
	}
	if cfg.Source.Width != 1920 || cfg.Source.Height != 1080 {
		t.Fatalf("unexpected source profile %dx%d", cfg.Source.Width, cfg.Source.Height)
	}
	if cfg.Preflight.VerifyInput {
		t.Fatal("expected input verification disabled by default")
	}
	if cfg.Logging.Format != "console" || cfg.Logging.Level != "info" {
		t.Fatalf("unexpected logging config %+v", cfg.Logging)
	}
	if cfg.Logging.Dir != "" {
		t.Fatalf("expected no log dir by default, got %q", cfg.Logging.Dir)
	}
}

func TestLoadEnvironmentFallbacks(t *testing.T) {
	isolateEnv(t)
	t.Setenv("AWS_REGION", "eu-west-1")
	t.Setenv("MCJOB_ROLE_ARN", "arn:aws:iam::123456789012:role/MediaConvert")
	t.Setenv("MCJOB_ENDPOINT_URL", "https://abc.mediaconvert.eu-west-1.amazonaws.com/")

	cfg, _, _, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Service.Region != "eu-west-1" {
		t.Fatalf("expected region from env, got %q", cfg.Service.Region)
	}
	if cfg.Service.RoleARN != "arn:aws:iam::123456789012:role/MediaConvert" {
		t.Fatalf("expected role from env, got %q", cfg.Service.RoleARN)
	}
	if cfg.Service.EndpointURL != "https://abc.mediaconvert.eu-west-1.amazonaws.com" {
		t.Fatalf("expected trimmed endpoint, got %q", cfg.Service.EndpointURL)
	}
}

func TestLoadCustomPath(t *testing.T) {
	home := isolateEnv(t)
	path := filepath.Join(t.TempDir(), "custom.toml")

	cfg := config.Default()
	cfg.Service.Region = "ap-southeast-2"
	cfg.Output.Subdir = "/renditions/"
	cfg.Source.Width = 1280
	cfg.Source.Height = 720
	cfg.Preflight.VerifyInput = true
	cfg.Logging.Format = "JSON"
	cfg.Logging.Dir = "~/logs"

	data, err := toml.Marshal(cfg)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	loaded, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != path {
		t.Fatalf("expected %s to be loaded, got %s (exists=%v)", path, resolved, exists)
	}
	if loaded.Service.Region != "ap-southeast-2" {
		t.Fatalf("unexpected region %q", loaded.Service.Region)
	}
	if loaded.Output.Subdir != "renditions/" {
		t.Fatalf("expected normalized subdir, got %q", loaded.Output.Subdir)
	}
	if loaded.Source.Width != 1280 || loaded.Source.Height != 720 {
		t.Fatalf("unexpected source profile %+v", loaded.Source)
	}
	if !loaded.Preflight.VerifyInput {
		t.Fatal("expected verify_input to be true")
	}
	if loaded.Logging.Format != "json" {
		t.Fatalf("expected json format, got %q", loaded.Logging.Format)
	}
	if loaded.Logging.Dir != filepath.Join(home, "logs") {
		t.Fatalf("expected expanded log dir, got %q", loaded.Logging.Dir)
	}
	if err := loaded.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories: %v", err)
	}
	if info, err := os.Stat(loaded.Logging.Dir); err != nil || !info.IsDir() {
		t.Fatalf("expected log dir to exist: %v", err)
	}
}

func TestLoadProjectConfig(t *testing.T) {
	isolateEnv(t)
	if err := os.WriteFile("mcjob.toml", []byte("[service]\nregion = \"us-east-1\"\n"), 0o644); err != nil {
		t.Fatalf("write project config: %v", err)
	}
	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || filepath.Base(resolved) != "mcjob.toml" {
		t.Fatalf("expected project config, got %s (exists=%v)", resolved, exists)
	}
	if cfg.Service.Region != "us-east-1" {
		t.Fatalf("unexpected region %q", cfg.Service.Region)
	}
}

func TestLoadMissingExplicitPath(t *testing.T) {
	isolateEnv(t)
	_, _, _, err := config.Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err == nil || !strings.Contains(err.Error(), "does not exist") {
		t.Fatalf("expected missing file error, got %v", err)
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	isolateEnv(t)
	path := filepath.Join(t.TempDir(), "typo.toml")
	if err := os.WriteFile(path, []byte("[service]\nregoin = \"us-east-1\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, _, _, err := config.Load(path); err == nil {
		t.Fatal("expected unknown key to be rejected")
	}
}

func TestLoadRejectsUnknownLogFormat(t *testing.T) {
	isolateEnv(t)
	path := filepath.Join(t.TempDir(), "format.toml")
	if err := os.WriteFile(path, []byte("[logging]\nformat = \"jsno\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	_, _, _, err := config.Load(path)
	if err == nil || !strings.Contains(err.Error(), "logging.format") {
		t.Fatalf("expected logging.format error, got %v", err)
	}

	if err := os.WriteFile(path, []byte("[logging]\nformat = \" JSON \"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, _, _, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Logging.Format != "json" {
		t.Fatalf("expected normalized json format, got %q", cfg.Logging.Format)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*config.Config)
		wantErr string
	}{
		{"defaults", func(*config.Config) {}, ""},
		{"static without keys", func(c *config.Config) { c.Credentials.Source = config.CredentialsStatic }, "credentials.access_key_id"},
		{"static missing secret", func(c *config.Config) {
			c.Credentials.Source = config.CredentialsStatic
			c.Credentials.AccessKeyID = "AKIA"
		}, "credentials.secret_access_key"},
		{"static complete", func(c *config.Config) {
			c.Credentials.Source = config.CredentialsStatic
			c.Credentials.AccessKeyID = "AKIA"
			c.Credentials.SecretAccessKey = "secret"
		}, ""},
		{"unknown credentials source", func(c *config.Config) { c.Credentials.Source = "vault" }, "credentials.source"},
		{"relative endpoint", func(c *config.Config) { c.Service.EndpointURL = "mediaconvert.local" }, "service.endpoint_url"},
		{"bad role", func(c *config.Config) { c.Service.RoleARN = "MediaConvertRole" }, "service.role_arn"},
		{"zero source width", func(c *config.Config) { c.Source.Width = 0 }, "source.width"},
		{"negative source height", func(c *config.Config) { c.Source.Height = -1 }, "source.height"},
		{"bad level", func(c *config.Config) { c.Logging.Level = "verbose" }, "logging.level"},
		{"json format", func(c *config.Config) { c.Logging.Format = "json" }, ""},
		{"misspelled format", func(c *config.Config) { c.Logging.Format = "jsno" }, "logging.format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			cfg.Service.Region = "us-west-2"
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestCreateSampleRoundTrips(t *testing.T) {
	isolateEnv(t)
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}
	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load sample: %v", err)
	}
	if !exists {
		t.Fatal("expected sample to exist")
	}
	if cfg.Credentials.Source != config.CredentialsDefault {
		t.Fatalf("unexpected sample credentials source %q", cfg.Credentials.Source)
	}
	if cfg.Output.Subdir != "mcjob/out/" {
		t.Fatalf("unexpected sample subdir %q", cfg.Output.Subdir)
	}
}

// chdir mirrors testing.T.Chdir (Go 1.24+) for older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatal(err)
		}
	})
}
