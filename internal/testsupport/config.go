package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"mcjob/internal/config"
)

// TestRoleARN is the role used by generated test configurations.
const TestRoleARN = "arn:aws:iam::111122223333:role/MediaConvertTest"

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config with a fixed region and a per-test log
// directory. Options are applied in order.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Service.Region = "us-west-2"
	cfgVal.Service.RoleARN = TestRoleARN
	cfgVal.Logging.Dir = filepath.Join(base, "logs")

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}
	for _, opt := range opts {
		opt(builder)
	}
	return builder.cfg
}

// WithoutRole clears the default role.
func WithoutRole() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Service.RoleARN = ""
	}
}

// WithEndpoint pins the MediaConvert endpoint so discovery is skipped.
func WithEndpoint(url string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Service.EndpointURL = url
	}
}

// WithVerifyInput toggles the S3 input preflight.
func WithVerifyInput(enabled bool) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Preflight.VerifyInput = enabled
	}
}

// WithSource overrides the assumed input frame size.
func WithSource(width, height int) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Source.Width = width
		b.cfg.Source.Height = height
	}
}

// WriteConfig marshals cfg to a config.toml under a temp directory and
// returns its path.
func WriteConfig(t testing.TB, cfg *config.Config) string {
	t.Helper()

	data, err := toml.Marshal(cfg)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}
