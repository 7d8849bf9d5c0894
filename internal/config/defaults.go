package config

const (
	defaultConfigPath     = "~/.config/mcjob/config.toml"
	projectConfigName     = "mcjob.toml"
	defaultRegion         = "us-west-2"
	defaultMaxEndpoints   = 20
	defaultTimeoutSeconds = 60
	defaultOutputSubdir   = "mcjob/out/"
	defaultSourceWidth    = 1920
	defaultSourceHeight   = 1080
	defaultLogFormat      = "console"
	defaultLogLevel       = "info"

	CredentialsDefault = "default"
	CredentialsStatic  = "static"
)

// Default returns a Config populated with repository defaults. The region is
// left empty so normalization can consult the environment before falling
// back to us-west-2.
func Default() Config {
	return Config{
		Service: Service{
			MaxEndpoints:   defaultMaxEndpoints,
			TimeoutSeconds: defaultTimeoutSeconds,
		},
		Credentials: Credentials{
			Source: CredentialsDefault,
		},
		Output: Output{
			Subdir: defaultOutputSubdir,
		},
		Source: Source{
			Width:  defaultSourceWidth,
			Height: defaultSourceHeight,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
