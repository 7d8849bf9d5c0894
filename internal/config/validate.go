package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateService(); err != nil {
		return err
	}
	if err := c.validateCredentials(); err != nil {
		return err
	}
	if err := c.validateSource(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateService() error {
	if c.Service.Region == "" {
		return errors.New("service.region must be set")
	}
	if c.Service.EndpointURL != "" {
		parsed, err := url.Parse(c.Service.EndpointURL)
		if err != nil || parsed.Scheme == "" || parsed.Host == "" {
			return fmt.Errorf("service.endpoint_url %q must be an absolute URL", c.Service.EndpointURL)
		}
	}
	if c.Service.MaxEndpoints <= 0 {
		return errors.New("service.max_endpoints must be positive")
	}
	if c.Service.TimeoutSeconds <= 0 {
		return errors.New("service.timeout_seconds must be positive")
	}
	if c.Service.RoleARN != "" && !strings.HasPrefix(c.Service.RoleARN, "arn:") {
		return fmt.Errorf("service.role_arn %q is not an ARN", c.Service.RoleARN)
	}
	return nil
}

func (c *Config) validateCredentials() error {
	switch c.Credentials.Source {
	case CredentialsDefault:
		return nil
	case CredentialsStatic:
		if c.Credentials.AccessKeyID == "" {
			return errors.New("credentials.access_key_id must be set when credentials.source is static (or set MCJOB_ACCESS_KEY_ID)")
		}
		if c.Credentials.SecretAccessKey == "" {
			return errors.New("credentials.secret_access_key must be set when credentials.source is static (or set MCJOB_SECRET_ACCESS_KEY)")
		}
		return nil
	default:
		return fmt.Errorf("credentials.source: unsupported value %q (use %q or %q)", c.Credentials.Source, CredentialsDefault, CredentialsStatic)
	}
}

func (c *Config) validateSource() error {
	if c.Source.Width <= 0 {
		return errors.New("source.width must be positive")
	}
	if c.Source.Height <= 0 {
		return errors.New("source.height must be positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q (use \"console\" or \"json\")", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
}
