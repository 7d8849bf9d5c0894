package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	c.normalizeService()
	c.normalizeCredentials()
	c.normalizeOutput()
	if err := c.normalizeLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) normalizeService() {
	c.Service.Region = strings.TrimSpace(c.Service.Region)
	if c.Service.Region == "" {
		if value, ok := lookupEnv("MCJOB_REGION", "AWS_REGION", "AWS_DEFAULT_REGION"); ok {
			c.Service.Region = value
		} else {
			c.Service.Region = defaultRegion
		}
	}
	c.Service.EndpointURL = strings.TrimRight(strings.TrimSpace(c.Service.EndpointURL), "/")
	if c.Service.EndpointURL == "" {
		if value, ok := lookupEnv("MCJOB_ENDPOINT_URL"); ok {
			c.Service.EndpointURL = strings.TrimRight(value, "/")
		}
	}
	if c.Service.MaxEndpoints <= 0 {
		c.Service.MaxEndpoints = defaultMaxEndpoints
	}
	if c.Service.TimeoutSeconds <= 0 {
		c.Service.TimeoutSeconds = defaultTimeoutSeconds
	}
	c.Service.RoleARN = strings.TrimSpace(c.Service.RoleARN)
	if c.Service.RoleARN == "" {
		if value, ok := lookupEnv("MCJOB_ROLE_ARN"); ok {
			c.Service.RoleARN = value
		}
	}
}

func (c *Config) normalizeCredentials() {
	c.Credentials.Source = strings.ToLower(strings.TrimSpace(c.Credentials.Source))
	if c.Credentials.Source == "" {
		c.Credentials.Source = CredentialsDefault
	}
	c.Credentials.AccessKeyID = strings.TrimSpace(c.Credentials.AccessKeyID)
	if c.Credentials.AccessKeyID == "" {
		if value, ok := lookupEnv("MCJOB_ACCESS_KEY_ID"); ok {
			c.Credentials.AccessKeyID = value
		}
	}
	c.Credentials.SecretAccessKey = strings.TrimSpace(c.Credentials.SecretAccessKey)
	if c.Credentials.SecretAccessKey == "" {
		if value, ok := lookupEnv("MCJOB_SECRET_ACCESS_KEY"); ok {
			c.Credentials.SecretAccessKey = value
		}
	}
	c.Credentials.SessionToken = strings.TrimSpace(c.Credentials.SessionToken)
	if c.Credentials.SessionToken == "" {
		if value, ok := lookupEnv("MCJOB_SESSION_TOKEN"); ok {
			c.Credentials.SessionToken = value
		}
	}
}

func (c *Config) normalizeOutput() {
	subdir := strings.Trim(strings.TrimSpace(c.Output.Subdir), "/")
	if subdir == "" {
		c.Output.Subdir = defaultOutputSubdir
		return
	}
	c.Output.Subdir = subdir + "/"
}

func (c *Config) normalizeLogging() error {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if strings.TrimSpace(c.Logging.Dir) == "" {
		c.Logging.Dir = ""
		return nil
	}
	var err error
	if c.Logging.Dir, err = expandPath(strings.TrimSpace(c.Logging.Dir)); err != nil {
		return fmt.Errorf("logging.dir: %w", err)
	}
	return nil
}

func lookupEnv(keys ...string) (string, bool) {
	for _, key := range keys {
		if value, ok := os.LookupEnv(key); ok && strings.TrimSpace(value) != "" {
			return strings.TrimSpace(value), true
		}
	}
	return "", false
}
