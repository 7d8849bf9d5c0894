// Package config loads, normalizes, and validates mcjob configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// MCJOB_ROLE_ARN and AWS_REGION. The Config type centralizes every knob the
// CLI needs: service region and discovery, credentials, output layout, the
// assumed source profile, preflight checks and logging.
//
// Always obtain settings through this package so downstream code receives
// sanitized values and clear validation errors.
package config
