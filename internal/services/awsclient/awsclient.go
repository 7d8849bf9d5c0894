// Package awsclient resolves the AWS SDK configuration shared by the
// MediaConvert and S3 clients.
package awsclient

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"

	"mcjob/internal/config"
	"mcjob/internal/services"
)

// Load builds an aws.Config for the configured region. Static credentials
// replace the SDK default chain when credentials.source is "static".
func Load(ctx context.Context, cfg *config.Config) (aws.Config, error) {
	if cfg == nil {
		return aws.Config{}, services.Wrap(services.ErrConfiguration, "aws", "load config", "configuration is nil", nil)
	}
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Service.Region),
	}
	if provider := CredentialsProvider(cfg.Credentials); provider != nil {
		opts = append(opts, awsconfig.WithCredentialsProvider(provider))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return aws.Config{}, services.Wrap(services.ErrConfiguration, "aws", "load config", fmt.Sprintf("region %s", cfg.Service.Region), err)
	}
	return awsCfg, nil
}

// CredentialsProvider returns the explicit provider for static credentials,
// or nil when the SDK default chain should be used.
func CredentialsProvider(creds config.Credentials) aws.CredentialsProvider {
	if creds.Source != config.CredentialsStatic {
		return nil
	}
	return credentials.NewStaticCredentialsProvider(creds.AccessKeyID, creds.SecretAccessKey, creds.SessionToken)
}
