package preflight

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"

	"mcjob/internal/jobspec"
	"mcjob/internal/logging"
	"mcjob/internal/services"
)

const component = "preflight"

// HeadObjectAPI is the subset of the S3 client used by Checker.
type HeadObjectAPI interface {
	HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
}

// Result reports the outcome of an input check.
type Result struct {
	Bucket      string
	Key         string
	Size        int64
	ContentType string
}

// Checker verifies input objects.
type Checker struct {
	api    HeadObjectAPI
	logger *slog.Logger
}

// New wraps an S3 client.
func New(api HeadObjectAPI, logger *slog.Logger) *Checker {
	return &Checker{api: api, logger: logging.NewComponentLogger(logger, component)}
}

// NewFromConfig builds a Checker from an SDK configuration.
func NewFromConfig(awsCfg aws.Config, logger *slog.Logger) *Checker {
	return New(s3.NewFromConfig(awsCfg), logger)
}

// VerifyInput issues a HeadObject for the s3:// locator. A missing bucket
// or key is reported as services.ErrNotFound.
func (c *Checker) VerifyInput(ctx context.Context, locator string) (Result, error) {
	loc, err := jobspec.ParseLocation(locator)
	if err != nil {
		return Result{}, services.Wrap(services.ErrValidation, component, "verify input", "", err)
	}

	out, err := c.api.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(loc.Bucket),
		Key:    aws.String(loc.Key),
	})
	if err != nil {
		return Result{}, classify(locator, err)
	}

	result := Result{
		Bucket:      loc.Bucket,
		Key:         loc.Key,
		Size:        aws.ToInt64(out.ContentLength),
		ContentType: aws.ToString(out.ContentType),
	}
	c.logger.Debug("input verified",
		logging.String("bucket", result.Bucket),
		logging.String("key", result.Key),
		logging.Any("size_bytes", result.Size),
	)
	return result, nil
}

func classify(locator string, err error) error {
	if errors.Is(err, context.Canceled) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return services.Wrap(services.ErrService, component, "verify input", "deadline exceeded", fmt.Errorf("%w: %w", services.ErrTimeout, err))
	}

	var notFound *s3types.NotFound
	var noSuchKey *s3types.NoSuchKey
	var noSuchBucket *s3types.NoSuchBucket
	if errors.As(err, &notFound) || errors.As(err, &noSuchKey) || errors.As(err, &noSuchBucket) {
		return services.Wrap(services.ErrNotFound, component, "verify input", fmt.Sprintf("input %s does not exist", locator), err)
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NotFound", "NoSuchKey", "NoSuchBucket":
			return services.Wrap(services.ErrNotFound, component, "verify input", fmt.Sprintf("input %s does not exist", locator), err)
		case "Forbidden", "AccessDenied":
			return services.Wrap(services.ErrConfiguration, component, "verify input",
				"access denied; disable preflight.verify_input if the caller cannot read the input", err)
		}
	}
	return services.Wrap(services.ErrService, component, "verify input", "head object failed", err)
}
