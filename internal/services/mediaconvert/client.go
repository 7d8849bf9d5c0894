package mediaconvert

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	mc "github.com/aws/aws-sdk-go-v2/service/mediaconvert"
	"github.com/aws/smithy-go"

	"mcjob/internal/jobspec"
	"mcjob/internal/logging"
	"mcjob/internal/services"
)

const component = "mediaconvert"

// API is the subset of the MediaConvert SDK client used by Client.
type API interface {
	DescribeEndpoints(ctx context.Context, params *mc.DescribeEndpointsInput, optFns ...func(*mc.Options)) (*mc.DescribeEndpointsOutput, error)
	CreateJob(ctx context.Context, params *mc.CreateJobInput, optFns ...func(*mc.Options)) (*mc.CreateJobOutput, error)
}

// EndpointFactory returns an API bound to an account endpoint URL.
type EndpointFactory func(endpointURL string) API

// Client discovers the account endpoint and creates jobs on it.
type Client struct {
	discovery    API
	forEndpoint  EndpointFactory
	maxEndpoints int
	logger       *slog.Logger
}

// Option customizes a Client.
type Option func(*Client)

// WithLogger sets the logger used for request diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logging.NewComponentLogger(logger, component)
	}
}

// WithMaxEndpoints bounds the DescribeEndpoints page size.
func WithMaxEndpoints(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.maxEndpoints = n
		}
	}
}

// NewFromConfig builds a Client from an SDK configuration. Job creation
// uses a second SDK client whose base endpoint is the discovered URL.
func NewFromConfig(awsCfg aws.Config, opts ...Option) *Client {
	discovery := mc.NewFromConfig(awsCfg)
	factory := func(endpointURL string) API {
		return mc.NewFromConfig(awsCfg, func(o *mc.Options) {
			o.BaseEndpoint = aws.String(endpointURL)
		})
	}
	return New(discovery, factory, opts...)
}

// New builds a Client from explicit API implementations.
func New(discovery API, forEndpoint EndpointFactory, opts ...Option) *Client {
	c := &Client{
		discovery:    discovery,
		forEndpoint:  forEndpoint,
		maxEndpoints: 20,
		logger:       logging.NewComponentLogger(nil, component),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// DescribeEndpoints returns the account-specific endpoint URLs. An empty
// result is reported as services.ErrNotFound.
func (c *Client) DescribeEndpoints(ctx context.Context) ([]string, error) {
	out, err := c.discovery.DescribeEndpoints(ctx, &mc.DescribeEndpointsInput{
		MaxResults: aws.Int32(int32(c.maxEndpoints)),
	})
	if err != nil {
		return nil, wrapAPIError("describe endpoints", err)
	}
	urls := make([]string, 0, len(out.Endpoints))
	for _, endpoint := range out.Endpoints {
		if u := strings.TrimSpace(aws.ToString(endpoint.Url)); u != "" {
			urls = append(urls, u)
		}
	}
	if len(urls) == 0 {
		return nil, services.Wrap(services.ErrNotFound, component, "describe endpoints", "Cannot find MediaConvert service endpoint URL", nil)
	}
	c.logger.Debug("endpoints discovered", logging.Int("count", len(urls)))
	return urls, nil
}

// CreateJob submits req to endpointURL and returns the new job's ID.
func (c *Client) CreateJob(ctx context.Context, endpointURL string, req jobspec.JobRequest) (string, error) {
	if strings.TrimSpace(endpointURL) == "" {
		return "", services.Wrap(services.ErrConfiguration, component, "create job", "endpoint URL is empty", nil)
	}
	input, err := CreateJobInput(req)
	if err != nil {
		return "", services.Wrap(services.ErrValidation, component, "create job", "translate request", err)
	}
	api := c.forEndpoint(endpointURL)
	out, err := api.CreateJob(ctx, input)
	if err != nil {
		return "", wrapAPIError("create job", err)
	}
	if out == nil || out.Job == nil || aws.ToString(out.Job.Id) == "" {
		return "", services.Wrap(services.ErrService, component, "create job", "response did not include a job id", nil)
	}
	id := aws.ToString(out.Job.Id)
	c.logger.Debug("job accepted",
		logging.String("job_id", id),
		logging.String("status", string(out.Job.Status)),
	)
	return id, nil
}

func wrapAPIError(operation string, err error) error {
	if errors.Is(err, context.Canceled) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return services.Wrap(services.ErrService, component, operation, "deadline exceeded", fmt.Errorf("%w: %w", services.ErrTimeout, err))
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		message := fmt.Sprintf("%s: %s", apiErr.ErrorCode(), apiErr.ErrorMessage())
		return services.Wrap(services.ErrService, component, operation, message, err)
	}
	return services.Wrap(services.ErrService, component, operation, "request failed", err)
}
