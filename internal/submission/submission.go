package submission

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"mcjob/internal/config"
	"mcjob/internal/jobspec"
	"mcjob/internal/logging"
	"mcjob/internal/preflight"
	"mcjob/internal/rendition"
	"mcjob/internal/services"
)

const component = "submission"

// JobService is the MediaConvert surface used by Submitter.
type JobService interface {
	DescribeEndpoints(ctx context.Context) ([]string, error)
	CreateJob(ctx context.Context, endpointURL string, req jobspec.JobRequest) (string, error)
}

// InputVerifier confirms that an input object exists.
type InputVerifier interface {
	VerifyInput(ctx context.Context, locator string) (preflight.Result, error)
}

// Request identifies what to transcode and under which role.
type Request struct {
	Role  string
	Input string
}

// Result describes a created job.
type Result struct {
	JobID      string                       `json:"jobId"`
	Endpoint   string                       `json:"endpoint"`
	Role       string                       `json:"role"`
	Input      string                       `json:"input"`
	Token      string                       `json:"clientRequestToken"`
	Layout     jobspec.Layout               `json:"layout"`
	Renditions []rendition.OutputDescriptor `json:"renditions"`
}

// Submitter runs submissions against a configured account.
type Submitter struct {
	cfg      *config.Config
	jobs     JobService
	verifier InputVerifier
	logger   *slog.Logger
	newToken func() string
}

// Option customizes a Submitter.
type Option func(*Submitter)

// WithVerifier enables the input preflight when preflight.verify_input is set.
func WithVerifier(v InputVerifier) Option {
	return func(s *Submitter) { s.verifier = v }
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Submitter) { s.logger = logging.NewComponentLogger(logger, component) }
}

// WithTokenGenerator replaces the client request token source.
func WithTokenGenerator(fn func() string) Option {
	return func(s *Submitter) {
		if fn != nil {
			s.newToken = fn
		}
	}
}

// New constructs a Submitter. jobs may be nil when only Prepare is used.
func New(cfg *config.Config, jobs JobService, opts ...Option) *Submitter {
	if cfg == nil {
		def := config.Default()
		cfg = &def
	}
	s := &Submitter{
		cfg:      cfg,
		jobs:     jobs,
		logger:   logging.NewComponentLogger(nil, component),
		newToken: uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Prepare validates req, plans the rendition ladder for the configured
// source profile and assembles the job request. It performs no network I/O.
func (s *Submitter) Prepare(_ context.Context, req Request) (jobspec.JobRequest, []rendition.OutputDescriptor, jobspec.Layout, error) {
	req, err := s.normalize(req)
	if err != nil {
		return jobspec.JobRequest{}, nil, jobspec.Layout{}, err
	}

	source := rendition.SourceProfile{Width: s.cfg.Source.Width, Height: s.cfg.Source.Height}
	ladder, err := rendition.PlanLadder(source, rendition.DefaultTiers())
	if err != nil {
		return jobspec.JobRequest{}, nil, jobspec.Layout{}, services.Wrap(services.ErrConfiguration, component, "plan ladder", fmt.Sprintf("source %s", source), err)
	}

	layout, err := jobspec.NewLayout(req.Input, s.cfg.Output.Subdir)
	if err != nil {
		return jobspec.JobRequest{}, nil, jobspec.Layout{}, services.Wrap(services.ErrValidation, component, "derive outputs", "", err)
	}

	job, err := jobspec.Build(jobspec.Params{
		Role:        req.Role,
		Input:       req.Input,
		Layout:      layout,
		Renditions:  ladder,
		ClientToken: s.newToken(),
	})
	if err != nil {
		return jobspec.JobRequest{}, nil, jobspec.Layout{}, services.Wrap(services.ErrValidation, component, "assemble job", "", err)
	}
	return job, ladder, layout, nil
}

// Submit runs the full sequence and returns the created job.
func (s *Submitter) Submit(ctx context.Context, req Request) (Result, error) {
	if s.jobs == nil {
		return Result{}, services.Wrap(services.ErrConfiguration, component, "submit", "MediaConvert client unavailable", nil)
	}
	req, err := s.normalize(req)
	if err != nil {
		return Result{}, err
	}

	if s.cfg.Preflight.VerifyInput && s.verifier != nil {
		stageCtx := services.WithStage(ctx, "preflight")
		info, err := s.verifier.VerifyInput(stageCtx, req.Input)
		if err != nil {
			s.fail(stageCtx, err)
			return Result{}, err
		}
		logging.WithContext(stageCtx, s.logger).Info("input verified",
			logging.String(logging.FieldEventType, "stage_complete"),
			logging.String("input", req.Input),
			logging.Any("size_bytes", info.Size),
		)
	}

	endpoint, err := s.resolveEndpoint(ctx)
	if err != nil {
		return Result{}, err
	}

	job, ladder, layout, err := s.Prepare(ctx, req)
	if err != nil {
		s.fail(services.WithStage(ctx, "prepare"), err)
		return Result{}, err
	}

	stageCtx := services.WithRequestID(services.WithStage(ctx, "create"), job.ClientRequestToken)
	logger := logging.WithContext(stageCtx, s.logger)
	logger.Info("submitting job",
		logging.String(logging.FieldEventType, "stage_start"),
		logging.String("endpoint", endpoint),
		logging.String("role", job.Role),
		logging.String("input", job.Input.FileInput),
		logging.String("output", layout.Prefix),
		logging.Int("renditions", len(job.Renditions())),
		logging.Bool("input_verified", s.cfg.Preflight.VerifyInput && s.verifier != nil),
	)

	started := time.Now()
	jobID, err := s.jobs.CreateJob(stageCtx, endpoint, job)
	if err != nil {
		s.fail(stageCtx, err)
		return Result{}, err
	}
	logger.Info("job created",
		logging.String(logging.FieldEventType, "stage_complete"),
		logging.String("job_id", jobID),
		logging.Duration("elapsed", time.Since(started)),
	)

	return Result{
		JobID:      jobID,
		Endpoint:   endpoint,
		Role:       job.Role,
		Input:      job.Input.FileInput,
		Token:      job.ClientRequestToken,
		Layout:     layout,
		Renditions: ladder,
	}, nil
}

// resolveEndpoint prefers a configured endpoint and otherwise takes the first
// discovered one.
func (s *Submitter) resolveEndpoint(ctx context.Context) (string, error) {
	if configured := strings.TrimSpace(s.cfg.Service.EndpointURL); configured != "" {
		s.logger.Debug("using configured endpoint",
			logging.Args(logging.DecisionAttrs("endpoint_source", "config", "service.endpoint_url set")...)...)
		return configured, nil
	}

	stageCtx := services.WithStage(ctx, "discover")
	endpoints, err := s.jobs.DescribeEndpoints(stageCtx)
	if err != nil {
		s.fail(stageCtx, err)
		return "", err
	}
	if len(endpoints) == 0 {
		err := services.Wrap(services.ErrNotFound, component, "discover endpoint", "Cannot find MediaConvert service endpoint URL", nil)
		s.fail(stageCtx, err)
		return "", err
	}
	logging.WithContext(stageCtx, s.logger).Debug("endpoint discovered",
		logging.String("endpoint", endpoints[0]),
		logging.Int("candidates", len(endpoints)),
	)
	return endpoints[0], nil
}

func (s *Submitter) normalize(req Request) (Request, error) {
	req.Role = strings.TrimSpace(req.Role)
	req.Input = strings.TrimSpace(req.Input)
	if req.Role == "" {
		req.Role = strings.TrimSpace(s.cfg.Service.RoleARN)
	}
	if req.Role == "" {
		return req, services.Wrap(services.ErrUsage, component, "submit", "role ARN is required", nil)
	}
	if req.Input == "" {
		return req, services.Wrap(services.ErrUsage, component, "submit", "input file is required", nil)
	}
	if _, err := jobspec.ParseLocation(req.Input); err != nil {
		return req, services.Wrap(services.ErrValidation, component, "submit", "", err)
	}
	return req, nil
}

func (s *Submitter) fail(ctx context.Context, err error) {
	logging.ErrorWithContext(logging.WithContext(ctx, s.logger), "stage failed", "stage_failure",
		logging.String("error_class", services.Classify(err)),
		logging.Error(err),
	)
}
