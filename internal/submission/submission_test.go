package submission

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"mcjob/internal/logging"
	"mcjob/internal/rendition"
	"mcjob/internal/services"
	"mcjob/internal/testsupport"
)

const testInput = "s3://media-in/uploads/clip.mp4"

func fixedToken() string { return "11111111-2222-3333-4444-555555555555" }

func TestPrepareBuildsLadderAndLayout(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	s := New(cfg, nil, WithTokenGenerator(fixedToken))

	job, ladder, layout, err := s.Prepare(context.Background(), Request{Input: testInput})
	if err != nil {
		t.Fatalf("Prepare: %v", err)
	}
	if job.Role != testsupport.TestRoleARN {
		t.Fatalf("expected configured role, got %q", job.Role)
	}
	if job.ClientRequestToken != fixedToken() {
		t.Fatalf("unexpected token %q", job.ClientRequestToken)
	}
	if layout.Prefix != "s3://media-in/uploads/mcjob/out/" {
		t.Fatalf("unexpected prefix %q", layout.Prefix)
	}
	wantHeights := []int{360, 720, 1080}
	if len(ladder) != len(wantHeights) {
		t.Fatalf("expected %d renditions, got %d", len(wantHeights), len(ladder))
	}
	for i, h := range wantHeights {
		if ladder[i].Height != h {
			t.Fatalf("rendition %d: height %d, want %d", i, ladder[i].Height, h)
		}
	}
	if ladder[2].Profile != rendition.ProfileHigh {
		t.Fatalf("expected HIGH profile for top rendition")
	}
}

func TestPrepareUsesConfiguredSource(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithSource(1440, 1080))
	s := New(cfg, nil)

	_, ladder, _, err := s.Prepare(context.Background(), Request{Input: testInput})
	if err != nil {
		t.Fatalf("Prepare: %v", err)
	}
	if ladder[0].Height != 480 {
		t.Fatalf("expected 4:3 low rendition height 480, got %d", ladder[0].Height)
	}
}

func TestPrepareValidation(t *testing.T) {
	tests := []struct {
		name string
		opts []testsupport.ConfigOption
		req  Request
		want error
	}{
		{name: "missing role", opts: []testsupport.ConfigOption{testsupport.WithoutRole()}, req: Request{Input: testInput}, want: services.ErrUsage},
		{name: "missing input", req: Request{Role: "arn:aws:iam::1:role/x"}, want: services.ErrUsage},
		{name: "bad locator", req: Request{Input: "/local/clip.mp4"}, want: services.ErrValidation},
		{name: "bad source", opts: []testsupport.ConfigOption{testsupport.WithSource(0, 1080)}, req: Request{Input: testInput}, want: services.ErrConfiguration},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(testsupport.NewConfig(t, tt.opts...), nil)
			_, _, _, err := s.Prepare(context.Background(), tt.req)
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestSubmitDiscoversEndpoint(t *testing.T) {
	jobs := &testsupport.FakeJobService{
		Endpoints: []string{"https://first.example", "https://second.example"},
		JobID:     "1700000000000-abcdef",
	}
	s := New(testsupport.NewConfig(t), jobs, WithTokenGenerator(fixedToken))

	result, err := s.Submit(context.Background(), Request{Role: "arn:aws:iam::1:role/override", Input: testInput})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if result.JobID != "1700000000000-abcdef" {
		t.Fatalf("unexpected job id %q", result.JobID)
	}
	if result.Endpoint != "https://first.example" || jobs.LastEndpoint != "https://first.example" {
		t.Fatalf("expected first endpoint, got result=%q call=%q", result.Endpoint, jobs.LastEndpoint)
	}
	if jobs.LastRequest.Role != "arn:aws:iam::1:role/override" {
		t.Fatalf("explicit role should win, got %q", jobs.LastRequest.Role)
	}
	if result.Token != fixedToken() {
		t.Fatalf("unexpected token %q", result.Token)
	}
}

func TestSubmitUsesConfiguredEndpoint(t *testing.T) {
	jobs := &testsupport.FakeJobService{JobID: "job-1"}
	cfg := testsupport.NewConfig(t, testsupport.WithEndpoint("https://pinned.example"))
	s := New(cfg, jobs)

	result, err := s.Submit(context.Background(), Request{Input: testInput})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if jobs.DescribeCalls != 0 {
		t.Fatalf("discovery should be skipped, got %d calls", jobs.DescribeCalls)
	}
	if result.Endpoint != "https://pinned.example" {
		t.Fatalf("unexpected endpoint %q", result.Endpoint)
	}
}

func TestSubmitNoEndpoints(t *testing.T) {
	jobs := &testsupport.FakeJobService{}
	s := New(testsupport.NewConfig(t), jobs)

	_, err := s.Submit(context.Background(), Request{Input: testInput})
	if !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if services.ExitCode(err) != 1 {
		t.Fatalf("missing endpoint must exit 1")
	}
	if jobs.CreateCalls != 0 {
		t.Fatalf("CreateJob should not be called")
	}
}

func TestSubmitServiceErrorExitsZero(t *testing.T) {
	jobs := &testsupport.FakeJobService{
		Endpoints: []string{"https://e.example"},
		CreateErr: services.Wrap(services.ErrService, "mediaconvert", "create job", "BadRequestException: bad role", nil),
	}
	s := New(testsupport.NewConfig(t), jobs)

	_, err := s.Submit(context.Background(), Request{Input: testInput})
	if !errors.Is(err, services.ErrService) {
		t.Fatalf("expected ErrService, got %v", err)
	}
	if services.ExitCode(err) != 0 {
		t.Fatalf("service errors exit 0")
	}
}

func TestSubmitPreflight(t *testing.T) {
	missing := services.Wrap(services.ErrNotFound, "preflight", "verify input", "missing", nil)
	tests := []struct {
		name        string
		enabled     bool
		verifyErr   error
		wantErr     error
		wantChecks  int
		wantCreates int
	}{
		{name: "disabled", enabled: false, verifyErr: missing, wantChecks: 0, wantCreates: 1},
		{name: "enabled ok", enabled: true, wantChecks: 1, wantCreates: 1},
		{name: "enabled missing", enabled: true, verifyErr: missing, wantErr: services.ErrNotFound, wantChecks: 1, wantCreates: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			jobs := &testsupport.FakeJobService{Endpoints: []string{"https://e.example"}, JobID: "job"}
			verifier := &testsupport.FakeVerifier{Err: tt.verifyErr}
			cfg := testsupport.NewConfig(t, testsupport.WithVerifyInput(tt.enabled))
			s := New(cfg, jobs, WithVerifier(verifier))

			_, err := s.Submit(context.Background(), Request{Input: testInput})
			if tt.wantErr == nil && err != nil {
				t.Fatalf("Submit: %v", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
			if len(verifier.Checked) != tt.wantChecks {
				t.Fatalf("expected %d checks, got %d", tt.wantChecks, len(verifier.Checked))
			}
			if jobs.CreateCalls != tt.wantCreates {
				t.Fatalf("expected %d creates, got %d", tt.wantCreates, jobs.CreateCalls)
			}
		})
	}
}

func TestSubmitWithoutClient(t *testing.T) {
	s := New(testsupport.NewConfig(t), nil)
	_, err := s.Submit(context.Background(), Request{Input: testInput})
	if !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected ErrConfiguration, got %v", err)
	}
}

func TestSubmitLogsJobSummary(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "submit.log")
	logger, err := logging.New(logging.Options{Format: "console", Level: "info", OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatalf("logging.New: %v", err)
	}
	jobs := &testsupport.FakeJobService{Endpoints: []string{"https://e.example"}, JobID: "job-7"}
	s := New(testsupport.NewConfig(t), jobs, WithLogger(logger), WithTokenGenerator(fixedToken))

	if _, err := s.Submit(context.Background(), Request{Input: testInput}); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	out := string(data)
	for _, want := range []string{
		"submission: submitting job",
		"renditions=3",
		"input_verified=false",
		"correlation_id=" + fixedToken(),
		"job_id=job-7",
		"elapsed=",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in log output:\n%s", want, out)
		}
	}
}
