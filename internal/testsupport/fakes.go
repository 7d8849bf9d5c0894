package testsupport

import (
	"context"
	"sync"

	"mcjob/internal/jobspec"
	"mcjob/internal/preflight"
)

// FakeJobService records MediaConvert calls and returns canned results.
type FakeJobService struct {
	mu sync.Mutex

	Endpoints   []string
	DescribeErr error
	JobID       string
	CreateErr   error

	DescribeCalls int
	CreateCalls   int
	LastEndpoint  string
	LastRequest   jobspec.JobRequest
}

// DescribeEndpoints returns Endpoints or DescribeErr.
func (f *FakeJobService) DescribeEndpoints(context.Context) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.DescribeCalls++
	if f.DescribeErr != nil {
		return nil, f.DescribeErr
	}
	return append([]string(nil), f.Endpoints...), nil
}

// CreateJob records the request and returns JobID or CreateErr.
func (f *FakeJobService) CreateJob(_ context.Context, endpointURL string, req jobspec.JobRequest) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.CreateCalls++
	f.LastEndpoint = endpointURL
	f.LastRequest = req
	if f.CreateErr != nil {
		return "", f.CreateErr
	}
	return f.JobID, nil
}

// FakeVerifier answers input preflight checks.
type FakeVerifier struct {
	Err     error
	Checked []string
}

// VerifyInput records locator and returns Err.
func (f *FakeVerifier) VerifyInput(_ context.Context, locator string) (preflight.Result, error) {
	f.Checked = append(f.Checked, locator)
	if f.Err != nil {
		return preflight.Result{}, f.Err
	}
	return preflight.Result{Size: 1}, nil
}
