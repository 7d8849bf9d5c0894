// Package submission turns a role and an input locator into a created
// MediaConvert job.
//
// A submission runs as a short sequence of stages: optional input
// preflight, endpoint discovery (skipped when an endpoint is configured),
// ladder planning plus request assembly, and job creation. Each stage is
// logged with the job's client request token as correlation id so log lines
// can be matched to the job in the console. Prepare exposes the offline part
// of the sequence for dry runs.
package submission
