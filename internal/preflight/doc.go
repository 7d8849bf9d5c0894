// Package preflight checks that a job's input object exists before any
// MediaConvert call is made.
//
// The check is opt-in (preflight.verify_input) because the MediaConvert
// role, not the caller, is what ultimately reads the input; a caller
// without s3:GetObject can still submit valid jobs.
package preflight
