// Package services defines shared utilities consumed by the submission
// workflow and its external integrations.
//
// Key responsibilities:
//   - Context helpers that stamp stage names and correlation identifiers for
//     logging.
//   - Structured error markers plus the Wrap helper that classify failures
//     so the CLI entrypoint can pick an exit code without inspecting messages.
//
// Integrations live in subpackages (mediaconvert); they report failures
// through Wrap so classification stays uniform.
package services
