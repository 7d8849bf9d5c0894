// Package main hosts the mcjob CLI entrypoint and command graph.
//
// The Cobra command tree resolves configuration once per invocation, builds
// the AWS clients lazily (only commands that talk to MediaConvert pay for
// credential resolution) and hands the work to internal/submission. Exit
// codes come from services.ExitCode so the classification of an error, not
// the command that produced it, decides the process status.
package main
