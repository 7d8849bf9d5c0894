// Package mediaconvert submits jobs to AWS Elemental MediaConvert.
//
// The Client wraps the two calls mcjob needs: account endpoint discovery and
// job creation against the discovered endpoint. Job requests arrive as
// provider-neutral jobspec values and are translated to SDK types here, so
// no other package imports the MediaConvert SDK. The SDK surface is reached
// through the API interface, which tests replace with fakes.
package mediaconvert
