// Package jobspec assembles a transcoding job request from planned
// renditions using plain, named configuration structs.
//
// The types here are provider neutral: they describe what the job asks for
// (input selection, the HLS ladder, the MP4 mezzanine, the thumbnail set)
// and leave wire translation to the service client. Everything in a
// JobRequest is decided before submission and never mutated afterwards.
package jobspec
