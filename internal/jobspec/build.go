package jobspec

import (
	"errors"
	"fmt"
	"strings"

	"mcjob/internal/rendition"
)

const (
	hlsGroupName       = "Apple HLS"
	hlsGroupCustomName = "Example"
	fileGroupName      = "File Group"
	mp4CustomName      = "mp4"
	thumbsCustomName   = "thumbs"

	audioSelectorName = "Audio Selector 1"
	audioGroupID      = "program_audio"

	streamAudioBitrate = 96000
	mp4AudioBitrate    = 160000
	audioSampleRate    = 44100
	audioChannels      = 2

	mp4Width        = 1280
	mp4Height       = 720
	mp4MaxBitrate   = 2400000
	mp4QualityLevel = 8

	defaultSharpness = 50
)

// Params are the per-invocation inputs to Build.
type Params struct {
	Role        string
	Input       string
	Layout      Layout
	Renditions  []rendition.OutputDescriptor
	ClientToken string
}

// Build assembles the job request. Output groups are ordered HLS,
// thumbnails, MP4.
func Build(p Params) (JobRequest, error) {
	if strings.TrimSpace(p.Role) == "" {
		return JobRequest{}, errors.New("build job: role is required")
	}
	if _, err := ParseLocation(p.Input); err != nil {
		return JobRequest{}, fmt.Errorf("build job: %w", err)
	}
	if len(p.Renditions) == 0 {
		return JobRequest{}, errors.New("build job: at least one rendition is required")
	}
	if p.Layout.Prefix == "" {
		return JobRequest{}, errors.New("build job: output layout is empty")
	}

	return JobRequest{
		Role:               strings.TrimSpace(p.Role),
		ClientRequestToken: p.ClientToken,
		Input: Input{
			FileInput:         strings.TrimSpace(p.Input),
			AudioSelectorName: audioSelectorName,
		},
		OutputGroups: []OutputGroup{
			hlsGroup(p.Layout.HLS, p.Renditions),
			thumbnailGroup(p.Layout.Thumbnails),
			mp4Group(p.Layout.MP4),
		},
	}, nil
}

func hlsGroup(destination string, renditions []rendition.OutputDescriptor) OutputGroup {
	outputs := make([]Output, 0, len(renditions))
	for _, r := range renditions {
		outputs = append(outputs, streamOutput(r))
	}
	return OutputGroup{
		Name:        hlsGroupName,
		CustomName:  hlsGroupCustomName,
		Kind:        GroupHLS,
		Destination: destination,
		HLS: &HLSSettings{
			SegmentLength:          4,
			MinSegmentLength:       0,
			ProgramDateTimePeriod:  600,
			TimedMetadataID3Period: 10,
		},
		Outputs: outputs,
	}
}

func streamOutput(r rendition.OutputDescriptor) Output {
	return Output{
		Rendition:       r.Name,
		NameModifier:    r.NameModifier,
		SegmentModifier: rendition.SegmentModifier,
		AudioGroupID:    audioGroupID,
		Container:       ContainerM3U8,
		Transport:       defaultTransportPIDs(),
		Video: Video{
			Codec:     CodecH264,
			Width:     r.Width,
			Height:    r.Height,
			Sharpness: defaultSharpness,
			H264:      qvbr(r.Profile, r.MaxBitrate, r.QualityLevel),
		},
		Audio: &Audio{Bitrate: streamAudioBitrate, SampleRate: audioSampleRate, Channels: audioChannels},
	}
}

func mp4Group(destination string) OutputGroup {
	return OutputGroup{
		Name:        fileGroupName,
		CustomName:  mp4CustomName,
		Kind:        GroupFile,
		Destination: destination,
		Outputs: []Output{{
			Extension: "mp4",
			Container: ContainerMP4,
			Video: Video{
				Codec:     CodecH264,
				Width:     mp4Width,
				Height:    mp4Height,
				Sharpness: defaultSharpness,
				H264:      qvbr(rendition.ProfileMain, mp4MaxBitrate, mp4QualityLevel),
			},
			Audio: &Audio{Bitrate: mp4AudioBitrate, SampleRate: audioSampleRate, Channels: audioChannels},
		}},
	}
}

func thumbnailGroup(destination string) OutputGroup {
	return OutputGroup{
		Name:        fileGroupName,
		CustomName:  thumbsCustomName,
		Kind:        GroupFile,
		Destination: destination,
		Outputs: []Output{{
			Extension: "jpg",
			Container: ContainerRaw,
			Video: Video{
				Codec:     CodecFrameCapture,
				Sharpness: defaultSharpness,
				FrameCapture: &FrameCapture{
					FramerateNumerator:   1,
					FramerateDenominator: 1,
					MaxCaptures:          10000000,
					Quality:              80,
				},
			},
		}},
	}
}

func qvbr(profile rendition.CodecProfile, maxBitrate, level int) *H264 {
	return &H264{
		Profile:      profile,
		MaxBitrate:   maxBitrate,
		QualityLevel: level,
		GOPSeconds:   2,
		BFrames:      2,
		RefFrames:    3,
		Slices:       1,
	}
}

func defaultTransportPIDs() *TransportPIDs {
	return &TransportPIDs{
		PMT:             480,
		Video:           481,
		Audio:           []int{482, 483, 484, 485, 486, 487, 488, 489, 490, 491, 492},
		PrivateMetadata: 503,
		SCTE35:          500,
		TimedMetadata:   502,
		ProgramNumber:   1,
		AudioFramesPES:  4,
	}
}

// Renditions returns the H.264 outputs of the HLS group in ladder order.
func (r JobRequest) Renditions() []Output {
	for _, group := range r.OutputGroups {
		if group.Kind == GroupHLS {
			return group.Outputs
		}
	}
	return nil
}
