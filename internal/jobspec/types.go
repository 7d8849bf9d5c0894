package jobspec

import "mcjob/internal/rendition"

// GroupKind selects the delivery format of an output group.
type GroupKind string

const (
	GroupHLS  GroupKind = "HLS_GROUP_SETTINGS"
	GroupFile GroupKind = "FILE_GROUP_SETTINGS"
)

// Container is the output wrapper format.
type Container string

const (
	ContainerM3U8 Container = "M3U8"
	ContainerMP4  Container = "MP4"
	ContainerRaw  Container = "RAW"
)

// VideoCodec identifies the encoder used for an output.
type VideoCodec string

const (
	CodecH264         VideoCodec = "H_264"
	CodecFrameCapture VideoCodec = "FRAME_CAPTURE"
)

// JobRequest is the complete submission for one input.
type JobRequest struct {
	Role               string        `json:"role"`
	ClientRequestToken string        `json:"clientRequestToken,omitempty"`
	Input              Input         `json:"input"`
	OutputGroups       []OutputGroup `json:"outputGroups"`
}

// Input selects the source file and how its streams are read.
type Input struct {
	FileInput         string `json:"fileInput"`
	AudioSelectorName string `json:"audioSelectorName"`
	FilterStrength    int    `json:"filterStrength"`
}

// OutputGroup is a named collection of outputs sharing a destination.
type OutputGroup struct {
	Name        string       `json:"name"`
	CustomName  string       `json:"customName"`
	Kind        GroupKind    `json:"kind"`
	Destination string       `json:"destination"`
	HLS         *HLSSettings `json:"hls,omitempty"`
	Outputs     []Output     `json:"outputs"`
}

// HLSSettings holds the streaming-group knobs that vary per job.
type HLSSettings struct {
	SegmentLength          int `json:"segmentLength"`
	MinSegmentLength       int `json:"minSegmentLength"`
	ProgramDateTimePeriod  int `json:"programDateTimePeriod"`
	TimedMetadataID3Period int `json:"timedMetadataId3Period"`
}

// Output is one rendition or artifact inside a group.
type Output struct {
	NameModifier    string         `json:"nameModifier,omitempty"`
	Extension       string         `json:"extension,omitempty"`
	SegmentModifier string         `json:"segmentModifier,omitempty"`
	AudioGroupID    string         `json:"audioGroupId,omitempty"`
	Container       Container      `json:"container"`
	Video           Video          `json:"video"`
	Audio           *Audio         `json:"audio,omitempty"`
	Rendition       string         `json:"rendition,omitempty"`
	Transport       *TransportPIDs `json:"transport,omitempty"`
}

// Video describes the encoded picture of an output.
type Video struct {
	Codec        VideoCodec    `json:"codec"`
	Width        int           `json:"width,omitempty"`
	Height       int           `json:"height,omitempty"`
	Sharpness    int           `json:"sharpness"`
	H264         *H264         `json:"h264,omitempty"`
	FrameCapture *FrameCapture `json:"frameCapture,omitempty"`
}

// H264 carries the QVBR rate control settings of an H.264 output.
type H264 struct {
	Profile      rendition.CodecProfile `json:"profile"`
	MaxBitrate   int                    `json:"maxBitrate"`
	QualityLevel int                    `json:"qualityLevel"`
	GOPSeconds   float64                `json:"gopSeconds"`
	BFrames      int                    `json:"bFrames"`
	RefFrames    int                    `json:"refFrames"`
	Slices       int                    `json:"slices"`
}

// FrameCapture configures still image extraction.
type FrameCapture struct {
	FramerateNumerator   int `json:"framerateNumerator"`
	FramerateDenominator int `json:"framerateDenominator"`
	MaxCaptures          int `json:"maxCaptures"`
	Quality              int `json:"quality"`
}

// Audio describes an AAC-LC audio track.
type Audio struct {
	Bitrate    int `json:"bitrate"`
	SampleRate int `json:"sampleRate"`
	Channels   int `json:"channels"`
}

// TransportPIDs holds the MPEG-TS packet identifiers of an M3U8 output.
type TransportPIDs struct {
	PMT             int   `json:"pmt"`
	Video           int   `json:"video"`
	Audio           []int `json:"audio"`
	PrivateMetadata int   `json:"privateMetadata"`
	SCTE35          int   `json:"scte35"`
	TimedMetadata   int   `json:"timedMetadata"`
	ProgramNumber   int   `json:"programNumber"`
	AudioFramesPES  int   `json:"audioFramesPerPes"`
}
