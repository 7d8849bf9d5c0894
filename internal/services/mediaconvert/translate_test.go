package mediaconvert

import (
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/mediaconvert/types"
)

func TestCreateJobInputGroups(t *testing.T) {
	input, err := CreateJobInput(sampleRequest(t))
	if err != nil {
		t.Fatalf("CreateJobInput: %v", err)
	}
	settings := input.Settings
	if len(settings.Inputs) != 1 {
		t.Fatalf("expected one input, got %d", len(settings.Inputs))
	}
	in := settings.Inputs[0]
	if aws.ToString(in.FileInput) != "s3://bucket/videos/clip.mp4" {
		t.Fatalf("unexpected file input %q", aws.ToString(in.FileInput))
	}
	if _, ok := in.AudioSelectors["Audio Selector 1"]; !ok {
		t.Fatalf("missing audio selector: %v", in.AudioSelectors)
	}

	groups := settings.OutputGroups
	if len(groups) != 3 {
		t.Fatalf("expected 3 output groups, got %d", len(groups))
	}
	wantTypes := []types.OutputGroupType{
		types.OutputGroupTypeHlsGroupSettings,
		types.OutputGroupTypeFileGroupSettings,
		types.OutputGroupTypeFileGroupSettings,
	}
	wantDest := []string{
		"s3://bucket/videos/mcjob/out/index",
		"s3://bucket/videos/mcjob/out/thumbs/",
		"s3://bucket/videos/mcjob/out/mp4/",
	}
	for i, g := range groups {
		if g.OutputGroupSettings.Type != wantTypes[i] {
			t.Fatalf("group %d: type %s, want %s", i, g.OutputGroupSettings.Type, wantTypes[i])
		}
		var dest string
		if g.OutputGroupSettings.HlsGroupSettings != nil {
			dest = aws.ToString(g.OutputGroupSettings.HlsGroupSettings.Destination)
		} else {
			dest = aws.ToString(g.OutputGroupSettings.FileGroupSettings.Destination)
		}
		if dest != wantDest[i] {
			t.Fatalf("group %d: destination %q, want %q", i, dest, wantDest[i])
		}
	}
}

func TestCreateJobInputHLSOutputs(t *testing.T) {
	input, err := CreateJobInput(sampleRequest(t))
	if err != nil {
		t.Fatalf("CreateJobInput: %v", err)
	}
	hls := input.Settings.OutputGroups[0]
	if got := aws.ToInt32(hls.OutputGroupSettings.HlsGroupSettings.SegmentLength); got != 4 {
		t.Fatalf("segment length %d, want 4", got)
	}

	tests := []struct {
		modifier string
		width    int32
		height   int32
		bitrate  int32
		quality  int32
		profile  types.H264CodecProfile
	}{
		{"_low", 640, 360, 750000, 7, types.H264CodecProfileMain},
		{"_medium", 1280, 720, 1200000, 7, types.H264CodecProfileMain},
		{"_high", 1920, 1080, 3500000, 8, types.H264CodecProfileHigh},
	}
	if len(hls.Outputs) != len(tests) {
		t.Fatalf("expected %d HLS outputs, got %d", len(tests), len(hls.Outputs))
	}
	for i, tt := range tests {
		out := hls.Outputs[i]
		if aws.ToString(out.NameModifier) != tt.modifier {
			t.Fatalf("output %d: modifier %q, want %q", i, aws.ToString(out.NameModifier), tt.modifier)
		}
		if out.ContainerSettings.Container != types.ContainerTypeM3u8 {
			t.Fatalf("output %d: container %s", i, out.ContainerSettings.Container)
		}
		if aws.ToString(out.OutputSettings.HlsSettings.SegmentModifier) != "_$dt$" {
			t.Fatalf("output %d: segment modifier %q", i, aws.ToString(out.OutputSettings.HlsSettings.SegmentModifier))
		}
		video := out.VideoDescription
		if aws.ToInt32(video.Width) != tt.width || aws.ToInt32(video.Height) != tt.height {
			t.Fatalf("output %d: %dx%d, want %dx%d", i, aws.ToInt32(video.Width), aws.ToInt32(video.Height), tt.width, tt.height)
		}
		h264 := video.CodecSettings.H264Settings
		if h264.RateControlMode != types.H264RateControlModeQvbr {
			t.Fatalf("output %d: rate control %s", i, h264.RateControlMode)
		}
		if aws.ToInt32(h264.MaxBitrate) != tt.bitrate {
			t.Fatalf("output %d: max bitrate %d, want %d", i, aws.ToInt32(h264.MaxBitrate), tt.bitrate)
		}
		if aws.ToInt32(h264.QvbrSettings.QvbrQualityLevel) != tt.quality {
			t.Fatalf("output %d: quality %d, want %d", i, aws.ToInt32(h264.QvbrSettings.QvbrQualityLevel), tt.quality)
		}
		if h264.CodecProfile != tt.profile {
			t.Fatalf("output %d: profile %s, want %s", i, h264.CodecProfile, tt.profile)
		}
		if len(out.AudioDescriptions) != 1 {
			t.Fatalf("output %d: expected one audio description", i)
		}
	}
}

func TestCreateJobInputFileOutputs(t *testing.T) {
	input, err := CreateJobInput(sampleRequest(t))
	if err != nil {
		t.Fatalf("CreateJobInput: %v", err)
	}
	thumbs := input.Settings.OutputGroups[1].Outputs[0]
	if thumbs.ContainerSettings.Container != types.ContainerTypeRaw {
		t.Fatalf("thumbnail container %s", thumbs.ContainerSettings.Container)
	}
	if thumbs.VideoDescription.CodecSettings.Codec != types.VideoCodecFrameCapture {
		t.Fatalf("thumbnail codec %s", thumbs.VideoDescription.CodecSettings.Codec)
	}
	if len(thumbs.AudioDescriptions) != 0 {
		t.Fatalf("thumbnails should not carry audio")
	}

	mp4 := input.Settings.OutputGroups[2].Outputs[0]
	if mp4.ContainerSettings.Container != types.ContainerTypeMp4 {
		t.Fatalf("mp4 container %s", mp4.ContainerSettings.Container)
	}
	if aws.ToInt32(mp4.VideoDescription.Width) != 1280 || aws.ToInt32(mp4.VideoDescription.Height) != 720 {
		t.Fatalf("mp4 resolution %dx%d", aws.ToInt32(mp4.VideoDescription.Width), aws.ToInt32(mp4.VideoDescription.Height))
	}
	aac := mp4.AudioDescriptions[0].CodecSettings.AacSettings
	if aws.ToInt32(aac.Bitrate) != 160000 {
		t.Fatalf("mp4 audio bitrate %d", aws.ToInt32(aac.Bitrate))
	}
}

func TestCreateJobInputOmitsEmptyToken(t *testing.T) {
	req := sampleRequest(t)
	req.ClientRequestToken = ""
	input, err := CreateJobInput(req)
	if err != nil {
		t.Fatalf("CreateJobInput: %v", err)
	}
	if input.ClientRequestToken != nil {
		t.Fatalf("expected nil token, got %q", aws.ToString(input.ClientRequestToken))
	}
}
