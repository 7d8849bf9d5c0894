package mediaconvert

import (
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	mc "github.com/aws/aws-sdk-go-v2/service/mediaconvert"
	"github.com/aws/aws-sdk-go-v2/service/mediaconvert/types"

	"mcjob/internal/jobspec"
	"mcjob/internal/rendition"
)

// CreateJobInput translates a job request into the SDK request shape.
func CreateJobInput(req jobspec.JobRequest) (*mc.CreateJobInput, error) {
	settings, err := jobSettings(req)
	if err != nil {
		return nil, err
	}
	input := &mc.CreateJobInput{
		Role:     aws.String(req.Role),
		Settings: settings,
	}
	if req.ClientRequestToken != "" {
		input.ClientRequestToken = aws.String(req.ClientRequestToken)
	}
	return input, nil
}

func jobSettings(req jobspec.JobRequest) (*types.JobSettings, error) {
	groups := make([]types.OutputGroup, 0, len(req.OutputGroups))
	for _, group := range req.OutputGroups {
		g, err := outputGroup(group)
		if err != nil {
			return nil, err
		}
		groups = append(groups, g)
	}
	return &types.JobSettings{
		Inputs:       []types.Input{input(req.Input)},
		OutputGroups: groups,
	}, nil
}

func input(in jobspec.Input) types.Input {
	return types.Input{
		FileInput: aws.String(in.FileInput),
		AudioSelectors: map[string]types.AudioSelector{
			in.AudioSelectorName: {
				DefaultSelection: types.AudioDefaultSelectionDefault,
				Offset:           aws.Int32(0),
			},
		},
		VideoSelector: &types.VideoSelector{
			ColorSpace: types.ColorSpaceFollow,
			Rotate:     types.InputRotateDegree0,
		},
		FilterEnable:   types.InputFilterEnableAuto,
		FilterStrength: aws.Int32(int32(in.FilterStrength)),
		DeblockFilter:  types.InputDeblockFilterDisabled,
		DenoiseFilter:  types.InputDenoiseFilterDisabled,
		PsiControl:     types.InputPsiControlUsePsi,
		TimecodeSource: types.InputTimecodeSourceEmbedded,
	}
}

func outputGroup(group jobspec.OutputGroup) (types.OutputGroup, error) {
	outputs := make([]types.Output, 0, len(group.Outputs))
	for _, out := range group.Outputs {
		o, err := output(out)
		if err != nil {
			return types.OutputGroup{}, fmt.Errorf("group %s: %w", group.CustomName, err)
		}
		outputs = append(outputs, o)
	}

	settings := &types.OutputGroupSettings{}
	switch group.Kind {
	case jobspec.GroupHLS:
		if group.HLS == nil {
			return types.OutputGroup{}, fmt.Errorf("group %s: missing HLS settings", group.CustomName)
		}
		settings.Type = types.OutputGroupTypeHlsGroupSettings
		settings.HlsGroupSettings = hlsGroupSettings(group.Destination, *group.HLS)
	case jobspec.GroupFile:
		settings.Type = types.OutputGroupTypeFileGroupSettings
		settings.FileGroupSettings = &types.FileGroupSettings{
			Destination: aws.String(group.Destination),
		}
	default:
		return types.OutputGroup{}, fmt.Errorf("group %s: unsupported kind %q", group.CustomName, group.Kind)
	}

	return types.OutputGroup{
		Name:                aws.String(group.Name),
		CustomName:          aws.String(group.CustomName),
		OutputGroupSettings: settings,
		Outputs:             outputs,
	}, nil
}

func hlsGroupSettings(destination string, hls jobspec.HLSSettings) *types.HlsGroupSettings {
	return &types.HlsGroupSettings{
		Destination:            aws.String(destination),
		DirectoryStructure:     types.HlsDirectoryStructureSingleDirectory,
		ManifestDurationFormat: types.HlsManifestDurationFormatInteger,
		StreamInfResolution:    types.HlsStreamInfResolutionInclude,
		ClientCache:            types.HlsClientCacheEnabled,
		CaptionLanguageSetting: types.HlsCaptionLanguageSettingOmit,
		ManifestCompression:    types.HlsManifestCompressionNone,
		CodecSpecification:     types.HlsCodecSpecificationRfc4281,
		OutputSelection:        types.HlsOutputSelectionManifestsAndSegments,
		ProgramDateTime:        types.HlsProgramDateTimeExclude,
		ProgramDateTimePeriod:  aws.Int32(int32(hls.ProgramDateTimePeriod)),
		TimedMetadataId3Frame:  types.HlsTimedMetadataId3FramePriv,
		TimedMetadataId3Period: aws.Int32(int32(hls.TimedMetadataID3Period)),
		SegmentControl:         types.HlsSegmentControlSegmentedFiles,
		MinFinalSegmentLength:  aws.Float64(0),
		SegmentLength:          aws.Int32(int32(hls.SegmentLength)),
		MinSegmentLength:       aws.Int32(int32(hls.MinSegmentLength)),
	}
}

func output(out jobspec.Output) (types.Output, error) {
	container, err := containerSettings(out)
	if err != nil {
		return types.Output{}, err
	}
	video, err := videoDescription(out.Video)
	if err != nil {
		return types.Output{}, err
	}
	o := types.Output{
		ContainerSettings: container,
		VideoDescription:  video,
	}
	if out.NameModifier != "" {
		o.NameModifier = aws.String(out.NameModifier)
	}
	if out.Extension != "" {
		o.Extension = aws.String(out.Extension)
	}
	if out.Container == jobspec.ContainerM3U8 {
		o.OutputSettings = &types.OutputSettings{
			HlsSettings: &types.HlsSettings{
				SegmentModifier:    aws.String(out.SegmentModifier),
				AudioGroupId:       aws.String(out.AudioGroupID),
				IFrameOnlyManifest: types.HlsIFrameOnlyManifestExclude,
			},
		}
	}
	if out.Audio != nil {
		o.AudioDescriptions = []types.AudioDescription{audioDescription(*out.Audio)}
	}
	return o, nil
}

func containerSettings(out jobspec.Output) (*types.ContainerSettings, error) {
	switch out.Container {
	case jobspec.ContainerMP4:
		return &types.ContainerSettings{Container: types.ContainerTypeMp4}, nil
	case jobspec.ContainerRaw:
		return &types.ContainerSettings{Container: types.ContainerTypeRaw}, nil
	case jobspec.ContainerM3U8:
		pids := out.Transport
		if pids == nil {
			return nil, fmt.Errorf("output %s: m3u8 container requires transport PIDs", out.NameModifier)
		}
		audioPids := make([]int32, 0, len(pids.Audio))
		for _, pid := range pids.Audio {
			audioPids = append(audioPids, int32(pid))
		}
		return &types.ContainerSettings{
			Container: types.ContainerTypeM3u8,
			M3u8Settings: &types.M3u8Settings{
				AudioFramesPerPes:  aws.Int32(int32(pids.AudioFramesPES)),
				PcrControl:         types.M3u8PcrControlPcrEveryPesPacket,
				PmtPid:             aws.Int32(int32(pids.PMT)),
				PrivateMetadataPid: aws.Int32(int32(pids.PrivateMetadata)),
				ProgramNumber:      aws.Int32(int32(pids.ProgramNumber)),
				PatInterval:        aws.Int32(0),
				PmtInterval:        aws.Int32(0),
				Scte35Source:       types.M3u8Scte35SourceNone,
				Scte35Pid:          aws.Int32(int32(pids.SCTE35)),
				NielsenId3:         types.M3u8NielsenId3None,
				TimedMetadata:      types.TimedMetadataNone,
				TimedMetadataPid:   aws.Int32(int32(pids.TimedMetadata)),
				VideoPid:           aws.Int32(int32(pids.Video)),
				AudioPids:          audioPids,
			},
		}, nil
	default:
		return nil, fmt.Errorf("unsupported container %q", out.Container)
	}
}

func videoDescription(v jobspec.Video) (*types.VideoDescription, error) {
	desc := &types.VideoDescription{
		ScalingBehavior:   types.ScalingBehaviorDefault,
		Sharpness:         aws.Int32(int32(v.Sharpness)),
		AntiAlias:         types.AntiAliasEnabled,
		TimecodeInsertion: types.VideoTimecodeInsertionDisabled,
		ColorMetadata:     types.ColorMetadataInsert,
		DropFrameTimecode: types.DropFrameTimecodeEnabled,
	}
	if v.Width > 0 && v.Height > 0 {
		desc.Width = aws.Int32(int32(v.Width))
		desc.Height = aws.Int32(int32(v.Height))
	}

	switch v.Codec {
	case jobspec.CodecH264:
		if v.H264 == nil {
			return nil, fmt.Errorf("h264 output is missing codec settings")
		}
		desc.RespondToAfd = types.RespondToAfdNone
		desc.AfdSignaling = types.AfdSignalingNone
		desc.CodecSettings = &types.VideoCodecSettings{
			Codec:        types.VideoCodecH264,
			H264Settings: h264Settings(*v.H264),
		}
	case jobspec.CodecFrameCapture:
		if v.FrameCapture == nil {
			return nil, fmt.Errorf("frame capture output is missing capture settings")
		}
		fc := v.FrameCapture
		desc.CodecSettings = &types.VideoCodecSettings{
			Codec: types.VideoCodecFrameCapture,
			FrameCaptureSettings: &types.FrameCaptureSettings{
				FramerateNumerator:   aws.Int32(int32(fc.FramerateNumerator)),
				FramerateDenominator: aws.Int32(int32(fc.FramerateDenominator)),
				MaxCaptures:          aws.Int32(int32(fc.MaxCaptures)),
				Quality:              aws.Int32(int32(fc.Quality)),
			},
		}
	default:
		return nil, fmt.Errorf("unsupported video codec %q", v.Codec)
	}
	return desc, nil
}

func h264Profile(profile rendition.CodecProfile) types.H264CodecProfile {
	if profile == rendition.ProfileHigh {
		return types.H264CodecProfileHigh
	}
	return types.H264CodecProfileMain
}

func h264Settings(s jobspec.H264) *types.H264Settings {
	return &types.H264Settings{
		RateControlMode:    types.H264RateControlModeQvbr,
		QvbrSettings:       &types.H264QvbrSettings{QvbrQualityLevel: aws.Int32(int32(s.QualityLevel))},
		MaxBitrate:         aws.Int32(int32(s.MaxBitrate)),
		CodecProfile:       h264Profile(s.Profile),
		CodecLevel:         types.H264CodecLevelAuto,
		ParControl:         types.H264ParControlInitializeFromSource,
		QualityTuningLevel: types.H264QualityTuningLevelSinglePass,
		FramerateControl:   types.H264FramerateControlInitializeFromSource,

		GopSize:                             aws.Float64(s.GOPSeconds),
		GopSizeUnits:                        types.H264GopSizeUnitsSeconds,
		NumberBFramesBetweenReferenceFrames: aws.Int32(int32(s.BFrames)),
		GopClosedCadence:                    aws.Int32(1),
		GopBReference:                       types.H264GopBReferenceDisabled,
		NumberReferenceFrames:               aws.Int32(int32(s.RefFrames)),
		DynamicSubGop:                       types.H264DynamicSubGopStatic,
		MinIInterval:                        aws.Int32(0),

		SlowPal:                      types.H264SlowPalDisabled,
		Syntax:                       types.H264SyntaxDefault,
		FieldEncoding:                types.H264FieldEncodingPaff,
		SceneChangeDetect:            types.H264SceneChangeDetectEnabled,
		Telecine:                     types.H264TelecineNone,
		FramerateConversionAlgorithm: types.H264FramerateConversionAlgorithmDuplicateDrop,
		EntropyEncoding:              types.H264EntropyEncodingCabac,
		Slices:                       aws.Int32(int32(s.Slices)),
		UnregisteredSeiTimecode:      types.H264UnregisteredSeiTimecodeDisabled,
		RepeatPps:                    types.H264RepeatPpsDisabled,
		Softness:                     aws.Int32(0),
		InterlaceMode:                types.H264InterlaceModeProgressive,

		AdaptiveQuantization:         types.H264AdaptiveQuantizationHigh,
		SpatialAdaptiveQuantization:  types.H264SpatialAdaptiveQuantizationEnabled,
		TemporalAdaptiveQuantization: types.H264TemporalAdaptiveQuantizationEnabled,
		FlickerAdaptiveQuantization:  types.H264FlickerAdaptiveQuantizationDisabled,
	}
}

func audioDescription(a jobspec.Audio) types.AudioDescription {
	return types.AudioDescription{
		AudioTypeControl:    types.AudioTypeControlFollowInput,
		LanguageCodeControl: types.AudioLanguageCodeControlFollowInput,
		CodecSettings: &types.AudioCodecSettings{
			Codec: types.AudioCodecAac,
			AacSettings: &types.AacSettings{
				CodecProfile:                   types.AacCodecProfileLc,
				RateControlMode:                types.AacRateControlModeCbr,
				CodingMode:                     aacCodingMode(a.Channels),
				SampleRate:                     aws.Int32(int32(a.SampleRate)),
				Bitrate:                        aws.Int32(int32(a.Bitrate)),
				RawFormat:                      types.AacRawFormatNone,
				Specification:                  types.AacSpecificationMpeg4,
				AudioDescriptionBroadcasterMix: types.AacAudioDescriptionBroadcasterMixNormal,
			},
		},
	}
}

func aacCodingMode(channels int) types.AacCodingMode {
	if channels == 1 {
		return types.AacCodingModeCodingMode10
	}
	return types.AacCodingModeCodingMode20
}
