package rendition

import (
	"errors"
	"fmt"
)

// ErrInvalidDimensions is returned when a source or target dimension is not positive.
var ErrInvalidDimensions = errors.New("invalid dimensions")

const (
	heightAlignment = 4
	minHeight       = heightAlignment

	highProfileMinHeight = 720
	highProfileMinWidth  = 1280
)

// ScaleHeight returns the aspect-preserving height for targetWidth, rounded
// to the nearest line and then snapped down to a multiple of four. Results
// smaller than four lines are clamped to four.
func ScaleHeight(source SourceProfile, targetWidth int) (int, error) {
	if err := source.Validate(); err != nil {
		return 0, err
	}
	if targetWidth <= 0 {
		return 0, fmt.Errorf("%w: target width %d", ErrInvalidDimensions, targetWidth)
	}

	num := int64(source.Height) * int64(targetWidth)
	den := int64(source.Width)
	height := (2*num + den) / (2 * den)
	height -= height % heightAlignment
	if height < minHeight {
		height = minHeight
	}
	return int(height), nil
}

// SelectProfile picks HIGH only when both the planned height exceeds 720
// and the target width exceeds 1280.
func SelectProfile(height, targetWidth int) CodecProfile {
	if height > highProfileMinHeight && targetWidth > highProfileMinWidth {
		return ProfileHigh
	}
	return ProfileMain
}

// Plan computes the output descriptor for one tier.
func Plan(source SourceProfile, tier Tier) (OutputDescriptor, error) {
	height, err := ScaleHeight(source, tier.TargetWidth)
	if err != nil {
		return OutputDescriptor{}, fmt.Errorf("plan %s: %w", tier.Name, err)
	}
	return OutputDescriptor{
		Name:         tier.Name,
		NameModifier: tier.NameModifier,
		Width:        tier.TargetWidth,
		Height:       height,
		MaxBitrate:   tier.MaxBitrate,
		QualityLevel: tier.QualityLevel,
		Profile:      SelectProfile(height, tier.TargetWidth),
	}, nil
}

// PlanLadder plans every tier in order. The first failing tier aborts the ladder.
func PlanLadder(source SourceProfile, tiers []Tier) ([]OutputDescriptor, error) {
	if len(tiers) == 0 {
		return nil, errors.New("plan ladder: no tiers")
	}
	out := make([]OutputDescriptor, 0, len(tiers))
	for _, tier := range tiers {
		desc, err := Plan(source, tier)
		if err != nil {
			return nil, err
		}
		out = append(out, desc)
	}
	return out, nil
}
