package rendition

// Segment modifier appended to every HLS segment name.
const SegmentModifier = "_$dt$"

var (
	TierLow = Tier{
		Name:         "hls_low",
		NameModifier: "_low",
		MaxBitrate:   750000,
		QualityLevel: 7,
		TargetWidth:  640,
	}
	TierMedium = Tier{
		Name:         "hls_medium",
		NameModifier: "_medium",
		MaxBitrate:   1200000,
		QualityLevel: 7,
		TargetWidth:  1280,
	}
	TierHigh = Tier{
		Name:         "hls_high",
		NameModifier: "_high",
		MaxBitrate:   3500000,
		QualityLevel: 8,
		TargetWidth:  1920,
	}
)

// DefaultTiers returns the low, medium and high tiers in ladder order.
// The slice is freshly allocated on every call.
func DefaultTiers() []Tier {
	return []Tier{TierLow, TierMedium, TierHigh}
}

// TierByName looks up one of the predefined tiers. Both the full name
// ("hls_low") and the short form ("low") are accepted.
func TierByName(name string) (Tier, bool) {
	for _, tier := range DefaultTiers() {
		if name == tier.Name || "hls_"+name == tier.Name {
			return tier, true
		}
	}
	return Tier{}, false
}
