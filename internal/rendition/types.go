package rendition

import "fmt"

// CodecProfile identifies the H.264 profile requested for a rendition.
type CodecProfile string

const (
	// ProfileMain is the baseline profile used for SD and 720p renditions.
	ProfileMain CodecProfile = "MAIN"
	// ProfileHigh is used once the rendition exceeds 720 lines and 1280 columns.
	ProfileHigh CodecProfile = "HIGH"
)

// SourceProfile describes the frame size of the input asset.
type SourceProfile struct {
	Width  int
	Height int
}

// DefaultSource is the frame size assumed for submitted inputs.
var DefaultSource = SourceProfile{Width: 1920, Height: 1080}

func (s SourceProfile) String() string {
	return fmt.Sprintf("%dx%d", s.Width, s.Height)
}

// Validate reports whether both dimensions are positive.
func (s SourceProfile) Validate() error {
	if s.Width <= 0 || s.Height <= 0 {
		return fmt.Errorf("%w: source %s", ErrInvalidDimensions, s)
	}
	return nil
}

// Tier is one static rung of the streaming ladder.
type Tier struct {
	Name         string
	NameModifier string
	MaxBitrate   int
	QualityLevel int
	TargetWidth  int
}

// OutputDescriptor is the planned result for a single tier.
type OutputDescriptor struct {
	Name         string       `json:"name"`
	NameModifier string       `json:"nameModifier"`
	Width        int          `json:"width"`
	Height       int          `json:"height"`
	MaxBitrate   int          `json:"maxBitrate"`
	QualityLevel int          `json:"qualityLevel"`
	Profile      CodecProfile `json:"profile"`
}

func (d OutputDescriptor) Resolution() string {
	return fmt.Sprintf("%dx%d", d.Width, d.Height)
}
