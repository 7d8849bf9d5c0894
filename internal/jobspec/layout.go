package jobspec

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidLocator is returned for inputs that are not s3://bucket/key URLs.
var ErrInvalidLocator = errors.New("invalid input locator")

// Layout is the set of destinations derived from the input location.
type Layout struct {
	Prefix     string `json:"prefix"`
	HLS        string `json:"hls"`
	MP4        string `json:"mp4"`
	Thumbnails string `json:"thumbnails"`
}

// Location is a parsed s3:// object locator.
type Location struct {
	Bucket string
	Key    string
}

// ParseLocation splits an s3://bucket/key URL. The key is taken verbatim:
// S3 keys may contain '#', '?' and '%', so no URL unescaping is applied.
func ParseLocation(locator string) (Location, error) {
	trimmed := strings.TrimSpace(locator)
	rest, ok := strings.CutPrefix(trimmed, "s3://")
	if !ok {
		return Location{}, fmt.Errorf("%w: %q: scheme must be s3", ErrInvalidLocator, locator)
	}
	bucket, key, _ := strings.Cut(rest, "/")
	if bucket == "" {
		return Location{}, fmt.Errorf("%w: %q: missing bucket", ErrInvalidLocator, locator)
	}
	if key == "" || strings.HasSuffix(key, "/") {
		return Location{}, fmt.Errorf("%w: %q: missing object key", ErrInvalidLocator, locator)
	}
	return Location{Bucket: bucket, Key: key}, nil
}

// NewLayout places outputs in subdir next to the input object:
// s3://bucket/path/in.mp4 with subdir "out/" yields the prefix
// s3://bucket/path/out/.
func NewLayout(locator, subdir string) (Layout, error) {
	if _, err := ParseLocation(locator); err != nil {
		return Layout{}, err
	}
	locator = strings.TrimSpace(locator)
	subdir = strings.Trim(strings.TrimSpace(subdir), "/")

	prefix := locator[:strings.LastIndex(locator, "/")+1]
	if subdir != "" {
		prefix += subdir + "/"
	}
	return Layout{
		Prefix:     prefix,
		HLS:        prefix + "index",
		MP4:        prefix + "mp4/",
		Thumbnails: prefix + "thumbs/",
	}, nil
}
