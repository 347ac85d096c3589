package domain

import "errors"

// Domain errors.
var (
	// ErrChannelInaccessible is returned when a configured channel cannot
	// be resolved (missing, or the bot lacks access).
	ErrChannelInaccessible = errors.New("channel inaccessible")

	// ErrDownloadFailed is returned when the video download fails.
	ErrDownloadFailed = errors.New("video download failed")

	// ErrNoMetadata is returned when the extractor yields no usable metadata.
	ErrNoMetadata = errors.New("no video metadata")

	// ErrNoDuration is returned when a clip's duration cannot be determined,
	// which makes a target bitrate impossible to compute.
	ErrNoDuration = errors.New("unknown clip duration")

	// ErrReplyFailed is returned when the reply to the originating message
	// could not be delivered.
	ErrReplyFailed = errors.New("reply failed")
)

// URLError wraps an error with the URL and operation it occurred in.
type URLError struct {
	URL string
	Op  string
	Err error
}

func (e *URLError) Error() string {
	return e.Op + " [" + e.URL + "]: " + e.Err.Error()
}

func (e *URLError) Unwrap() error {
	return e.Err
}

// NewURLError creates a new URLError.
func NewURLError(url, op string, err error) *URLError {
	return &URLError{URL: url, Op: op, Err: err}
}
