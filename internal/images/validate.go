package images

import (
	"encoding/base64"
	"fmt"
	"regexp"
	"strings"

	"alibi/internal/catalog"
)

const (
	maxExcuseTextLength = 2000
	// 7MB of base64 decodes to roughly a 5MB file.
	maxHeadshotBase64Length = 7 * 1024 * 1024
)

var base64Pattern = regexp.MustCompile(`^[A-Za-z0-9+/]*={0,2}$`)

// Request is an inbound image-generation request as decoded from the wire.
type Request struct {
	ExcuseText       string `json:"excuseText"`
	ComedicStyle     string `json:"comedicStyle"`
	HeadshotBase64   string `json:"headshotBase64,omitempty"`
	HeadshotMimeType string `json:"headshotMimeType,omitempty"`
}

// Headshot is a validated, decoded reference photo. It lives only for the
// duration of the request.
type Headshot struct {
	MimeType string
	Data     []byte
}

// ValidationError carries a user-presentable rejection reason.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

func invalid(format string, args ...any) error {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// Validate checks an image request and decodes the optional headshot. It
// returns the canonical comedic style and the decoded headshot (nil when none
// was supplied). All checks run before any upstream call is made.
func Validate(req Request) (style string, headshot *Headshot, err error) {
	excuseText := strings.TrimSpace(req.ExcuseText)
	if excuseText == "" {
		return "", nil, invalid("Excuse text must be a non-empty string.")
	}
	if len(req.ExcuseText) > maxExcuseTextLength {
		return "", nil, invalid("Excuse text is too long. Please limit to %d characters.", maxExcuseTextLength)
	}

	if strings.TrimSpace(req.ComedicStyle) == "" {
		return "", nil, invalid("Comedic style is required.")
	}
	style, ok := catalog.ResolveStyle(req.ComedicStyle)
	if !ok {
		return "", nil, invalid("Invalid comedic style provided.")
	}

	if req.HeadshotBase64 == "" {
		return style, nil, nil
	}

	headshot, err = validateHeadshot(req.HeadshotBase64, req.HeadshotMimeType)
	if err != nil {
		return "", nil, err
	}
	return style, headshot, nil
}

func validateHeadshot(encoded, mimeType string) (*Headshot, error) {
	if mimeType == "" {
		return nil, invalid("Headshot MIME type is required when providing a headshot.")
	}

	switch mimeType {
	case "image/jpeg", "image/jpg", "image/png":
	default:
		return nil, invalid("Invalid image type. Only JPG and PNG are allowed.")
	}

	if len(encoded) > maxHeadshotBase64Length {
		return nil, invalid("Image is too large. Please use an image under 5MB.")
	}
	if !base64Pattern.MatchString(encoded) {
		return nil, invalid("Invalid image format. Please upload a valid image file.")
	}

	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil || len(data) == 0 {
		return nil, invalid("Invalid image format. Please upload a valid image file.")
	}

	return &Headshot{MimeType: mimeType, Data: data}, nil
}
