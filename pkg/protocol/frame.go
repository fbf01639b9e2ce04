package protocol

import (
	"encoding/json"
	"fmt"
)

// FrameType discriminates wire frames.
type FrameType string

const (
	// FrameNavigate is sent by the client to request a navigation.
	FrameNavigate FrameType = "navigate"

	// FrameNavPush tells the client to push a new history entry.
	FrameNavPush FrameType = "nav_push"

	// FrameNavReplace tells the client to replace the current history
	// entry.
	FrameNavReplace FrameType = "nav_replace"

	// FrameNavExternal tells the client to leave the app for a foreign
	// origin with a full page load.
	FrameNavExternal FrameType = "nav_external"

	// FrameError reports a failed operation to the client.
	FrameError FrameType = "error"
)

// MaxFrameSize is the largest frame Decode accepts, in bytes. Navigation
// frames are tiny; anything larger is hostile or corrupt.
const MaxFrameSize = 64 * 1024

// Frame is a single protocol message.
type Frame struct {
	// Type discriminates the frame.
	Type FrameType `json:"type"`

	// URL is the navigation target or result, depending on Type.
	URL string `json:"url,omitempty"`

	// Replace requests history replacement on a navigate frame.
	Replace bool `json:"replace,omitempty"`

	// Code is a machine-readable error code on error frames.
	Code string `json:"code,omitempty"`

	// Message is a human-readable error description on error frames.
	Message string `json:"message,omitempty"`
}

// NewNavPushFrame builds a nav_push frame for the given absolute URL.
func NewNavPushFrame(url string) *Frame {
	return &Frame{Type: FrameNavPush, URL: url}
}

// NewNavReplaceFrame builds a nav_replace frame for the given absolute URL.
func NewNavReplaceFrame(url string) *Frame {
	return &Frame{Type: FrameNavReplace, URL: url}
}

// NewNavExternalFrame builds a nav_external frame for the given URL.
func NewNavExternalFrame(url string) *Frame {
	return &Frame{Type: FrameNavExternal, URL: url}
}

// NewErrorFrame builds an error frame.
func NewErrorFrame(code, message string) *Frame {
	return &Frame{Type: FrameError, Code: code, Message: message}
}

// Encode serializes a frame to its wire form.
func Encode(f *Frame) ([]byte, error) {
	if f == nil || f.Type == "" {
		return nil, fmt.Errorf("protocol: frame has no type")
	}
	return json.Marshal(f)
}

// Decode parses a wire frame, enforcing the size limit and a known type.
func Decode(data []byte) (*Frame, error) {
	if len(data) > MaxFrameSize {
		return nil, fmt.Errorf("protocol: frame of %d bytes exceeds limit", len(data))
	}

	var f Frame
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("protocol: malformed frame: %w", err)
	}

	switch f.Type {
	case FrameNavigate, FrameNavPush, FrameNavReplace, FrameNavExternal, FrameError:
		return &f, nil
	case "":
		return nil, fmt.Errorf("protocol: frame has no type")
	default:
		return nil, fmt.Errorf("protocol: unknown frame type %q", f.Type)
	}
}
