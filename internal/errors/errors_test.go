package errors

import (
	stderrors "errors"
	"strings"
	"testing"
)

func TestNew_RegisteredCode(t *testing.T) {
	err := New("E002")
	if err.Code != "E002" {
		t.Errorf("Code = %q, want E002", err.Code)
	}
	if err.Category != CategoryRouting {
		t.Errorf("Category = %q, want routing", err.Category)
	}
	if err.Message == "" || err.Suggestion == "" {
		t.Error("expected registered template to fill message and suggestion")
	}
	if got := err.Error(); got != "E002: "+err.Message {
		t.Errorf("Error() = %q", got)
	}
}

func TestNew_UnknownCode(t *testing.T) {
	err := New("E999")
	if err.Code != "E999" {
		t.Errorf("Code = %q, want E999", err.Code)
	}
	if err.Message != "Unknown error" {
		t.Errorf("Message = %q, want Unknown error", err.Message)
	}
}

func TestWrapAndUnwrap(t *testing.T) {
	cause := stderrors.New("file not found")
	err := New("E200").Wrap(cause)

	if !stderrors.Is(err, cause) {
		t.Error("expected errors.Is to find the wrapped cause")
	}

	var ve *VersoError
	if !stderrors.As(error(err), &ve) {
		t.Error("expected errors.As to match *VersoError")
	}
}

func TestFromError(t *testing.T) {
	if got := FromError(nil, "E200"); got != nil {
		t.Errorf("FromError(nil) = %v, want nil", got)
	}

	ve := New("E201")
	if got := FromError(ve, "E200"); got != ve {
		t.Error("expected existing VersoError to pass through unchanged")
	}

	wrapped := FromError(stderrors.New("boom"), "E200")
	if wrapped.Code != "E200" {
		t.Errorf("Code = %q, want E200", wrapped.Code)
	}
	if wrapped.Wrapped == nil {
		t.Error("expected cause to be wrapped")
	}
}

func TestFormat_PlainText(t *testing.T) {
	DisableColors()
	defer EnableColors()

	err := New("E202").
		WithDetail("base_url is %q", "relative/path").
		Wrap(stderrors.New("parse failed"))

	out := err.Format()
	for _, want := range []string{
		"ERROR E202",
		"Base URL must be absolute",
		`base_url is "relative/path"`,
		"caused by: parse failed",
		"hint:",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Format() missing %q in:\n%s", want, out)
		}
	}
	if strings.Contains(out, "\033[") {
		t.Error("expected no ANSI codes with colors disabled")
	}
}
