package platform

import (
	"errors"
	"strings"
	"testing"
)

func stubClipboard(t *testing.T, unsupported bool, write func(string) error) {
	t.Helper()
	prevUnsupported, prevWrite := clipboardUnsupported, writeClipboard
	clipboardUnsupported = func() bool { return unsupported }
	writeClipboard = write
	t.Cleanup(func() {
		clipboardUnsupported, writeClipboard = prevUnsupported, prevWrite
	})
}

func TestCopyToClipboard_WritesTrimmedText(t *testing.T) {
	var got string
	stubClipboard(t, false, func(s string) error { got = s; return nil })

	if err := CopyToClipboard("  buy milk \n"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "buy milk" {
		t.Fatalf("unexpected clipboard content: %q", got)
	}
}

func TestCopyToClipboard_Errors(t *testing.T) {
	stubClipboard(t, true, func(string) error { return nil })
	if err := CopyToClipboard("x"); err == nil || !strings.Contains(err.Error(), "no clipboard") {
		t.Fatalf("expected unsupported error, got %v", err)
	}

	stubClipboard(t, false, func(string) error { return errors.New("xclip failed") })
	if err := CopyToClipboard("x"); err == nil {
		t.Fatal("expected write error")
	}

	if err := CopyToClipboard("   "); err == nil {
		t.Fatal("expected error for blank text")
	}
}
