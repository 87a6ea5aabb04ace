package platform

import (
	"errors"
	"strings"

	"github.com/atotto/clipboard"
)

var (
	clipboardUnsupported = func() bool { return clipboard.Unsupported }
	writeClipboard       = clipboard.WriteAll
)

// CopyToClipboard puts text on the system clipboard.
func CopyToClipboard(text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return errors.New("nothing to copy")
	}
	if clipboardUnsupported() {
		return errors.New("no clipboard command available")
	}
	return writeClipboard(text)
}
