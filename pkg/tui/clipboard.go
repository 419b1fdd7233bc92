package tui

import (
	"fmt"

	"github.com/atotto/clipboard"
)

var writeClipboard = clipboard.WriteAll

// ClipboardSink places exported content on the system clipboard. The file
// name is ignored.
type ClipboardSink struct{}

// Offer copies content to the clipboard.
func (ClipboardSink) Offer(_, _ string, content []byte) error {
	if clipboard.Unsupported {
		return fmt.Errorf("clipboard is not available on this system")
	}
	return writeClipboard(string(content))
}
