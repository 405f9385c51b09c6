package game

import "github.com/atotto/clipboard"

// setClipboardText places text on the system clipboard. On Linux this needs
// xclip, xsel or wl-copy on PATH.
func setClipboardText(text string) error {
	if text == "" {
		text = " "
	}
	return clipboard.WriteAll(text)
}
