package session

import (
	"fmt"
	"os"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
)

// CaptureFailure records what the page looked like when a session-level
// failure occurred: a screenshot plus a markdown rendering of the markup,
// both written next to the working directory under name.{png,md}. The URL
// and title go to stderr so a broken selector can be diagnosed from logs
// alone. Best-effort: capture errors are reported but never propagated.
func (s *Session) CaptureFailure(name string) {
	fmt.Fprintf(os.Stderr, "[session] failure at url=%s title=%q\n", s.CurrentURL(), s.Title())

	pngPath := name + ".png"
	if err := s.Screenshot(pngPath); err != nil {
		fmt.Fprintf(os.Stderr, "[session] screenshot failed: %v\n", err)
	} else {
		fmt.Fprintf(os.Stderr, "[session] screenshot saved to %s\n", pngPath)
	}

	html, err := s.HTML()
	if err != nil {
		fmt.Fprintf(os.Stderr, "[session] page dump failed: %v\n", err)
		return
	}
	converter := md.NewConverter("", true, nil)
	markdown, err := converter.ConvertString(html)
	if err != nil {
		// Fall back to the raw markup rather than losing the dump.
		markdown = html
	}
	mdPath := name + ".md"
	if err := os.WriteFile(mdPath, []byte(strings.TrimSpace(markdown)+"\n"), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "[session] page dump failed: %v\n", err)
		return
	}
	fmt.Fprintf(os.Stderr, "[session] page dump saved to %s\n", mdPath)
}
