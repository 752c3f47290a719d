package webauth

import (
	"bytes"
	"errors"
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

// scriptMarker identifies the inline script on the token-management page
// that carries the API token.
const scriptMarker = "document.querySelectorAll"

var tokenValuePattern = regexp.MustCompile(`value\s*=\s*'([^']+)'`)

// ExtractToken pulls the API token out of the token-management page HTML. The
// token lives in the single inline <script> whose text contains the marker
// substring, as the first single-quoted value assignment in that script.
func ExtractToken(page []byte) (string, error) {
	doc, err := html.Parse(bytes.NewReader(page))
	if err != nil {
		return "", err
	}

	script, ok := findMarkerScript(doc)
	if !ok {
		return "", errors.New("token script not found in page")
	}

	match := tokenValuePattern.FindStringSubmatch(script)
	if match == nil {
		return "", errors.New("token value not found in script")
	}

	return match[1], nil
}

// findMarkerScript walks the document for the first script element whose
// text content contains the marker.
func findMarkerScript(n *html.Node) (string, bool) {
	if n.Type == html.ElementNode && n.Data == "script" {
		var text strings.Builder
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.TextNode {
				text.WriteString(c.Data)
			}
		}
		if strings.Contains(text.String(), scriptMarker) {
			return text.String(), true
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if script, ok := findMarkerScript(c); ok {
			return script, true
		}
	}
	return "", false
}
