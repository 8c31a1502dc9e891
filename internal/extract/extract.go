package extract

import (
	"bytes"
	"fmt"
	"io"
	"regexp"

	"golang.org/x/net/html"
)

// ShortLinkPattern matches a goo.gl short link and everything up to the next
// whitespace, markup included.
var ShortLinkPattern = regexp.MustCompile(`https://goo\.gl/\S+`)

// ExtractLinks parses r as HTML, renders the parse tree back to text and
// returns every ShortLinkPattern match in that text, deduplicated, in the
// order first seen.
//
// Matching runs on the rendered tree rather than the raw body: the parser
// normalizes quoting, entities and implied tags, so the match set can differ
// from a regex over the original bytes.
func ExtractLinks(r io.Reader) ([]string, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	var rendered bytes.Buffer
	if err := html.Render(&rendered, doc); err != nil {
		return nil, fmt.Errorf("render html: %w", err)
	}

	return FindLinks(rendered.String()), nil
}

// FindLinks applies ShortLinkPattern to already serialized text.
func FindLinks(text string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, m := range ShortLinkPattern.FindAllString(text, -1) {
		if _, ok := seen[m]; ok {
			continue
		}
		seen[m] = struct{}{}
		out = append(out, m)
	}
	return out
}
