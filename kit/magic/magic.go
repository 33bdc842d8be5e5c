// Package magic extracts key/value annotations from "magic comments" of the
// form `# @kit:key:value`, `// @kit:key:value` or `<!-- @kit:key:value -->`.
//
// Input is free-form text; only comment lines carrying the marker are
// considered and everything else is ignored.
package magic

import (
	"fmt"
	"io"
	"regexp"
	"strings"
)

// Marker introduces an annotation inside a comment.
const Marker = "@kit:"

// Style identifies the comment opener an annotation was written with.
type Style string

const (
	Hash   Style = "#"
	Slash  Style = "//"
	Markup Style = "<!--"
)

// markupClose terminates a Markup comment and is never part of a value.
const markupClose = "-->"

// Pattern is the wire grammar for annotations. Whitespace around the marker
// never crosses a line break, so an empty value stays empty.
var Pattern = regexp.MustCompile(`(#|//|<!--)[^\S\r\n]*@kit:([\p{L}\p{N}_]+):[^\S\r\n]*(.*)`)

// Annotation is one key/value pair read from a magic comment.
type Annotation struct {
	Key   string `json:"key" yaml:"key"`
	Value string `json:"value" yaml:"value"`
	Style Style  `json:"style" yaml:"style"`
	Line  int    `json:"line" yaml:"line"`
}

func (a Annotation) String() string {
	return fmt.Sprintf("%d: %s=%q", a.Line, a.Key, a.Value)
}

// Scan returns every annotation in text in order of appearance. Matches do
// not overlap.
func Scan(text string) []Annotation {
	matches := Pattern.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		return nil
	}

	out := make([]Annotation, 0, len(matches))
	line, offset := 1, 0
	for _, m := range matches {
		line += strings.Count(text[offset:m[0]], "\n")
		offset = m[0]

		style := Style(text[m[2]:m[3]])
		out = append(out, Annotation{
			Key:   text[m[4]:m[5]],
			Value: cleanValue(style, text[m[6]:m[7]]),
			Style: style,
			Line:  line,
		})
	}
	return out
}

// Extract returns the annotations in text as a map. When a key repeats the
// last occurrence wins. The result is never nil.
func Extract(text string) map[string]string {
	annotations := Scan(text)
	out := make(map[string]string, len(annotations))
	for _, a := range annotations {
		out[a.Key] = a.Value
	}
	return out
}

// ExtractReader reads r to the end and extracts its annotations.
func ExtractReader(r io.Reader) (map[string]string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read annotation source: %w", err)
	}
	return Extract(string(data)), nil
}

func cleanValue(style Style, value string) string {
	value = strings.TrimSuffix(value, "\r")
	if style != Markup {
		return value
	}
	if i := strings.LastIndex(value, markupClose); i >= 0 && strings.TrimSpace(value[i+len(markupClose):]) == "" {
		value = strings.TrimRight(value[:i], " \t")
	}
	return value
}
