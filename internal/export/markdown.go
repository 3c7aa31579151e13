package export

import (
	"fmt"
	"html"
	"regexp"
	"strings"
)

// Renderer converts markdown to an HTML fragment. The output must be safe
// to embed in a page as-is.
type Renderer interface {
	Render(markdown string) string
}

// PatternRenderer is a line-oriented, regex-based converter. It handles
// headings, emphasis, inline code, links, rules, and flat lists. Nested
// or malformed markdown renders approximately; that is accepted.
type PatternRenderer struct{}

var (
	headingRe  = regexp.MustCompile(`^(#{1,6})\s+(.*)$`)
	ruleRe     = regexp.MustCompile(`^(?:-{3,}|\*{3,}|_{3,})$`)
	bulletRe   = regexp.MustCompile(`^\s*[-*+]\s+(.*)$`)
	numberedRe = regexp.MustCompile(`^\s*\d+[.)]\s+(.*)$`)
	boldRe     = regexp.MustCompile(`\*\*([^*]+?)\*\*`)
	italicRe   = regexp.MustCompile(`\*([^*\s](?:[^*]*?[^*\s])?)\*`)
	codeRe     = regexp.MustCompile("`([^`]+)`")
	linkRe     = regexp.MustCompile(`\[([^\]]+)\]\((https?://[^\s)]+)\)`)
)

func (PatternRenderer) Render(markdown string) string {
	var (
		out  strings.Builder
		list string // "ul", "ol" or ""
		para []string
	)

	closePara := func() {
		if len(para) > 0 {
			fmt.Fprintf(&out, "<p>%s</p>\n", strings.Join(para, " "))
			para = nil
		}
	}
	closeList := func() {
		if list != "" {
			fmt.Fprintf(&out, "</%s>\n", list)
			list = ""
		}
	}
	openList := func(kind string) {
		if list == kind {
			return
		}
		closeList()
		fmt.Fprintf(&out, "<%s>\n", kind)
		list = kind
	}

	for _, raw := range strings.Split(strings.ReplaceAll(markdown, "\r\n", "\n"), "\n") {
		line := strings.TrimRight(raw, " \t")
		trimmed := strings.TrimSpace(line)

		switch {
		case trimmed == "":
			closePara()
			closeList()
		case ruleRe.MatchString(trimmed):
			closePara()
			closeList()
			out.WriteString("<hr>\n")
		case headingRe.MatchString(trimmed):
			closePara()
			closeList()
			m := headingRe.FindStringSubmatch(trimmed)
			level := len(m[1])
			fmt.Fprintf(&out, "<h%d>%s</h%d>\n", level, inline(m[2]), level)
		case bulletRe.MatchString(line):
			closePara()
			openList("ul")
			fmt.Fprintf(&out, "<li>%s</li>\n", inline(bulletRe.FindStringSubmatch(line)[1]))
		case numberedRe.MatchString(line):
			closePara()
			openList("ol")
			fmt.Fprintf(&out, "<li>%s</li>\n", inline(numberedRe.FindStringSubmatch(line)[1]))
		default:
			closeList()
			para = append(para, inline(trimmed))
		}
	}
	closePara()
	closeList()

	return out.String()
}

// inline escapes s and then applies span-level patterns. Each pattern
// emits its open and close tag from one match, so spans never dangle.
func inline(s string) string {
	s = html.EscapeString(s)
	s = codeRe.ReplaceAllString(s, "<code>$1</code>")
	s = linkRe.ReplaceAllString(s, `<a href="$2">$1</a>`)
	s = boldRe.ReplaceAllString(s, "<strong>$1</strong>")
	s = italicRe.ReplaceAllString(s, "<em>$1</em>")
	return s
}
