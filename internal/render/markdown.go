package render

import (
	"html/template"
	"regexp"
	"strings"
)

var (
	boldRe   = regexp.MustCompile(`\*\*([^*]+)\*\*`)
	italicRe = regexp.MustCompile(`\*([^*]+)\*`)
	linkRe   = regexp.MustCompile(`\[([^\]]+)\]\(([^)]+)\)`)
)

// Markdown converts a small markdown subset (headings, bold, italic,
// links, paragraph breaks) to HTML. The input is escaped before any
// markup is added, so user content cannot smuggle tags through.
func Markdown(s string) template.HTML {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = template.HTMLEscapeString(s)

	s = boldRe.ReplaceAllString(s, "<strong>$1</strong>")
	s = italicRe.ReplaceAllString(s, "<em>$1</em>")
	s = linkRe.ReplaceAllString(s, `<a href="$2">$1</a>`)

	var blocks []string
	for _, block := range strings.Split(s, "\n\n") {
		if rendered := renderBlock(block); rendered != "" {
			blocks = append(blocks, rendered)
		}
	}

	return template.HTML(strings.Join(blocks, "\n"))
}

func renderBlock(block string) string {
	var out []string
	var para []string

	flush := func() {
		if len(para) > 0 {
			out = append(out, "<p>"+strings.Join(para, "<br>")+"</p>")
			para = nil
		}
	}

	for _, line := range strings.Split(block, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		switch {
		case strings.HasPrefix(line, "### "):
			flush()
			out = append(out, "<h3>"+strings.TrimPrefix(line, "### ")+"</h3>")
		case strings.HasPrefix(line, "## "):
			flush()
			out = append(out, "<h2>"+strings.TrimPrefix(line, "## ")+"</h2>")
		case strings.HasPrefix(line, "# "):
			flush()
			out = append(out, "<h1>"+strings.TrimPrefix(line, "# ")+"</h1>")
		default:
			para = append(para, line)
		}
	}
	flush()

	return strings.Join(out, "\n")
}
