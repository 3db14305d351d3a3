package corpus

import (
	"bufio"
	"regexp"
	"strconv"
	"strings"
)

// Source is a raw passage produced by splitting, before embedding.
type Source struct {
	ID         string
	Title      string
	DocumentID string
	Text       string
}

// Split breaks one markdown document into the three corpus levels: the whole
// document, its heading-delimited sections, and the blank-line-delimited
// paragraphs inside them. IDs are hierarchical (doc, doc:s0, doc:s0:p1) so a
// paragraph can always be traced back to its document.
func Split(docID, title, content string) (doc Source, sections []Source, paragraphs []Source) {
	doc = Source{
		ID:         docID,
		Title:      title,
		DocumentID: docID,
		Text:       strings.TrimSpace(content),
	}
	for si, sec := range splitSections(content) {
		sid := docID + ":s" + strconv.Itoa(si)
		secTitle := sec.heading
		if secTitle == "" {
			secTitle = title
		}
		sections = append(sections, Source{
			ID:         sid,
			Title:      secTitle,
			DocumentID: docID,
			Text:       sec.body,
		})
		for pi, para := range splitParagraphs(sec.body) {
			paragraphs = append(paragraphs, Source{
				ID:         sid + ":p" + strconv.Itoa(pi),
				Title:      secTitle,
				DocumentID: docID,
				Text:       para,
			})
		}
	}
	return doc, sections, paragraphs
}

type section struct {
	heading string
	body    string
}

var headingRe = regexp.MustCompile(`^#+\s*(.*)$`)

// splitSections scans line by line and starts a new section at each markdown
// heading. Content before the first heading becomes an untitled section.
func splitSections(content string) []section {
	var out []section
	var heading string
	var body strings.Builder

	flush := func() {
		text := strings.TrimSpace(body.String())
		if text != "" {
			out = append(out, section{heading: heading, body: text})
		}
		body.Reset()
	}

	scanner := bufio.NewScanner(strings.NewReader(content))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if m := headingRe.FindStringSubmatch(line); m != nil && strings.HasPrefix(line, "#") {
			flush()
			heading = strings.TrimSpace(m[1])
			continue
		}
		body.WriteString(line)
		body.WriteString("\n")
	}
	flush()
	return out
}

// splitParagraphs breaks a section body on blank lines.
func splitParagraphs(body string) []string {
	var out []string
	for _, block := range strings.Split(body, "\n\n") {
		p := strings.TrimSpace(block)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
