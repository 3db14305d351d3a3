package corpus

import (
	"strings"
	"testing"
)

func TestSplitMarkdown(t *testing.T) {
	content := `# Introduction
This is the intro.

## Setup
How to set up.

Some more setup info.

## Usage
How to use it.
`
	doc, sections, paragraphs := Split("guide", "guide", content)

	if doc.ID != "guide" || doc.Text == "" {
		t.Errorf("unexpected document item: %+v", doc)
	}
	if len(sections) != 3 {
		t.Fatalf("expected 3 sections, got %d", len(sections))
	}
	if sections[0].Title != "Introduction" {
		t.Errorf("expected title 'Introduction', got %q", sections[0].Title)
	}
	if sections[1].Title != "Setup" {
		t.Errorf("expected title 'Setup', got %q", sections[1].Title)
	}
	if !strings.Contains(sections[1].Text, "How to set up") {
		t.Errorf("section text missing expected content: %q", sections[1].Text)
	}

	// Setup has two paragraphs, the others one each.
	if len(paragraphs) != 4 {
		t.Fatalf("expected 4 paragraphs, got %d", len(paragraphs))
	}
	if paragraphs[1].ID != "guide:s1:p0" {
		t.Errorf("unexpected paragraph id %q", paragraphs[1].ID)
	}
	if paragraphs[1].DocumentID != "guide" {
		t.Errorf("paragraph lost its document id: %q", paragraphs[1].DocumentID)
	}
}

func TestSplitNoHeadings(t *testing.T) {
	doc, sections, paragraphs := Split("plain", "plain", "Just plain text with no headings.")
	if doc.Text != "Just plain text with no headings." {
		t.Errorf("unexpected document text %q", doc.Text)
	}
	if len(sections) != 1 {
		t.Fatalf("expected 1 section, got %d", len(sections))
	}
	if sections[0].Title != "plain" {
		t.Errorf("untitled section should fall back to the document title, got %q", sections[0].Title)
	}
	if len(paragraphs) != 1 {
		t.Fatalf("expected 1 paragraph, got %d", len(paragraphs))
	}
}

func TestSplitEmptyContent(t *testing.T) {
	_, sections, paragraphs := Split("empty", "empty", "   \n\n  ")
	if len(sections) != 0 || len(paragraphs) != 0 {
		t.Errorf("expected no sections or paragraphs, got %d/%d", len(sections), len(paragraphs))
	}
}
