package search

import "strings"

// ParagraphDelimiter separates paragraphs within a document.
const ParagraphDelimiter = "\n\n"

// DocumentExtension is the file suffix of documents that belong to the knowledge base.
const DocumentExtension = ".md"

// SplitParagraphs splits content on blank lines and returns the trimmed, non-empty paragraphs
// in document order. Content without a blank line yields a single paragraph.
func SplitParagraphs(content string) []string {
	parts := strings.Split(content, ParagraphDelimiter)
	paragraphs := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		paragraphs = append(paragraphs, part)
	}
	return paragraphs
}

// normalizeNewlines folds CRLF and lone CR line endings into LF so that
// documents written on any platform split the same way.
func normalizeNewlines(s string) string {
	if !strings.ContainsRune(s, '\r') {
		return s
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}

// isDocument reports whether a directory entry name is a knowledge-base document.
func isDocument(name string) bool {
	return strings.HasSuffix(name, DocumentExtension)
}
