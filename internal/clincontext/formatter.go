package clincontext

import "strings"

// NoDataMessage is the canonical empty-output sentinel. It is a normal,
// expected output, not an error.
const NoDataMessage = "No clinical data available."

// Format serializes sections into the flat text grammar consumed by the
// prompt assembly: "<title>:" followed by one "- " bulleted line per item,
// sections separated by a blank line. Sections with no items are dropped;
// if nothing remains, the result is NoDataMessage rather than an empty
// string.
func Format(sections []Section) string {
	parts := make([]string, 0, len(sections))
	for _, s := range sections {
		if len(s.Items) == 0 {
			continue
		}
		title := s.Title
		if title == "" {
			title = "Untitled"
		}
		var b strings.Builder
		b.WriteString(title)
		b.WriteString(":")
		for _, item := range s.Items {
			b.WriteString("\n- ")
			b.WriteString(item)
		}
		parts = append(parts, b.String())
	}
	if len(parts) == 0 {
		return NoDataMessage
	}
	return strings.Join(parts, "\n\n")
}
