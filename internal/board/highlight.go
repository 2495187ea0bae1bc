package board

import "strings"

// Segment is a run of title text, marked when it matches the search term.
type Segment struct {
	Text  string
	Match bool
}

// Highlight splits title into segments, marking each occurrence of term.
// Occurrences are found left to right and never overlap. The term is a
// literal string: characters such as '.' or '*' match only themselves.
// Joining the segment texts always reproduces title.
func Highlight(title, term string) []Segment {
	if title == "" {
		return nil
	}
	if term == "" {
		return []Segment{{Text: title}}
	}

	var segs []Segment
	rest := title
	for {
		i := strings.Index(rest, term)
		if i < 0 {
			break
		}
		if i > 0 {
			segs = append(segs, Segment{Text: rest[:i]})
		}
		segs = append(segs, Segment{Text: term, Match: true})
		rest = rest[i+len(term):]
	}
	if rest != "" {
		segs = append(segs, Segment{Text: rest})
	}
	return segs
}

// RenderSegments joins the segment texts, passing each matching run
// through mark. Non-matching text is written as is.
func RenderSegments(segs []Segment, mark func(string) string) string {
	var b strings.Builder
	for _, s := range segs {
		if s.Match && mark != nil {
			b.WriteString(mark(s.Text))
			continue
		}
		b.WriteString(s.Text)
	}
	return b.String()
}

// Plain joins the segment texts back into a single string.
func Plain(segs []Segment) string {
	var b strings.Builder
	for _, s := range segs {
		b.WriteString(s.Text)
	}
	return b.String()
}
