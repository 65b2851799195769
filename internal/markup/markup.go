// Package markup interprets the constrained run-formatting fragments
// carried through from rich-text spreadsheet cells: <r> runs holding <rPr>
// style properties (<b/>, <i/>, <u/>) and <t> text, or bare top-level <t>
// text. Anything else is a structural error.
package markup

import (
	"encoding/xml"
	"io"
	"strings"

	"github.com/doublemix/msche-team-visit/internal/domain"
)

// Parse interprets a markup fragment into an ordered sequence of styled
// text runs. Output order matches document order; adjacent identically
// styled runs are not merged.
func Parse(fragment string) ([]domain.TextRun, error) {
	decoder := xml.NewDecoder(strings.NewReader("<root>" + fragment + "</root>"))

	// Consume the synthetic wrapper.
	if _, err := decoder.Token(); err != nil {
		return nil, &domain.UnexpectedTextError{Text: fragment}
	}

	runs := []domain.TextRun{}
	for {
		token, err := decoder.Token()
		if err == io.EOF {
			return runs, nil
		}
		if err != nil {
			return nil, &domain.UnexpectedTextError{Text: fragment}
		}

		switch t := token.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "r":
				styled, err := parseRun(decoder)
				if err != nil {
					return nil, err
				}
				runs = append(runs, styled...)
			case "t":
				texts, err := parseText(decoder)
				if err != nil {
					return nil, err
				}
				for _, text := range texts {
					runs = append(runs, domain.TextRun{Text: text})
				}
			default:
				return nil, &domain.UnexpectedTagError{Tag: t.Name.Local}
			}
		case xml.CharData:
			// Whitespace between tags is a formatting artifact.
			if text := string(t); strings.TrimSpace(text) != "" {
				return nil, &domain.UnexpectedTextError{Text: text}
			}
		case xml.EndElement:
			// Closing the synthetic wrapper.
			return runs, nil
		}
	}
}

// parseRun handles one <r> element: style properties accumulate from any
// <b>/<i>/<u> descendant of its <rPr> children, and each text node under a
// <t> child emits one run with the accumulated style.
func parseRun(decoder *xml.Decoder) ([]domain.TextRun, error) {
	var style domain.TextRun
	var runs []domain.TextRun

	for {
		token, err := decoder.Token()
		if err != nil {
			return nil, &domain.UnexpectedTextError{Text: "unterminated run"}
		}

		switch t := token.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "rPr":
				if err := parseRunProperties(decoder, &style); err != nil {
					return nil, err
				}
			case "t":
				texts, err := parseText(decoder)
				if err != nil {
					return nil, err
				}
				for _, text := range texts {
					run := style
					run.Text = text
					runs = append(runs, run)
				}
			default:
				return nil, &domain.UnexpectedTagError{Tag: t.Name.Local}
			}
		case xml.CharData:
			if text := string(t); strings.TrimSpace(text) != "" {
				return nil, &domain.UnexpectedTextError{Text: text}
			}
		case xml.EndElement:
			return runs, nil
		}
	}
}

// parseRunProperties accumulates style flags from every descendant tag.
// Flags only ever turn on; there is no reset semantics.
func parseRunProperties(decoder *xml.Decoder, style *domain.TextRun) error {
	depth := 0
	for {
		token, err := decoder.Token()
		if err != nil {
			return &domain.UnexpectedTextError{Text: "unterminated run properties"}
		}

		switch t := token.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "b":
				style.Bold = true
			case "i":
				style.Italics = true
			case "u":
				style.Underline = true
			}
			depth++
		case xml.CharData:
			if text := string(t); strings.TrimSpace(text) != "" {
				return &domain.UnexpectedTextError{Text: text}
			}
		case xml.EndElement:
			if depth == 0 {
				return nil
			}
			depth--
		}
	}
}

// parseText collects the text nodes inside one <t> element.
func parseText(decoder *xml.Decoder) ([]string, error) {
	var texts []string
	for {
		token, err := decoder.Token()
		if err != nil {
			return nil, &domain.UnexpectedTextError{Text: "unterminated text"}
		}

		switch t := token.(type) {
		case xml.StartElement:
			return nil, &domain.UnexpectedTagError{Tag: t.Name.Local}
		case xml.CharData:
			texts = append(texts, string(t))
		case xml.EndElement:
			return texts, nil
		}
	}
}
