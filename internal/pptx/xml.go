// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pptx

import (
	"encoding/xml"
	"strings"
)

// Element names below match on local name only, so both the transitional
// and strict PresentationML namespaces decode.

type presentationXML struct {
	SlideIDs []slideIDXML `xml:"sldIdLst>sldId"`
}

// slideIDXML carries both a numeric id and the namespaced r:id; the
// relationship ID is the attribute that has a namespace.
type slideIDXML struct {
	RelID string
}

func (s *slideIDXML) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	for _, a := range start.Attr {
		if a.Name.Local == "id" && a.Name.Space != "" {
			s.RelID = a.Value
		}
	}
	return d.Skip()
}

type relationshipsXML struct {
	Items []relationship `xml:"Relationship"`
}

type relationship struct {
	ID         string `xml:"Id,attr"`
	Type       string `xml:"Type,attr"`
	Target     string `xml:"Target,attr"`
	TargetMode string `xml:"TargetMode,attr"`
}

type notesXML struct {
	Shapes []shapeXML `xml:"cSld>spTree>sp"`
}

type shapeXML struct {
	Placeholder *placeholderXML `xml:"nvSpPr>nvPr>ph"`
	Body        *textBodyXML    `xml:"txBody"`
}

type placeholderXML struct {
	Type string `xml:"type,attr"`
}

// bodyText returns the text body of the first body placeholder, which is
// where PowerPoint keeps the speaker notes.
func (n *notesXML) bodyText() *textBodyXML {
	for _, sh := range n.Shapes {
		if sh.Placeholder == nil || sh.Placeholder.Type != "body" {
			continue
		}
		if sh.Body == nil {
			return &textBodyXML{}
		}
		return sh.Body
	}
	return nil
}

type textBodyXML struct {
	Paragraphs []paragraphXML `xml:"p"`
}

// text joins paragraphs with newlines.
func (b *textBodyXML) text() string {
	lines := make([]string, len(b.Paragraphs))
	for i, p := range b.Paragraphs {
		lines[i] = p.text
	}
	return strings.Join(lines, "\n")
}

// paragraphXML collects the text of runs and fields in document order.
// Line breaks (a:br) become newlines.
type paragraphXML struct {
	text string
}

func (p *paragraphXML) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	var b strings.Builder
	depth := 0
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "t":
				var s string
				if err := d.DecodeElement(&s, &t); err != nil {
					return err
				}
				b.WriteString(s)
			case "br":
				b.WriteByte('\n')
				if err := d.Skip(); err != nil {
					return err
				}
			default:
				depth++
			}
		case xml.EndElement:
			if depth == 0 {
				p.text = b.String()
				return nil
			}
			depth--
		}
	}
}
