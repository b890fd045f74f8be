package docgen

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
)

// WordprocessingML document parts. The package is the minimal valid OOXML
// container: content types, the package relationship, and the document part
// itself, with run-level formatting instead of a styles part.

const contentTypesXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
  <Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
  <Default Extension="xml" ContentType="application/xml"/>
  <Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
</Types>`

const relsXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
  <Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>
</Relationships>`

type wordDocument struct {
	XMLName xml.Name `xml:"w:document"`
	XmlnsW  string   `xml:"xmlns:w,attr"`
	Body    wordBody `xml:"w:body"`
}

type wordBody struct {
	Paragraphs []wordParagraph `xml:"w:p"`
}

type wordParagraph struct {
	Props *paragraphProps `xml:"w:pPr,omitempty"`
	Runs  []wordRun       `xml:"w:r"`
}

type paragraphProps struct {
	Justify *valAttr `xml:"w:jc,omitempty"`
}

type wordRun struct {
	Props *runProps `xml:"w:rPr,omitempty"`
	Text  *wordText `xml:"w:t,omitempty"`
}

type runProps struct {
	Bold      *emptyTag `xml:"w:b,omitempty"`
	Underline *valAttr  `xml:"w:u,omitempty"`
	Size      *valAttr  `xml:"w:sz,omitempty"`
}

type wordText struct {
	Space string `xml:"xml:space,attr"`
	Value string `xml:",chardata"`
}

type valAttr struct {
	Val string `xml:"w:val,attr"`
}

type emptyTag struct{}

// half-point font sizes
const (
	headingSize = "32"
	bodySize    = "22"
)

func paragraphXML(p Paragraph) wordParagraph {
	var out wordParagraph

	if p.Centered {
		out.Props = &paragraphProps{Justify: &valAttr{Val: "center"}}
	}

	if p.Kind == LineSpacer {
		return out
	}

	run := wordRun{Text: &wordText{Space: "preserve", Value: p.Text}}
	switch p.Kind {
	case LineHeading:
		run.Props = &runProps{Bold: &emptyTag{}, Size: &valAttr{Val: headingSize}}
	case LineSectionHeader:
		run.Props = &runProps{Bold: &emptyTag{}, Size: &valAttr{Val: bodySize}}
	case LineSignature:
		run.Props = &runProps{Underline: &valAttr{Val: "single"}, Size: &valAttr{Val: bodySize}}
	default:
		run.Props = &runProps{Size: &valAttr{Val: bodySize}}
	}
	out.Runs = []wordRun{run}
	return out
}

// writeDocx packages classified paragraphs as wordprocessing bytes. An
// empty paragraph list still produces a minimal valid document.
func writeDocx(paras []Paragraph) ([]byte, error) {
	doc := wordDocument{
		XmlnsW: "http://schemas.openxmlformats.org/wordprocessingml/2006/main",
	}
	if len(paras) == 0 {
		doc.Body.Paragraphs = []wordParagraph{{}}
	}
	for _, p := range paras {
		doc.Body.Paragraphs = append(doc.Body.Paragraphs, paragraphXML(p))
	}

	docXML, err := xml.Marshal(doc)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	parts := []struct {
		name string
		data []byte
	}{
		{"[Content_Types].xml", []byte(contentTypesXML)},
		{"_rels/.rels", []byte(relsXML)},
		{"word/document.xml", append([]byte(xml.Header), docXML...)},
	}
	for _, part := range parts {
		w, err := zw.Create(part.name)
		if err != nil {
			return nil, err
		}
		if _, err := w.Write(part.data); err != nil {
			return nil, err
		}
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
