package surface

import (
	"bytes"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/xml"
)

// XMLSource is a DataSource read from the XML surface format:
//
//	<SURFACE>
//	  <TYPE>SURFACE_ST</TYPE>
//	  <ABSCISSA>
//	    <X NAME="SPACE_POINTS">0,1,2</X>
//	    <Y NAME="TIME_POINTS">0,0.5</Y>
//	  </ABSCISSA>
//	  <ORDINATE>
//	    <ROW>1,2,3</ROW>
//	    <ROW>4,5,6</ROW>
//	  </ORDINATE>
//	</SURFACE>
//
// The type may also be given as a TYPE attribute on SURFACE. Each ROW holds the values for one y.
type XMLSource struct {
	layout       Layout
	x, y         []float64
	xName, yName string
	z            [][]float64
}

// OpenXML reads an XML surface file.
func OpenXML(filename string) (*XMLSource, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, sourceError(err, "open %s", filename)
	}
	defer f.Close()

	src, err := ParseXML(f)
	if err != nil {
		return nil, errors.WithMessage(err, filename)
	}
	return src, nil
}

// ParseXML parses an XML surface. Shapes are not checked, that happens when the surface is prepared for rendering.
func ParseXML(r io.Reader) (*XMLSource, error) {
	z := parse.NewInput(r)
	defer z.Restore()

	src := &XMLSource{}
	p := xmlParser{z: z, src: src}
	l := xml.NewLexer(z)
	for {
		tt, data := l.Next()
		switch tt {
		case xml.ErrorToken:
			if l.Err() != io.EOF {
				return nil, sourceError(l.Err(), "xml")
			} else if 0 < len(p.tags) {
				return nil, sourceError(nil, "xml: unclosed tag <%s>", p.tags[len(p.tags)-1])
			} else if p.x == nil || p.y == nil {
				return nil, sourceError(nil, "xml: missing abscissa X or Y")
			} else if !p.ordinate {
				return nil, sourceError(nil, "xml: missing ordinate")
			}
			return src, nil
		case xml.StartTagToken:
			tag := strings.ToUpper(string(data[1:]))
			attrs := map[string]string{}
			for {
				tt, _ = l.Next()
				if tt != xml.AttributeToken {
					break
				}
				val := l.AttrVal()
				if 1 < len(val) && (val[0] == '"' || val[0] == '\'') && val[0] == val[len(val)-1] {
					val = val[1 : len(val)-1]
				}
				attrs[strings.ToUpper(string(l.Text()))] = attrUnescaper.Replace(string(val))
			}

			p.tags = append(p.tags, tag)
			p.text = p.text[:0]
			p.start(tag, attrs)
			if tt == xml.StartTagCloseVoidToken {
				if err := p.end(tag); err != nil {
					return nil, err
				}
			}
		case xml.TextToken, xml.CDATAToken:
			if tt == xml.CDATAToken && bytes.HasPrefix(data, []byte("<![CDATA[")) && bytes.HasSuffix(data, []byte("]]>")) {
				data = data[9 : len(data)-3]
			}
			if 0 < len(p.text) {
				p.text = append(p.text, ' ') // chunks split by a comment or PI are separate values
			}
			p.text = append(p.text, data...)
		case xml.EndTagToken:
			tag := strings.ToUpper(string(trimSpace(data[2 : len(data)-1])))
			if len(p.tags) == 0 || p.tags[len(p.tags)-1] != tag {
				return nil, sourceError(parse.NewErrorLexer(z, "unexpected closing tag </%s>", tag), "xml")
			} else if err := p.end(tag); err != nil {
				return nil, err
			}
		}
	}
}

var attrUnescaper = strings.NewReplacer("&quot;", "\"", "&apos;", "'", "&lt;", "<", "&gt;", ">", "&amp;", "&")

type xmlParser struct {
	z        *parse.Input
	src      *XMLSource
	tags     []string
	text     []byte
	x, y     []float64
	ordinate bool
}

func (p *xmlParser) parent() string {
	if len(p.tags) < 2 {
		return ""
	}
	return p.tags[len(p.tags)-2]
}

func (p *xmlParser) start(tag string, attrs map[string]string) {
	switch tag {
	case "SURFACE":
		if typ, ok := attrs["TYPE"]; ok {
			p.src.layout = ParseLayout(typ)
		}
	case "X":
		if p.parent() == "ABSCISSA" {
			p.src.xName = attrs["NAME"]
		}
	case "Y":
		if p.parent() == "ABSCISSA" {
			p.src.yName = attrs["NAME"]
		}
	case "ORDINATE":
		p.ordinate = true
	}
}

// end handles the closing of the innermost tag and pops it.
func (p *xmlParser) end(tag string) error {
	parent := p.parent()
	p.tags = p.tags[:len(p.tags)-1]

	switch {
	case tag == "TYPE" && parent == "SURFACE":
		p.src.layout = ParseLayout(string(p.text))
	case (tag == "X" || tag == "Y") && parent == "ABSCISSA":
		vals, err := parseNumbers(p.text)
		if err != nil {
			return sourceError(parse.NewErrorLexer(p.z, "bad abscissa %s: %v", tag, err), "xml")
		} else if vals == nil {
			vals = []float64{}
		}
		if tag == "X" {
			p.x, p.src.x = vals, vals
		} else {
			p.y, p.src.y = vals, vals
		}
	case tag == "ROW" && parent == "ORDINATE":
		vals, err := parseNumbers(p.text)
		if err != nil {
			return sourceError(parse.NewErrorLexer(p.z, "bad ordinate row %d: %v", len(p.src.z), err), "xml")
		}
		p.src.z = append(p.src.z, vals)
	}
	p.text = p.text[:0]
	return nil
}

func (src *XMLSource) Layout() Layout {
	return src.layout
}

func (src *XMLSource) Abscissa() ([]float64, []float64, error) {
	return cloneVector(src.x), cloneVector(src.y), nil
}

func (src *XMLSource) Ordinate(trailingRows int) ([][]float64, error) {
	return dropTrailingRows(src.z, trailingRows)
}

// AxisNames returns the NAME attributes of the X and Y vectors, empty when absent.
func (src *XMLSource) AxisNames() (string, string) {
	return src.xName, src.yName
}
