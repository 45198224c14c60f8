package surface

import (
	"bufio"
	"io"
	"strconv"
	"strings"
)

// AxisNamer is implemented by sources that know the names of their abscissa vectors.
type AxisNamer interface {
	AxisNames() (string, string)
}

// WriteXML writes a DataSource in the XML surface format, with the full ordinate matrix.
func WriteXML(w io.Writer, src DataSource) error {
	x, y, err := src.Abscissa()
	if err != nil {
		return err
	}
	z, err := src.Ordinate(0)
	if err != nil {
		return err
	}
	xName, yName := "X", "Y"
	if namer, ok := src.(AxisNamer); ok {
		if name, _ := namer.AxisNames(); name != "" {
			xName = name
		}
		if _, name := namer.AxisNames(); name != "" {
			yName = name
		}
	}

	b := bufio.NewWriter(w)
	b.WriteString("<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n<SURFACE>\n")
	b.WriteString("  <TYPE>" + src.Layout().String() + "</TYPE>\n")
	b.WriteString("  <ABSCISSA>\n")
	writeXMLVector(b, "X", xName, x)
	writeXMLVector(b, "Y", yName, y)
	b.WriteString("  </ABSCISSA>\n  <ORDINATE>\n")
	for _, row := range z {
		b.WriteString("    <ROW>")
		writeNumbers(b, row)
		b.WriteString("</ROW>\n")
	}
	b.WriteString("  </ORDINATE>\n</SURFACE>\n")
	return b.Flush()
}

func writeXMLVector(b *bufio.Writer, tag, name string, vals []float64) {
	b.WriteString("    <" + tag + " NAME=\"" + escapeAttr(name) + "\">")
	writeNumbers(b, vals)
	b.WriteString("</" + tag + ">\n")
}

func writeNumbers(b *bufio.Writer, vals []float64) {
	buf := make([]byte, 0, 24)
	for i, val := range vals {
		if i != 0 {
			b.WriteByte(',')
		}
		buf = strconv.AppendFloat(buf[:0], val, 'g', -1, 64)
		b.Write(buf)
	}
}

var attrReplacer = strings.NewReplacer("&", "&amp;", "\"", "&quot;", "<", "&lt;", ">", "&gt;")

func escapeAttr(s string) string {
	return attrReplacer.Replace(s)
}
