// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pdfgen assembles single-page PDF documents with an embedded
// interactive 3D annotation. The U3D payload itself is opaque here;
// this package only wraps it in the annotation, view, and activation
// dictionaries Acrobat expects, then optionally hands the result to
// pdfcpu for validation and optimization.
package pdfgen

import (
	"bytes"
	"compress/zlib"
	"fmt"
	"strings"
)

// Letter page geometry, in PDF points.
const (
	pageWidth  = 612
	pageHeight = 792
)

// The 3D viewport rectangle: 50pt margins, below the title line.
const (
	viewLeft   = 50
	viewBottom = 100
	viewRight  = pageWidth - 100
	viewTop    = pageHeight - 150
)

// docWriter accumulates a PDF body and tracks object offsets for the
// cross-reference table.
type docWriter struct {
	buf     bytes.Buffer
	offsets []int
}

func newDocWriter() *docWriter {
	d := &docWriter{}
	d.buf.WriteString("%PDF-1.7\n")
	// Binary comment line marking the file as non-ASCII.
	d.buf.Write([]byte{'%', 0xe2, 0xe3, 0xcf, 0xd3, '\n'})
	return d
}

// addObject appends an indirect object and returns its object number.
func (d *docWriter) addObject(body string) int {
	num := len(d.offsets) + 1
	d.offsets = append(d.offsets, d.buf.Len())
	fmt.Fprintf(&d.buf, "%d 0 obj\n%s\nendobj\n", num, body)
	return num
}

// addStream appends a stream object with the given dictionary entries
// (without the /Length key, which is added here) and returns its
// object number.
func (d *docWriter) addStream(dict string, data []byte) int {
	num := len(d.offsets) + 1
	d.offsets = append(d.offsets, d.buf.Len())
	fmt.Fprintf(&d.buf, "%d 0 obj\n<< %s /Length %d >>\nstream\n", num, dict, len(data))
	d.buf.Write(data)
	d.buf.WriteString("\nendstream\nendobj\n")
	return num
}

// finish appends the xref table and trailer and returns the document
// bytes.
func (d *docWriter) finish(rootObj int) []byte {
	xrefStart := d.buf.Len()
	fmt.Fprintf(&d.buf, "xref\n0 %d\n", len(d.offsets)+1)
	d.buf.WriteString("0000000000 65535 f \n")
	for _, off := range d.offsets {
		fmt.Fprintf(&d.buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&d.buf, "trailer\n<< /Size %d /Root %d 0 R >>\nstartxref\n%d\n%%%%EOF\n",
		len(d.offsets)+1, rootObj, xrefStart)
	return d.buf.Bytes()
}

// deflate compresses data for a FlateDecode stream.
func deflate(data []byte) ([]byte, error) {
	var out bytes.Buffer
	zw := zlib.NewWriter(&out)
	if _, err := zw.Write(data); err != nil {
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

// escapeText makes a string safe for a PDF literal string.
func escapeText(s string) string {
	r := strings.NewReplacer("\\", "\\\\", "(", "\\(", ")", "\\)", "\n", "\\n", "\r", "\\r")
	return r.Replace(s)
}

// pageContent builds the content stream: title heading, viewport
// outline, and the Acrobat instruction line.
func pageContent(title string) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "BT /F1 18 Tf %d %d Td (3D Model: %s) Tj ET\n",
		viewLeft, pageHeight-50, escapeText(title))
	fmt.Fprintf(&b, "%d %d %d %d re S\n",
		viewLeft, viewBottom, viewRight-viewLeft, viewTop-viewBottom)
	fmt.Fprintf(&b, "BT /F2 10 Tf %d 80 Td (Note: This PDF contains an interactive 3D model. Use Adobe Acrobat to view and interact with it.) Tj ET\n",
		viewLeft)
	return []byte(b.String())
}

// viewDict is the default 3D view: camera-to-world matrix looking down
// the Z axis from distance 10, camera offset 8.0, white background,
// orthographic projection.
const viewDict = `<< /Type /3DView /XN (Default) /IN (Default) /MS /M ` +
	`/C2W [1 0 0 0 0 -1 0 1 0 0 0 0 0 0 10] /CO 8.0 ` +
	`/BG << /Type /3DBG /C [1 1 1] >> ` +
	`/P << /Subtype /O >> >>`

// activationDict turns the annotation live when the page opens.
const activationDict = `<< /A /PO /AIS /L /D /I >>`

// build assembles the complete document around a U3D payload.
func build(u3dData []byte, title string) ([]byte, error) {
	d := newDocWriter()

	catalog := d.addObject("<< /Type /Catalog /Pages 2 0 R >>")
	d.addObject("<< /Type /Pages /Kids [3 0 R] /Count 1 >>")
	d.addObject(fmt.Sprintf(
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 %d %d] "+
			"/Resources << /Font << /F1 4 0 R /F2 5 0 R >> >> "+
			"/Contents 6 0 R /Annots [7 0 R] >>",
		pageWidth, pageHeight))
	d.addObject("<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica-Bold >>")
	d.addObject("<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>")

	content, err := deflate(pageContent(title))
	if err != nil {
		return nil, fmt.Errorf("compressing page content: %w", err)
	}
	d.addStream("/Filter /FlateDecode", content)

	d.addObject(fmt.Sprintf(
		"<< /Type /Annot /Subtype /3D /Contents (3D Model) /P 3 0 R "+
			"/Rect [%d %d %d %d] /3DD 8 0 R /3DV %s /3DA %s >>",
		viewLeft, viewBottom, viewRight, viewTop, viewDict, activationDict))

	stream, err := deflate(u3dData)
	if err != nil {
		return nil, fmt.Errorf("compressing U3D payload: %w", err)
	}
	d.addStream("/Type /3D /Subtype /U3D /Filter /FlateDecode", stream)

	return d.finish(catalog), nil
}
