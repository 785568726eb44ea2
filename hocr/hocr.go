// Package hocr adapts hOCR documents, the common interchange format emitted
// by OCR and structured-text tools, into the positioned text fragments the
// extraction core groups into regions.
package hocr

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/text/encoding/charmap"

	"github.com/wudi/scankit/extract"
)

// Fragments parses one hOCR page and returns its text lines as fragments.
// hOCR bounding boxes use a top-left origin; the returned fragments are
// converted to the bottom-left page coordinates the grouper expects, using
// the ocr_page bbox height as the page height.
func Fragments(data []byte) ([]extract.TextFragment, error) {
	decoded, err := toUTF8(data)
	if err != nil {
		return nil, err
	}
	doc, err := html.Parse(strings.NewReader(string(decoded)))
	if err != nil {
		return nil, fmt.Errorf("hocr: parse: %w", err)
	}

	page := findByClass(doc, "ocr_page")
	if page == nil {
		return nil, fmt.Errorf("hocr: no ocr_page element found")
	}
	pageBox, ok := bboxFromTitle(attr(page, "title"))
	if !ok {
		return nil, fmt.Errorf("hocr: ocr_page carries no bbox")
	}
	pageHeight := pageBox[3] - pageBox[1]

	var fragments []extract.TextFragment
	walk(page, func(n *html.Node) bool {
		if !hasClass(n, "ocr_line") && !hasClass(n, "ocr_header") && !hasClass(n, "ocr_caption") {
			return true
		}
		box, ok := bboxFromTitle(attr(n, "title"))
		if !ok {
			return false
		}
		text := strings.Join(strings.Fields(textContent(n)), " ")
		if text == "" {
			return false
		}
		fragments = append(fragments, extract.TextFragment{
			Text:   text,
			X:      float64(box[0]),
			Y:      float64(pageHeight - box[3]),
			Width:  float64(box[2] - box[0]),
			Height: float64(box[3] - box[1]),
		})
		return false
	})
	return fragments, nil
}

// Source exposes stored hOCR payloads as an extract.FragmentSource. The page
// descriptor passed to Fragments must be the raw hOCR payload ([]byte or
// string) for that page.
type Source struct{}

func (Source) Fragments(_ context.Context, page extract.Page) ([]extract.TextFragment, error) {
	switch v := page.(type) {
	case []byte:
		return Fragments(v)
	case string:
		return Fragments([]byte(v))
	default:
		return nil, fmt.Errorf("hocr: unsupported page descriptor %T", page)
	}
}

// toUTF8 sniffs the declared charset and transcodes ISO-8859-1 payloads;
// anything else is assumed to already be UTF-8.
func toUTF8(data []byte) ([]byte, error) {
	content := strings.ToLower(string(data))
	idx := strings.Index(content, "charset=")
	if idx < 0 {
		return data, nil
	}
	rest := content[idx+len("charset="):]
	enc := strings.FieldsFunc(rest, func(r rune) bool {
		return r == '"' || r == '\'' || r == ';' || r == '>' || r == ' '
	})
	if len(enc) == 0 || enc[0] == "" || enc[0] == "utf-8" {
		return data, nil
	}
	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
	if err != nil {
		return nil, fmt.Errorf("hocr: decode %s: %w", enc[0], err)
	}
	return decoded, nil
}

// bboxFromTitle extracts "bbox x0 y0 x1 y1" from an hOCR title attribute.
func bboxFromTitle(title string) ([4]int, bool) {
	for _, part := range strings.Split(title, ";") {
		fields := strings.Fields(strings.TrimSpace(part))
		if len(fields) != 5 || fields[0] != "bbox" {
			continue
		}
		var box [4]int
		for i, f := range fields[1:] {
			v, err := strconv.Atoi(f)
			if err != nil {
				return [4]int{}, false
			}
			box[i] = v
		}
		return box, true
	}
	return [4]int{}, false
}

func attr(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Val
		}
	}
	return ""
}

func hasClass(n *html.Node, class string) bool {
	if n.Type != html.ElementNode {
		return false
	}
	for _, c := range strings.Fields(attr(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}

// findByClass returns the first element carrying the class, depth-first.
func findByClass(n *html.Node, class string) *html.Node {
	if hasClass(n, class) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findByClass(c, class); found != nil {
			return found
		}
	}
	return nil
}

// walk visits nodes depth-first; visit returning false stops descent into
// that subtree.
func walk(n *html.Node, visit func(*html.Node) bool) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && !visit(c) {
			continue
		}
		walk(c, visit)
	}
}

func textContent(n *html.Node) string {
	var b strings.Builder
	var rec func(*html.Node)
	rec = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
			b.WriteByte(' ')
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			rec(c)
		}
	}
	rec(n)
	return b.String()
}
