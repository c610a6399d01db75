// Package extract converts uploaded resume documents into plain text.
// Supported formats are PDF, DOCX, and plain text; anything else is decoded
// as raw bytes. Extraction is best-effort and never returns an error past
// this boundary: a broken document degrades to a raw byte decode, and an
// undecodable one to the empty string.
package extract

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

// Text extracts plain text from document bytes, dispatching on the filename
// suffix. Handler failures fall back to a raw decode of the bytes.
func Text(data []byte, filename string) string {
	switch {
	case hasSuffix(filename, ".pdf"):
		return handlerOrRaw(data, pdfText)
	case hasSuffix(filename, ".docx"):
		return handlerOrRaw(data, docxText)
	default:
		return rawDecode(data)
	}
}

func hasSuffix(filename, suffix string) bool {
	return strings.HasSuffix(strings.ToLower(filename), suffix)
}

// handlerOrRaw runs a format handler, degrading to a raw byte decode when it
// fails. Failure includes panics: both document libraries resolve the
// document structure lazily and report some malformed inputs by panicking
// rather than returning an error.
func handlerOrRaw(data []byte, handler func([]byte) (string, error)) string {
	text, err := safeHandlerText(data, handler)
	if err != nil {
		return rawDecode(data)
	}
	return normalize(text)
}

// safeHandlerText invokes a format handler with a recover guard, converting
// a library panic into an ordinary error.
func safeHandlerText(data []byte, handler func([]byte) (string, error)) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("document handler panicked: %v", r)
		}
	}()
	return handler(data)
}

func pdfText(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		sb.WriteString(text)
		sb.WriteString("\n")
	}
	return sb.String(), nil
}

func docxText(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}
	defer func() { _ = doc.Close() }()

	return wordprocessingText(doc.Editable().GetContent()), nil
}

// wordprocessingText flattens WordprocessingML document markup to plain
// text: text runs (w:t) are concatenated and each paragraph (w:p) ends a
// line. The first line of the result must be usable as a candidate name, so
// markup never leaks through.
func wordprocessingText(markup string) string {
	decoder := xml.NewDecoder(strings.NewReader(markup))

	var sb strings.Builder
	inTextRun := false
	for {
		token, err := decoder.Token()
		if err != nil {
			break
		}
		switch t := token.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "t":
				inTextRun = true
			case "tab":
				sb.WriteString("\t")
			case "br":
				sb.WriteString("\n")
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inTextRun = false
			case "p":
				sb.WriteString("\n")
			}
		case xml.CharData:
			if inTextRun {
				sb.Write(t)
			}
		}
	}
	return sb.String()
}

// rawDecode interprets the bytes as UTF-8 text, dropping invalid sequences.
func rawDecode(data []byte) string {
	return normalize(strings.ToValidUTF8(string(data), ""))
}

// normalize unifies line endings so downstream line-based extraction
// (first non-blank line as candidate name) behaves the same for all formats.
func normalize(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return text
}
