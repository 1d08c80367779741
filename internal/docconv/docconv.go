// Package docconv turns uploaded report files into raw text for the lab
// extractor.
package docconv

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

var ErrUnsupported = errors.New("unsupported document format")

type Kind string

const (
	KindText Kind = "text"
	KindDOCX Kind = "docx"
	KindXLSX Kind = "xlsx"
	KindPDF  Kind = "pdf"
	KindDOC  Kind = "doc"
)

func KindOf(name string) Kind {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".docx":
		return KindDOCX
	case ".xlsx":
		return KindXLSX
	case ".pdf":
		return KindPDF
	case ".doc":
		return KindDOC
	default:
		return KindText
	}
}

// Convert extracts the text of data based on the file name's extension.
// Anything not recognized as an office or PDF document is read as text.
func Convert(name string, data []byte) (string, error) {
	var (
		text string
		err  error
	)
	switch kind := KindOf(name); kind {
	case KindDOCX:
		text, err = DOCXText(data)
	case KindXLSX:
		text, err = XLSXText(data)
	case KindPDF:
		text, err = PDFText(data)
	case KindDOC:
		err = fmt.Errorf("%s: %w", kind, ErrUnsupported)
	default:
		text = PlainText(data)
	}
	if err != nil {
		return "", fmt.Errorf("convert %s: %w", name, err)
	}
	return text, nil
}

// PlainText decodes data as UTF-8, replacing invalid sequences.
func PlainText(data []byte) string {
	if utf8.Valid(data) {
		return string(data)
	}
	return strings.ToValidUTF8(string(data), "�")
}
