package docconv

import (
	"bytes"
	"fmt"

	sajari "code.sajari.com/docconv/v2"
)

// DOCXText returns the text of a .docx body, headers and footers. Paragraphs,
// breaks and tabs come out as newlines.
func DOCXText(data []byte) (text string, err error) {
	// the converter dereferences missing package parts
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("read docx: %v", r)
		}
	}()

	text, _, err = sajari.ConvertDocx(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("read docx: %w", err)
	}
	return text, nil
}
