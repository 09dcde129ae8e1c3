package resume

import (
	"archive/zip"
	"bytes"
	"errors"
	"io"
	"regexp"
	"strings"

	pdf "github.com/ledongthuc/pdf"
)

var (
	reTags   = regexp.MustCompile(`<[^>]+>`)
	reBlanks = regexp.MustCompile(`[ \t\r\f\v]+`)
	reLines  = regexp.MustCompile(`\n+`)
)

// ExtractText достаёт plain text из pdf и docx. Для остальных форматов ошибка.
func ExtractText(format Format, data []byte) (string, error) {
	switch format {
	case FormatPDF:
		return extractTextFromPDF(data)
	case FormatDOCX:
		return extractTextFromDocx(data)
	default:
		return "", errors.New("text extraction is supported for pdf and docx only")
	}
}

func extractTextFromPDF(data []byte) (text string, err error) {
	// ledongthuc/pdf паникует на части битых файлов
	defer func() {
		if r := recover(); r != nil {
			text, err = "", errors.New("malformed pdf")
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}
	rs, err := r.GetPlainText()
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if _, err = io.Copy(&buf, rs); err != nil {
		return "", err
	}
	return normalizeWhitespace(buf.String()), nil
}

func extractTextFromDocx(data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}
	var docXML []byte
	for _, f := range zr.File {
		if f.Name != "word/document.xml" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return "", err
		}
		docXML, err = io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return "", err
		}
		break
	}
	if len(docXML) == 0 {
		return "", errors.New("no document.xml found in docx")
	}

	xml := string(docXML)
	xml = strings.ReplaceAll(xml, "</w:p>", "\n")
	xml = strings.ReplaceAll(xml, "<w:tab/>", "\t")
	return normalizeWhitespace(reTags.ReplaceAllString(xml, " ")), nil
}

func normalizeWhitespace(s string) string {
	s = strings.ReplaceAll(s, "\u00A0", " ")
	s = reBlanks.ReplaceAllString(s, " ")
	s = reLines.ReplaceAllString(s, "\n")
	return strings.TrimSpace(s)
}
