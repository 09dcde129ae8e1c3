package resume

import (
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

var extFormats = map[string]Format{
	".pdf":  FormatPDF,
	".doc":  FormatDOC,
	".docx": FormatDOCX,
}

var mimeFormats = map[string]Format{
	MimePDF:  FormatPDF,
	MimeDOC:  FormatDOC,
	MimeDOCX: FormatDOCX,
}

// Preflight проверяет файл до отправки на бэкенд: тип (по содержимому или
// расширению), размер и читаемость pdf/docx.
func Preflight(filename string, data []byte) (File, error) {
	filename = strings.TrimSpace(filepath.Base(filename))
	if len(data) == 0 || filename == "" || filename == "." {
		return File{}, ErrEmpty
	}

	detected := mimetype.Detect(data)
	format, ok := formatOf(detected)
	if !ok {
		format, ok = extFormats[strings.ToLower(filepath.Ext(filename))]
	}
	if !ok {
		return File{}, ErrUnsupportedType
	}
	if len(data) > MaxSize {
		return File{}, ErrTooLarge
	}

	f := File{
		Filename: filename,
		MimeType: mimeFor(format),
		Format:   format,
		Size:     int64(len(data)),
		Data:     data,
	}
	if format == FormatDOC {
		return f, nil
	}
	text, err := ExtractText(format, data)
	if err != nil {
		return File{}, ErrUnreadable
	}
	f.Chars = len([]rune(text))
	return f, nil
}

func formatOf(m *mimetype.MIME) (Format, bool) {
	for ; m != nil; m = m.Parent() {
		if f, ok := mimeFormats[m.String()]; ok {
			return f, true
		}
	}
	return "", false
}

func mimeFor(f Format) string {
	switch f {
	case FormatPDF:
		return MimePDF
	case FormatDOC:
		return MimeDOC
	default:
		return MimeDOCX
	}
}
