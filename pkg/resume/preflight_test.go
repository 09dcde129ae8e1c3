package resume

import (
	"archive/zip"
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildDocx(t *testing.T, paragraphs ...string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	ct, err := zw.Create("[Content_Types].xml")
	require.NoError(t, err)
	_, err = ct.Write([]byte(`<?xml version="1.0" encoding="UTF-8"?><Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"></Types>`))
	require.NoError(t, err)

	doc, err := zw.Create("word/document.xml")
	require.NoError(t, err)
	body := `<w:document><w:body>`
	for _, p := range paragraphs {
		body += `<w:p><w:r><w:t>` + p + `</w:t></w:r></w:p>`
	}
	body += `</w:body></w:document>`
	_, err = doc.Write([]byte(body))
	require.NoError(t, err)

	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestPreflight_Docx(t *testing.T) {
	data := buildDocx(t, "Asha Rao", "Go developer")

	f, err := Preflight("cv/Asha CV.docx", data)
	require.NoError(t, err)
	assert.Equal(t, "Asha CV.docx", f.Filename)
	assert.Equal(t, FormatDOCX, f.Format)
	assert.Equal(t, MimeDOCX, f.MimeType)
	assert.Equal(t, int64(len(data)), f.Size)
	assert.Positive(t, f.Chars)

	text, err := ExtractText(FormatDOCX, data)
	require.NoError(t, err)
	assert.Equal(t, "Asha Rao \n Go developer", text)
}

func TestPreflight_Rejections(t *testing.T) {
	_, err := Preflight("notes.txt", []byte("just some text"))
	assert.Equal(t, ErrUnsupportedType, err)

	_, err = Preflight("cv.pdf", make([]byte, MaxSize+1))
	assert.Equal(t, ErrTooLarge, err)
	assert.Equal(t, "File size must be less than 20MB", err.Error())

	_, err = Preflight("cv.pdf", []byte("this is not a pdf at all"))
	assert.Equal(t, ErrUnreadable, err)

	_, err = Preflight("cv.docx", []byte("PK but not really a zip"))
	assert.Equal(t, ErrUnreadable, err)

	_, err = Preflight("cv.pdf", nil)
	assert.Equal(t, ErrEmpty, err)
}

func TestPreflight_DocIsNotParsed(t *testing.T) {
	f, err := Preflight("legacy.DOC", []byte("binary word 97 content"))
	require.NoError(t, err)
	assert.Equal(t, FormatDOC, f.Format)
	assert.Equal(t, MimeDOC, f.MimeType)
	assert.Zero(t, f.Chars)
}
