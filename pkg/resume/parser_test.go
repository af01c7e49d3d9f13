package resume

import (
	"archive/zip"
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func docx(t *testing.T, body string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	require.NoError(t, err)
	_, err = w.Write([]byte(body))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestParseDocx(t *testing.T) {
	data := docx(t, `<w:document><w:body><w:p><w:r><w:t>山田</w:t></w:r><w:r><w:t>太郎</w:t></w:r></w:p><w:p><w:r><w:t>東京大学　工学部</w:t></w:r></w:p></w:body></w:document>`)

	text, err := ParseDocumentText("cv.DOCX", data)
	require.NoError(t, err)
	assert.Equal(t, "山田太郎\n東京大学 工学部", text)
}

func TestParseRejects(t *testing.T) {
	_, err := ParseDocumentText("cv.txt", []byte("hello"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = ParseDocumentText("cv.docx", []byte("not a zip"))
	assert.ErrorIs(t, err, ErrUnreadableDocument)

	_, err = ParseDocumentText("cv.docx", docx(t, `<w:document></w:document>`))
	assert.ErrorIs(t, err, ErrUnreadableDocument)

	_, err = ParseDocumentText("cv.pdf", []byte("%PDF-broken"))
	assert.ErrorIs(t, err, ErrUnreadableDocument)
}
