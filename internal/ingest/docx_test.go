package ingest

import (
	"archive/zip"
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildDocx(t *testing.T, documentXML string) []byte {
	t.Helper()

	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	f, err := w.Create("word/document.xml")
	require.NoError(t, err)
	_, err = f.Write([]byte(documentXML))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func TestExtractDocxParagraphs(t *testing.T) {
	data := buildDocx(t, `<?xml version="1.0"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>First paragraph.</w:t></w:r></w:p>
    <w:p><w:r><w:t>Second </w:t></w:r><w:r><w:t>paragraph.</w:t></w:r></w:p>
  </w:body>
</w:document>`)

	content, err := ExtractDocx(data)
	require.NoError(t, err)
	assert.Equal(t, "First paragraph.\nSecond paragraph.", content)
}

func TestExtractDocxTabsAndBreaks(t *testing.T) {
	data := buildDocx(t, `<?xml version="1.0"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>a</w:t><w:tab/><w:t>b</w:t><w:br/><w:t>c</w:t></w:r></w:p>
  </w:body>
</w:document>`)

	content, err := ExtractDocx(data)
	require.NoError(t, err)
	assert.Equal(t, "a\tb\nc", content)
}

func TestExtractDocxIgnoresTextOutsideRuns(t *testing.T) {
	// Whitespace between elements must not leak into the output.
	data := buildDocx(t, `<?xml version="1.0"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p>
      <w:pPr><w:jc w:val="center"/></w:pPr>
      <w:r><w:t>only this</w:t></w:r>
    </w:p>
  </w:body>
</w:document>`)

	content, err := ExtractDocx(data)
	require.NoError(t, err)
	assert.Equal(t, "only this", content)
}

func TestExtractDocxMissingDocumentXML(t *testing.T) {
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	f, err := w.Create("word/styles.xml")
	require.NoError(t, err)
	_, err = f.Write([]byte("<w:styles/>"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	_, err = ExtractDocx(buf.Bytes())
	assert.ErrorContains(t, err, "word/document.xml not found")
}

func TestExtractDocxRejectsNonArchive(t *testing.T) {
	_, err := ExtractDocx([]byte("plain bytes, not a zip"))
	assert.Error(t, err)
}
