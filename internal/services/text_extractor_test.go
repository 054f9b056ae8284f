package services

import (
	"archive/zip"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const documentXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>Jane Doe</w:t></w:r></w:p>
    <w:p><w:r><w:t xml:space="preserve">Go </w:t></w:r><w:r><w:t>Engineer</w:t></w:r></w:p>
    <w:p></w:p>
    <w:p><w:r><w:t>Skills:</w:t><w:tab/><w:t>Kubernetes &amp; gRPC</w:t></w:r></w:p>
  </w:body>
</w:document>`

func writeDOCX(t *testing.T, dir string, body string) string {
	t.Helper()
	path := filepath.Join(dir, "resume.docx")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	zw := zip.NewWriter(f)
	w, err := zw.Create("word/document.xml")
	require.NoError(t, err)
	_, err = w.Write([]byte(body))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return path
}

func TestExtractText_DOCX(t *testing.T) {
	path := writeDOCX(t, t.TempDir(), documentXML)

	text, err := NewTextExtractor(nil).ExtractText(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe\nGo Engineer\nSkills:\tKubernetes & gRPC", text)
}

func TestExtractText_TXT(t *testing.T) {
	path := filepath.Join(t.TempDir(), "resume.txt")
	require.NoError(t, os.WriteFile(path, []byte("\n  Jane Doe  \n\n\nBackend developer\n"), 0o644))

	text, err := NewTextExtractor(nil).ExtractText(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe\nBackend developer", text)
}

func TestExtractText_EmptyTXTFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blank.txt")
	require.NoError(t, os.WriteFile(path, []byte(" \n\n "), 0o644))

	_, err := NewTextExtractor(nil).ExtractText(context.Background(), path)
	assert.ErrorContains(t, err, "no text content")
}

func TestExtractText_PNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scan.png")
	require.NoError(t, os.WriteFile(path, []byte{0x89, 'P', 'N', 'G'}, 0o644))

	_, err := NewTextExtractor(nil).ExtractText(context.Background(), path)
	assert.True(t, errors.Is(err, ErrUnsupportedFormat))

	text, err := NewTextExtractor(&fakeGemini{imageText: "Jane Doe\nData Scientist"}).ExtractText(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe\nData Scientist", text)
}

func TestExtractText_UnsupportedExtension(t *testing.T) {
	_, err := NewTextExtractor(nil).ExtractText(context.Background(), "resume.odt")
	assert.True(t, errors.Is(err, ErrUnsupportedFormat))
}

func TestExtractText_DOCXWithoutBody(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.docx")
	f, err := os.Create(path)
	require.NoError(t, err)
	zw := zip.NewWriter(f)
	_, err = zw.Create("word/styles.xml")
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())

	_, err = NewTextExtractor(nil).ExtractText(context.Background(), path)
	assert.ErrorContains(t, err, "word/document.xml")
}

func TestContentTypeFor(t *testing.T) {
	ct, ok := ContentTypeFor("CV.PDF")
	assert.True(t, ok)
	assert.Equal(t, "application/pdf", ct)

	_, ok = ContentTypeFor("cv.exe")
	assert.False(t, ok)
}
