package persist

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"fmt"

	perrors "github.com/conneroisu/passforge/internal/errors"
)

const (
	docxContentTypes = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
<Default Extension="xml" ContentType="application/xml"/>
<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
</Types>`

	docxRels = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>
</Relationships>`

	docxDocumentHead = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
<w:body><w:p><w:r><w:t xml:space="preserve">`

	docxDocumentTail = `</w:t></w:r></w:p></w:body>
</w:document>`
)

// DocxPersister writes the password as the single paragraph of a Word
// (.docx) document.
type DocxPersister struct{}

// Persist implements Persister.
func (DocxPersister) Persist(ctx context.Context, password string, dest Destination) (string, error) {
	data, err := BuildDocx(password)
	if err != nil {
		return "", err
	}
	return writeFile(ctx, dest.Path, ".docx", data)
}

// BuildDocx returns the bytes of a minimal Office Open XML document whose
// body is one paragraph containing text.
func BuildDocx(text string) ([]byte, error) {
	var escaped bytes.Buffer
	if err := xml.EscapeText(&escaped, []byte(text)); err != nil {
		return nil, perrors.NewInternalError(perrors.ErrCodeInternalError, "failed to escape document text", err)
	}

	parts := []struct {
		name string
		body string
	}{
		{"[Content_Types].xml", docxContentTypes},
		{"_rels/.rels", docxRels},
		{"word/document.xml", docxDocumentHead + escaped.String() + docxDocumentTail},
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, part := range parts {
		w, err := zw.Create(part.name)
		if err != nil {
			return nil, perrors.NewInternalError(perrors.ErrCodeInternalError,
				fmt.Sprintf("failed to add %s to document", part.name), err)
		}
		if _, err := w.Write([]byte(part.body)); err != nil {
			return nil, perrors.NewInternalError(perrors.ErrCodeInternalError,
				fmt.Sprintf("failed to write %s", part.name), err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, perrors.NewInternalError(perrors.ErrCodeInternalError, "failed to finish document", err)
	}

	return buf.Bytes(), nil
}
