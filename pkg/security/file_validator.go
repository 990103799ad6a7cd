package security

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
)

// Magic byte signatures for the CV document types we accept.
var cvMagicBytes = map[string][][]byte{
	".pdf":  {{0x25, 0x50, 0x44, 0x46}},                         // %PDF
	".doc":  {{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}}, // OLE Compound Document
	".docx": {{0x50, 0x4B, 0x03, 0x04}},                         // ZIP (PK..)
}

// ValidateCVContent checks that the uploaded file's extension is an accepted
// CV type and that the leading bytes match it. This is a second layer behind
// the declared-mimetype check: a renamed binary fails here even when the
// client lies about the Content-Type.
func ValidateCVContent(filename string, head []byte) error {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		return errors.New("file has no extension")
	}

	signatures, ok := cvMagicBytes[ext]
	if !ok {
		return errors.New("file extension not allowed: " + ext)
	}

	for _, sig := range signatures {
		if len(head) >= len(sig) && bytes.HasPrefix(head, sig) {
			return nil
		}
	}
	return errors.New("file content does not match extension (potential file spoofing detected)")
}
