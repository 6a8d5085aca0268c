package security

import (
	"bytes"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
)

// DefaultMaxCVBytes caps a CV attachment when no limit is configured.
const DefaultMaxCVBytes = 10 << 20

// FileValidationResult contains the result of file validation
type FileValidationResult struct {
	Valid        bool
	Extension    string
	DetectedMIME string
	Error        string
}

// Magic byte prefixes per allowed CV extension.
var magicBytes = map[string][][]byte{
	".pdf":  {{0x25, 0x50, 0x44, 0x46}},                         // %PDF
	".doc":  {{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}}, // OLE compound document
	".docx": {{0x50, 0x4B, 0x03, 0x04}},                         // ZIP
}

// MIME types accepted per extension. application/octet-stream is never
// accepted on its own; Word files fall back to it only after the magic
// bytes matched.
var allowedMIME = map[string]map[string]bool{
	".pdf": {"application/pdf": true},
	".doc": {"application/msword": true, "application/octet-stream": true},
	".docx": {
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
		"application/zip":          true,
		"application/octet-stream": true,
	},
}

// CVValidator checks uploaded CV attachments before they are forwarded.
type CVValidator struct {
	maxBytes int64
}

func NewCVValidator(maxBytes int64) *CVValidator {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxCVBytes
	}
	return &CVValidator{maxBytes: maxBytes}
}

// MaxBytes returns the configured size limit.
func (v *CVValidator) MaxBytes() int64 {
	return v.maxBytes
}

// Validate runs the extension, size, magic byte and MIME checks in that order.
func (v *CVValidator) Validate(filename string, data []byte) FileValidationResult {
	result := FileValidationResult{}

	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		result.Error = "File has no extension"
		return result
	}
	result.Extension = ext

	if _, ok := magicBytes[ext]; !ok {
		result.Error = "Only PDF, DOC or DOCX files are allowed"
		return result
	}

	if len(data) == 0 {
		result.Error = "File is empty"
		return result
	}
	if int64(len(data)) > v.maxBytes {
		result.Error = fmt.Sprintf("File must be %d MB or smaller", v.maxBytes>>20)
		return result
	}

	if !hasMagicPrefix(ext, data) {
		result.Error = "File content does not match its extension"
		return result
	}

	detected := http.DetectContentType(data)
	if i := strings.IndexByte(detected, ';'); i >= 0 {
		detected = detected[:i]
	}
	result.DetectedMIME = detected
	if !allowedMIME[ext][detected] {
		result.Error = "File type not allowed: " + detected
		return result
	}

	result.Valid = true
	return result
}

func hasMagicPrefix(ext string, data []byte) bool {
	for _, sig := range magicBytes[ext] {
		if bytes.HasPrefix(data, sig) {
			return true
		}
	}
	return false
}

// AllowedCVExtensions lists the accepted extensions, for the file input's accept attribute.
func AllowedCVExtensions() string {
	return ".pdf,.doc,.docx"
}
