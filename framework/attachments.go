package framework

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// Attachment is a named artifact produced during a test, such as the body of an HTTP response.
type Attachment struct {
	Name        string
	ContentType string
	Data        []byte
}

// AttachmentWriter persists the attachments of a finished test.
type AttachmentWriter interface {
	Write(id TestID, attachments []Attachment) error
}

// DirectoryAttachmentWriter writes each test's attachments to files under Dir, in a
// subdirectory named after the test ID.
type DirectoryAttachmentWriter struct {
	Dir string
}

var unsafeFileChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

func sanitizeFileName(s string) string {
	return strings.Trim(unsafeFileChars.ReplaceAllString(s, "_"), "_")
}

func (w DirectoryAttachmentWriter) Write(id TestID, attachments []Attachment) error {
	parts := []string{w.Dir}
	for _, p := range id.Path {
		parts = append(parts, sanitizeFileName(p))
	}
	dir := filepath.Join(parts...)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	for i, a := range attachments {
		name := fmt.Sprintf("%03d-%s%s", i+1, sanitizeFileName(a.Name), extensionFor(a.ContentType))
		if err := os.WriteFile(filepath.Join(dir, name), a.Data, 0o644); err != nil {
			return err
		}
	}
	return nil
}

func isTextContentType(contentType string) bool {
	return strings.HasPrefix(contentType, "text/") || strings.HasPrefix(contentType, "application/json")
}

func extensionFor(contentType string) string {
	switch {
	case strings.HasPrefix(contentType, "application/json"):
		return ".json"
	case strings.HasPrefix(contentType, "text/"):
		return ".txt"
	case contentType == "image/png":
		return ".png"
	default:
		return ".bin"
	}
}
