package documents

import (
	"fmt"
	"net/http"
	"path"
	"strings"
)

const maxFileNameChars = 255

// Sniffed content types accepted per upload extension. DOCX files sniff as
// plain zip archives, and text sniffs carry a charset suffix, so text entries
// are matched by prefix.
var allowedUploads = map[string][]string{
	".pdf":  {"application/pdf"},
	".docx": {"application/zip", "application/vnd.openxmlformats-officedocument.wordprocessingml.document"},
	".txt":  {"text/"},
}

// validateUpload rejects files outside the accepted formats before anything
// touches storage. The sniff buffer holds the file's leading bytes.
func validateUpload(fileName string, sniff []byte) error {
	if len(fileName) > maxFileNameChars {
		return fmt.Errorf("%w: file name exceeds %d characters", ErrUnsupportedFile, maxFileNameChars)
	}

	ext := strings.ToLower(path.Ext(fileName))
	accepted, ok := allowedUploads[ext]
	if !ok {
		return fmt.Errorf("%w: %q is not an accepted extension (.pdf, .docx, .txt)", ErrUnsupportedFile, ext)
	}

	if len(sniff) == 0 {
		return fmt.Errorf("%w: file is empty", ErrUnsupportedFile)
	}

	detected := http.DetectContentType(sniff)
	for _, want := range accepted {
		if strings.HasPrefix(detected, want) {
			return nil
		}
	}
	return fmt.Errorf("%w: content type %q does not match extension %q", ErrUnsupportedFile, detected, ext)
}
