package constants

import "strings"

// FileFormats holds the allowed file formats for the format field in ExtractJob.
var FileFormats = []string{"PDF", "TXT"}

// AllowedExtensions holds the allowed file extensions for uploaded
// purchase-order documents. Scanned images are out: there is no OCR path.
var AllowedExtensions = map[string]struct{}{
	"pdf": {},
	"txt": {},
}

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// MapExtToFormat maps a normalized extension to its job format, or "".
func MapExtToFormat(ext string) string {
	switch NormalizeExt(ext) {
	case "pdf":
		return "PDF"
	case "txt":
		return "TXT"
	}
	return ""
}
