package services

import (
	"io"
	"os"
	"path/filepath"
	"strings"
)

// contentCap bounds how much raw text is appended to a representation.
const contentCap = 8 * 1024

// imageExts are the extensions treated as pictures.
var imageExts = map[string]bool{
	"png": true, "jpg": true, "jpeg": true, "gif": true, "webp": true,
	"bmp": true, "svg": true, "heic": true, "tif": true, "tiff": true, "ico": true,
}

// contentExts are the text-like extensions whose content grounds the representation.
var contentExts = map[string]bool{
	"txt": true, "md": true, "json": true, "log": true,
	"rs": true, "js": true, "ts": true,
}

// stemSeparators turns file name punctuation into spaces.
var stemSeparators = strings.NewReplacer("_", " ", "-", " ", ".", " ")

// FileExt returns the lowercase extension of path without the dot.
func FileExt(path string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
}

// BuildRepresentation describes a file in natural language for embedding.
// The description is derived from the name, extension and parent folder and,
// for text-like files, the first few KiB of content. Unreadable content is
// ignored.
func BuildRepresentation(path string) string {
	ext := FileExt(path)
	base := filepath.Base(path)
	stem := strings.TrimSpace(stemSeparators.Replace(strings.TrimSuffix(base, filepath.Ext(base))))
	if stem == "" {
		// Dotfiles such as .bashrc are all extension.
		stem = strings.TrimSpace(stemSeparators.Replace(base))
	}
	folder := filepath.Base(filepath.Dir(path))

	var b strings.Builder
	if ext == "" {
		b.WriteString("This is a file named " + stem + " located in " + folder + " folder.")
	} else {
		b.WriteString("This is a " + ext + " file named " + stem + " located in " + folder + " folder.")
	}

	for _, hint := range categoryHints(ext, strings.ToLower(stem)) {
		b.WriteString(" ")
		b.WriteString(hint)
	}

	if contentExts[ext] {
		if content := readContent(path, contentCap); content != "" {
			b.WriteString("\n")
			b.WriteString(content)
		}
	}

	return b.String()
}

// categoryHints returns the extra sentences for a file's extension class.
func categoryHints(ext, stem string) []string {
	switch {
	case imageExts[ext]:
		hints := []string{"It is an image, picture or photo."}
		if strings.Contains(stem, "logo") {
			hints = append(hints, "It is probably a logo or brand mark.")
		}
		if strings.Contains(stem, "screenshot") {
			hints = append(hints, "It is a screenshot of a screen or window.")
		}
		if strings.Contains(stem, "icon") {
			hints = append(hints, "It is an icon.")
		}
		return hints
	case ext == "pdf":
		return []string{"It is a PDF document such as a report, invoice, receipt or form."}
	case ext == "txt" || ext == "md":
		return []string{"It is a text document with notes or written content."}
	case ext == "exe" || ext == "msi":
		return []string{"It is a program installer or executable application."}
	default:
		return nil
	}
}

// readContent returns up to limit bytes of the file as valid UTF-8, or "".
func readContent(path string, limit int64) string {
	f, err := os.Open(path)
	if err != nil {
		return ""
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, limit))
	if err != nil && len(data) == 0 {
		return ""
	}
	// A cut at the cap may split a multi-byte rune.
	return strings.ToValidUTF8(string(data), "")
}
