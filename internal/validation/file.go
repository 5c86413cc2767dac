package validation

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"slices"
	"strings"
)

// AvatarMaxSize bounds a profile picture upload.
const AvatarMaxSize = 5 << 20

// avatarTypes maps each accepted sniffed content type to the file
// extensions allowed to carry it.
var avatarTypes = map[string][]string{
	"image/jpeg": {".jpg", ".jpeg"},
	"image/png":  {".png"},
	"image/webp": {".webp"},
}

// Avatar checks an uploaded profile picture and returns its content type as
// sniffed from the bytes, never the type the client claimed. The extension
// has to agree with the sniffed type.
func Avatar(header *multipart.FileHeader) (string, error) {
	if header.Size > AvatarMaxSize {
		return "", invalid("avatar", "file too large: maximum size is %d MB", AvatarMaxSize>>20)
	}

	file, err := header.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open avatar: %w", err)
	}
	defer func() { _ = file.Close() }()

	// DetectContentType looks at no more than 512 bytes.
	head := make([]byte, 512)
	n, err := io.ReadFull(file, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return "", fmt.Errorf("failed to read avatar: %w", err)
	}

	contentType := http.DetectContentType(head[:n])
	extensions, ok := avatarTypes[contentType]
	if !ok {
		return "", invalid("avatar", "unsupported image type %s, use jpeg, png or webp", contentType)
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !slices.Contains(extensions, ext) {
		return "", invalid("avatar", "extension %q does not match %s", ext, contentType)
	}

	return contentType, nil
}
