package serializer

import (
	"encoding/base64"
	"strings"
)

// ImageUpload holds the decoded bytes of a base64 image field together with
// the file extension derived from its data URI header.
type ImageUpload struct {
	Data []byte
	Ext  string
}

// DecodeImageField decodes a base64 image field. The value is either a data
// URI ("data:image/png;base64,...") or a bare base64 string, in which case
// the extension defaults to png.
func DecodeImageField(value string) (*ImageUpload, error) {
	ext := "png"
	payload := value

	if strings.HasPrefix(value, "data:") {
		header, rest, ok := strings.Cut(value, ",")
		if !ok {
			return nil, newValidationError("image", "malformed data URI")
		}
		payload = rest

		mediaType := strings.TrimPrefix(header, "data:")
		mediaType = strings.TrimSuffix(mediaType, ";base64")
		if sub, ok := strings.CutPrefix(mediaType, "image/"); ok && sub != "" {
			ext = sub
		}
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, newValidationError("image", "invalid base64 image data")
	}
	if len(data) == 0 {
		return nil, newValidationError("image", "image data is empty")
	}

	return &ImageUpload{Data: data, Ext: ext}, nil
}
