package file

import (
	"encoding/base64"
	"strings"
)

// UploadRequest is the JSON body of POST /files.
// Content is base64 (a data: URL prefix is tolerated); Size is used only
// when Content is absent.
type UploadRequest struct {
	Name     string  `json:"name" validate:"max=255"`
	Category string  `json:"category" validate:"omitempty,max=32"`
	Content  *string `json:"content"`
	Size     *int64  `json:"size" validate:"omitempty,gte=0"`
}

const defaultUploadCategory = CategoryDocuments

// ToInput decodes the request into service input.
func (r UploadRequest) ToInput() (UploadInput, error) {
	in := UploadInput{Name: r.Name, Category: Category(r.Category)}
	if in.Category == "" {
		in.Category = defaultUploadCategory
	}
	if r.Size != nil {
		in.SizeBytes = *r.Size
	}
	if r.Content != nil {
		content, err := decodeContent(*r.Content)
		if err != nil {
			return UploadInput{}, err
		}
		in.Content = content
	}
	return in, nil
}

func decodeContent(s string) ([]byte, error) {
	if strings.HasPrefix(s, "data:") {
		if i := strings.Index(s, ","); i >= 0 {
			s = s[i+1:]
		}
	}
	return base64.StdEncoding.DecodeString(strings.TrimSpace(s))
}

type ListResponse struct {
	Files []View `json:"files"`
	Count int    `json:"count"`
}

type UploadResponse struct {
	Success bool   `json:"success"`
	File    View   `json:"file"`
	Message string `json:"message"`
}

type DeleteResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}
