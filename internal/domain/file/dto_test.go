package file

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }
func int64Ptr(v int64) *int64 { return &v }

func TestUploadRequest_ToInput(t *testing.T) {
	encoded := base64.StdEncoding.EncodeToString([]byte("abc"))

	in, err := UploadRequest{Name: "a.txt", Content: strPtr(encoded), Size: int64Ptr(7)}.ToInput()
	require.NoError(t, err)
	assert.Equal(t, CategoryDocuments, in.Category, "category defaults to documents")
	assert.Equal(t, []byte("abc"), in.Content)
	assert.Equal(t, int64(7), in.SizeBytes)

	in, err = UploadRequest{Name: "b", Category: "music", Content: strPtr("data:audio/mpeg;base64," + encoded)}.ToInput()
	require.NoError(t, err)
	assert.Equal(t, CategoryMusic, in.Category)
	assert.Equal(t, []byte("abc"), in.Content)

	in, err = UploadRequest{Name: "c", Content: strPtr("")}.ToInput()
	require.NoError(t, err)
	assert.NotNil(t, in.Content)
	assert.Empty(t, in.Content)

	in, err = UploadRequest{Name: "d", Size: int64Ptr(42)}.ToInput()
	require.NoError(t, err)
	assert.Nil(t, in.Content)
	assert.Equal(t, int64(42), in.SizeBytes)

	_, err = UploadRequest{Name: "e", Content: strPtr("%%%not base64")}.ToInput()
	assert.Error(t, err)
}
