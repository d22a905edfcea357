package services

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/textproto"
	"strings"
	"testing"

	"github.com/abhiraj-restaurant/restaurant-api/models"
	"github.com/abhiraj-restaurant/restaurant-api/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createImageFileHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="image"; filename="`+filename+`"`)
	h.Set("Content-Type", "application/octet-stream")
	part, err := writer.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	form, err := multipart.NewReader(body, writer.Boundary()).ReadForm(int64(len(content)) + 1024)
	require.NoError(t, err)
	t.Cleanup(func() { form.RemoveAll() })

	return form.File["image"][0]
}

func TestS3ImageService_Lifecycle(t *testing.T) {
	mockS3 := NewMockS3Service()
	images := InitImageService(mockS3)
	defer SetImageService(nil)
	ctx := context.Background()

	assert.Same(t, images, GetImageService())

	key, err := images.UploadImage(ctx, createImageFileHeader(t, "lava cake.jpg", []byte("jpeg bytes")))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(key, "menu/"), key)
	assert.True(t, mockS3.FileExists(key))

	url, err := images.GetImageURL(ctx, key)
	require.NoError(t, err)
	assert.Contains(t, url, key)

	empty, err := images.GetImageURL(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, empty)

	require.NoError(t, images.DeleteImage(ctx, key))
	assert.False(t, mockS3.FileExists(key))
	assert.Zero(t, mockS3.Count())

	_, err = images.GetImageURL(ctx, key)
	assert.Error(t, err)
}

func TestS3ImageService_RejectsInvalidFiles(t *testing.T) {
	mockS3 := NewMockS3Service()
	images := InitImageService(mockS3)
	defer SetImageService(nil)

	_, err := images.UploadImage(context.Background(), createImageFileHeader(t, "menu.gif", []byte("gif")))

	var fileErr *utils.FileUploadError
	require.ErrorAs(t, err, &fileErr)
	assert.Equal(t, "INVALID_FILE_FORMAT", fileErr.Code)
	assert.Zero(t, mockS3.Count())
}

func TestAttachImageURLs(t *testing.T) {
	images := NewMockImageService()
	ctx := context.Background()

	key, err := images.UploadImage(ctx, createImageFileHeader(t, "steak.png", []byte("png")))
	require.NoError(t, err)

	missing := "menu/gone.png"
	withPhoto := &models.MenuItem{ID: 1, ImageS3Key: &key}
	withoutPhoto := &models.MenuItem{ID: 2}
	broken := &models.MenuItem{ID: 3, ImageS3Key: &missing}

	AttachImageURLs(ctx, images, withPhoto, withoutPhoto, broken)

	assert.Contains(t, withPhoto.ImageURL, key)
	assert.Empty(t, withoutPhoto.ImageURL)
	assert.Empty(t, broken.ImageURL)

	// No storage configured
	plain := &models.MenuItem{ID: 4, ImageS3Key: &key}
	AttachImageURLs(ctx, nil, plain)
	assert.Empty(t, plain.ImageURL)
}
