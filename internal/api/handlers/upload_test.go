package handlers_test

import (
	"bytes"
	"image"
	"image/png"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KAMEVETRICS/gensyn-portal/internal/models"
)

func smallPNG(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 8, 8))))
	return buf.Bytes()
}

func TestUploadImage(t *testing.T) {
	router, store := setupTest(t)
	user := createUser(t, "Ada", "ada@example.com")

	w := doUpload(router, "/upload", "my art piece.png", "image/png", []byte("fake image bytes"), tokenFor(t, user))
	require.Equal(t, http.StatusOK, w.Code)

	body := parseBody(t, w)
	locator := body["imageUrl"].(string)
	assert.Contains(t, locator, "/uploads/artworks/")
	assert.Equal(t, "my art piece.png", body["filename"])

	store.mu.Lock()
	_, stored := store.objects[locator]
	store.mu.Unlock()
	assert.True(t, stored)
}

func TestUploadImageRejections(t *testing.T) {
	router, _ := setupTest(t)
	user := createUser(t, "Ada", "ada@example.com")
	token := tokenFor(t, user)

	w := doUpload(router, "/upload", "doc.pdf", "application/pdf", []byte("%PDF-1.4"), token)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	big := make([]byte, 11*1024*1024)
	w = doUpload(router, "/upload", "huge.png", "image/png", big, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// No file field at all.
	w = doJSON(router, http.MethodPost, "/upload", nil, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doUpload(router, "/upload", "anon.png", "image/png", []byte("bytes"), "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUploadImagePausedAccount(t *testing.T) {
	router, _ := setupTest(t)
	user := createUser(t, "Ada", "ada@example.com", asPaused)

	w := doUpload(router, "/upload", "blocked.png", "image/png", []byte("bytes"), tokenFor(t, user))
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestUploadAvatar(t *testing.T) {
	router, store := setupTest(t)
	user := createUser(t, "Ada", "ada@example.com")
	token := tokenFor(t, user)

	w := doUpload(router, "/upload/avatar", "face.png", "image/png", smallPNG(t), token)
	require.Equal(t, http.StatusOK, w.Code)
	first := parseBody(t, w)["avatarUrl"].(string)
	assert.Contains(t, first, "/uploads/avatars/")

	reloaded, err := models.GetUserByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, first, reloaded.AvatarURL)

	// Replacing the avatar removes the previous asset.
	w = doUpload(router, "/upload/avatar", "face2.png", "image/png", smallPNG(t), token)
	require.Equal(t, http.StatusOK, w.Code)
	second := parseBody(t, w)["avatarUrl"].(string)
	assert.NotEqual(t, first, second)
	assert.True(t, store.wasDeleted(first))
}

func TestUploadAvatarPausedAccountAllowed(t *testing.T) {
	router, _ := setupTest(t)
	user := createUser(t, "Ada", "ada@example.com", asPaused)

	// The pause blocks new content, not profile upkeep.
	w := doUpload(router, "/upload/avatar", "face.png", "image/png", smallPNG(t), tokenFor(t, user))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestUploadAvatarRejections(t *testing.T) {
	router, _ := setupTest(t)
	user := createUser(t, "Ada", "ada@example.com")
	token := tokenFor(t, user)

	// Declared a PNG but not decodable.
	w := doUpload(router, "/upload/avatar", "face.png", "image/png", []byte("not an image"), token)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Avatar ceiling is lower than the artwork one.
	big := make([]byte, 6*1024*1024)
	w = doUpload(router, "/upload/avatar", "huge.png", "image/png", big, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doUpload(router, "/upload/avatar", "face.png", "image/png", smallPNG(t), "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
