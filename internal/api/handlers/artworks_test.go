package handlers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KAMEVETRICS/gensyn-portal/internal/database"
	"github.com/KAMEVETRICS/gensyn-portal/internal/models"
)

func TestCreateArtwork(t *testing.T) {
	router, _ := setupTest(t)
	user := createUser(t, "Ada", "ada@example.com")
	folder := createFolder(t, user, "Sketches")

	w := doJSON(router, http.MethodPost, "/artworks", map[string]interface{}{
		"title":       "Dawn",
		"description": "First light",
		"imageUrl":    "/uploads/artworks/1-dawn.png",
		"filename":    "dawn.png",
		"folderId":    folder.ID,
	}, tokenFor(t, user))
	require.Equal(t, http.StatusCreated, w.Code)

	artwork := parseBody(t, w)["artwork"].(map[string]interface{})
	assert.Equal(t, "Dawn", artwork["title"])
	assert.Equal(t, folder.ID, artwork["folderId"])
	assert.Equal(t, "Ada", artwork["creator"].(map[string]interface{})["name"])

	// Missing required fields.
	w = doJSON(router, http.MethodPost, "/artworks", map[string]interface{}{
		"description": "no title or image",
	}, tokenFor(t, user))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Anonymous.
	w = doJSON(router, http.MethodPost, "/artworks", map[string]interface{}{
		"title":    "Nope",
		"imageUrl": "/uploads/artworks/1-nope.png",
		"filename": "nope.png",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCreateArtworkRejectsForeignFolder(t *testing.T) {
	router, _ := setupTest(t)
	owner := createUser(t, "Ada", "ada@example.com")
	other := createUser(t, "Bob", "bob@example.com")
	folder := createFolder(t, owner, "Private")

	w := doJSON(router, http.MethodPost, "/artworks", map[string]interface{}{
		"title":    "Intrusion",
		"imageUrl": "/uploads/artworks/1-intrusion.png",
		"filename": "intrusion.png",
		"folderId": folder.ID,
	}, tokenFor(t, other))
	assert.Equal(t, http.StatusForbidden, w.Code)

	artworks, err := models.ListArtworks(other.ID)
	require.NoError(t, err)
	assert.Empty(t, artworks)
}

func TestCreateArtworkPausedAccount(t *testing.T) {
	router, _ := setupTest(t)
	user := createUser(t, "Ada", "ada@example.com", asPaused)

	input := map[string]interface{}{
		"title":    "Blocked",
		"imageUrl": "/uploads/artworks/1-blocked.png",
		"filename": "blocked.png",
	}

	w := doJSON(router, http.MethodPost, "/artworks", input, tokenFor(t, user))
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Clearing the pause restores the ability without a new session.
	require.NoError(t, models.UpdateUserFlags(user, map[string]interface{}{"is_paused": false}))

	w = doJSON(router, http.MethodPost, "/artworks", input, tokenFor(t, user))
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestListAndGetArtworks(t *testing.T) {
	router, _ := setupTest(t)
	ada := createUser(t, "Ada", "ada@example.com")
	bob := createUser(t, "Bob", "bob@example.com")
	a1 := createArtwork(t, ada, "One", nil)
	createArtwork(t, bob, "Two", nil)

	// The gallery is public and includes everyone's work.
	w := doJSON(router, http.MethodGet, "/artworks", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, parseBody(t, w)["artworks"], 2)

	w = doJSON(router, http.MethodGet, "/artworks/"+a1.ID, nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	artwork := parseBody(t, w)["artwork"].(map[string]interface{})
	assert.Equal(t, "One", artwork["title"])

	w = doJSON(router, http.MethodGet, "/artworks/no-such-id", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	// my-artworks scopes to the session.
	w = doJSON(router, http.MethodGet, "/artworks/my-artworks", nil, tokenFor(t, ada))
	require.Equal(t, http.StatusOK, w.Code)
	mine := parseBody(t, w)["artworks"].([]interface{})
	require.Len(t, mine, 1)
	assert.Equal(t, "One", mine[0].(map[string]interface{})["title"])

	w = doJSON(router, http.MethodGet, "/artworks/my-artworks", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUpdateArtworkPartialPatch(t *testing.T) {
	router, _ := setupTest(t)
	user := createUser(t, "Ada", "ada@example.com")
	folder := createFolder(t, user, "Sketches")
	artwork := createArtwork(t, user, "Dawn", &folder.ID)
	require.NoError(t, models.UpdateArtwork(artwork, map[string]interface{}{"description": "original"}))

	token := tokenFor(t, user)

	// Patching the title leaves description and folder untouched.
	w := doRaw(router, http.MethodPut, "/artworks/"+artwork.ID, `{"title":"Dusk"}`, token)
	require.Equal(t, http.StatusOK, w.Code)
	updated := parseBody(t, w)["artwork"].(map[string]interface{})
	assert.Equal(t, "Dusk", updated["title"])
	assert.Equal(t, "original", updated["description"])
	assert.Equal(t, folder.ID, updated["folderId"])

	// An explicit null detaches the folder.
	w = doRaw(router, http.MethodPut, "/artworks/"+artwork.ID, `{"folderId":null}`, token)
	require.Equal(t, http.StatusOK, w.Code)
	updated = parseBody(t, w)["artwork"].(map[string]interface{})
	assert.Nil(t, updated["folderId"])
	assert.Equal(t, "Dusk", updated["title"])

	// Empty title is rejected and nothing changes.
	w = doRaw(router, http.MethodPut, "/artworks/"+artwork.ID, `{"title":""}`, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	reloaded, err := models.GetArtworkByID(artwork.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dusk", reloaded.Title)
}

func TestUpdateArtworkOwnership(t *testing.T) {
	router, _ := setupTest(t)
	owner := createUser(t, "Ada", "ada@example.com")
	other := createUser(t, "Bob", "bob@example.com")
	admin := createUser(t, "Root", "root@example.com", asAdmin)
	artwork := createArtwork(t, owner, "Dawn", nil)

	w := doRaw(router, http.MethodPut, "/artworks/"+artwork.ID, `{"title":"Stolen"}`, tokenFor(t, other))
	assert.Equal(t, http.StatusForbidden, w.Code)

	reloaded, err := models.GetArtworkByID(artwork.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dawn", reloaded.Title)

	// Admins may edit anyone's metadata.
	w = doRaw(router, http.MethodPut, "/artworks/"+artwork.ID, `{"title":"Moderated"}`, tokenFor(t, admin))
	assert.Equal(t, http.StatusOK, w.Code)

	// But cannot file it into their own folder.
	adminFolder := createFolder(t, admin, "Admin stash")
	w = doRaw(router, http.MethodPut, "/artworks/"+artwork.ID,
		fmt.Sprintf(`{"folderId":%q}`, adminFolder.ID), tokenFor(t, admin))
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestDeleteArtwork(t *testing.T) {
	router, store := setupTest(t)
	owner := createUser(t, "Ada", "ada@example.com")
	other := createUser(t, "Bob", "bob@example.com")
	artwork := createArtwork(t, owner, "Dawn", nil)

	w := doJSON(router, http.MethodDelete, "/artworks/"+artwork.ID, nil, tokenFor(t, other))
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(router, http.MethodDelete, "/artworks/"+artwork.ID, nil, tokenFor(t, owner))
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, store.wasDeleted(artwork.ImageURL))

	w = doJSON(router, http.MethodGet, "/artworks/"+artwork.ID, nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(router, http.MethodDelete, "/artworks/"+artwork.ID, nil, tokenFor(t, owner))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestBatchMove(t *testing.T) {
	router, _ := setupTest(t)
	user := createUser(t, "Ada", "ada@example.com")
	other := createUser(t, "Bob", "bob@example.com")
	folder := createFolder(t, user, "Collected")
	a1 := createArtwork(t, user, "One", nil)
	a2 := createArtwork(t, user, "Two", nil)
	foreign := createArtwork(t, other, "Theirs", nil)

	w := doJSON(router, http.MethodPost, "/artworks/batch", map[string]interface{}{
		"action":     "move",
		"artworkIds": []string{a1.ID, a2.ID, foreign.ID},
		"folderId":   folder.ID,
	}, tokenFor(t, user))
	require.Equal(t, http.StatusOK, w.Code)

	body := parseBody(t, w)
	assert.Equal(t, float64(3), body["total"])
	assert.Equal(t, float64(2), body["success_count"])

	moved, err := models.GetArtworkByID(a1.ID)
	require.NoError(t, err)
	require.NotNil(t, moved.FolderID)
	assert.Equal(t, folder.ID, *moved.FolderID)

	untouched, err := models.GetArtworkByID(foreign.ID)
	require.NoError(t, err)
	assert.Nil(t, untouched.FolderID)

	// Moving with no folderId pulls artworks out of their folders.
	w = doJSON(router, http.MethodPost, "/artworks/batch", map[string]interface{}{
		"action":     "move",
		"artworkIds": []string{a1.ID},
	}, tokenFor(t, user))
	require.Equal(t, http.StatusOK, w.Code)

	moved, err = models.GetArtworkByID(a1.ID)
	require.NoError(t, err)
	assert.Nil(t, moved.FolderID)
}

func TestBatchDelete(t *testing.T) {
	router, store := setupTest(t)
	user := createUser(t, "Ada", "ada@example.com")
	a1 := createArtwork(t, user, "One", nil)
	a2 := createArtwork(t, user, "Two", nil)

	w := doJSON(router, http.MethodPost, "/artworks/batch", map[string]interface{}{
		"action":     "delete",
		"artworkIds": []string{a1.ID, a2.ID, "missing-id"},
	}, tokenFor(t, user))
	require.Equal(t, http.StatusOK, w.Code)

	body := parseBody(t, w)
	assert.Equal(t, float64(2), body["success_count"])
	assert.True(t, store.wasDeleted(a1.ImageURL))
	assert.True(t, store.wasDeleted(a2.ImageURL))

	var count int64
	require.NoError(t, database.GetDB().Model(&models.Artwork{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestBatchRejectsUnknownAction(t *testing.T) {
	router, _ := setupTest(t)
	user := createUser(t, "Ada", "ada@example.com")

	w := doJSON(router, http.MethodPost, "/artworks/batch", map[string]interface{}{
		"action":     "transmogrify",
		"artworkIds": []string{"x"},
	}, tokenFor(t, user))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
