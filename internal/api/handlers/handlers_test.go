package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/KAMEVETRICS/gensyn-portal/internal/api"
	"github.com/KAMEVETRICS/gensyn-portal/internal/auth"
	"github.com/KAMEVETRICS/gensyn-portal/internal/config"
	"github.com/KAMEVETRICS/gensyn-portal/internal/database"
	"github.com/KAMEVETRICS/gensyn-portal/internal/models"
	"github.com/KAMEVETRICS/gensyn-portal/internal/storage"
)

// memStorage is an in-memory asset backend recording puts and deletes.
type memStorage struct {
	mu      sync.Mutex
	objects map[string][]byte
	deleted []string
	limits  storage.Limits
}

func (m *memStorage) Put(data []byte, category storage.Category, filename, contentType string) (string, error) {
	if err := m.limits.Validate(category, int64(len(data)), contentType); err != nil {
		return "", err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	locator := fmt.Sprintf("/uploads/%s/%s", category, storage.UniqueFilename(filename))
	m.objects[locator] = data
	return locator, nil
}

func (m *memStorage) Delete(locator string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, locator)
	m.deleted = append(m.deleted, locator)
	return nil
}

func (m *memStorage) wasDeleted(locator string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, d := range m.deleted {
		if d == locator {
			return true
		}
	}
	return false
}

// setupTest wires a fresh in-memory database and asset backend behind the
// full route table.
func setupTest(t *testing.T) (*gin.Engine, *memStorage) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg, err := config.Load()
	require.NoError(t, err)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Folder{}, &models.Artwork{}))

	// Keep the shared in-memory database alive for the test's duration.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	database.DB = db

	store := &memStorage{
		objects: map[string][]byte{},
		limits:  storage.LimitsFromConfig(cfg),
	}
	storage.SetProvider(store)

	router := gin.New()
	api.SetupRoutes(router, cfg)
	return router, store
}

func createUser(t *testing.T, name, email string, mods ...func(*models.User)) *models.User {
	t.Helper()
	user := &models.User{
		Name:     name,
		Email:    email,
		Password: "not-a-real-hash",
	}
	for _, mod := range mods {
		mod(user)
	}
	require.NoError(t, database.GetDB().Create(user).Error)
	return user
}

func asAdmin(u *models.User)  { u.IsAdmin = true }
func asPaused(u *models.User) { u.IsPaused = true }

func tokenFor(t *testing.T, user *models.User) string {
	t.Helper()
	token, err := auth.GenerateToken(user.ID, user.Email, config.GetConfig())
	require.NoError(t, err)
	return token
}

func createArtwork(t *testing.T, creator *models.User, title string, folderID *string) *models.Artwork {
	t.Helper()
	artwork := &models.Artwork{
		Title:     title,
		ImageURL:  fmt.Sprintf("/uploads/artworks/1-%s.png", title),
		Filename:  title + ".png",
		CreatorID: creator.ID,
		FolderID:  folderID,
	}
	require.NoError(t, models.CreateArtwork(artwork))
	return artwork
}

func createFolder(t *testing.T, creator *models.User, name string) *models.Folder {
	t.Helper()
	folder := &models.Folder{Name: name, CreatorID: creator.ID}
	require.NoError(t, models.CreateFolder(folder))
	return folder
}

// doJSON performs a request with an optional JSON body and session token.
func doJSON(router *gin.Engine, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.AddCookie(&http.Cookie{Name: "token", Value: token})
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// doRaw performs a request with a raw body, for patch bodies with explicit
// nulls that a struct marshal would lose.
func doRaw(router *gin.Engine, method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.AddCookie(&http.Cookie{Name: "token", Value: token})
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// doUpload posts a multipart file to an upload endpoint.
func doUpload(router *gin.Engine, path, filename, contentType string, data []byte, token string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, filename))
	header.Set("Content-Type", contentType)
	part, _ := writer.CreatePart(header)
	part.Write(data)
	writer.Close()

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if token != "" {
		req.AddCookie(&http.Cookie{Name: "token", Value: token})
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func parseBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}
