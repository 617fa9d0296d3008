package testutils

import (
	"bytes"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Kyz7/beritablog/internal/cache"
	"github.com/Kyz7/beritablog/internal/config"
	"github.com/Kyz7/beritablog/internal/database"
	"github.com/Kyz7/beritablog/internal/models"
	"github.com/Kyz7/beritablog/internal/server"
	"github.com/Kyz7/beritablog/internal/storage"
	"github.com/Kyz7/beritablog/internal/utils"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

const TestPassword = "password123"

func TestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	assert.NoError(t, err, "Failed to create test database")

	// one connection keeps the in-memory database alive and shared
	sqlDB, err := db.DB()
	assert.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(models.All()...)
	assert.NoError(t, err, "Failed to migrate test database")

	return db
}

func TestConfig(t *testing.T) *config.Config {
	return &config.Config{
		AdminTokenTTL:     time.Hour,
		AuthorTokenTTL:    24 * time.Hour,
		StorageMode:       "local",
		UploadDir:         t.TempDir(),
		PublicBaseURL:     "http://localhost:8080",
		CORSOrigins:       "http://localhost:3000",
		AdminWebDir:       t.TempDir(),
		AdminContactPhone: "6285772918284",
		LoginRateLimit:    1000,
		LoginRateWindow:   time.Minute,
	}
}

func SetupTestApp(t *testing.T) *fiber.App {
	db := TestDB(t)
	database.DB = db

	cfg := TestConfig(t)

	local, err := storage.NewLocal(cfg.UploadDir, cfg.PublicBaseURL)
	assert.NoError(t, err, "Failed to initialize storage")
	storage.Use(storage.New(local))
	cache.Use(nil)

	app := server.New(db, cfg)
	return app
}

func CreateTestAdmin(t *testing.T, db *gorm.DB, username string) *models.Admin {
	hashedPassword, _ := utils.HashPassword(TestPassword)

	admin := &models.Admin{
		Nama:     "Test Admin",
		Username: username,
		Password: hashedPassword,
	}
	err := db.Create(admin).Error
	assert.NoError(t, err, "Failed to create test admin")
	return admin
}

func CreateTestAuthor(t *testing.T, db *gorm.DB, username string, active bool) *models.Author {
	hashedPassword, _ := utils.HashPassword(TestPassword)

	author := &models.Author{
		Name:     "Penulis " + username,
		Username: username,
		Password: hashedPassword,
		Profesi:  "Jurnalis",
		Foto:     "http://localhost:8080/uploads/foto_authors/test.png",
		IsActive: active,
	}
	err := db.Create(author).Error
	assert.NoError(t, err, "Failed to create test author")
	return author
}

func CreateTestCategory(t *testing.T, db *gorm.DB, name string) *models.Category {
	category := &models.Category{Name: name}
	err := db.Create(category).Error
	assert.NoError(t, err, "Failed to create test category")
	return category
}

func CreateTestBlog(t *testing.T, db *gorm.DB, title string, categoryID, authorID uint) *models.Blog {
	blog := &models.Blog{
		Title:      title,
		Content:    "<p>Isi berita " + title + "</p>",
		Headline:   "http://localhost:8080/uploads/headlines/test.png",
		CategoryID: categoryID,
		AuthorID:   authorID,
	}
	err := db.Create(blog).Error
	assert.NoError(t, err, "Failed to create test blog")
	return blog
}

// SoftDelete stamps deleted_at directly, bypassing the lifecycle rules.
func SoftDelete(t *testing.T, db *gorm.DB, model interface{}, id uint) {
	err := db.Unscoped().Model(model).Where("id = ?", id).Update("deleted_at", time.Now()).Error
	assert.NoError(t, err, "Failed to soft delete")
}

func AdminToken(t *testing.T, admin *models.Admin) string {
	token, err := utils.GenerateJWT(admin.ID, utils.RoleAdmin, admin.Username, time.Hour)
	assert.NoError(t, err, "Failed to generate test token")
	return token
}

func AuthorToken(t *testing.T, author *models.Author) string {
	token, err := utils.GenerateJWT(author.ID, utils.RoleAuthor, author.Username, time.Hour)
	assert.NoError(t, err, "Failed to generate test token")
	return token
}

// PNG returns a small valid PNG image.
func PNG(t *testing.T) []byte {
	img := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	for x := 0; x < 8; x++ {
		img.Set(x, x, color.NRGBA{B: 255, A: 255})
	}
	var buf bytes.Buffer
	assert.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func setBearer(req *http.Request, token string) {
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

func do(app *fiber.App, req *http.Request) (*httptest.ResponseRecorder, error) {
	rec := httptest.NewRecorder()

	resp, err := app.Test(req, -1)
	if err != nil {
		return rec, err
	}

	rec.Code = resp.StatusCode
	for k, v := range resp.Header {
		for _, val := range v {
			rec.Header().Add(k, val)
		}
	}

	io.Copy(rec.Body, resp.Body)
	resp.Body.Close()

	return rec, nil
}

func MakeRequest(app *fiber.App, method, url string, body interface{}, token string) (*httptest.ResponseRecorder, error) {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		bodyReader = bytes.NewReader(jsonBody)
	}

	req := httptest.NewRequest(method, url, bodyReader)
	req.Header.Set("Content-Type", "application/json")
	setBearer(req, token)

	return do(app, req)
}

// MakeRequestWithHeaders sends a JSON request with extra headers set.
func MakeRequestWithHeaders(app *fiber.App, method, url string, body interface{}, headers map[string]string) (*httptest.ResponseRecorder, error) {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		bodyReader = bytes.NewReader(jsonBody)
	}

	req := httptest.NewRequest(method, url, bodyReader)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return do(app, req)
}

// MakeCookieRequest sends the token the way a browser would, in the named
// cookie instead of the Authorization header.
func MakeCookieRequest(app *fiber.App, method, url string, body interface{}, cookie, token string) (*httptest.ResponseRecorder, error) {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		bodyReader = bytes.NewReader(jsonBody)
	}

	req := httptest.NewRequest(method, url, bodyReader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Cookie", cookie+"="+token)
	}

	return do(app, req)
}

func MakeMultipartRequest(app *fiber.App, method, url string, fields map[string]string, token string) (*httptest.ResponseRecorder, error) {
	return MakeMultipartRequestWithFile(app, method, url, fields, nil, token)
}

// MakeMultipartRequestWithFile uploads each file as <field>.png.
func MakeMultipartRequestWithFile(app *fiber.App, method, url string, fields map[string]string, files map[string][]byte, token string) (*httptest.ResponseRecorder, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	for key, val := range fields {
		writer.WriteField(key, val)
	}

	for fieldName, fileContent := range files {
		part, err := writer.CreateFormFile(fieldName, fieldName+".png")
		if err != nil {
			return nil, err
		}
		part.Write(fileContent)
	}

	contentType := writer.FormDataContentType()
	writer.Close()

	req := httptest.NewRequest(method, url, body)
	req.Header.Set("Content-Type", contentType)
	setBearer(req, token)

	return do(app, req)
}

func MakeRedirectRequest(app *fiber.App, method, url string, cookie, token string) (*httptest.ResponseRecorder, error) {
	req := httptest.NewRequest(method, url, nil)
	if token != "" {
		req.Header.Set("Cookie", cookie+"="+token)
	}
	return do(app, req)
}

func ParseResponse(t *testing.T, resp *httptest.ResponseRecorder, v interface{}) {
	if resp.Body.Len() == 0 {
		t.Log("Warning: Response body is empty")
		return
	}

	err := json.NewDecoder(bytes.NewReader(resp.Body.Bytes())).Decode(v)
	if err != nil && err != io.EOF {
		t.Logf("Response body: %s", resp.Body.String())
		assert.NoError(t, err, "Failed to parse response")
	}
}

type StandardResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Data    interface{}  `json:"data"`
	Error   *ErrorDetail `json:"error"`
	Meta    *Meta        `json:"meta"`
}

type ErrorDetail struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details"`
}

type Meta struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"total_pages"`
}

// Parse decodes the envelope so tests can inspect Data and Meta.
func Parse(t *testing.T, resp *httptest.ResponseRecorder) StandardResponse {
	var result StandardResponse
	ParseResponse(t, resp, &result)
	return result
}

// DataMap returns the response data as an object.
func DataMap(t *testing.T, resp *httptest.ResponseRecorder) map[string]interface{} {
	result := Parse(t, resp)
	data, ok := result.Data.(map[string]interface{})
	assert.True(t, ok, "Expected object data, got %T", result.Data)
	return data
}

// DataList returns the response data as an array of objects.
func DataList(t *testing.T, resp *httptest.ResponseRecorder) []map[string]interface{} {
	result := Parse(t, resp)
	raw, ok := result.Data.([]interface{})
	assert.True(t, ok, "Expected array data, got %T", result.Data)

	items := make([]map[string]interface{}, 0, len(raw))
	for _, item := range raw {
		if m, ok := item.(map[string]interface{}); ok {
			items = append(items, m)
		}
	}
	return items
}

func AssertSuccess(t *testing.T, resp *httptest.ResponseRecorder) {
	result := Parse(t, resp)
	assert.True(t, result.Success, "Expected success response")
	assert.Empty(t, result.Error, "Expected no error")
}

func AssertError(t *testing.T, resp *httptest.ResponseRecorder, expectedCode string) {
	result := Parse(t, resp)
	assert.False(t, result.Success, "Expected error response")
	if assert.NotNil(t, result.Error, "Expected error object") {
		assert.Equal(t, expectedCode, result.Error.Code, "Error code mismatch")
	}
}

// AuthCookie returns the value of the named Set-Cookie header.
func AuthCookie(resp *httptest.ResponseRecorder, name string) string {
	for _, c := range (&http.Response{Header: resp.Header()}).Cookies() {
		if c.Name == name {
			return c.Value
		}
	}
	return ""
}
