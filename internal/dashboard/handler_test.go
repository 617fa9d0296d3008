package dashboard_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/Kyz7/beritablog/internal/cache"
	"github.com/Kyz7/beritablog/internal/database"
	"github.com/Kyz7/beritablog/internal/models"
	"github.com/Kyz7/beritablog/internal/testutils"

	"github.com/stretchr/testify/assert"
)

type memoryCache struct {
	mu   sync.Mutex
	data map[string][]byte
	ttls map[string]time.Duration
}

func newMemoryCache() *memoryCache {
	return &memoryCache{data: map[string][]byte{}, ttls: map[string]time.Duration{}}
}

func (m *memoryCache) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	if !ok {
		return nil, cache.ErrMiss
	}
	return v, nil
}

func (m *memoryCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	m.ttls[key] = ttl
	return nil
}

func (m *memoryCache) Delete(_ context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.data, k)
	}
	return nil
}

func TestDashboardHandler(t *testing.T) {
	app := testutils.SetupTestApp(t)
	admin := testutils.CreateTestAdmin(t, database.DB, "admin@berita.id")
	token := testutils.AdminToken(t, admin)

	author := testutils.CreateTestAuthor(t, database.DB, "penulis@berita.id", true)
	cat := testutils.CreateTestCategory(t, database.DB, "Nasional")
	gone := testutils.CreateTestCategory(t, database.DB, "Arsip")
	testutils.SoftDelete(t, database.DB, &models.Category{}, gone.ID)
	testutils.CreateTestBlog(t, database.DB, "Satu", cat.ID, author.ID)
	testutils.CreateTestBlog(t, database.DB, "Dua", cat.ID, author.ID)
	assert.NoError(t, database.DB.Create(&models.Visitor{IPAddress: "192.0.2.1"}).Error)

	mem := newMemoryCache()
	cache.Use(mem)
	t.Cleanup(func() { cache.Use(nil) })

	t.Run("Success - Counts live rows", func(t *testing.T) {
		resp, err := testutils.MakeRequest(app, "GET", "/api/dashboard", nil, token)
		assert.NoError(t, err)
		assert.Equal(t, 200, resp.Code)

		data := testutils.DataMap(t, resp)
		assert.Equal(t, float64(1), data["category"])
		assert.Equal(t, float64(2), data["blog"])
		assert.Equal(t, float64(1), data["author"])
		assert.Equal(t, float64(0), data["iklan"])
		assert.Equal(t, float64(1), data["visitor"])

		assert.Equal(t, 30*time.Second, mem.ttls["dashboard:counts"])
	})

	t.Run("Success - Served from cache", func(t *testing.T) {
		testutils.CreateTestCategory(t, database.DB, "Baru")

		resp, err := testutils.MakeRequest(app, "GET", "/api/dashboard", nil, token)
		assert.NoError(t, err)
		assert.Equal(t, float64(1), testutils.DataMap(t, resp)["category"])
	})

	t.Run("Success - Refresh bypasses cache", func(t *testing.T) {
		resp, err := testutils.MakeRequest(app, "GET", "/api/dashboard?refresh=true", nil, token)
		assert.NoError(t, err)
		assert.Equal(t, float64(2), testutils.DataMap(t, resp)["category"])
	})

	t.Run("Error - Author", func(t *testing.T) {
		resp, err := testutils.MakeRequest(app, "GET", "/api/dashboard", nil, testutils.AuthorToken(t, author))
		assert.NoError(t, err)
		assert.Equal(t, 403, resp.Code)
	})

	t.Run("Error - Anonymous", func(t *testing.T) {
		resp, err := testutils.MakeRequest(app, "GET", "/api/dashboard", nil, "")
		assert.NoError(t, err)
		assert.Equal(t, 401, resp.Code)
	})
}
