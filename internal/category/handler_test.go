package category_test

import (
	"fmt"
	"testing"

	"github.com/Kyz7/beritablog/internal/database"
	"github.com/Kyz7/beritablog/internal/models"
	"github.com/Kyz7/beritablog/internal/testutils"

	"github.com/stretchr/testify/assert"
)

func TestCreateCategoryHandler(t *testing.T) {
	app := testutils.SetupTestApp(t)
	admin := testutils.CreateTestAdmin(t, database.DB, "admin@berita.id")
	author := testutils.CreateTestAuthor(t, database.DB, "penulis@berita.id", true)
	token := testutils.AdminToken(t, admin)

	t.Run("Success - Without icon", func(t *testing.T) {
		resp, err := testutils.MakeMultipartRequest(app, "POST", "/api/categories",
			map[string]string{"name": "Politik"}, token)
		assert.NoError(t, err)
		assert.Equal(t, 201, resp.Code)

		data := testutils.DataMap(t, resp)
		assert.Equal(t, "Politik", data["name"])
		assert.Nil(t, data["icon"])
		assert.Nil(t, data["deletedAt"])
	})

	t.Run("Success - With icon", func(t *testing.T) {
		resp, err := testutils.MakeMultipartRequestWithFile(app, "POST", "/api/categories",
			map[string]string{"name": "Olahraga"}, map[string][]byte{"icon": testutils.PNG(t)}, token)
		assert.NoError(t, err)
		assert.Equal(t, 201, resp.Code)

		data := testutils.DataMap(t, resp)
		assert.Contains(t, data["icon"], "/uploads/icon_category/")
	})

	t.Run("Error - Name required", func(t *testing.T) {
		resp, err := testutils.MakeMultipartRequest(app, "POST", "/api/categories",
			map[string]string{"name": "  "}, token)
		assert.NoError(t, err)
		assert.Equal(t, 400, resp.Code)
		testutils.AssertError(t, resp, "VALIDATION_ERROR")
	})

	t.Run("Error - Icon is not an image", func(t *testing.T) {
		resp, err := testutils.MakeMultipartRequestWithFile(app, "POST", "/api/categories",
			map[string]string{"name": "Ekonomi"}, map[string][]byte{"icon": []byte("plain text")}, token)
		assert.NoError(t, err)
		assert.Equal(t, 400, resp.Code)
	})

	t.Run("Error - Anonymous", func(t *testing.T) {
		resp, err := testutils.MakeMultipartRequest(app, "POST", "/api/categories",
			map[string]string{"name": "Hukum"}, "")
		assert.NoError(t, err)
		assert.Equal(t, 401, resp.Code)
	})

	t.Run("Error - Author is not admin", func(t *testing.T) {
		resp, err := testutils.MakeMultipartRequest(app, "POST", "/api/categories",
			map[string]string{"name": "Hukum"}, testutils.AuthorToken(t, author))
		assert.NoError(t, err)
		assert.Equal(t, 403, resp.Code)
		testutils.AssertError(t, resp, "FORBIDDEN")
	})
}

func TestListCategoriesHandler(t *testing.T) {
	app := testutils.SetupTestApp(t)
	admin := testutils.CreateTestAdmin(t, database.DB, "admin@berita.id")
	token := testutils.AdminToken(t, admin)

	for i := 1; i <= 12; i++ {
		testutils.CreateTestCategory(t, database.DB, fmt.Sprintf("Kategori %02d", i))
	}
	gone := testutils.CreateTestCategory(t, database.DB, "Arsip")
	testutils.SoftDelete(t, database.DB, &models.Category{}, gone.ID)

	t.Run("Success - Default page excludes deleted", func(t *testing.T) {
		resp, err := testutils.MakeRequest(app, "GET", "/api/categories", nil, "")
		assert.NoError(t, err)
		assert.Equal(t, 200, resp.Code)

		result := testutils.Parse(t, resp)
		assert.Len(t, result.Data, 10)
		assert.Equal(t, int64(12), result.Meta.Total)
		assert.Equal(t, int64(2), result.Meta.TotalPages)
	})

	t.Run("Success - Second page", func(t *testing.T) {
		resp, err := testutils.MakeRequest(app, "GET", "/api/categories?page=2&limit=10", nil, "")
		assert.NoError(t, err)

		items := testutils.DataList(t, resp)
		assert.Len(t, items, 2)
		assert.Equal(t, "Kategori 11", items[0]["name"])
	})

	t.Run("Success - Search is case-insensitive", func(t *testing.T) {
		resp, err := testutils.MakeRequest(app, "GET", "/api/categories?search=kategori%2001", nil, "")
		assert.NoError(t, err)

		items := testutils.DataList(t, resp)
		assert.Len(t, items, 1)
	})

	t.Run("Success - Admin lists only deleted", func(t *testing.T) {
		resp, err := testutils.MakeRequest(app, "GET", "/api/categories?showDeleted=true", nil, token)
		assert.NoError(t, err)
		assert.Equal(t, 200, resp.Code)

		items := testutils.DataList(t, resp)
		assert.Len(t, items, 1)
		assert.Equal(t, "Arsip", items[0]["name"])
		assert.NotNil(t, items[0]["deletedAt"])
	})

	t.Run("Error - Anonymous cannot list deleted", func(t *testing.T) {
		resp, err := testutils.MakeRequest(app, "GET", "/api/categories?showDeleted=true", nil, "")
		assert.NoError(t, err)
		assert.Equal(t, 401, resp.Code)
	})

	t.Run("Success - Direct fetch sees deleted row", func(t *testing.T) {
		resp, err := testutils.MakeRequest(app, "GET", fmt.Sprintf("/api/categories/%d", gone.ID), nil, "")
		assert.NoError(t, err)
		assert.Equal(t, 200, resp.Code)

		data := testutils.DataMap(t, resp)
		assert.NotNil(t, data["deletedAt"])
	})

	t.Run("Error - Invalid ID", func(t *testing.T) {
		resp, err := testutils.MakeRequest(app, "GET", "/api/categories/abc", nil, "")
		assert.NoError(t, err)
		assert.Equal(t, 400, resp.Code)
	})

	t.Run("Error - Not found", func(t *testing.T) {
		resp, err := testutils.MakeRequest(app, "GET", "/api/categories/9999", nil, "")
		assert.NoError(t, err)
		assert.Equal(t, 404, resp.Code)
		testutils.AssertError(t, resp, "NOT_FOUND")
	})
}

func TestUpdateCategoryHandler(t *testing.T) {
	app := testutils.SetupTestApp(t)
	admin := testutils.CreateTestAdmin(t, database.DB, "admin@berita.id")
	token := testutils.AdminToken(t, admin)
	cat := testutils.CreateTestCategory(t, database.DB, "Teknologi")
	url := fmt.Sprintf("/api/categories/%d", cat.ID)

	t.Run("Success - Rename", func(t *testing.T) {
		resp, err := testutils.MakeMultipartRequest(app, "PUT", url, map[string]string{"name": "Sains"}, token)
		assert.NoError(t, err)
		assert.Equal(t, 200, resp.Code)

		data := testutils.DataMap(t, resp)
		assert.Equal(t, "Sains", data["name"])
	})

	t.Run("Success - No changes", func(t *testing.T) {
		resp, err := testutils.MakeMultipartRequest(app, "PUT", url, map[string]string{"name": "Sains"}, token)
		assert.NoError(t, err)
		assert.Equal(t, 200, resp.Code)

		result := testutils.Parse(t, resp)
		assert.Equal(t, "No changes", result.Message)
	})

	t.Run("Success - Replace icon keeps name", func(t *testing.T) {
		resp, err := testutils.MakeMultipartRequestWithFile(app, "PUT", url, nil,
			map[string][]byte{"icon": testutils.PNG(t)}, token)
		assert.NoError(t, err)
		assert.Equal(t, 200, resp.Code)

		data := testutils.DataMap(t, resp)
		assert.Equal(t, "Sains", data["name"])
		assert.Contains(t, data["icon"], "/uploads/icon_category/")
	})

	t.Run("Error - Not found", func(t *testing.T) {
		resp, err := testutils.MakeMultipartRequest(app, "PUT", "/api/categories/9999",
			map[string]string{"name": "X"}, token)
		assert.NoError(t, err)
		assert.Equal(t, 404, resp.Code)
	})
}

func TestCategoryLifecycle(t *testing.T) {
	app := testutils.SetupTestApp(t)
	admin := testutils.CreateTestAdmin(t, database.DB, "admin@berita.id")
	token := testutils.AdminToken(t, admin)
	cat := testutils.CreateTestCategory(t, database.DB, "Budaya")
	url := fmt.Sprintf("/api/categories/%d", cat.ID)

	t.Run("Error - Restore live category", func(t *testing.T) {
		resp, err := testutils.MakeRequest(app, "POST", url+"/restore", nil, token)
		assert.NoError(t, err)
		assert.Equal(t, 409, resp.Code)
		testutils.AssertError(t, resp, "CONFLICT")
	})

	t.Run("Success - Delete", func(t *testing.T) {
		resp, err := testutils.MakeRequest(app, "DELETE", url, nil, token)
		assert.NoError(t, err)
		assert.Equal(t, 200, resp.Code)

		data := testutils.DataMap(t, resp)
		assert.NotNil(t, data["deletedAt"])
	})

	t.Run("Error - Delete twice", func(t *testing.T) {
		resp, err := testutils.MakeRequest(app, "DELETE", url, nil, token)
		assert.NoError(t, err)
		assert.Equal(t, 409, resp.Code)
	})

	t.Run("Success - Restore", func(t *testing.T) {
		resp, err := testutils.MakeRequest(app, "POST", url+"/restore", nil, token)
		assert.NoError(t, err)
		assert.Equal(t, 200, resp.Code)

		data := testutils.DataMap(t, resp)
		assert.Nil(t, data["deletedAt"])
	})

	t.Run("Error - Delete missing category", func(t *testing.T) {
		resp, err := testutils.MakeRequest(app, "DELETE", "/api/categories/9999", nil, token)
		assert.NoError(t, err)
		assert.Equal(t, 404, resp.Code)
	})
}

func TestCategoriesWithBlogsHandler(t *testing.T) {
	app := testutils.SetupTestApp(t)
	author := testutils.CreateTestAuthor(t, database.DB, "penulis@berita.id", true)
	inactive := testutils.CreateTestAuthor(t, database.DB, "pasif@berita.id", false)
	cat := testutils.CreateTestCategory(t, database.DB, "Nasional")
	testutils.CreateTestCategory(t, database.DB, "Kosong")

	for i := 0; i < 8; i++ {
		testutils.CreateTestBlog(t, database.DB, fmt.Sprintf("Berita %d", i), cat.ID, author.ID)
	}
	hidden := testutils.CreateTestBlog(t, database.DB, "Dihapus", cat.ID, author.ID)
	testutils.SoftDelete(t, database.DB, &models.Blog{}, hidden.ID)
	testutils.CreateTestBlog(t, database.DB, "Penulis pasif", cat.ID, inactive.ID)

	resp, err := testutils.MakeRequest(app, "GET", "/api/categories-with-blogs", nil, "")
	assert.NoError(t, err)
	assert.Equal(t, 200, resp.Code)

	items := testutils.DataList(t, resp)
	assert.Len(t, items, 2)

	byName := map[string]map[string]interface{}{}
	for _, item := range items {
		byName[item["name"].(string)] = item
	}

	nasional := byName["Nasional"]
	assert.Equal(t, float64(8), nasional["blogCount"])
	assert.Len(t, nasional["blogs"], 6)

	kosong := byName["Kosong"]
	assert.Equal(t, float64(0), kosong["blogCount"])
	assert.Nil(t, kosong["blogs"])
}

func TestCategorySearchIsLiteral(t *testing.T) {
	app := testutils.SetupTestApp(t)
	testutils.CreateTestCategory(t, database.DB, "Promo 100%")
	testutils.CreateTestCategory(t, database.DB, "Promo 1000")
	testutils.CreateTestCategory(t, database.DB, "Info_Kota")
	testutils.CreateTestCategory(t, database.DB, "InfoXKota")

	t.Run("Success - Percent matches itself", func(t *testing.T) {
		resp, err := testutils.MakeRequest(app, "GET", "/api/categories?search=100%25", nil, "")
		assert.NoError(t, err)

		items := testutils.DataList(t, resp)
		assert.Len(t, items, 1)
		assert.Equal(t, "Promo 100%", items[0]["name"])
	})

	t.Run("Success - Underscore matches itself", func(t *testing.T) {
		resp, err := testutils.MakeRequest(app, "GET", "/api/categories?search=info_kota", nil, "")
		assert.NoError(t, err)

		items := testutils.DataList(t, resp)
		assert.Len(t, items, 1)
		assert.Equal(t, "Info_Kota", items[0]["name"])
	})
}
