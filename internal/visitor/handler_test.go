package visitor_test

import (
	"testing"

	"github.com/Kyz7/beritablog/internal/database"
	"github.com/Kyz7/beritablog/internal/models"
	"github.com/Kyz7/beritablog/internal/testutils"

	"github.com/stretchr/testify/assert"
)

func TestRecordVisitHandler(t *testing.T) {
	app := testutils.SetupTestApp(t)

	body := map[string]interface{}{
		"ipAddress": "203.0.113.7",
		"device":    "mobile",
		"browser":   "Chrome",
		"os":        "Android",
	}

	t.Run("Success - First visit creates visitor", func(t *testing.T) {
		resp, err := testutils.MakeRequest(app, "POST", "/api/visitor", body, "")
		assert.NoError(t, err)
		assert.Equal(t, 201, resp.Code)

		data := testutils.DataMap(t, resp)
		assert.Equal(t, "203.0.113.7", data["ipAddress"])
		assert.Len(t, data["visitTime"], 1)
	})

	t.Run("Success - Next visit appends", func(t *testing.T) {
		resp, err := testutils.MakeRequest(app, "POST", "/api/visitor", body, "")
		assert.NoError(t, err)
		assert.Equal(t, 200, resp.Code)

		data := testutils.DataMap(t, resp)
		assert.Len(t, data["visitTime"], 2)

		var count int64
		database.DB.Model(&models.Visitor{}).Count(&count)
		assert.Equal(t, int64(1), count)
	})

	t.Run("Success - Address taken from forwarded header", func(t *testing.T) {
		resp, err := testutils.MakeRequestWithHeaders(app, "POST", "/api/visitor",
			map[string]interface{}{"device": "desktop"},
			map[string]string{"X-Forwarded-For": "198.51.100.9"})
		assert.NoError(t, err)
		assert.Equal(t, 201, resp.Code)
		assert.Equal(t, "198.51.100.9", testutils.DataMap(t, resp)["ipAddress"])
	})

	t.Run("Error - Invalid address", func(t *testing.T) {
		resp, err := testutils.MakeRequest(app, "POST", "/api/visitor",
			map[string]interface{}{"ipAddress": "bukan-ip"}, "")
		assert.NoError(t, err)
		assert.Equal(t, 400, resp.Code)
	})
}

func TestIPHandler(t *testing.T) {
	app := testutils.SetupTestApp(t)

	t.Run("Success - First forwarded hop", func(t *testing.T) {
		resp, err := testutils.MakeRequestWithHeaders(app, "GET", "/api/ip", nil,
			map[string]string{"X-Forwarded-For": "198.51.100.4, 10.0.0.1"})
		assert.NoError(t, err)
		assert.Equal(t, 200, resp.Code)
		assert.Equal(t, "198.51.100.4", testutils.DataMap(t, resp)["ip"])
	})

	t.Run("Success - Connection address without header", func(t *testing.T) {
		resp, err := testutils.MakeRequest(app, "GET", "/api/ip", nil, "")
		assert.NoError(t, err)
		assert.Equal(t, 200, resp.Code)
		assert.NotEmpty(t, testutils.DataMap(t, resp)["ip"])
	})
}

func TestListVisitorsHandler(t *testing.T) {
	app := testutils.SetupTestApp(t)
	admin := testutils.CreateTestAdmin(t, database.DB, "admin@berita.id")

	for _, ip := range []string{"192.0.2.1", "192.0.2.2", "192.0.2.3"} {
		_, err := testutils.MakeRequest(app, "POST", "/api/visitor", map[string]interface{}{"ipAddress": ip}, "")
		assert.NoError(t, err)
	}

	t.Run("Success - Admin pages visitors", func(t *testing.T) {
		resp, err := testutils.MakeRequest(app, "GET", "/api/visitors?limit=2", nil, testutils.AdminToken(t, admin))
		assert.NoError(t, err)
		assert.Equal(t, 200, resp.Code)

		result := testutils.Parse(t, resp)
		assert.Len(t, result.Data, 2)
		assert.Equal(t, int64(3), result.Meta.Total)
	})

	t.Run("Error - Anonymous", func(t *testing.T) {
		resp, err := testutils.MakeRequest(app, "GET", "/api/visitors", nil, "")
		assert.NoError(t, err)
		assert.Equal(t, 401, resp.Code)
	})
}
