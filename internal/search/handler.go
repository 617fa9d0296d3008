package search

import (
	"strings"

	"github.com/Kyz7/beritablog/internal/response"

	"github.com/gofiber/fiber/v2"
)

func SearchBlogsHandler(c *fiber.Ctx) error {
	q := strings.TrimSpace(c.Query("query"))
	if q == "" {
		return response.BadRequest(c, "Query parameter is required", nil)
	}

	page := response.ParsePage(c)
	blogs, total, err := SearchBlogs(SearchParams{
		Query:      q,
		CategoryID: uint(c.QueryInt("categoryId")),
	}, page)
	if err != nil {
		return response.FromError(c, err, "Blog")
	}
	return response.Paginated(c, blogs, page, total, "")
}

func AutoCompleteHandler(c *fiber.Ctx) error {
	prefix := strings.TrimSpace(c.Query("prefix"))
	if prefix == "" {
		return response.BadRequest(c, "Prefix parameter is required", nil)
	}

	suggestions, err := AutoComplete(prefix, c.QueryInt("limit", 10))
	if err != nil {
		return response.FromError(c, err, "Blog")
	}
	return response.Success(c, suggestions, "")
}
