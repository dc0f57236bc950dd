package pagination

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func paramsForQuery(t *testing.T, query string) Params {
	t.Helper()

	var got Params
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		got = FromRequest(c)
		return nil
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/"+query, nil))
	require.NoError(t, err)
	resp.Body.Close()

	return got
}

func TestFromRequest(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  Params
	}{
		{"defaults", "", Params{Page: 1, Limit: 10, Skip: 0}},
		{"explicit", "?page=3&limit=20", Params{Page: 3, Limit: 20, Skip: 40}},
		{"zero page clamps", "?page=0", Params{Page: 1, Limit: 10, Skip: 0}},
		{"negative limit clamps", "?limit=-5", Params{Page: 1, Limit: 10, Skip: 0}},
		{"limit capped", "?limit=500", Params{Page: 1, Limit: 100, Skip: 0}},
		{"garbage falls back", "?page=abc&limit=xyz", Params{Page: 1, Limit: 10, Skip: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, paramsForQuery(t, tt.query))
		})
	}
}

func TestNewMeta(t *testing.T) {
	meta := NewMeta(Params{Page: 2, Limit: 10}, 35)
	assert.Equal(t, Meta{Page: 2, Limit: 10, Total: 35, TotalPages: 4}, meta)

	meta = NewMeta(Params{Page: 1, Limit: 10}, 30)
	assert.Equal(t, int64(3), meta.TotalPages)

	meta = NewMeta(Params{Page: 1, Limit: 10}, 0)
	assert.Equal(t, int64(0), meta.TotalPages)
}
