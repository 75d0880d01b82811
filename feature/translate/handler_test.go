package translate

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupTestApp(t *testing.T) *fiber.App {
	app := fiber.New()
	NewHandler(sqliteTranslator(t), zap.NewNop()).RegisterRoutes(app)
	return app
}

func decode(t *testing.T, r io.Reader) map[string]any {
	var body map[string]any
	require.NoError(t, json.NewDecoder(r).Decode(&body))
	return body
}

func TestHandleTranslateOne(t *testing.T) {
	app := setupTestApp(t)

	tests := []struct {
		name   string
		path   string
		status int
	}{
		{"Found", "/translate/BRD-K00001", 200},
		{"Other columns", "/translate/JCP2022_000002?from=jump_id&to=NCBI_Gene_ID", 200},
		{"Not found", "/translate/BRD-NONE", 404},
		{"Ambiguous", "/translate/BRD-DUP", 409},
		{"Bad column", "/translate/x?from=nope", 400},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest("GET", tt.path, nil))
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)
		})
	}

	resp, err := app.Test(httptest.NewRequest("GET", "/translate/BRD-K00001", nil))
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"value": "GENE1"}, decode(t, resp.Body))
}

func TestHandleTranslate(t *testing.T) {
	app := setupTestApp(t)

	post := func(body string) (int, map[string]any) {
		req := httptest.NewRequest("POST", "/translate", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)
		require.NoError(t, err)
		return resp.StatusCode, decode(t, resp.Body)
	}

	status, body := post(`{"query":["BRD-K00001","BRD-K00002"]}`)
	assert.Equal(t, 200, status)
	assert.Equal(t, map[string]any{"BRD-K00001": "GENE1", "BRD-K00002": "GENE2"}, body["mapping"])

	status, body = post(`{"query":"BRD-K00002"}`)
	assert.Equal(t, 200, status)
	assert.Equal(t, "GENE2", body["value"])

	status, body = post(`{"query":["BRD-K00001","BRD-NONE"]}`)
	assert.Equal(t, 404, status)
	assert.Equal(t, []any{"BRD-NONE"}, body["missing"])

	status, _ = post(`{"query":[]}`)
	assert.Equal(t, 400, status)

	status, _ = post(`{"query":{}}`)
	assert.Equal(t, 400, status)
}

func TestLoader(t *testing.T) {
	feature := NewFeature(new(mockRunner), zap.NewNop())

	assert.Equal(t, "translate", feature.Name())
	assert.True(t, feature.IsEnabled())
	assert.NoError(t, feature.Load(fiber.New()))
}
