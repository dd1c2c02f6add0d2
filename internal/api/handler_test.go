package api

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp() *fiber.App {
	app := fiber.New()
	NewHandler().Register(app)
	return app
}

func uploadRequest(t *testing.T, filename string, content []byte, fields ...string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	for i := 0; i+1 < len(fields); i += 2 {
		require.NoError(t, mw.WriteField(fields[i], fields[i+1]))
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/convert", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func decodeConvert(t *testing.T, resp *http.Response) ConvertResponse {
	t.Helper()
	var out ConvertResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestHealth(t *testing.T) {
	app := newTestApp()
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/health", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "fiber", body["engine"])
	assert.NotEmpty(t, body["version"])
}

func TestConvertNoFile(t *testing.T) {
	app := newTestApp()
	req := httptest.NewRequest(http.MethodPost, "/api/convert", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body := decodeConvert(t, resp)
	assert.False(t, body.Success)
	assert.Contains(t, body.Error, "No file uploaded")
}

func TestConvertRejectsNonPDF(t *testing.T) {
	app := newTestApp()
	resp, err := app.Test(uploadRequest(t, "statement.txt", []byte("8/1 Coffee 4.50")), -1)
	require.NoError(t, err)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body := decodeConvert(t, resp)
	assert.False(t, body.Success)
	assert.Contains(t, body.Error, "Only PDF files")
}

func TestConvertFallbackUpload(t *testing.T) {
	// Not a well-formed document, so structured extraction fails and the
	// raw-stream path has to carry it.
	content := []byte("%PDF-1.4\nstream\nBT (8/1 Coffee Purchase 4.50) Tj (8/4 Refund From Vendor 12.25) Tj ET\nendstream")

	app := newTestApp()
	resp, err := app.Test(uploadRequest(t, "statement_2025.pdf", content), -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeConvert(t, resp)
	assert.True(t, body.Success)
	assert.True(t, body.UsedFallback)
	require.Equal(t, 2, body.Count)
	assert.Equal(t, "12.25", body.TotalIn)
	assert.Equal(t, "-4.50", body.TotalOut)
	assert.Contains(t, body.CSV, "Row #,Date,Amount,Memo")
	assert.Contains(t, body.CSV, "1,8/1/2025,-4.50,Coffee Purchase")
	assert.Contains(t, body.CSV, "2,8/4/2025,12.25,Refund From Vendor")
}

func TestConvertFilenameYearHintSurvivesUpload(t *testing.T) {
	// Bare MM/DD dates must resolve through the uploaded file's own name,
	// not through digits in the server-side temp path.
	content := []byte("%PDF-1.4\nstream\nBT (8/1 Coffee Purchase 4.50) Tj ET\nendstream")

	app := newTestApp()
	resp, err := app.Test(uploadRequest(t, "083125 WellsFargo.pdf", content), -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeConvert(t, resp)
	require.Equal(t, 1, body.Count)
	assert.Contains(t, body.CSV, "1,8/1/2025,-4.50,Coffee Purchase")
}

func TestConvertUnknownBrand(t *testing.T) {
	app := newTestApp()
	req := uploadRequest(t, "statement.pdf", []byte("%PDF-1.4"), "brand", "acme")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body := decodeConvert(t, resp)
	assert.Contains(t, body.Error, "Unknown brand")
}

func TestConvertForcedBrand(t *testing.T) {
	content := []byte("%PDF-1.4\nstream\nBT (8/1 Monthly Subscription 9.99) Tj ET\nendstream")

	app := newTestApp()
	req := uploadRequest(t, "statement_2025.pdf", content, "brand", "amex")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeConvert(t, resp)
	assert.Equal(t, "amex", body.Brand)
	assert.Equal(t, "9.99", body.TotalIn)
}

func TestConvertUnreadableUpload(t *testing.T) {
	app := newTestApp()
	resp, err := app.Test(uploadRequest(t, "blank.pdf", []byte("%PDF-1.4\nnothing here")), -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeConvert(t, resp)
	assert.True(t, body.Success)
	assert.Equal(t, 0, body.Count)
	assert.NotNil(t, body.Transactions)
	assert.False(t, body.UsedFallback)
}
