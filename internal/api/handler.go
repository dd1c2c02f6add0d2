// Package api exposes the converter as an HTTP upload service.
package api

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/metwallusion/BankStatement/internal/models"
	"github.com/metwallusion/BankStatement/internal/parser"
	"github.com/metwallusion/BankStatement/internal/writer"
)

const version = "1.0.0"

// ConvertResponse is the JSON body of /api/convert.
type ConvertResponse struct {
	Success      bool                 `json:"success"`
	Error        string               `json:"error,omitempty"`
	Brand        string               `json:"brand,omitempty"`
	Transactions []models.Transaction `json:"transactions"`
	CSV          string               `json:"csv,omitempty"`
	Count        int                  `json:"count"`
	TotalIn      string               `json:"totalIn"`
	TotalOut     string               `json:"totalOut"`
	UsedFallback bool                 `json:"usedFallback"`
	DebugLines   []models.DebugLine   `json:"debugLines,omitempty"`
	Version      string               `json:"version,omitempty"`
}

// Handler holds the HTTP handlers.
type Handler struct {
	Engine *parser.Engine
}

func NewHandler() *Handler {
	return &Handler{Engine: parser.NewEngine()}
}

// Register sets up the routes on the fiber app.
func (h *Handler) Register(app *fiber.App) {
	app.Get("/api/health", h.handleHealth)
	app.Post("/api/convert", h.handleConvert)
}

func (h *Handler) handleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"engine":  "fiber",
		"version": version,
	})
}

func (h *Handler) handleConvert(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return writeError(c, fiber.StatusBadRequest, "No file uploaded. Use form field 'file'.")
	}
	if !strings.HasSuffix(strings.ToLower(fileHeader.Filename), ".pdf") {
		return writeError(c, fiber.StatusBadRequest, "Only PDF files are supported.")
	}

	// Optional brand override; empty means auto-detect.
	brand := models.Brand(strings.ToLower(c.FormValue("brand")))
	if brand != "" && !models.KnownBrand(brand) {
		return writeError(c, fiber.StatusBadRequest, "Unknown brand: "+string(brand))
	}

	// Keep the original filename in the temp name so the year hint from
	// names like "083125 WellsFargo.pdf" survives the upload.
	tmpDir, err := os.MkdirTemp("", "statement-upload-*")
	if err != nil {
		return writeError(c, fiber.StatusInternalServerError, "Failed to create temp dir.")
	}
	defer os.RemoveAll(tmpDir)

	tmpPath := filepath.Join(tmpDir, filepath.Base(fileHeader.Filename))
	if err := c.SaveFile(fileHeader, tmpPath); err != nil {
		return writeError(c, fiber.StatusInternalServerError, "Failed to save uploaded file.")
	}

	stmt, err := h.Engine.ParseFile(tmpPath, brand)
	if err != nil {
		return writeError(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	var csvBuf bytes.Buffer
	if err := (&writer.CSVWriter{}).Write(&csvBuf, stmt); err != nil {
		return writeError(c, fiber.StatusInternalServerError, "CSV generation failed.")
	}

	totalIn, totalOut := decimal.Zero, decimal.Zero
	for _, tx := range stmt.Transactions {
		if tx.Amount.IsNegative() {
			totalOut = totalOut.Add(tx.Amount)
		} else {
			totalIn = totalIn.Add(tx.Amount)
		}
	}

	// nil marshals to JSON null, not [].
	txns := stmt.Transactions
	if txns == nil {
		txns = []models.Transaction{}
	}

	return c.JSON(ConvertResponse{
		Success:      true,
		Brand:        string(stmt.Brand),
		Transactions: txns,
		CSV:          csvBuf.String(),
		Count:        len(txns),
		TotalIn:      totalIn.StringFixed(2),
		TotalOut:     totalOut.StringFixed(2),
		UsedFallback: stmt.UsedFallback,
		DebugLines:   stmt.DebugLines,
		Version:      version,
	})
}

func writeError(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(ConvertResponse{
		Success:      false,
		Error:        msg,
		Transactions: []models.Transaction{},
	})
}
