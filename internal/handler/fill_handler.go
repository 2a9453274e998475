package handler

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"qalib/internal/domain"
	"qalib/internal/service"
)

// FillHandler handles template filling endpoints.
type FillHandler struct {
	fillService service.FillService
}

// NewFillHandler creates a new FillHandler.
func NewFillHandler(fillService service.FillService) *FillHandler {
	return &FillHandler{fillService: fillService}
}

// Fill handles POST /api/v1/fill
// @Summary Fill a document template
// @Description Substitute {{key}} placeholders in a DOCX/XLSX template or fill PDF AcroForm fields from a JSON/YAML/CSV data file
// @Tags fill
// @Accept multipart/form-data
// @Produce application/octet-stream
// @Param template formData file true "Template file (DOCX, XLSX or PDF)"
// @Param data formData file true "Data file (JSON object, YAML mapping or CSV)"
// @Param format formData string false "Data format override (json, yaml, csv)"
// @Param coerce_numbers formData bool false "Write numeric-looking XLSX values as numbers"
// @Param store formData bool false "Upload the result to object storage and return a download URL"
// @Success 200 {file} binary "Filled document"
// @Failure 400 {object} APIResponse "Parse, empty-input or unsupported-format error"
// @Failure 413 {object} APIResponse "File too large"
// @Failure 422 {object} APIResponse "PDF is not fillable"
// @Security BearerAuth
// @Router /fill [post]
func (h *FillHandler) Fill(c *gin.Context) {
	template, templateName, ok := readFilePart(c, "template")
	if !ok {
		return
	}
	data, dataHeader, err := c.Request.FormFile("data")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "MISSING_FILE", "data field is required")
		return
	}
	defer func() { _ = data.Close() }()

	format, ok := resolveDataFormat(c, dataHeader.Filename)
	if !ok {
		return
	}

	out, err := h.fillService.Fill(c.Request.Context(), service.FillInput{
		Template:      template,
		TemplateName:  templateName,
		Data:          data,
		DataFormat:    format,
		CoerceNumbers: c.PostForm("coerce_numbers") == "true",
		Store:         c.PostForm("store") == "true",
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	if out.Artifact != nil {
		RespondCreated(c, out.Artifact)
		return
	}

	filename := downloadName(templateName, string(out.Result.Format))
	streamDocument(c, out.Result.Bytes, out.Result.ContentType, filename)
}

// FillBatch handles POST /api/v1/fill/batch
// @Summary Fill a template once per job found in a source document
// @Description Slice a multi-job DOCX source into job blocks and fill the template for each, returning a ZIP bundle
// @Tags fill
// @Accept multipart/form-data
// @Produce application/zip
// @Param template formData file true "Template file (DOCX, XLSX or PDF)"
// @Param source formData file true "Source DOCX holding one or more job descriptions"
// @Param single_job formData bool false "Process only the first detected job"
// @Param store formData bool false "Upload the ZIP to object storage and return a download URL"
// @Success 200 {file} binary "ZIP of filled documents"
// @Failure 400 {object} APIResponse "Unsupported format"
// @Failure 422 {object} APIResponse "No job blocks detected"
// @Security BearerAuth
// @Router /fill/batch [post]
func (h *FillHandler) FillBatch(c *gin.Context) {
	template, templateName, ok := readFilePart(c, "template")
	if !ok {
		return
	}
	source, _, ok := readFilePart(c, "source")
	if !ok {
		return
	}

	out, err := h.fillService.FillBatch(c.Request.Context(), service.BatchFillInput{
		Template:  template,
		Source:    source,
		SingleJob: c.PostForm("single_job") == "true",
		Store:     c.PostForm("store") == "true",
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	if out.Artifact != nil {
		RespondCreated(c, gin.H{"artifact": out.Artifact, "count": out.Count, "names": out.Names})
		return
	}

	c.Header("X-Job-Count", fmt.Sprint(out.Count))
	streamDocument(c, out.ZIP, domain.ContentTypeZIP, downloadName(templateName, "zip"))
}

// Artifact handles GET /api/v1/artifacts/*key
// @Summary Download a stored fill artifact
// @Description Stream a previously stored filled document from object storage, for clients that cannot follow presigned URLs
// @Tags fill
// @Produce application/octet-stream
// @Param key path string true "Artifact key, e.g. fills/<id>.docx"
// @Success 200 {file} binary "Stored document"
// @Failure 400 {object} APIResponse "Invalid artifact key"
// @Failure 500 {object} APIResponse "Storage not configured or download failed"
// @Security BearerAuth
// @Router /artifacts/{key} [get]
func (h *FillHandler) Artifact(c *gin.Context) {
	key := strings.TrimPrefix(c.Param("key"), "/")

	out, err := h.fillService.Artifact(c.Request.Context(), key)
	if err != nil {
		HandleError(c, err)
		return
	}
	streamDocument(c, out.Bytes, out.ContentType, filepath.Base(key))
}

// readFilePart reads a multipart file field fully into memory. On failure an
// error response is written and ok is false.
func readFilePart(c *gin.Context, field string) (data []byte, filename string, ok bool) {
	file, header, err := c.Request.FormFile(field)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "MISSING_FILE", field+" field is required")
		return nil, "", false
	}
	defer func() { _ = file.Close() }()

	data, err = io.ReadAll(file)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "READ_FAILED", "reading "+field+" failed")
		return nil, "", false
	}
	return data, header.Filename, true
}

// resolveDataFormat picks the data format from the form override or the data
// file extension.
func resolveDataFormat(c *gin.Context, filename string) (domain.DataFormat, bool) {
	key := c.PostForm("format")
	if key == "" {
		key = strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	}
	format, ok := domain.DataFormatExtensions[key]
	if !ok {
		RespondError(c, http.StatusBadRequest, "UNSUPPORTED_FORMAT",
			"unsupported data format; allowed: json, yaml, csv")
		return "", false
	}
	return format, true
}

func downloadName(templateName, ext string) string {
	base := strings.TrimSuffix(filepath.Base(templateName), filepath.Ext(templateName))
	if base == "" || base == "." {
		base = "filled"
	}
	return base + "-filled." + ext
}

func streamDocument(c *gin.Context, data []byte, contentType, filename string) {
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.DataFromReader(http.StatusOK, int64(len(data)), contentType, bytes.NewReader(data), nil)
}
