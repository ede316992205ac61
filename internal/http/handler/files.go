package handler

import (
	"fmt"
	"io"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"projectapi/internal/http/response"
	"projectapi/internal/service"
	"projectapi/internal/storage"
)

// ListFiles godoc
// @Summary List registered files
// @Tags files
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(10)
// @Success 200 {object} response.PageEnvelope{data=[]model.File}
// @Failure 500 {object} response.Envelope
// @Router /files [get]
func ListFiles(svc service.FileService, log logrus.FieldLogger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		res, err := svc.List(c.UserContext(), c.QueryInt("page"), c.QueryInt("limit"))
		if err != nil {
			return writeServiceError(c, log, err)
		}
		return c.JSON(response.PageEnvelope{
			Code:       fiber.StatusOK,
			Message:    "Files retrieved successfully",
			Total:      res.Total,
			TotalPages: res.TotalPages,
			Data:       res.Items,
			Pagination: response.Page(res.Pagination),
		})
	}
}

// ListThumbnails godoc
// @Summary List thumbnails stored on the media host
// @Tags files
// @Produce json
// @Success 200 {object} response.CountedEnvelope{data=[]model.ThumbnailAsset}
// @Failure 500 {object} response.Envelope
// @Router /files/thumbnails [get]
func ListThumbnails(svc service.FileService, log logrus.FieldLogger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		assets, err := svc.ListThumbnails(c.UserContext())
		if err != nil {
			return writeServiceError(c, log, err)
		}
		return c.JSON(response.CountedEnvelope{
			Code:    fiber.StatusOK,
			Message: "Thumbnails retrieved successfully",
			Total:   len(assets),
			Data:    assets,
		})
	}
}

// UploadThumbnail godoc
// @Summary Upload a thumbnail image
// @Description Accepts JSON {file, filename} with a base64 data URI, or multipart/form-data with a file part.
// @Tags files
// @Accept json,mpfd
// @Produce json
// @Param body body uploadThumbnailRequest false "JSON upload"
// @Param file formData file false "Image file"
// @Param filename formData string false "Display filename"
// @Success 200 {object} response.Envelope{data=service.UploadedThumbnail}
// @Failure 400 {object} response.Envelope
// @Failure 429 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /files/thumbnail [post]
func UploadThumbnail(svc service.FileService, log logrus.FieldLogger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		req, err := bindUpload(c)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, service.ErrFileRequired.Message)
		}

		out, err := svc.UploadThumbnail(c.UserContext(), req.File, req.Filename)
		if err != nil {
			return writeServiceError(c, log, err)
		}
		return response.JSON(c, fiber.StatusOK, "Thumbnail uploaded successfully", out)
	}
}

// bindUpload reads either a multipart file part or a JSON body.
func bindUpload(c *fiber.Ctx) (uploadThumbnailRequest, error) {
	var req uploadThumbnailRequest

	if strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm) {
		fh, err := c.FormFile("file")
		if err != nil {
			return req, err
		}
		f, err := fh.Open()
		if err != nil {
			return req, err
		}
		defer f.Close()

		data, err := io.ReadAll(f)
		if err != nil {
			return req, fmt.Errorf("read upload: %w", err)
		}
		req.File = storage.DataURI(fh.Header.Get(fiber.HeaderContentType), data)
		req.Filename = c.FormValue("filename", fh.Filename)
	} else if err := c.BodyParser(&req); err != nil {
		return req, err
	}

	return req, validate.Struct(req)
}

// DeleteThumbnails godoc
// @Summary Delete thumbnails from the media host
// @Description Each id is destroyed independently; per-item failures are reported, not raised.
// @Tags files
// @Accept json
// @Produce json
// @Param body body idsRequest true "Media host public ids"
// @Success 200 {object} response.Envelope{data=service.ThumbnailDeleteResult}
// @Failure 400 {object} response.Envelope
// @Failure 429 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /files/thumbnail [delete]
func DeleteThumbnails(svc service.FileService, log logrus.FieldLogger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req idsRequest
		if err := c.BodyParser(&req); err != nil || validate.Struct(req) != nil {
			return writeError(c, fiber.StatusBadRequest, service.ErrIDsRequired.Message)
		}

		res, err := svc.DeleteThumbnails(c.UserContext(), req.IDs)
		if err != nil {
			return writeServiceError(c, log, err)
		}
		return response.JSON(c, fiber.StatusOK, fmt.Sprintf("Successfully deleted %d thumbnails", res.TotalDeleted), res)
	}
}
