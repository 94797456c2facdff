package handler

import (
	"io"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"docflow/internal/http/middleware"
	"docflow/internal/service"
)

// ListDocuments returns paginated documents.
func ListDocuments(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, err := strconv.Atoi(c.Query("limit", "10"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_LIMIT", "invalid limit")
		}
		offset, err := strconv.Atoi(c.Query("offset", "0"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_OFFSET", "invalid offset")
		}

		res, err := svc.List(c.UserContext(), limit, offset)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(res)
	}
}

// UploadDocument accepts a multipart upload (field name: file). An optional
// request_id form value ties the upload to an open document request.
func UploadDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		fh, err := c.FormFile("file")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "file is required")
		}

		f, err := fh.Open()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
		}
		defer f.Close()

		ct := fh.Header.Get("Content-Type")
		if ct == "" {
			ct = "application/octet-stream"
		}

		in := service.UploadInput{
			OriginalFilename: fh.Filename,
			ContentType:      ct,
			DocumentName:     c.FormValue("document_name"),
		}
		if rid := c.FormValue("request_id"); rid != "" {
			if _, err := uuid.Parse(rid); err != nil {
				return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid request_id format")
			}
			in.RequestID = &rid
		}
		if user := middleware.UserFromCtx(c); user != nil {
			in.UploadedBy = user.ID
			in.CompanyID = user.CompanyID
		}

		doc, err := svc.Upload(c.UserContext(), f, in)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(doc)
	}
}

// GetDocument returns a document by ID.
func GetDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		doc, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(doc)
	}
}

type updateDocumentRequest struct {
	DocumentName *string `json:"document_name"`
	RequestID    *string `json:"request_id"`
}

// UpdateDocument applies a partial update. A multipart request may carry a
// replacement file plus form fields; a JSON body patches metadata only.
func UpdateDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		var (
			in      service.UpdateDocumentInput
			content io.Reader
		)

		if fh, err := c.FormFile("file"); err == nil {
			f, err := fh.Open()
			if err != nil {
				return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
			}
			defer f.Close()

			ct := fh.Header.Get("Content-Type")
			if ct == "" {
				ct = "application/octet-stream"
			}
			content = f
			in.OriginalFilename = fh.Filename
			in.ContentType = ct
		}

		if v := c.FormValue("document_name"); v != "" {
			in.DocumentName = &v
		}
		if v := c.FormValue("request_id"); v != "" {
			if _, err := uuid.Parse(v); err != nil {
				return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid request_id format")
			}
			in.RequestID = &v
		}

		if content == nil && in.DocumentName == nil && in.RequestID == nil {
			var body updateDocumentRequest
			if err := c.BodyParser(&body); err != nil {
				return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "cannot parse request body")
			}
			in.DocumentName = body.DocumentName
			in.RequestID = body.RequestID
		}

		doc, err := svc.Update(c.UserContext(), id, content, in)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(doc)
	}
}

// DeleteDocument removes a document by ID.
func DeleteDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		if err := svc.Delete(c.UserContext(), id); err != nil {
			return writeServiceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
