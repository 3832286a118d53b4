package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	apperrors "github.com/motopecasjacare/erp/internal/pkg/errors"
	"github.com/motopecasjacare/erp/internal/pkg/pagination"
	"github.com/motopecasjacare/erp/internal/service"
)

// parseID reads a positive integer path parameter
func parseID(c *fiber.Ctx, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.BadRequest("invalid " + name).WithDetail(name, c.Params(name))
	}
	return id, nil
}

// parsePagination reads the limit and offset query parameters
func parsePagination(c *fiber.Ctx) pagination.Params {
	return pagination.Params{
		Limit:  c.QueryInt("limit", pagination.DefaultLimit),
		Offset: c.QueryInt("offset", 0),
	}.Normalize()
}

// optionalQuery returns nil for an absent or empty query parameter
func optionalQuery(c *fiber.Ctx, key string) *string {
	v := c.Query(key)
	if v == "" {
		return nil
	}
	return &v
}

// parseFormat reads the format query parameter, falling back to def. Only
// the listed formats are accepted.
func parseFormat(c *fiber.Ctx, def service.DocumentFormat, allowed ...service.DocumentFormat) (service.DocumentFormat, error) {
	raw := c.Query("format")
	if raw == "" {
		return def, nil
	}
	for _, f := range allowed {
		if string(f) == raw {
			return f, nil
		}
	}
	return "", apperrors.Validation("unsupported format").WithDetail("format", raw)
}

// sendDocument writes a rendered document with its content type. PDFs are
// offered as attachments named filename.
func sendDocument(c *fiber.Ctx, body []byte, format service.DocumentFormat, filename string) error {
	if format == service.FormatPDF {
		c.Attachment(filename + ".pdf")
	}
	c.Set(fiber.HeaderContentType, format.ContentType())
	return c.Send(body)
}
