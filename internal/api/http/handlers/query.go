package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/civicgrid/complaint-service/internal/domain"
	"github.com/civicgrid/complaint-service/internal/service"
	"github.com/civicgrid/complaint-service/pkg/util"
)

func parsePageQuery(c *fiber.Ctx) util.PageRequest {
	return util.NormalizePage(parseInt(c.Query("page"), 1), parseInt(c.Query("limit"), util.DefaultPageSize))
}

func parseComplaintListQuery(c *fiber.Ctx) service.ComplaintListInput {
	input := service.ComplaintListInput{Page: parsePageQuery(c)}

	if search := c.Query("search"); search != "" {
		input.Search = &search
	}
	if raw := c.Query("status"); raw != "" {
		if status, ok := domain.ParseComplaintStatus(raw); ok {
			input.Status = &status
		}
	}
	if raw := c.Query("priority"); raw != "" {
		if priority, ok := domain.ParseComplaintPriority(raw); ok {
			input.Priority = &priority
		}
	}
	if ministryID := c.Query("ministry_id"); ministryID != "" {
		input.MinistryID = &ministryID
	}
	return input
}

func parseInt(val string, def int) int {
	if val == "" {
		return def
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return def
	}
	return parsed
}
