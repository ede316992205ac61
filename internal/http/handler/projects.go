package handler

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"projectapi/internal/http/response"
	"projectapi/internal/service"
)

// ListProjects godoc
// @Summary List projects
// @Tags projects
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(10)
// @Success 200 {object} response.PageEnvelope{data=[]model.Project}
// @Failure 500 {object} response.Envelope
// @Router /projects [get]
func ListProjects(svc service.ProjectService, log logrus.FieldLogger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		res, err := svc.List(c.UserContext(), c.QueryInt("page"), c.QueryInt("limit"))
		if err != nil {
			return writeServiceError(c, log, err)
		}
		return c.JSON(response.PageEnvelope{
			Code:       fiber.StatusOK,
			Message:    "Projects retrieved successfully",
			Total:      res.Total,
			TotalPages: res.TotalPages,
			Data:       res.Items,
			Pagination: response.Page(res.Pagination),
		})
	}
}

// GetProject godoc
// @Summary Get a project
// @Tags projects
// @Produce json
// @Param id path string true "Project id"
// @Success 200 {object} response.Envelope{data=model.Project}
// @Failure 404 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /project/{id} [get]
func GetProject(svc service.ProjectService, log logrus.FieldLogger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := svc.Get(c.UserContext(), c.Params("id"))
		if err != nil {
			return writeServiceError(c, log, err)
		}
		return response.JSON(c, fiber.StatusOK, "Project retrieved successfully", p)
	}
}

// CreateProject godoc
// @Summary Create a project
// @Description thumbnail is either a registered filename, an absolute URL, or {url, filename, id}.
// @Tags projects
// @Accept json
// @Produce json
// @Param body body createProjectRequest true "Project"
// @Success 201 {object} response.Envelope{data=model.Project}
// @Failure 400 {object} response.Envelope
// @Failure 429 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /project [post]
func CreateProject(svc service.ProjectService, log logrus.FieldLogger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req createProjectRequest
		if err := c.BodyParser(&req); err != nil || validate.Struct(req) != nil {
			return writeError(c, fiber.StatusBadRequest, service.ErrProjectFieldsRequired.Message)
		}

		p, err := svc.Create(c.UserContext(), service.CreateProjectInput{
			Name:      req.Name,
			ShortDesc: req.ShortDesc,
			Desc:      req.Desc,
			Thumbnail: req.Thumbnail,
		})
		if err != nil {
			return writeServiceError(c, log, err)
		}
		return response.JSON(c, fiber.StatusCreated, "Project created successfully", p)
	}
}

// UpdateProject godoc
// @Summary Partially update a project
// @Description Omitted fields are left unchanged. A replaced thumbnail's media host asset is removed on a best-effort basis.
// @Tags projects
// @Accept json
// @Produce json
// @Param id path string true "Project id"
// @Param body body updateProjectRequest true "Fields to change"
// @Success 200 {object} response.Envelope{data=model.Project}
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 429 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /project/{id} [put]
func UpdateProject(svc service.ProjectService, log logrus.FieldLogger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req updateProjectRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "Invalid request body")
		}

		p, err := svc.Update(c.UserContext(), c.Params("id"), service.UpdateProjectInput{
			Name:      req.Name,
			ShortDesc: req.ShortDesc,
			Desc:      req.Desc,
			Thumbnail: req.Thumbnail,
		})
		if err != nil {
			return writeServiceError(c, log, err)
		}
		return response.JSON(c, fiber.StatusOK, "Project updated successfully", p)
	}
}

// DeleteProjects godoc
// @Summary Delete projects
// @Description Fails with 404 and deletes nothing when any id is unknown.
// @Tags projects
// @Accept json
// @Produce json
// @Param body body idsRequest true "Project ids"
// @Success 200 {object} response.Envelope{data=service.ProjectDeleteResult}
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 429 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /project [delete]
func DeleteProjects(svc service.ProjectService, log logrus.FieldLogger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req idsRequest
		if err := c.BodyParser(&req); err != nil || validate.Struct(req) != nil {
			return writeError(c, fiber.StatusBadRequest, service.ErrIDsRequired.Message)
		}

		res, err := svc.Delete(c.UserContext(), req.IDs)
		if err != nil {
			return writeServiceError(c, log, err)
		}

		msg := "Project deleted successfully"
		if n := len(res.DeletedIDs); n > 1 {
			msg = fmt.Sprintf("%d projects deleted successfully", n)
		}
		return response.JSON(c, fiber.StatusOK, msg, res)
	}
}
