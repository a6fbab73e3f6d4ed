package notification

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"storefront.GO/api"
	entity "storefront.GO/model/entity"
	notificationRepo "storefront.GO/model/repository/notification"
)

func init() {
	api.RegisterModule(RegisterNotificationRoutes)
}

type createInput struct {
	Title    string `json:"title"`
	Message  string `json:"message"`
	Location string `json:"location"`
	SelledBy string `json:"selledBy"`
}

func RegisterNotificationRoutes(apiGroup *echo.Group, db *gorm.DB) {
	repo := notificationRepo.NewNotificationRepository(db)
	g := apiGroup.Group("/notifications")

	// POST /api/notifications
	g.POST("", func(c echo.Context) error {
		var in createInput
		if err := c.Bind(&in); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		if in.Title == "" || in.Message == "" || in.Location == "" || in.SelledBy == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{
				"error": "title, message, location and selledBy are required",
			})
		}
		n := entity.Notification{
			Title:    in.Title,
			Message:  in.Message,
			Location: in.Location,
			SelledBy: in.SelledBy,
		}
		if err := repo.Create(c.Request().Context(), &n); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusCreated, n)
	})

	// GET /api/notifications – newest first
	g.GET("", func(c echo.Context) error {
		out, err := repo.FindAll(c.Request().Context())
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, echo.Map{"notifications": out})
	})

	// GET /api/notifications/:id
	g.GET("/:id", func(c echo.Context) error {
		id, err := parseID(c)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
		}
		n, err := repo.FindByID(c.Request().Context(), id)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "notification not found"})
		}
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, n)
	})

	// PATCH /api/notifications/:id/read
	g.PATCH("/:id/read", func(c echo.Context) error {
		id, err := parseID(c)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
		}
		if err := repo.MarkRead(c.Request().Context(), id); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
	})

	// PATCH /api/notifications/read-all
	g.PATCH("/read-all", func(c echo.Context) error {
		if err := repo.MarkAllRead(c.Request().Context()); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
	})

	// DELETE /api/notifications/:id
	g.DELETE("/:id", func(c echo.Context) error {
		id, err := parseID(c)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
		}
		if err := repo.Delete(c.Request().Context(), id); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
	})
}

func parseID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	return uint(id), err
}
