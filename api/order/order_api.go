package order

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"storefront.GO/api"
	entity "storefront.GO/model/entity"
	orderRepo "storefront.GO/model/repository/order"
)

func init() {
	api.RegisterModule(RegisterOrderRoutes)
}

type lineItem struct {
	ProductID uint    `json:"productId"`
	VariantID *uint   `json:"variantId,omitempty"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unitPrice"`
}

type createInput struct {
	CustomerEmail string     `json:"customerEmail"`
	CustomerName  string     `json:"customerName"`
	Items         []lineItem `json:"items"`
	Marketplace   string     `json:"marketplace"`
	ExternalID    string     `json:"externalId"`
}

func RegisterOrderRoutes(apiGroup *echo.Group, db *gorm.DB) {
	repo := orderRepo.NewOrderRepository(db)
	g := apiGroup.Group("/orders")

	// POST /api/orders
	g.POST("", func(c echo.Context) error {
		var in createInput
		if err := c.Bind(&in); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		if in.CustomerEmail == "" || len(in.Items) == 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{
				"error": "customerEmail and items are required",
			})
		}
		for _, it := range in.Items {
			if it.Quantity < 1 {
				return c.JSON(http.StatusBadRequest, echo.Map{"error": "item quantity must be at least 1"})
			}
		}
		items, err := json.Marshal(in.Items)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		var total float64
		for _, it := range in.Items {
			total += float64(it.Quantity) * it.UnitPrice
		}
		o := entity.Order{
			CustomerEmail: in.CustomerEmail,
			CustomerName:  in.CustomerName,
			Items:         datatypes.JSON(items),
			Total:         total,
			Status:        entity.OrderPending,
			Marketplace:   in.Marketplace,
			ExternalID:    in.ExternalID,
		}
		if err := repo.Create(c.Request().Context(), &o); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusCreated, o)
	})

	// GET /api/orders?email=
	g.GET("", func(c echo.Context) error {
		email := c.QueryParam("email")
		if email == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "email is required"})
		}
		out, err := repo.FindByCustomer(c.Request().Context(), email)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, echo.Map{"orders": out})
	})

	// GET /api/orders/:id
	g.GET("/:id", func(c echo.Context) error {
		id, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
		}
		o, err := repo.FindByID(c.Request().Context(), uint(id))
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "order not found"})
		}
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, o)
	})

	// PATCH /api/orders/:id/status
	g.PATCH("/:id/status", func(c echo.Context) error {
		id, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
		}
		var in struct {
			Status string `json:"status"`
		}
		if err := c.Bind(&in); err != nil || in.Status == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "status is required"})
		}
		if err := repo.UpdateStatus(c.Request().Context(), uint(id), in.Status); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, echo.Map{"status": in.Status})
	})
}
