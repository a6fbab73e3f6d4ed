package refund

import (
	"net/http"
	"os"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"storefront.GO/api"
	"storefront.GO/marketplace/stripe"
	entity "storefront.GO/model/entity"
	orderRepo "storefront.GO/model/repository/order"
)

func init() {
	api.RegisterModule(RegisterRefundRoutes)
}

var newStripeClient = func() *stripe.Client {
	return stripe.NewClient(os.Getenv("STRIPE_SECRET_KEY"))
}

type refundInput struct {
	PaymentIntentID string `json:"paymentIntentId"`
	AmountCents     int64  `json:"amountCents"`
	OrderID         *uint  `json:"orderId,omitempty"`
}

// RegisterRefundRoutes wires POST /api/refunds: a direct passthrough to the
// payment processor. When an order id is supplied the order is marked
// refunded after the processor accepts.
func RegisterRefundRoutes(apiGroup *echo.Group, db *gorm.DB) {
	orders := orderRepo.NewOrderRepository(db)

	apiGroup.POST("/refunds", func(c echo.Context) error {
		var in refundInput
		if err := c.Bind(&in); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		if in.PaymentIntentID == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "paymentIntentId is required"})
		}

		client := newStripeClient()
		refund, err := client.CreateRefund(c.Request().Context(), in.PaymentIntentID, in.AmountCents)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{
				"message": "refund failed",
				"error":   err.Error(),
			})
		}

		if in.OrderID != nil {
			if err := orders.UpdateStatus(c.Request().Context(), *in.OrderID, entity.OrderRefunded); err != nil {
				return c.JSON(http.StatusInternalServerError, echo.Map{
					"message": "refund succeeded but order update failed",
					"error":   err.Error(),
				})
			}
		}
		return c.JSON(http.StatusOK, refund)
	})
}
