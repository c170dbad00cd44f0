package handler

import (
	"github.com/labstack/echo/v4"
)

// Handlers bundles every route handler for registration.
type Handlers struct {
	Basket  *BasketHandler
	Order   *OrderHandler
	Partner *PartnerHandler
	Contact *ContactHandler
	Product *ProductHandler
}

// RegisterRoutes mounts the API under /api/v1. The catalogue is public;
// everything else requires a token, and the partner group additionally
// requires a seller account.
func RegisterRoutes(e *echo.Echo, h Handlers, auth echo.MiddlewareFunc, partnerOnly echo.MiddlewareFunc) {
	api := e.Group("/api/v1")

	api.GET("/products", h.Product.List)
	api.GET("/products/:id", h.Product.Get)

	authed := api.Group("", auth)

	authed.GET("/basket", h.Basket.Get)
	authed.POST("/basket", h.Basket.Add)
	authed.DELETE("/basket", h.Basket.Remove)

	authed.POST("/order", h.Order.Create)
	authed.GET("/order", h.Order.List)
	authed.GET("/order/:id", h.Order.Get)
	authed.DELETE("/order/seller_orders/:id", h.Order.CancelSellerOrder)

	authed.GET("/user/contacts", h.Contact.List)
	authed.POST("/user/contacts", h.Contact.Create)
	authed.PUT("/user/contacts/:id", h.Contact.Update)
	authed.DELETE("/user/contacts/:id", h.Contact.Delete)

	partner := authed.Group("/partner", partnerOnly)
	partner.GET("/state", h.Partner.GetState)
	partner.POST("/state", h.Partner.SetState)
	partner.GET("/offers", h.Partner.ListOffers)
	partner.GET("/orders", h.Partner.ListOrders)
	partner.GET("/orders/:id", h.Partner.GetOrder)
	partner.PATCH("/orders/:id", h.Partner.UpdateOrder)
}
