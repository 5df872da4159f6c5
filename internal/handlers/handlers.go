package handlers

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/safar/go-warehouse/internal/models"
	"github.com/safar/go-warehouse/internal/store"
	"github.com/shopspring/decimal"
)

const userKey = "user"

type Handler struct {
	store *store.Store
	log   *slog.Logger
}

func New(s *store.Store, log *slog.Logger) *Handler {
	return &Handler{store: s, log: log}
}

func NewRouter(s *store.Store, log *slog.Logger) *gin.Engine {
	h := New(s, log)

	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })
	r.POST("/register", h.Register)

	api := r.Group("/api")
	api.Use(h.RequireAuth())
	{
		api.GET("/products", h.ListProducts)
		api.POST("/orders", h.CreateOrder)
		api.GET("/orders/mine", h.MyOrders)
	}

	admin := api.Group("/admin")
	admin.Use(RequireAdmin())
	{
		admin.GET("/users", h.ListUsers)
		admin.POST("/products", h.CreateProduct)
		admin.PUT("/products/*name", h.UpdateProduct)
		admin.DELETE("/products/*name", h.RemoveProduct)
		admin.GET("/orders", h.ListOrders)
		admin.PATCH("/orders/:id/status", h.SetOrderStatus)
		admin.GET("/stats", h.Stats)
	}

	return r
}

// RequireAuth checks HTTP Basic credentials against the account directory and
// puts the *models.User on the context.
func (h *Handler) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		login, password, ok := c.Request.BasicAuth()
		if !ok {
			c.Header("WWW-Authenticate", `Basic realm="warehouse"`)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "credentials required"})
			return
		}

		user, err := h.store.Login(login, password)
		if err != nil {
			h.log.Warn("authentication failed", "login", login, "path", c.FullPath())
			c.Header("WWW-Authenticate", `Basic realm="warehouse"`)
			respondError(c, err)
			c.Abort()
			return
		}

		c.Set(userKey, user)
		c.Next()
	}
}

func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !currentUser(c).IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "administrator access required"})
			return
		}
		c.Next()
	}
}

func currentUser(c *gin.Context) *models.User {
	user, _ := c.MustGet(userKey).(*models.User)
	return user
}

func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch store.ClassifyError(err) {
	case store.ErrorKindAuthFailure:
		status = http.StatusUnauthorized
	case store.ErrorKindNotFound:
		status = http.StatusNotFound
	case store.ErrorKindInvalidInput:
		status = http.StatusBadRequest
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Login    string `json:"login" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.store.Register(req.Name, req.Login, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	h.log.Info("user registered", "user_id", user.ID, "login", user.Login)
	c.JSON(http.StatusCreated, user.Profile())
}

func (h *Handler) ListUsers(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.ListUsers())
}

func (h *Handler) ListProducts(c *gin.Context) {
	if query, ok := c.GetQuery("q"); ok {
		c.JSON(http.StatusOK, h.store.SearchProducts(query))
		return
	}
	c.JSON(http.StatusOK, h.store.ListProducts())
}

type CreateProductRequest struct {
	Name     string           `json:"name" binding:"required"`
	Price    *decimal.Decimal `json:"price" binding:"required"`
	Quantity *int             `json:"quantity" binding:"required"`
}

func (h *Handler) CreateProduct(c *gin.Context) {
	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	product, err := h.store.AddProduct(req.Name, *req.Price, *req.Quantity)
	if err != nil {
		respondError(c, err)
		return
	}

	h.log.Info("product added", "product_id", product.ID, "name", product.Name, "price", product.Price.String(), "quantity", product.Quantity)
	c.JSON(http.StatusCreated, product)
}

// productName reads the catch-all route segment, so names may contain "/".
func productName(c *gin.Context) string {
	return strings.TrimPrefix(c.Param("name"), "/")
}

type UpdateProductRequest struct {
	Price    *decimal.Decimal `json:"price" binding:"required"`
	Quantity *int             `json:"quantity" binding:"required"`
}

func (h *Handler) UpdateProduct(c *gin.Context) {
	var req UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	product, err := h.store.UpdateProduct(productName(c), *req.Price, *req.Quantity)
	if err != nil {
		respondError(c, err)
		return
	}

	h.log.Info("product updated", "product_id", product.ID, "price", product.Price.String(), "quantity", product.Quantity)
	c.JSON(http.StatusOK, product)
}

func (h *Handler) RemoveProduct(c *gin.Context) {
	name := productName(c)
	removed := h.store.RemoveProduct(name)

	h.log.Info("products removed", "name", name, "count", removed)
	c.JSON(http.StatusOK, gin.H{"removed": removed})
}

type CreateOrderRequest struct {
	ProductIDs []uuid.UUID `json:"product_ids"`
}

type OrderResponse struct {
	models.Order
	Total decimal.Decimal `json:"total"`
}

func newOrderResponse(order models.Order) OrderResponse {
	return OrderResponse{Order: order, Total: order.Total()}
}

func newOrderResponses(orders []models.Order) []OrderResponse {
	out := make([]OrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, newOrderResponse(o))
	}
	return out
}

func (h *Handler) CreateOrder(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	user := currentUser(c)
	order, err := h.store.PlaceOrder(user, req.ProductIDs)
	if err != nil {
		respondError(c, err)
		return
	}

	h.log.Info("order placed", "order_id", order.ID, "user_id", user.ID, "lines", len(order.Lines), "total", order.Total().String())
	c.JSON(http.StatusCreated, newOrderResponse(order))
}

func (h *Handler) MyOrders(c *gin.Context) {
	c.JSON(http.StatusOK, newOrderResponses(h.store.MyOrders(currentUser(c))))
}

func (h *Handler) ListOrders(c *gin.Context) {
	c.JSON(http.StatusOK, newOrderResponses(h.store.AllOrders()))
}

type SetStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h *Handler) SetOrderStatus(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order ID"})
		return
	}

	var req SetStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, err := h.store.SetOrderStatus(id, req.Status)
	if err != nil {
		respondError(c, err)
		return
	}

	h.log.Info("order status changed", "order_id", order.ID, "status", order.Status, "by", currentUser(c).Login)
	c.JSON(http.StatusOK, newOrderResponse(order))
}

func (h *Handler) Stats(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.OrderStats())
}
