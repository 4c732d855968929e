package handler

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	appprocurement "github.com/erp/supplier-gateway/internal/application/procurement"
	"github.com/erp/supplier-gateway/internal/domain/procurement"
)

// ProcurementHandler handles supplier gateway API endpoints
type ProcurementHandler struct {
	BaseHandler
	transferService *appprocurement.CartTransferService
	catalogService  *appprocurement.CatalogService
	oauthService    *appprocurement.OAuthService
	registry        procurement.SupplierRegistry
}

// NewProcurementHandler creates a new ProcurementHandler
func NewProcurementHandler(
	transferService *appprocurement.CartTransferService,
	catalogService *appprocurement.CatalogService,
	oauthService *appprocurement.OAuthService,
	registry procurement.SupplierRegistry,
) *ProcurementHandler {
	return &ProcurementHandler{
		transferService: transferService,
		catalogService:  catalogService,
		oauthService:    oauthService,
		registry:        registry,
	}
}

// RegisterRoutes registers supplier gateway routes
func (h *ProcurementHandler) RegisterRoutes(rg *gin.RouterGroup) {
	suppliers := rg.Group("/suppliers")
	{
		suppliers.GET("", h.ListSuppliers)
		suppliers.POST("/cart-transfers", h.TransferCart)
		suppliers.GET("/:code/parts/:sku", h.GetPartData)
		suppliers.POST("/:code/parts", h.CreateCatalogEntry)
		suppliers.GET("/:code/oauth/callback", h.OAuthCallback)
	}
}

// supplierCode parses the supplier code path parameter
func (h *ProcurementHandler) supplierCode(c *gin.Context) (procurement.SupplierCode, bool) {
	code := procurement.SupplierCode(strings.ToUpper(c.Param("code")))
	if !code.IsValid() {
		h.BadRequest(c, "unknown supplier code "+c.Param("code"))
		return "", false
	}
	return code, true
}

// ListSuppliers godoc
// @Summary      List configured suppliers
// @Description  Returns the supplier gateways available for cart transfers and lookups
// @Tags         suppliers
// @Produce      json
// @Success      200 {object} dto.Response{data=[]SupplierInfoResponse}
// @Router       /suppliers [get]
func (h *ProcurementHandler) ListSuppliers(c *gin.Context) {
	gateways := h.registry.List()
	out := make([]SupplierInfoResponse, 0, len(gateways))
	for _, gw := range gateways {
		out = append(out, SupplierInfoResponse{Code: string(gw.Code())})
	}
	h.Success(c, out)
}

// TransferCartRequest represents a request to transfer an order into a
// supplier cart
// @Description Request body for starting a cart transfer
type TransferCartRequest struct {
	OrderID string `json:"order_id" binding:"required,uuid" example:"7f9c24e5-1315-4b9b-a93c-2c8f1a4c1234"`
}

// TransferCart godoc
// @Summary      Transfer a purchase order into a supplier cart
// @Description  Submits every order line to the supplier and reconciles prices back onto the order
// @Tags         suppliers
// @Accept       json
// @Produce      json
// @Param        request body TransferCartRequest true "Cart transfer request"
// @Success      200 {object} dto.Response{data=CartTransferResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      502 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /suppliers/cart-transfers [post]
func (h *ProcurementHandler) TransferCart(c *gin.Context) {
	var req TransferCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	orderID, err := uuid.Parse(req.OrderID)
	if err != nil {
		h.BadRequest(c, "invalid order_id")
		return
	}

	result, err := h.transferService.Transfer(c.Request.Context(), orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, NewCartTransferResponse(result))
}

// GetPartData godoc
// @Summary      Look up a part at a supplier
// @Description  Performs a single-SKU catalog lookup; an unknown SKU yields zero results, not an error
// @Tags         suppliers
// @Produce      json
// @Param        code path string true "Supplier code" Enums(MOUSER, DIGIKEY, FARNELL)
// @Param        sku path string true "Supplier part number"
// @Param        mode query string false "Search match mode" Enums(Exact, None)
// @Success      200 {object} dto.Response{data=PartDataResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      502 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /suppliers/{code}/parts/{sku} [get]
func (h *ProcurementHandler) GetPartData(c *gin.Context) {
	code, ok := h.supplierCode(c)
	if !ok {
		return
	}
	opts := procurement.PartSearchOptions{Mode: c.DefaultQuery("mode", "Exact")}

	data, err := h.catalogService.GetPartData(c.Request.Context(), code, c.Param("sku"), opts)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, NewPartDataResponse(data))
}

// CreateCatalogEntryRequest represents a request to create a catalog entry
// @Description Request body for creating a catalog entry from a supplier lookup
type CreateCatalogEntryRequest struct {
	SKU string `json:"sku" binding:"required" example:"771-BC847C"`
}

// CreateCatalogEntry godoc
// @Summary      Create a catalog entry from a supplier lookup
// @Description  Looks the SKU up at the supplier and stores it with its price breaks
// @Tags         suppliers
// @Accept       json
// @Produce      json
// @Param        code path string true "Supplier code" Enums(MOUSER, DIGIKEY, FARNELL)
// @Param        request body CreateCatalogEntryRequest true "Catalog entry request"
// @Success      201 {object} dto.Response{data=SupplierPartResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      502 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /suppliers/{code}/parts [post]
func (h *ProcurementHandler) CreateCatalogEntry(c *gin.Context) {
	code, ok := h.supplierCode(c)
	if !ok {
		return
	}
	var req CreateCatalogEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	part, err := h.catalogService.CreateCatalogEntry(c.Request.Context(), code, req.SKU)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, NewSupplierPartResponse(part))
}

// OAuthCallback godoc
// @Summary      Complete an OAuth authorization
// @Description  Exchanges the authorization code delivered to the redirect URI for a token pair
// @Tags         suppliers
// @Produce      json
// @Param        code path string true "Supplier code" Enums(DIGIKEY)
// @Param        code query string true "Authorization code"
// @Success      200 {object} dto.Response
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      502 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /suppliers/{code}/oauth/callback [get]
func (h *ProcurementHandler) OAuthCallback(c *gin.Context) {
	code, ok := h.supplierCode(c)
	if !ok {
		return
	}

	if err := h.oauthService.CompleteAuthorization(c.Request.Context(), code, c.Query("code")); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"authorized": true})
}
