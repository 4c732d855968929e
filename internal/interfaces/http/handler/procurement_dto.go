package handler

import (
	"github.com/shopspring/decimal"

	appprocurement "github.com/erp/supplier-gateway/internal/application/procurement"
	"github.com/erp/supplier-gateway/internal/domain/procurement"
)

// errorStatusOK is reported for cart items the supplier accepted cleanly
const errorStatusOK = "OK"

// CartItemResponse represents one order line as priced by the supplier
// @Description Per-line cart item with authoritative supplier pricing
type CartItemResponse struct {
	SKU               string          `json:"sku" example:"771-BC847C"`
	CustomerReference string          `json:"customer_reference" example:"R_10k_0805"`
	QuantityRequested int             `json:"quantity_requested" example:"100"`
	QuantityAvailable int             `json:"quantity_available" example:"54000"`
	UnitPrice         decimal.Decimal `json:"unit_price" example:"0.045"`
	ExtendedPrice     decimal.Decimal `json:"extended_price" example:"4.50"`
	ErrorStatus       string          `json:"error_status" example:"OK"`
}

// CartTransferResponse represents the outcome of a cart transfer
// @Description Result of transferring a purchase order into a supplier cart
type CartTransferResponse struct {
	State            string             `json:"state" example:"DONE"`
	CartKey          string             `json:"cart_key" example:"PO-0042-01"`
	CurrencyCode     string             `json:"currency_code" example:"EUR"`
	MerchandiseTotal decimal.Decimal    `json:"merchandise_total" example:"123.45"`
	Items            []CartItemResponse `json:"items"`
}

// NewCartTransferResponse converts a transfer result to its API shape
func NewCartTransferResponse(result *appprocurement.TransferResult) CartTransferResponse {
	resp := CartTransferResponse{State: string(result.State)}
	if result.Cart == nil {
		return resp
	}
	resp.CartKey = result.Cart.CartKey
	resp.CurrencyCode = result.Cart.CurrencyCode
	resp.MerchandiseTotal = result.Cart.MerchandiseTotal
	resp.Items = make([]CartItemResponse, 0, len(result.Cart.Items))
	for _, item := range result.Cart.Items {
		status := item.Error
		if status == "" {
			status = errorStatusOK
		}
		resp.Items = append(resp.Items, CartItemResponse{
			SKU:               item.SKU,
			CustomerReference: item.CustomerReference,
			QuantityRequested: item.QuantityRequested,
			QuantityAvailable: item.QuantityAvailable,
			UnitPrice:         item.UnitPrice,
			ExtendedPrice:     item.ExtendedPrice,
			ErrorStatus:       status,
		})
	}
	return resp
}

// PriceBreakResponse represents one pricing tier
type PriceBreakResponse struct {
	Quantity int             `json:"quantity" example:"100"`
	Price    decimal.Decimal `json:"price" example:"0.045"`
	Currency string          `json:"currency" example:"EUR"`
}

// PartDataResponse represents a supplier part lookup result
// @Description Normalized supplier catalog data for one SKU
type PartDataResponse struct {
	SKU                    string               `json:"sku" example:"771-BC847C"`
	ManufacturerPartNumber string               `json:"manufacturer_part_number" example:"BC847C"`
	URL                    string               `json:"url"`
	LifecycleStatus        string               `json:"lifecycle_status" example:"Active"`
	Description            string               `json:"description"`
	Package                string               `json:"package"`
	PackQuantity           string               `json:"pack_quantity" example:"1"`
	PriceBreaks            []PriceBreakResponse `json:"price_breaks"`
	NumberOfResults        int                  `json:"number_of_results" example:"1"`
}

// NewPartDataResponse converts part data to its API shape
func NewPartDataResponse(data *procurement.PartData) PartDataResponse {
	return PartDataResponse{
		SKU:                    data.SKU,
		ManufacturerPartNumber: data.ManufacturerPartNumber,
		URL:                    data.URL,
		LifecycleStatus:        data.LifecycleStatus,
		Description:            data.Description,
		Package:                data.Package,
		PackQuantity:           data.PackQuantity,
		PriceBreaks:            newPriceBreakResponses(data.PriceBreaks),
		NumberOfResults:        data.NumberOfResults,
	}
}

// SupplierPartResponse represents a stored catalog entry
type SupplierPartResponse struct {
	ID                     string               `json:"id"`
	Supplier               string               `json:"supplier" example:"MOUSER"`
	SKU                    string               `json:"sku" example:"771-BC847C"`
	ManufacturerPartNumber string               `json:"manufacturer_part_number"`
	URL                    string               `json:"url"`
	LifecycleStatus        string               `json:"lifecycle_status"`
	Description            string               `json:"description"`
	Package                string               `json:"package"`
	PackQuantity           string               `json:"pack_quantity"`
	PriceBreaks            []PriceBreakResponse `json:"price_breaks"`
}

// NewSupplierPartResponse converts a catalog entry to its API shape
func NewSupplierPartResponse(part *procurement.SupplierPart) SupplierPartResponse {
	return SupplierPartResponse{
		ID:                     part.ID.String(),
		Supplier:               string(part.Supplier),
		SKU:                    part.SKU,
		ManufacturerPartNumber: part.ManufacturerPartNumber,
		URL:                    part.URL,
		LifecycleStatus:        part.LifecycleStatus,
		Description:            part.Description,
		Package:                part.Package,
		PackQuantity:           part.PackQuantity,
		PriceBreaks:            newPriceBreakResponses(part.PriceBreaks),
	}
}

func newPriceBreakResponses(breaks []procurement.PriceBreak) []PriceBreakResponse {
	out := make([]PriceBreakResponse, 0, len(breaks))
	for _, b := range breaks {
		out = append(out, PriceBreakResponse{
			Quantity: b.Quantity,
			Price:    b.Price,
			Currency: b.Currency,
		})
	}
	return out
}

// SupplierInfoResponse represents one configured supplier gateway
type SupplierInfoResponse struct {
	Code string `json:"code" example:"MOUSER"`
}
