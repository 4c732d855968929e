package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/erp/supplier-gateway/internal/domain/procurement"
)

// SupplierTokenModel persists the OAuth token pair of a supplier. One row
// per supplier; the pair is replaced wholesale on every rotation.
type SupplierTokenModel struct {
	SupplierCode string    `gorm:"primaryKey;size:32"`
	AccessToken  string    `gorm:"not null"`
	RefreshToken string    `gorm:"not null"`
	CreatedAt    time.Time `gorm:"not null"`
	UpdatedAt    time.Time `gorm:"not null"`
}

// TableName returns the table name for SupplierTokenModel
func (SupplierTokenModel) TableName() string {
	return "supplier_tokens"
}

// ToDomain converts SupplierTokenModel to a domain OAuthToken
func (m *SupplierTokenModel) ToDomain() procurement.OAuthToken {
	return procurement.OAuthToken{
		AccessToken:  m.AccessToken,
		RefreshToken: m.RefreshToken,
	}
}

// ListReservationModel persists the last remote list name reserved for an
// order at a supplier. The backend blocks names forever, so the stored
// suffix seeds the next probe.
type ListReservationModel struct {
	SupplierCode   string    `gorm:"primaryKey;size:32"`
	OrderReference string    `gorm:"primaryKey;size:128"`
	ListName       string    `gorm:"not null"`
	CreatedAt      time.Time `gorm:"not null"`
	UpdatedAt      time.Time `gorm:"not null"`
}

// TableName returns the table name for ListReservationModel
func (ListReservationModel) TableName() string {
	return "list_reservations"
}

// SupplierPartModel persists a catalog entry created from a part lookup
type SupplierPartModel struct {
	ID                     uuid.UUID         `gorm:"type:uuid;primary_key"`
	SupplierCode           string            `gorm:"size:32;not null;uniqueIndex:idx_supplier_sku"`
	SKU                    string            `gorm:"size:128;not null;uniqueIndex:idx_supplier_sku"`
	ManufacturerPartNumber string            `gorm:"size:128"`
	URL                    string            `gorm:"size:512"`
	LifecycleStatus        string            `gorm:"size:64"`
	Description            string            `gorm:"size:512"`
	Package                string            `gorm:"size:128"`
	PackQuantity           string            `gorm:"size:32"`
	PriceBreaks            []PriceBreakModel `gorm:"foreignKey:SupplierPartID;constraint:OnDelete:CASCADE"`
	CreatedAt              time.Time         `gorm:"not null"`
	UpdatedAt              time.Time         `gorm:"not null"`
}

// TableName returns the table name for SupplierPartModel
func (SupplierPartModel) TableName() string {
	return "supplier_parts"
}

// ToDomain converts SupplierPartModel to a domain SupplierPart
func (m *SupplierPartModel) ToDomain() *procurement.SupplierPart {
	part := &procurement.SupplierPart{
		ID:                     m.ID,
		Supplier:               procurement.SupplierCode(m.SupplierCode),
		SKU:                    m.SKU,
		ManufacturerPartNumber: m.ManufacturerPartNumber,
		URL:                    m.URL,
		LifecycleStatus:        m.LifecycleStatus,
		Description:            m.Description,
		Package:                m.Package,
		PackQuantity:           m.PackQuantity,
		PriceBreaks:            make([]procurement.PriceBreak, 0, len(m.PriceBreaks)),
	}
	for _, pb := range m.PriceBreaks {
		part.PriceBreaks = append(part.PriceBreaks, pb.ToDomain())
	}
	return part
}

// FromDomain populates SupplierPartModel from a domain SupplierPart
func (m *SupplierPartModel) FromDomain(p *procurement.SupplierPart) {
	m.ID = p.ID
	m.SupplierCode = string(p.Supplier)
	m.SKU = p.SKU
	m.ManufacturerPartNumber = p.ManufacturerPartNumber
	m.URL = p.URL
	m.LifecycleStatus = p.LifecycleStatus
	m.Description = p.Description
	m.Package = p.Package
	m.PackQuantity = p.PackQuantity
	m.PriceBreaks = make([]PriceBreakModel, 0, len(p.PriceBreaks))
	for _, pb := range p.PriceBreaks {
		model := PriceBreakModel{SupplierPartID: p.ID}
		model.FromDomain(pb)
		m.PriceBreaks = append(m.PriceBreaks, model)
	}
}

// PriceBreakModel persists one pricing tier of a supplier part. Currency is
// per tier because search responses can vary it, unlike cart pricing.
type PriceBreakModel struct {
	ID             uuid.UUID       `gorm:"type:uuid;primary_key"`
	SupplierPartID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Quantity       int             `gorm:"not null"`
	Price          decimal.Decimal `gorm:"type:numeric(20,8);not null"`
	Currency       string          `gorm:"size:8;not null"`
	CreatedAt      time.Time       `gorm:"not null"`
}

// TableName returns the table name for PriceBreakModel
func (PriceBreakModel) TableName() string {
	return "supplier_part_price_breaks"
}

// ToDomain converts PriceBreakModel to a domain PriceBreak
func (m *PriceBreakModel) ToDomain() procurement.PriceBreak {
	return procurement.PriceBreak{
		Quantity: m.Quantity,
		Price:    m.Price,
		Currency: m.Currency,
	}
}

// FromDomain populates PriceBreakModel from a domain PriceBreak
func (m *PriceBreakModel) FromDomain(pb procurement.PriceBreak) {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	m.Quantity = pb.Quantity
	m.Price = pb.Price
	m.Currency = pb.Currency
}

// PurchaseOrderModel persists a purchase order pending transfer
type PurchaseOrderModel struct {
	ID           uuid.UUID        `gorm:"type:uuid;primary_key"`
	Reference    string           `gorm:"size:128;not null;uniqueIndex"`
	SupplierCode string           `gorm:"size:32;not null"`
	Lines        []OrderLineModel `gorm:"foreignKey:PurchaseOrderID;constraint:OnDelete:CASCADE"`
	CreatedAt    time.Time        `gorm:"not null"`
	UpdatedAt    time.Time        `gorm:"not null"`
}

// TableName returns the table name for PurchaseOrderModel
func (PurchaseOrderModel) TableName() string {
	return "purchase_orders"
}

// ToDomain converts PurchaseOrderModel to a domain PurchaseOrder
func (m *PurchaseOrderModel) ToDomain() *procurement.PurchaseOrder {
	order := &procurement.PurchaseOrder{
		ID:        m.ID,
		Reference: m.Reference,
		Supplier:  procurement.SupplierCode(m.SupplierCode),
		Lines:     make([]procurement.OrderLine, 0, len(m.Lines)),
	}
	for _, line := range m.Lines {
		order.Lines = append(order.Lines, procurement.OrderLine{
			SKU:               line.SKU,
			CustomerReference: line.CustomerReference,
			Quantity:          line.Quantity,
			PackQuantity:      line.PackQuantity,
			UnitPrice:         line.UnitPrice,
		})
	}
	return order
}

// FromDomain populates PurchaseOrderModel from a domain PurchaseOrder
func (m *PurchaseOrderModel) FromDomain(o *procurement.PurchaseOrder) {
	m.ID = o.ID
	m.Reference = o.Reference
	m.SupplierCode = string(o.Supplier)
	m.Lines = make([]OrderLineModel, 0, len(o.Lines))
	for _, line := range o.Lines {
		m.Lines = append(m.Lines, OrderLineModel{
			ID:                uuid.New(),
			PurchaseOrderID:   o.ID,
			SKU:               line.SKU,
			CustomerReference: line.CustomerReference,
			Quantity:          line.Quantity,
			PackQuantity:      line.PackQuantity,
			UnitPrice:         line.UnitPrice,
		})
	}
}

// OrderLineModel persists one purchase order line. UnitPrice is the field
// the reconciler overwrites after a transfer.
type OrderLineModel struct {
	ID                uuid.UUID       `gorm:"type:uuid;primary_key"`
	PurchaseOrderID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	SKU               string          `gorm:"size:128;not null"`
	CustomerReference string          `gorm:"size:128"`
	Quantity          int             `gorm:"not null"`
	PackQuantity      int             `gorm:"not null;default:1"`
	UnitPrice         decimal.Decimal `gorm:"type:numeric(20,8);not null;default:0"`
	CreatedAt         time.Time       `gorm:"not null"`
	UpdatedAt         time.Time       `gorm:"not null"`
}

// TableName returns the table name for OrderLineModel
func (OrderLineModel) TableName() string {
	return "purchase_order_lines"
}
