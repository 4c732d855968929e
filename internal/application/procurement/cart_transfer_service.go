package procurement

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/erp/supplier-gateway/internal/domain/procurement"
)

// skuNotAvailable is the placeholder meaning "not available from this
// supplier". Submitting it would be meaningless, so the transfer refuses
// before any network call.
const skuNotAvailable = "N/A"

// CartTransferService moves a purchase order into a supplier cart or list
// and reconciles the authoritative supplier pricing back onto the order
// lines. Each transfer walks a fixed state machine; all state is threaded
// through return values, never kept on the service.
type CartTransferService struct {
	registry procurement.SupplierRegistry
	orders   procurement.PurchaseOrderRepository
	logger   *zap.Logger
}

// NewCartTransferService creates a new CartTransferService
func NewCartTransferService(registry procurement.SupplierRegistry, orders procurement.PurchaseOrderRepository, logger *zap.Logger) *CartTransferService {
	return &CartTransferService{
		registry: registry,
		orders:   orders,
		logger:   logger.Named("cart-transfer"),
	}
}

// Transfer runs the full cart transfer for an order. On failure the remote
// cart or list may already exist at the backend; idle lists are harmless
// and removed manually by the operator.
func (s *CartTransferService) Transfer(ctx context.Context, orderID uuid.UUID) (*TransferResult, error) {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return &TransferResult{State: TransferStateFailed}, err
	}

	log := s.logger.With(
		zap.String("order_id", orderID.String()),
		zap.String("order_reference", order.Reference),
		zap.String("supplier", string(order.Supplier)),
	)

	if err := validateTransferable(order); err != nil {
		return &TransferResult{State: TransferStateFailed}, err
	}

	gateway, err := s.registry.Gateway(order.Supplier)
	if err != nil {
		return &TransferResult{State: TransferStateFailed},
			procurement.NewGatewayError(order.Supplier, procurement.ErrorKindLocalValidation,
				"SUPPLIER_NOT_CONFIGURED", err.Error())
	}

	log.Info("transfer state", zap.String("state", string(TransferStateCartCreating)))
	handle, err := gateway.CreateCart(ctx, order)
	if err != nil {
		return &TransferResult{State: TransferStateFailed}, err
	}

	log.Info("transfer state", zap.String("state", string(TransferStateCartPopulating)))
	cart, err := gateway.UpdateCart(ctx, order, handle)
	if err != nil {
		return &TransferResult{State: TransferStateFailed}, err
	}

	log.Info("transfer state", zap.String("state", string(TransferStateReconciling)))
	if err := s.reconcile(ctx, order, cart); err != nil {
		return &TransferResult{State: TransferStateFailed}, err
	}

	log.Info("transfer state",
		zap.String("state", string(TransferStateDone)),
		zap.Int("items", len(cart.Items)),
		zap.String("merchandise_total", cart.MerchandiseTotal.String()),
	)
	return &TransferResult{State: TransferStateDone, Cart: cart}, nil
}

// reconcile copies the supplier's unit price onto every order line whose
// SKU exactly matches a returned cart item. Lines the supplier did not
// return are left untouched; a supplier may drop unrecognized SKUs silently
// and that is reported per item, not as a batch failure.
func (s *CartTransferService) reconcile(ctx context.Context, order *procurement.PurchaseOrder, cart *procurement.CartResult) error {
	priced := make(map[string]procurement.CartItem, len(cart.Items))
	for _, item := range cart.Items {
		priced[item.SKU] = item
	}

	for _, line := range order.Lines {
		item, ok := priced[line.SKU]
		if !ok {
			continue
		}
		if err := s.orders.UpdateLinePrice(ctx, order.ID, line.SKU, item.UnitPrice); err != nil {
			return fmt.Errorf("price write-back for %q: %w", line.SKU, err)
		}
	}
	return nil
}

// validateTransferable rejects orders that cannot be submitted before any
// network call is made
func validateTransferable(order *procurement.PurchaseOrder) error {
	if len(order.Lines) == 0 {
		return procurement.NewGatewayError(order.Supplier, procurement.ErrorKindLocalValidation,
			"EMPTY_ORDER", "purchase order has no lines")
	}
	for _, line := range order.Lines {
		if line.SKU == "" || line.SKU == skuNotAvailable {
			return procurement.NewGatewayError(order.Supplier, procurement.ErrorKindLocalValidation,
				"SKU_NOT_AVAILABLE",
				fmt.Sprintf("line %q has no valid supplier SKU", line.CustomerReference))
		}
	}
	return nil
}
