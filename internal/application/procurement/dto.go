package procurement

import (
	"github.com/erp/supplier-gateway/internal/domain/procurement"
)

// TransferState is the state of a cart transfer operation
type TransferState string

// Transfer states
const (
	TransferStateIdle           TransferState = "IDLE"
	TransferStateCartCreating   TransferState = "CART_CREATING"
	TransferStateCartPopulating TransferState = "CART_POPULATING"
	TransferStateReconciling    TransferState = "RECONCILING"
	TransferStateDone           TransferState = "DONE"
	TransferStateFailed         TransferState = "FAILED"
)

// TransferResult is the outcome of a completed cart transfer
type TransferResult struct {
	State TransferState
	Cart  *procurement.CartResult
}
