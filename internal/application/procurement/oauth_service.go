package procurement

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/erp/supplier-gateway/internal/domain/procurement"
)

// AuthorizationCodeExchanger is implemented by gateways whose backend uses
// the OAuth authorization-code flow.
type AuthorizationCodeExchanger interface {
	ExchangeAuthorizationCode(ctx context.Context, code string) error
}

// OAuthService completes operator-initiated OAuth authorizations. The
// resulting token pair is persisted by the gateway itself; this service only
// routes the callback to the right exchanger.
type OAuthService struct {
	registry procurement.SupplierRegistry
	logger   *zap.Logger
}

// NewOAuthService creates a new OAuthService
func NewOAuthService(registry procurement.SupplierRegistry, logger *zap.Logger) *OAuthService {
	return &OAuthService{
		registry: registry,
		logger:   logger.Named("oauth"),
	}
}

// CompleteAuthorization exchanges the authorization code delivered to the
// redirect URI for a token pair
func (s *OAuthService) CompleteAuthorization(ctx context.Context, supplier procurement.SupplierCode, code string) error {
	if code == "" {
		return procurement.NewGatewayError(supplier, procurement.ErrorKindLocalValidation,
			"EMPTY_CODE", "authorization code must not be empty")
	}

	gateway, err := s.registry.Gateway(supplier)
	if err != nil {
		return err
	}
	exchanger, ok := gateway.(AuthorizationCodeExchanger)
	if !ok {
		return errors.New("supplier does not use authorization-code OAuth")
	}

	if err := exchanger.ExchangeAuthorizationCode(ctx, code); err != nil {
		return err
	}
	s.logger.Info("authorization completed", zap.String("supplier", string(supplier)))
	return nil
}
