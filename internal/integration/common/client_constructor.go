package common

import (
	"github.com/futig/lifestory-backend/internal/config"
	pkgHTTP "github.com/futig/lifestory-backend/pkg/http"
	"go.uber.org/zap"
)

// NewBaseConnector builds a connector that authenticates with a bearer token
func NewBaseConnector(cfg config.HTTPClientConfig, logger *zap.Logger) *pkgHTTP.Connector {
	return newConnector(cfg, logger, pkgHTTP.WithAuthToken(cfg.Token))
}

// NewAPIKeyConnector builds a connector that sends the token in the given header
func NewAPIKeyConnector(cfg config.HTTPClientConfig, header string, logger *zap.Logger) *pkgHTTP.Connector {
	return newConnector(cfg, logger, pkgHTTP.WithAPIKey(header, cfg.Token))
}

func newConnector(cfg config.HTTPClientConfig, logger *zap.Logger, auth pkgHTTP.HttpOpts) *pkgHTTP.Connector {
	connCfg := &pkgHTTP.ConnectorConfig{
		Logger:  logger,
		BaseURL: cfg.Url,
	}

	return pkgHTTP.NewConnector(
		connCfg,
		pkgHTTP.WithRequestTimeout(cfg.RequestTimeout),
		pkgHTTP.WithConnClientTimeout(cfg.ConnTimeout),
		pkgHTTP.WithClientKeepAlive(cfg.KeepAlive),
		pkgHTTP.WithIdleConnTimeout(cfg.IdleConnTimeout),
		pkgHTTP.WithResponseHeaderTimeout(cfg.ResponseHeaderTimeout),
		pkgHTTP.WithRequestLogging(),
		auth,
	)
}
