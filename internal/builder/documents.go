package builder

import (
	"github.com/futig/lifestory-backend/internal/config"
	"github.com/unidoc/unioffice/common/license"
	"go.uber.org/zap"
)

// setupDocumentLicense activates the DOCX writer. Without a key DOCX export
// fails at request time while PDF and markdown keep working.
func setupDocumentLicense(cfg config.StorybookConfig, logger *zap.Logger) {
	if cfg.DocxLicenseKey == "" {
		logger.Warn("STORYBOOK_DOCX_LICENSE_KEY is not set, DOCX export will be unavailable")
		return
	}

	if err := license.SetMeteredKey(cfg.DocxLicenseKey); err != nil {
		logger.Error("failed to activate DOCX license", zap.Error(err))
		return
	}

	logger.Info("DOCX license activated")
}
