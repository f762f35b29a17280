package logger

import (
	"nexus-crm/internal/config"

	"go.uber.org/zap"
)

// NewLogger builds the application logger from the environment config
func NewLogger(cfg *config.Config) (*zap.Logger, error) {

	// 1. Setup Base Config (Console/JSON)
	var zapConfig zap.Config
	if cfg.Environment == "production" {
		zapConfig = zap.NewProductionConfig()
	} else {
		zapConfig = zap.NewDevelopmentConfig()
	}

	// Important: Enable Caller to get Function Name
	zapConfig.EncoderConfig.FunctionKey = "func"

	baseLogger, err := zapConfig.Build()
	if err != nil {
		return nil, err
	}

	return baseLogger.WithOptions(zap.AddCaller()), nil
}
