package logger

import "go.uber.org/zap"

func NewLogger() *zap.Logger {
	config := zap.Config{
		Encoding:         "console",
		Level:            zap.NewAtomicLevelAt(zap.DebugLevel),
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
		EncoderConfig:    zap.NewProductionEncoderConfig(),
	}

	l, err := config.Build()
	if err != nil {
		panic(err)
	}

	return l
}
