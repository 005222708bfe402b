package logging

import "go.uber.org/zap"

// Log 是全局日志实例，Init 之前为 no-op，测试无需初始化即可使用。
var Log = zap.NewNop()

// Init builds the process-wide logger. Debug mode gets the human-readable
// development encoder, anything else the production JSON encoder.
func Init(mode string) error {
	var (
		logger *zap.Logger
		err    error
	)

	if mode == "debug" {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		return err
	}

	Log = logger
	return nil
}

// L returns the current global logger.
func L() *zap.Logger {
	return Log
}
