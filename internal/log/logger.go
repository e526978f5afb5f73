package log

import (
	"sync"

	"go.uber.org/zap"
)

var (
	mu   sync.RWMutex
	base = zap.NewNop()
)

// Init builds the process logger. dev switches to the human readable console encoder.
func Init(dev bool) (*zap.Logger, error) {
	var (
		l   *zap.Logger
		err error
	)
	if dev {
		l, err = zap.NewDevelopment()
	} else {
		l, err = zap.NewProduction()
	}
	if err != nil {
		return nil, err
	}
	mu.Lock()
	base = l
	mu.Unlock()
	return l, nil
}

// L returns the process logger, a no-op logger until Init succeeds.
func L() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return base
}

func Sync() { _ = L().Sync() }

func Infof(format string, args ...any)  { L().Sugar().Infof(format, args...) }
func Errorf(format string, args ...any) { L().Sugar().Errorf(format, args...) }
