package taker

import (
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
)

var (
	instance   atomic.Pointer[Taker]
	instanceMu sync.Mutex

	newTaker = New
)

// Instance returns the process-wide Taker, building it from opts on first
// use. Once built, later calls return it and ignore their arguments. A failed
// build leaves nothing behind, so the next call tries again.
func Instance(opts Options, logger *zap.Logger) (*Taker, error) {
	if t := instance.Load(); t != nil {
		return t, nil
	}

	instanceMu.Lock()
	defer instanceMu.Unlock()

	if t := instance.Load(); t != nil {
		return t, nil
	}

	t, err := newTaker(opts, logger)
	if err != nil {
		return nil, err
	}
	instance.Store(t)
	return t, nil
}

func resetInstance() {
	instanceMu.Lock()
	defer instanceMu.Unlock()
	instance.Store(nil)
}
