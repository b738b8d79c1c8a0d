package host

import (
	"go.uber.org/zap"

	"github.com/mortencombat/stretchable"
	"github.com/mortencombat/stretchable/engine"
	"github.com/mortencombat/stretchable/style"
)

// MeasureCallback supplies the intrinsic content size of a measurable
// leaf. Known dimensions that are not yet determined arrive as NaN;
// available space per axis arrives as a flat tagged length (definite
// points, min-content or max-content). context is the value of the
// leaf's NodeHandle.
//
// A callback that returns an error or panics does not abort the layout
// pass: the failure is logged and the leaf's measured size is replaced
// with NaN on both axes.
type MeasureCallback func(known stretchable.Size[float32], available style.RawSize, context uint64) (stretchable.Size[float32], error)

// bridge adapts a MeasureCallback to the engine's measure contract:
// outward-encodes available space, serializes invocations under the
// host-wide callback mutex and contains callback failures.
func (h *Host) bridge(cb MeasureCallback) engine.MeasureFunc {
	if cb == nil {
		return nil
	}
	return func(known stretchable.Size[float32], available stretchable.Size[style.Length], context uint64) stretchable.Size[float32] {
		raw, err := style.EncodeAvailableSize(available)
		if err != nil {
			Logger().Error("available space not encodable",
				zap.Uint64("context", context),
				zap.Error(err))
			return stretchable.SizeNaN()
		}

		h.callbackMu.Lock()
		defer h.callbackMu.Unlock()
		return invoke(cb, known, raw, context)
	}
}

// invoke runs one callback with panic containment.
func invoke(cb MeasureCallback, known stretchable.Size[float32], available style.RawSize, context uint64) (size stretchable.Size[float32]) {
	defer func() {
		if r := recover(); r != nil {
			Logger().Error("measure callback panicked",
				zap.Uint64("context", context),
				zap.Any("panic", r),
				zap.Stack("stack"))
			size = stretchable.SizeNaN()
		}
	}()

	size, err := cb(known, available, context)
	if err != nil {
		Logger().Error("measure callback failed",
			zap.Uint64("context", context),
			zap.Error(err))
		return stretchable.SizeNaN()
	}
	return size
}
