// Package checksum computes the 64-bit integrity value stored alongside
// every object version, via a pluggable-by-name algorithm registry.
package checksum

import (
	"hash"

	"github.com/xtreemfs-go/osd-storage/pkg/util/logger"
)

// Algorithm is anything that can serve as a checksum algorithm: reset,
// consume bytes, and fold them into a 64-bit value. The standard
// library's hash.Hash64 already says exactly this.
type Algorithm = hash.Hash64

// Engine computes checksums over object payloads. It is single-instance
// and not safe for concurrent use: callers serialize, matching the
// single-threaded-per-file execution model the whole storage layer is
// built for.
type Engine struct {
	enabled bool
	algo    Algorithm
}

// Disabled returns an Engine whose Calc always returns 0 without
// touching the buffer, for configurations that don't use checksums.
func Disabled() *Engine {
	return &Engine{}
}

// NewEngine looks up name in Factory and returns an Engine that uses it.
// If the algorithm is unknown, the failure is logged at ERROR and a
// disabled Engine is returned instead — checksums are silently switched
// off for the process lifetime rather than failing every write.
func NewEngine(name string, log *logger.Logger) *Engine {
	ctor, ok := Factory[name]
	if !ok {
		if log != nil {
			log.Error("could not instantiate checksum algorithm, checksums will be switched off",
				logger.FieldString("algorithm", name))
		}
		return Disabled()
	}
	return &Engine{enabled: true, algo: ctor()}
}

// Enabled reports whether this Engine actually computes checksums.
func (e *Engine) Enabled() bool {
	return e != nil && e.enabled
}

// Calc computes the checksum of buf, or returns 0 if checksums are
// disabled. The underlying algorithm is reset before every call.
func (e *Engine) Calc(buf []byte) uint64 {
	if !e.Enabled() {
		return 0
	}
	e.algo.Reset()
	_, _ = e.algo.Write(buf) // hash.Hash.Write never returns an error.
	return e.algo.Sum64()
}
