// File: core/fifo/flags.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package fifo

// FlagEngine derives Full and Empty from Gray pointers only.
type FlagEngine struct {
	// lapMask selects the two most significant pointer bits.
	lapMask uint64
}

// NewFlagEngine returns the flag logic for cfg.
func NewFlagEngine(cfg Config) FlagEngine {
	return FlagEngine{lapMask: uint64(0b11) << (cfg.AddrWidth - 1)}
}

// Full reports whether the next write pointer is exactly one lap ahead of the
// synchronized read pointer: the two top Gray bits differ and all lower bits
// match.
func (f FlagEngine) Full(wgrayNext, rsync uint64) bool {
	return wgrayNext == rsync^f.lapMask
}

// Empty reports whether the next read pointer has caught the synchronized
// write pointer.
func (f FlagEngine) Empty(rgrayNext, wsync uint64) bool {
	return rgrayNext == wsync
}
