// File: core/fifo/config.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Construction-time geometry of the FIFO.

package fifo

import (
	"errors"
	"fmt"

	"github.com/momentics/hioload-cdc/api"
)

const (
	// MaxDataWidth is the widest word a FIFO can carry.
	MaxDataWidth = 64
	// MaxAddrWidth bounds the storage allocation to 2^24 words.
	MaxAddrWidth = 24
)

// ErrInvalidConfig indicates a data or address width outside the supported range.
var ErrInvalidConfig = errors.New("invalid fifo configuration")

// Config fixes the FIFO geometry. It cannot change after construction.
type Config struct {
	DataWidth uint // bits per word, 1..64
	AddrWidth uint // log2 of depth, 1..24
}

// DefaultConfig returns a 16-deep, 8-bit wide FIFO.
func DefaultConfig() Config {
	return Config{DataWidth: 8, AddrWidth: 4}
}

// Validate reports a ConfigurationError for out-of-range widths.
func (c Config) Validate() error {
	if c.DataWidth < 1 || c.DataWidth > MaxDataWidth {
		return configError("data width out of range", "data_width", c.DataWidth)
	}
	if c.AddrWidth < 1 || c.AddrWidth > MaxAddrWidth {
		return configError("address width out of range", "addr_width", c.AddrWidth)
	}
	return nil
}

// Depth returns the number of storage slots, 2^AddrWidth.
func (c Config) Depth() int {
	return 1 << c.AddrWidth
}

// pointerMask covers the AddrWidth+1 pointer bits.
func (c Config) pointerMask() uint64 {
	return (uint64(1) << (c.AddrWidth + 1)) - 1
}

// indexMask covers the low AddrWidth bits used to address storage.
func (c Config) indexMask() uint64 {
	return (uint64(1) << c.AddrWidth) - 1
}

func (c Config) dataMask() api.Word {
	if c.DataWidth >= 64 {
		return ^api.Word(0)
	}
	return (api.Word(1) << c.DataWidth) - 1
}

func (c Config) String() string {
	return fmt.Sprintf("fifo(depth=%d, width=%d)", c.Depth(), c.DataWidth)
}

func configError(msg, key string, value uint) error {
	return api.NewError(api.ErrCodeInvalidArgument, msg).
		WithContext(key, value).
		WithCause(ErrInvalidConfig)
}
