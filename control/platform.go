// control/platform.go
// Author: momentics <momentics@gmail.com>
//
// Platform debug probes.

package control

import "runtime"

// RegisterPlatformProbes adds host information used to plan domain pinning.
func RegisterPlatformProbes(dp *DebugProbes) {
	dp.RegisterProbe("platform.cpus", func() any {
		return runtime.NumCPU()
	})
	dp.RegisterProbe("platform.os", func() any {
		return runtime.GOOS
	})
	dp.RegisterProbe("platform.goroutines", func() any {
		return runtime.NumGoroutine()
	})
}
