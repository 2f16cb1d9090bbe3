package backend

import (
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
)

// DeviceHandle provides GPU device access from the host application.
//
// Key principle: the compositor RECEIVES the device from the host, it
// does NOT create one. The host (windowing/event loop) owns adapter
// selection and surface creation; GPU-capable backends are constructed
// with a DeviceHandle and share the host's device and queue.
//
// DeviceHandle is an alias for gpucontext.DeviceProvider, providing a
// swen-specific name for the interface while staying compatible with
// the gpucontext ecosystem.
type DeviceHandle = gpucontext.DeviceProvider

// NullDeviceHandle is a DeviceHandle that provides nil implementations.
// Used for CPU-only rendering where no GPU is available.
type NullDeviceHandle struct{}

// Device returns nil for the null device.
func (NullDeviceHandle) Device() gpucontext.Device { return nil }

// Queue returns nil for the null device.
func (NullDeviceHandle) Queue() gpucontext.Queue { return nil }

// Adapter returns nil for the null device.
func (NullDeviceHandle) Adapter() gpucontext.Adapter { return nil }

// SurfaceFormat returns undefined format for the null device.
func (NullDeviceHandle) SurfaceFormat() gputypes.TextureFormat {
	return gputypes.TextureFormatUndefined
}

// Ensure NullDeviceHandle implements DeviceHandle.
var _ DeviceHandle = NullDeviceHandle{}
