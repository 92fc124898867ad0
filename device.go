package shader

import (
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
)

// DeviceHandle provides GPU device access from the host application.
//
// This interface is the integration point between the shader engine and GPU
// frameworks like gogpu. The host application implements DeviceHandle and
// passes it in Params, allowing composed operations to create GPU-side
// resources (lookup textures, scratch buffers) on the shared device.
//
// Key principle: the engine RECEIVES the device from the host, it does NOT
// create one. The engine itself only uses the handle for capability
// queries; all resource creation happens inside composed operations, which
// must degrade gracefully (or fail their shader) when no device is present.
//
// DeviceHandle is an alias for gpucontext.DeviceProvider, providing a
// package-specific name for the interface while maintaining full
// compatibility with the gpucontext ecosystem.
type DeviceHandle = gpucontext.DeviceProvider

// CapabilityProvider is an optional interface for device handles that can
// report the GLSL dialect and feature set of their device. When a Shader is
// created without explicit capabilities, a device implementing this
// interface supplies them; otherwise DefaultGLSLVersion applies.
type CapabilityProvider interface {
	GLSLCapabilities() GLSLVersion
}

// NullDeviceHandle is a DeviceHandle that provides nil implementations.
// Used for GPU-free shader composition, e.g. in tests or offline tooling.
type NullDeviceHandle struct{}

// Device returns nil for the null device.
func (NullDeviceHandle) Device() gpucontext.Device { return nil }

// Queue returns nil for the null device.
func (NullDeviceHandle) Queue() gpucontext.Queue { return nil }

// Adapter returns nil for the null device.
func (NullDeviceHandle) Adapter() gpucontext.Adapter { return nil }

// AdapterInfo returns unknown adapter info for the null device.
func (NullDeviceHandle) AdapterInfo() gpucontext.AdapterInfo {
	return gpucontext.AdapterInfo{Type: gpucontext.AdapterTypeUnknown}
}

// SurfaceFormat returns undefined format for the null device.
func (NullDeviceHandle) SurfaceFormat() gputypes.TextureFormat {
	return gputypes.TextureFormatUndefined
}

// Ensure NullDeviceHandle implements DeviceHandle.
var _ DeviceHandle = NullDeviceHandle{}
