// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"errors"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// DeviceHandle provides GPU device access from the host application.
//
// The UI renderer RECEIVES the device from the host, it never creates one.
// A host whose DeviceHandle also exposes the HAL objects,
//
//	HalDevice() any // hal.Device
//	HalQueue() any  // hal.Queue
//
// can be passed straight to NewUIRendererFromProvider.
//
// DeviceHandle is an alias for gpucontext.DeviceProvider.
type DeviceHandle = gpucontext.DeviceProvider

// Provider errors.
var (
	// ErrNoHAL is returned for a provider without HalDevice/HalQueue.
	ErrNoHAL = errors.New("render: provider does not expose HAL types")

	// ErrBadHALDevice is returned when HalDevice is not a hal.Device.
	ErrBadHALDevice = errors.New("render: provider HalDevice is not hal.Device")

	// ErrBadHALQueue is returned when HalQueue is not a hal.Queue.
	ErrBadHALQueue = errors.New("render: provider HalQueue is not hal.Queue")
)

type halProvider interface {
	HalDevice() any
	HalQueue() any
}

// halFromProvider extracts the HAL device and queue of a host provider.
func halFromProvider(provider any) (hal.Device, hal.Queue, error) {
	hp, ok := provider.(halProvider)
	if !ok {
		return nil, nil, ErrNoHAL
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, nil, ErrBadHALDevice
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return nil, nil, ErrBadHALQueue
	}
	return device, queue, nil
}

// SurfaceFormatOf returns the provider's surface format, or BGRA8Unorm
// when the provider is nil or reports none.
func SurfaceFormatOf(p DeviceHandle) gputypes.TextureFormat {
	if p == nil {
		return gputypes.TextureFormatBGRA8Unorm
	}
	if f := p.SurfaceFormat(); f != gputypes.TextureFormatUndefined {
		return f
	}
	return gputypes.TextureFormatBGRA8Unorm
}

// NullDeviceHandle is a DeviceHandle that provides nil implementations.
// Used where no GPU is available, such as the terminal preview.
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
