package pompeii

import (
	"github.com/pkg/errors"
	vk "github.com/vulkan-go/vulkan"
)

type Semaphore struct {
	logicalDevice vk.Device
	semaphore     vk.Semaphore
}

func NewSemaphore(d *Device) (*Semaphore, error) {
	s := Semaphore{
		logicalDevice: d.Handle(),
	}

	semaphoreCreateInfo := vk.SemaphoreCreateInfo{
		SType: vk.StructureTypeSemaphoreCreateInfo,
	}
	if result := vk.CreateSemaphore(d.Handle(), &semaphoreCreateInfo, nil, &s.semaphore); result != vk.Success {
		return nil, errors.Wrap(vk.Error(result), "create semaphore")
	}

	return &s, nil
}

func (s *Semaphore) Destroy() {
	if s.semaphore != vk.NullSemaphore {
		vk.DestroySemaphore(s.logicalDevice, s.semaphore, nil)
		s.semaphore = vk.NullSemaphore
	}
}

func (s *Semaphore) Handle() vk.Semaphore {
	return s.semaphore
}

// Fence starts signaled so the first wait returns at once.
type Fence struct {
	logicalDevice vk.Device
	fence         vk.Fence
}

func NewFence(d *Device) (*Fence, error) {
	f := Fence{
		logicalDevice: d.Handle(),
	}
	if err := f.create(); err != nil {
		return nil, err
	}
	return &f, nil
}

func (f *Fence) create() error {
	fenceCreateInfo := vk.FenceCreateInfo{
		SType: vk.StructureTypeFenceCreateInfo,
		Flags: vk.FenceCreateFlags(vk.FenceCreateSignaledBit),
	}
	if result := vk.CreateFence(f.logicalDevice, &fenceCreateInfo, nil, &f.fence); result != vk.Success {
		return errors.Wrap(vk.Error(result), "create fence")
	}
	return nil
}

func (f *Fence) Wait(timeout uint64) vk.Result {
	return vk.WaitForFences(f.logicalDevice, 1, []vk.Fence{f.fence}, vk.True, timeout)
}

func (f *Fence) Reset() error {
	if result := vk.ResetFences(f.logicalDevice, 1, []vk.Fence{f.fence}); result != vk.Success {
		return errors.Wrap(vk.Error(result), "reset fence")
	}
	return nil
}

// Rearm replaces the fence with a new signaled one.
func (f *Fence) Rearm() error {
	f.Destroy()
	return f.create()
}

func (f *Fence) Destroy() {
	if f.fence != vk.NullFence {
		vk.DestroyFence(f.logicalDevice, f.fence, nil)
		f.fence = vk.NullFence
	}
}

func (f *Fence) Handle() vk.Fence {
	return f.fence
}
