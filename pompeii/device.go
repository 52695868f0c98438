package pompeii

import (
	"github.com/pkg/errors"
	vk "github.com/vulkan-go/vulkan"

	"github.com/perlw/vksurface/myr"
)

const swapchainExtension = "VK_KHR_swapchain"

type Device struct {
	GraphicsIndex int
	PresentIndex  int

	physicalDevice vk.PhysicalDevice
	logicalDevice  vk.Device
	graphicsQueue  vk.Queue
	presentQueue   vk.Queue
	commandPool    vk.CommandPool
	// One primary buffer is enough with a single frame in flight.
	commandBuffer  vk.CommandBuffer
}

func NewDevice(g *GPU, graphicsFamilyIndex, presentFamilyIndex int, extensions []string) (*Device, error) {
	d := Device{
		GraphicsIndex:  graphicsFamilyIndex,
		PresentIndex:   presentFamilyIndex,
		physicalDevice: g.Handle(),
	}

	queuePriorities := []float32{1.0}
	queueInfos := []vk.DeviceQueueCreateInfo{
		{
			SType:            vk.StructureTypeDeviceQueueCreateInfo,
			QueueFamilyIndex: uint32(graphicsFamilyIndex),
			QueueCount:       uint32(len(queuePriorities)),
			PQueuePriorities: queuePriorities,
		},
	}
	if presentFamilyIndex != graphicsFamilyIndex {
		queueInfos = append(queueInfos, vk.DeviceQueueCreateInfo{
			SType:            vk.StructureTypeDeviceQueueCreateInfo,
			QueueFamilyIndex: uint32(presentFamilyIndex),
			QueueCount:       uint32(len(queuePriorities)),
			PQueuePriorities: queuePriorities,
		})
	}

	deviceExtensions := []string{vkString(swapchainExtension)}
	for _, name := range extensions {
		if name != swapchainExtension {
			deviceExtensions = append(deviceExtensions, vkString(name))
		}
	}

	deviceCreateInfo := vk.DeviceCreateInfo{
		SType:                   vk.StructureTypeDeviceCreateInfo,
		QueueCreateInfoCount:    uint32(len(queueInfos)),
		PQueueCreateInfos:       queueInfos,
		EnabledLayerCount:       0,
		PpEnabledLayerNames:     nil,
		EnabledExtensionCount:   uint32(len(deviceExtensions)),
		PpEnabledExtensionNames: deviceExtensions,
	}
	if result := vk.CreateDevice(g.Handle(), &deviceCreateInfo, nil, &d.logicalDevice); result != vk.Success {
		return nil, errors.Wrap(vk.Error(result), "create device")
	}

	vk.GetDeviceQueue(d.logicalDevice, uint32(graphicsFamilyIndex), 0, &d.graphicsQueue)
	vk.GetDeviceQueue(d.logicalDevice, uint32(presentFamilyIndex), 0, &d.presentQueue)

	poolInfo := vk.CommandPoolCreateInfo{
		SType:            vk.StructureTypeCommandPoolCreateInfo,
		Flags:            vk.CommandPoolCreateFlags(vk.CommandPoolCreateResetCommandBufferBit),
		QueueFamilyIndex: uint32(graphicsFamilyIndex),
	}
	if result := vk.CreateCommandPool(d.logicalDevice, &poolInfo, nil, &d.commandPool); result != vk.Success {
		vk.DestroyDevice(d.logicalDevice, nil)
		return nil, errors.Wrap(vk.Error(result), "create command pool")
	}

	buffers := make([]vk.CommandBuffer, 1)
	allocInfo := vk.CommandBufferAllocateInfo{
		SType:              vk.StructureTypeCommandBufferAllocateInfo,
		CommandPool:        d.commandPool,
		Level:              vk.CommandBufferLevelPrimary,
		CommandBufferCount: 1,
	}
	if result := vk.AllocateCommandBuffers(d.logicalDevice, &allocInfo, buffers); result != vk.Success {
		vk.DestroyCommandPool(d.logicalDevice, d.commandPool, nil)
		vk.DestroyDevice(d.logicalDevice, nil)
		return nil, errors.Wrap(vk.Error(result), "allocate command buffer")
	}
	d.commandBuffer = buffers[0]

	return &d, nil
}

func (d *Device) Destroy() {
	d.WaitIdle()
	vk.DestroyCommandPool(d.logicalDevice, d.commandPool, nil)
	vk.DestroyDevice(d.logicalDevice, nil)
}

func (d *Device) WaitIdle() {
	vk.DeviceWaitIdle(d.logicalDevice)
}

func (d *Device) Handle() vk.Device {
	return d.logicalDevice
}

func (d *Device) Queue() *Queue {
	return &Queue{device: d, queue: d.graphicsQueue}
}

// Queue submits recorded command buffers to the graphics queue.
type Queue struct {
	device *Device
	queue  vk.Queue
}

func (q *Queue) Submit(cmds ...myr.CommandBuffer) error {
	for _, c := range cmds {
		cb, ok := c.(*commandBuffer)
		if !ok {
			return errors.Errorf("command buffer %T was not recorded by pompeii", c)
		}
		if err := q.submit(cb); err != nil {
			return err
		}
	}
	return nil
}

func (q *Queue) submit(cb *commandBuffer) error {
	info := vk.SubmitInfo{
		SType:              vk.StructureTypeSubmitInfo,
		CommandBufferCount: 1,
		PCommandBuffers:    []vk.CommandBuffer{cb.cmd},
	}

	fence := vk.NullFence
	if f := cb.frame; f != nil {
		sync := f.surface.sync
		info.WaitSemaphoreCount = 1
		info.PWaitSemaphores = []vk.Semaphore{sync.imageAcquired.Handle()}
		info.PWaitDstStageMask = []vk.PipelineStageFlags{vk.PipelineStageFlags(vk.PipelineStageColorAttachmentOutputBit)}
		info.SignalSemaphoreCount = 1
		info.PSignalSemaphores = []vk.Semaphore{sync.renderDone.Handle()}

		if err := sync.inFlight.Reset(); err != nil {
			return err
		}
		fence = sync.inFlight.Handle()
	}

	if result := vk.QueueSubmit(q.queue, 1, []vk.SubmitInfo{info}, fence); result != vk.Success {
		if cb.frame != nil {
			// An unsignaled fence would stall the next acquisition forever.
			if err := cb.frame.surface.sync.inFlight.Rearm(); err != nil {
				return errors.Wrap(err, "rearm frame fence")
			}
		}
		return classifyResult(result, "queue submit")
	}
	return nil
}
