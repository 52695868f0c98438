package pompeii

import (
	"bytes"
	"fmt"

	"github.com/pkg/errors"
	vk "github.com/vulkan-go/vulkan"

	"github.com/perlw/vksurface/myr"
)

type GPUType uint32

const (
	GPUTypeOther      GPUType = GPUType(vk.PhysicalDeviceTypeOther)
	GPUTypeIntegrated         = GPUType(vk.PhysicalDeviceTypeIntegratedGpu)
	GPUTypeDiscrete           = GPUType(vk.PhysicalDeviceTypeDiscreteGpu)
	GPUTypeVirtual            = GPUType(vk.PhysicalDeviceTypeVirtualGpu)
	GPUTypeCPU                = GPUType(vk.PhysicalDeviceTypeCpu)
)

func (g GPUType) String() string {
	switch g {
	case GPUTypeOther:
		return "Other"
	case GPUTypeIntegrated:
		return "Integrated"
	case GPUTypeDiscrete:
		return "Discrete"
	case GPUTypeVirtual:
		return "Virtual"
	case GPUTypeCPU:
		return "CPU"
	default:
		return fmt.Sprintf("GPUType(%d)", uint32(g))
	}
}

type QueueFamily struct {
	Index    int
	Graphics bool
	Compute  bool
	Transfer bool

	physicalDevice vk.PhysicalDevice
}

func (q *QueueFamily) SurfacePresentSupport(surface Surface) bool {
	var presentSupport vk.Bool32
	vk.GetPhysicalDeviceSurfaceSupport(q.physicalDevice, uint32(q.Index), surface.Handle(), &presentSupport)
	return (presentSupport > 0)
}

// GPU is a physical device. It satisfies myr.Adapter once its queue
// families have been selected against a surface.
type GPU struct {
	Type GPUType

	name           string
	physicalDevice vk.PhysicalDevice
	props          vk.PhysicalDeviceProperties
	memProps       vk.PhysicalDeviceMemoryProperties
	features       vk.PhysicalDeviceFeatures

	graphicsFamily int
	presentFamily  int
}

func newGPU(physicalDevice vk.PhysicalDevice) GPU {
	g := GPU{
		physicalDevice: physicalDevice,
		graphicsFamily: -1,
		presentFamily:  -1,
	}

	vk.GetPhysicalDeviceProperties(g.physicalDevice, &g.props)
	g.props.Deref()
	g.props.Limits.Deref()
	g.props.SparseProperties.Deref()

	vk.GetPhysicalDeviceMemoryProperties(g.physicalDevice, &g.memProps)
	g.memProps.Deref()

	vk.GetPhysicalDeviceFeatures(g.physicalDevice, &g.features)
	g.features.Deref()

	g.name = vk.ToString(g.props.DeviceName[:])
	g.Type = GPUType(g.props.DeviceType)

	return g
}

func (g *GPU) Name() string {
	return g.name
}

func (g *GPU) Debug() string {
	buffer := bytes.Buffer{}

	buffer.WriteString(fmt.Sprintln("Device Name:", g.name))
	buffer.WriteString(fmt.Sprintln("Device Type:", g.Type))
	buffer.WriteString("## Backend\n")
	buffer.WriteString(fmt.Sprintf("Vulkan v%d.%d.%d\n",
		(g.props.ApiVersion>>22)&0x3ff,
		(g.props.ApiVersion>>12)&0x3ff,
		g.props.ApiVersion&0xfff,
	))
	buffer.WriteString(fmt.Sprintf("Driver v%d.%d.%d\n",
		(g.props.DriverVersion>>22)&0x3ff,
		(g.props.DriverVersion>>12)&0x3ff,
		g.props.DriverVersion&0xfff,
	))
	buffer.WriteString(fmt.Sprintln("Max Image Dimension:", g.props.Limits.MaxImageDimension2D))

	return buffer.String()
}

func (g *GPU) QueueFamilies() ([]QueueFamily, error) {
	var queueFamilyCount uint32
	vk.GetPhysicalDeviceQueueFamilyProperties(g.physicalDevice, &queueFamilyCount, nil)
	if queueFamilyCount == 0 {
		return nil, errors.New("no queue families")
	}

	families := []QueueFamily{}

	queueFamilies := make([]vk.QueueFamilyProperties, queueFamilyCount)
	vk.GetPhysicalDeviceQueueFamilyProperties(g.physicalDevice, &queueFamilyCount, queueFamilies)
	for i, family := range queueFamilies {
		family.Deref()

		families = append(families, QueueFamily{
			Index:          i,
			Graphics:       (family.QueueFlags&vk.QueueFlags(vk.QueueGraphicsBit) != 0),
			Compute:        (family.QueueFlags&vk.QueueFlags(vk.QueueComputeBit) != 0),
			Transfer:       (family.QueueFlags&vk.QueueFlags(vk.QueueTransferBit) != 0),
			physicalDevice: g.physicalDevice,
		})
	}

	return families, nil
}

// selectQueueFamilies finds a graphics family and a family able to present
// to surface, preferring one family that does both.
func (g *GPU) selectQueueFamilies(surface Surface) error {
	families, err := g.QueueFamilies()
	if err != nil {
		return errors.Wrap(err, "could not get families")
	}

	graphics, present := -1, -1
	for t := range families {
		family := &families[t]
		supports := family.SurfacePresentSupport(surface)
		if family.Graphics && supports {
			graphics, present = family.Index, family.Index
			break
		}
		if family.Graphics && graphics < 0 {
			graphics = family.Index
		}
		if supports && present < 0 {
			present = family.Index
		}
	}
	if graphics < 0 {
		return errors.New("no graphics queue family")
	}
	if present < 0 {
		return errors.New("no queue family can present to the surface")
	}

	g.graphicsFamily = graphics
	g.presentFamily = present
	return nil
}

// RequestDevice creates the logical device. RequiredFeatures name extra
// device extensions.
func (g *GPU) RequestDevice(desc myr.DeviceDescriptor) (myr.Device, myr.Queue, error) {
	if g.graphicsFamily < 0 || g.presentFamily < 0 {
		return nil, nil, errors.New("gpu was not selected for a surface")
	}
	d, err := NewDevice(g, g.graphicsFamily, g.presentFamily, desc.RequiredFeatures)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "request device %q", desc.Label)
	}
	return d, d.Queue(), nil
}

func (g *GPU) Handle() vk.PhysicalDevice {
	return g.physicalDevice
}
