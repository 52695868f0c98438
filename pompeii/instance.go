package pompeii

import (
	"unsafe"

	"github.com/pkg/errors"
	vk "github.com/vulkan-go/vulkan"

	"github.com/perlw/vksurface/logger"
	"github.com/perlw/vksurface/myr"
)

const debugReportExtension = "VK_EXT_debug_report"

type Instance struct {
	log logger.Logger

	instance vk.Instance
	dbg      vk.DebugReportCallback
}

// NewInstance creates a Vulkan instance. Every name in required must be
// available; layers and optional extensions are enabled when present.
func NewInstance(log logger.Logger, appName, engineName string, layers, required, optional []string) (*Instance, error) {
	i := Instance{
		log: log,
		dbg: vk.NullDebugReportCallback,
	}

	activeLayers := []string{}
	if len(layers) > 0 {
		available, err := getAvailableInstanceLayers()
		if err != nil {
			return nil, errors.Wrap(err, "could not get layers")
		}
		for _, name := range layers {
			if inStringSlice(available, name) {
				activeLayers = append(activeLayers, vkString(name))
			} else {
				i.log.Warn("missing layer %s", name)
			}
		}
	}

	available, err := getAvailableInstanceExtensions()
	if err != nil {
		return nil, errors.Wrap(err, "could not get instance extensions")
	}
	debug := false
	activeExtensions := make([]string, 0, len(required)+len(optional))
	for _, name := range required {
		if !inStringSlice(available, name) {
			return nil, errors.Errorf("required instance extension %s is not available", name)
		}
		activeExtensions = append(activeExtensions, vkString(name))
	}
	for _, name := range optional {
		if inStringSlice(available, name) {
			if name == debugReportExtension {
				debug = true
			}
			activeExtensions = append(activeExtensions, vkString(name))
		} else {
			i.log.Warn("missing extension %s", name)
		}
	}

	instanceInfo := vk.InstanceCreateInfo{
		SType: vk.StructureTypeInstanceCreateInfo,
		PApplicationInfo: &vk.ApplicationInfo{
			SType:              vk.StructureTypeApplicationInfo,
			PApplicationName:   vkString(appName),
			ApplicationVersion: vk.MakeVersion(1, 0, 0),
			PEngineName:        vkString(engineName),
			EngineVersion:      vk.MakeVersion(0, 0, 1),
			ApiVersion:         vk.ApiVersion11,
		},
		EnabledLayerCount:       uint32(len(activeLayers)),
		PpEnabledLayerNames:     activeLayers,
		EnabledExtensionCount:   uint32(len(activeExtensions)),
		PpEnabledExtensionNames: activeExtensions,
	}

	if result := vk.CreateInstance(&instanceInfo, nil, &i.instance); result != vk.Success {
		return nil, errors.Wrap(vk.Error(result), "could not create instance")
	}

	if err := vk.InitInstance(i.instance); err != nil {
		vk.DestroyInstance(i.instance, nil)
		return nil, errors.Wrap(err, "could not load instance functions")
	}

	i.log.Trace("instance created; layers: %v exts: %v", activeLayers, activeExtensions)

	if debug {
		debugCreateInfo := vk.DebugReportCallbackCreateInfo{
			SType:       vk.StructureTypeDebugReportCallbackCreateInfo,
			Flags:       vk.DebugReportFlags(vk.DebugReportErrorBit | vk.DebugReportWarningBit),
			PfnCallback: i.debugReport,
		}
		if result := vk.CreateDebugReportCallback(i.instance, &debugCreateInfo, nil, &i.dbg); result != vk.Success {
			i.Destroy()
			return nil, errors.Wrap(vk.Error(result), "creating debug report")
		}
	}

	return &i, nil
}

func (i *Instance) Destroy() {
	if i.dbg != vk.NullDebugReportCallback {
		vk.DestroyDebugReportCallback(i.instance, i.dbg, nil)
		i.dbg = vk.NullDebugReportCallback
	}

	vk.DestroyInstance(i.instance, nil)
}

func (i *Instance) debugReport(flags vk.DebugReportFlags, objectType vk.DebugReportObjectType,
	object uint64, location uint, messageCode int32, pLayerPrefix string,
	pMessage string, pUserData unsafe.Pointer) vk.Bool32 {
	switch {
	case flags&vk.DebugReportFlags(vk.DebugReportErrorBit) != 0:
		i.log.Err(nil, "[VK %d] %s on layer %s", messageCode, pMessage, pLayerPrefix)
	case flags&vk.DebugReportFlags(vk.DebugReportWarningBit) != 0:
		i.log.Warn("[VK %d] %s on layer %s", messageCode, pMessage, pLayerPrefix)
	default:
		i.log.Trace("[VK %d] %s on layer %s", messageCode, pMessage, pLayerPrefix)
	}
	return vk.Bool32(vk.False)
}

func (i *Instance) EnumerateGPUs() ([]GPU, error) {
	var gpuCount uint32
	if result := vk.EnumeratePhysicalDevices(i.instance, &gpuCount, nil); result != vk.Success {
		return nil, errors.Wrap(vk.Error(result), "could not count gpus")
	}
	if gpuCount == 0 {
		return nil, errors.New("no valid gpus")
	}
	vkGPUs := make([]vk.PhysicalDevice, gpuCount)
	if result := vk.EnumeratePhysicalDevices(i.instance, &gpuCount, vkGPUs); result != vk.Success {
		return nil, errors.Wrap(vk.Error(result), "could not enumerate gpus")
	}

	gpus := make([]GPU, gpuCount)
	for t, gpu := range vkGPUs {
		gpus[t] = newGPU(gpu)
	}

	return gpus, nil
}

// RequestAdapter picks the GPU that can present to compatible, preferring a
// discrete one.
func (i *Instance) RequestAdapter(compatible myr.Surface) (myr.Adapter, error) {
	surface, ok := compatible.(Surface)
	if !ok {
		return nil, errors.Errorf("surface %T is not a vulkan surface", compatible)
	}

	gpus, err := i.EnumerateGPUs()
	if err != nil {
		return nil, err
	}

	var picked *GPU
	for t := range gpus {
		gpu := &gpus[t]
		i.log.Trace("# GPU %d\n%s", t, gpu.Debug())
		if err := gpu.selectQueueFamilies(surface); err != nil {
			i.log.Trace("GPU %s skipped: %v", gpu.Name(), err)
			continue
		}
		if picked == nil || (picked.Type != GPUTypeDiscrete && gpu.Type == GPUTypeDiscrete) {
			picked = gpu
		}
	}
	if picked == nil {
		return nil, errors.New("no gpu can present to the window surface")
	}
	return picked, nil
}

func (i *Instance) Handle() vk.Instance {
	return i.instance
}
