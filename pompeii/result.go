package pompeii

import (
	"github.com/pkg/errors"
	vk "github.com/vulkan-go/vulkan"

	"github.com/perlw/vksurface/myr"
)

// classifyResult maps a failed Vulkan result onto the myr frame errors.
// vk.Suboptimal counts as outdated; callers that can still use the image
// must check for it first.
func classifyResult(result vk.Result, op string) error {
	switch result {
	case vk.Success:
		return nil
	case vk.ErrorOutOfDate, vk.Suboptimal:
		return errors.Wrap(myr.ErrSurfaceOutdated, op)
	case vk.ErrorSurfaceLost:
		return errors.Wrap(myr.ErrSurfaceLost, op)
	case vk.ErrorOutOfHostMemory, vk.ErrorOutOfDeviceMemory:
		return errors.Wrap(myr.ErrOutOfMemory, op)
	case vk.Timeout, vk.NotReady:
		return errors.Wrap(myr.ErrTimeout, op)
	default:
		return errors.Wrap(vk.Error(result), op)
	}
}
