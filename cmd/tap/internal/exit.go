package internal

import (
	"errors"

	"github.com/tapbuild/tap/internal/backend"
	"github.com/tapbuild/tap/internal/execrun"
	"github.com/tapbuild/tap/internal/installer"
	"github.com/tapbuild/tap/internal/mode"
	"github.com/tapbuild/tap/internal/project"
)

// ExitValidation is the reserved exit code for failures raised before
// any child process is spawned: unsupported project, unknown backend
// override, invalid mode, missing run target, unwritable prefix.
const ExitValidation = 2

// validationErrs are the pre-spawn failure classes.
var validationErrs = []error{
	project.ErrUnsupported,
	project.ErrUnknownBackend,
	mode.ErrInvalid,
	backend.ErrExecutableNotFound,
	installer.ErrPermissionDenied,
}

// exitCode maps an error to the tool's own exit code. A child's
// non-zero exit passes through unchanged.
func exitCode(err error) int {
	var exitErr *execrun.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	for _, v := range validationErrs {
		if errors.Is(err, v) {
			return ExitValidation
		}
	}
	return 1
}
