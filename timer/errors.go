package timer

import "github.com/ayoisaiah/tl/internal/apperr"

var (
	errNameRequired = &apperr.Error{
		Message: "a non-empty activity name is required",
	}

	errCategoryRequired = &apperr.Error{
		Message: "a non-empty category is required",
	}

	errAlreadyRunning = &apperr.Error{
		Message: "timer #%d (%s) is already running",
	}

	errInvalidState = &apperr.Error{
		Message: "cannot %s timer #%d: timer is %s",
	}

	errBreakAlreadyOpen = &apperr.Error{
		Message: "a break is already open",
	}

	errNoOpenBreak = &apperr.Error{
		Message: "no open break to close",
	}

	errTimestampBeforeBreak = &apperr.Error{
		Message: "timestamp %s is earlier than the open break start %s",
	}

	errBreaksEmpty = &apperr.Error{
		Message: "break history blob is empty",
	}

	errBreaksVersion = &apperr.Error{
		Message: "unsupported break history version: %d",
	}

	errBreaksCorrupt = &apperr.Error{
		Message: "break history blob is corrupt",
	}
)
