package compare

import "errors"

// ErrValidation reports missing or unparsable comparison input.
var ErrValidation = errors.New("both hero IDs are required and must be valid")
