package effects

import "errors"

// ErrInvalidStageParameter is returned by stage constructors for
// out-of-range parameters.
var ErrInvalidStageParameter = errors.New("effects: invalid stage parameter")
