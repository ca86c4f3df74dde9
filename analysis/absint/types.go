package absint

import "go/types"

// goType is a short-hand for the destination-lvalue type hint threaded
// through the Dispatcher's size-inference calls.
type goType = types.Type
