package netlist

import "errors"

// ErrInvalidNetlist is returned for network descriptions that cannot be parsed.
var ErrInvalidNetlist = errors.New("invalid netlist")
