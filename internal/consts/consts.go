package consts

const (
	GroundIndex = -1 // Sentinel index for the reference node, never part of the matrix

	DefaultFrequency = 50.0 // Hz, reported for AC studies when none is given
)

// GroundAliases are node names treated as the reference node by the text parser.
var GroundAliases = []string{"0", "gnd", "GND"}

func IsGroundAlias(name string) bool {
	for _, alias := range GroundAliases {
		if name == alias {
			return true
		}
	}
	return false
}
