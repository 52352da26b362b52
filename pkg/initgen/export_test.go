package initgen

// PackedRHS is an exported alias of [packedRHS] for testing.
var PackedRHS = packedRHS

// WrapText is an exported alias of [wrapText] for testing.
var WrapText = wrapText

// WrapWidth exposes the wrap column for testing.
const WrapWidth = wrapWidth
