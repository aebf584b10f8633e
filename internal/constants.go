package internal

// Shared limits for the parser, composer and pointer engine

const (
	MaxNestingDepth  = 200              // Maximum nesting of objects/arrays while parsing or composing
	MaxInputSize     = 64 * 1024 * 1024 // Maximum parser input length in bytes
	MaxDoubleLiteral = 14               // Longer decimal literals are kept as arbitrary decimals
)
