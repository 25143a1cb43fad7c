package world

import "sync/atomic"

// ObjectIDGenerator hands out unique object IDs for world entities.
//
// ID ranges (convention):
//   0x00000000 - 0x0FFFFFFF: reserved (0 = invalid)
//   0x10000000 - 0x1FFFFFFF: player agents
//   0x20000000 - 0x2FFFFFFF: bestiary agents
type ObjectIDGenerator struct {
	nextPlayerID atomic.Uint32
	nextAgentID  atomic.Uint32
}

// NewObjectIDGenerator creates a generator with counters at the range bases.
func NewObjectIDGenerator() *ObjectIDGenerator {
	gen := &ObjectIDGenerator{}
	gen.nextPlayerID.Store(0x10000000)
	gen.nextAgentID.Store(0x20000000)
	return gen
}

// NextPlayerID returns the next unique player object ID.
func (g *ObjectIDGenerator) NextPlayerID() uint32 {
	return g.nextPlayerID.Add(1)
}

// NextAgentID returns the next unique bestiary-agent object ID.
func (g *ObjectIDGenerator) NextAgentID() uint32 {
	return g.nextAgentID.Add(1)
}
