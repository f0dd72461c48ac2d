package implementations

import (
	"github.com/annel0/nitworld/internal/world/block"
)

// TreeBehavior – дерево: непроходимо, держит соседей, при рубке даёт бревно.
type TreeBehavior struct{}

func (b *TreeBehavior) ID() block.BlockID    { return block.TreeBlockID }
func (b *TreeBehavior) Name() string         { return "Tree" }
func (b *TreeBehavior) Passable() bool       { return false }
func (b *TreeBehavior) Solid() bool          { return true }
func (b *TreeBehavior) Debris() block.Debris { return block.DebrisLog }
