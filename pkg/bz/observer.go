package bz

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/bwcolor/pkg/color"
	"github.com/matzehuels/bwcolor/pkg/distribution"
	"github.com/matzehuels/bwcolor/pkg/tree"
)

// Observer receives progress events from [Solve].
type Observer interface {
	// OnSeparator is called when sep is chosen as the separator of the
	// subtree rooted at root, whose current size is size.
	OnSeparator(root, sep tree.NodeID, size int)

	// OnReduce is called after node has been collapsed into a single node.
	OnReduce(node tree.NodeID)

	// OnMerge is called after the branches of view have been united.
	OnMerge(view tree.ChildRange, merged *distribution.MinGrayMap)
}

// NopObserver ignores all events.
type NopObserver struct{}

func (NopObserver) OnSeparator(tree.NodeID, tree.NodeID, int)         {}
func (NopObserver) OnReduce(tree.NodeID)                              {}
func (NopObserver) OnMerge(tree.ChildRange, *distribution.MinGrayMap) {}

// LogObserver writes events to a logger at debug level. Merge events
// include the merged min-gray buckets.
type LogObserver struct {
	Logger *log.Logger
	Tree   *tree.Tree
}

func (o LogObserver) label(id tree.NodeID) string {
	if o.Tree == nil {
		return fmt.Sprint(int(id))
	}
	return o.Tree.Label(id)
}

func (o LogObserver) OnSeparator(root, sep tree.NodeID, size int) {
	o.Logger.Debug("separator", "root", o.label(root), "sep", o.label(sep), "size", size)
}

func (o LogObserver) OnReduce(node tree.NodeID) {
	o.Logger.Debug("reduce", "node", o.label(node))
}

func (o LogObserver) OnMerge(view tree.ChildRange, merged *distribution.MinGrayMap) {
	o.Logger.Debug("merge",
		"node", o.label(view.Node),
		"children", fmt.Sprintf("%d..%d", view.Lo, view.Hi),
		"size", merged.Size(),
		"buckets", formatBuckets(merged),
	)
}

// formatBuckets renders "black{0:[3] 1:[1 2]} white{...} gray{...}",
// skipping empty buckets.
func formatBuckets(m *distribution.MinGrayMap) string {
	var sb strings.Builder
	for i, c := range color.Colors {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(c.String())
		sb.WriteByte('{')
		first := true
		for g := 0; g <= m.GrayBound(); g++ {
			blacks := m.Get(c, g)
			if len(blacks) == 0 {
				continue
			}
			if !first {
				sb.WriteByte(' ')
			}
			first = false
			fmt.Fprintf(&sb, "%d:%v", g, blacks)
		}
		sb.WriteByte('}')
	}
	return sb.String()
}
