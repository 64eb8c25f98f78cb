package blocktree

import (
	"encoding/json"

	"github.com/iudanet/homeblocks/internal/models"
	"github.com/iudanet/homeblocks/pkg/api"
)

// FromNode converts a raw remote node into a Block without children.
// Children are attached by the reader.
func FromNode(node api.Node) models.Block {
	block := models.Block{
		Type:     node.Type,
		RemoteID: node.ID,
	}
	if len(node.Content) > 0 {
		block.Content = make(json.RawMessage, len(node.Content))
		copy(block.Content, node.Content)
	}
	return block
}

// ToOutgoing converts a Block into its wire shape, inlining children into the
// type-specific payload. RemoteID is not sent: the store assigns new ids.
// Callers are expected to check the inline budget first.
func ToOutgoing(block models.Block) api.OutgoingNode {
	node := api.OutgoingNode{
		Type:    block.Type,
		Content: block.Content,
	}
	if len(block.Children) > 0 {
		node.Children = toOutgoingList(block.Children)
	}
	return node
}

func toOutgoingList(blocks []models.Block) []api.OutgoingNode {
	nodes := make([]api.OutgoingNode, len(blocks))
	for i, b := range blocks {
		nodes[i] = ToOutgoing(b)
	}
	return nodes
}

// UpdateRequest builds the single-node update payload for block.
func UpdateRequest(block models.Block) api.UpdateNodeRequest {
	return api.UpdateNodeRequest{
		Type:    block.Type,
		Content: block.Content,
	}
}

// withoutChildren returns a shallow copy of block with the children field removed.
func withoutChildren(block models.Block) models.Block {
	block.Children = nil
	return block
}

func countOutgoing(nodes []api.OutgoingNode) int {
	total := 0
	for _, n := range nodes {
		total += 1 + countOutgoing(n.Children)
	}
	return total
}
