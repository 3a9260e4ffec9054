package hierarchy

import (
	"github.com/rechesh-io/rechesh/internal/hierarchy"
)

type hierarchyResponse struct {
	ID       int64  `json:"id"`
	ParentID *int64 `json:"parent_id"`
	Type     string `json:"type"`
	Name     string `json:"name"`
}

func toResponse(h *hierarchy.Hierarchy) hierarchyResponse {
	return hierarchyResponse{
		ID:       h.ID,
		ParentID: h.ParentID,
		Type:     string(h.Type),
		Name:     h.Name,
	}
}

func toResponseList(hs []*hierarchy.Hierarchy) []hierarchyResponse {
	out := make([]hierarchyResponse, 0, len(hs))
	for _, h := range hs {
		out = append(out, toResponse(h))
	}

	return out
}

type nodeResponse struct {
	hierarchyResponse
	Children []nodeResponse `json:"children"`
}

func toNode(n *hierarchy.Node) nodeResponse {
	children := make([]nodeResponse, 0, len(n.Children))
	for _, c := range n.Children {
		children = append(children, toNode(c))
	}

	return nodeResponse{
		hierarchyResponse: toResponse(&n.Hierarchy),
		Children:          children,
	}
}

func toNodeList(nodes []*hierarchy.Node) []nodeResponse {
	out := make([]nodeResponse, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, toNode(n))
	}

	return out
}
