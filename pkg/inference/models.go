package inference

import (
	"context"
	"net/http"

	"mercator-hq/switchyard/pkg/proxy/types"
)

// ModelList is the OpenAI model listing format.
type ModelList struct {
	Object string  `json:"object"`
	Data   []Model `json:"data"`
}

// Model is one entry of a ModelList.
type Model struct {
	ID      string `json:"id"`
	Object  string `json:"object"`
	OwnedBy string `json:"owned_by"`
}

// StaticModels wraps a Runtime and answers the model listing from a fixed list.
type StaticModels struct {
	Runtime
	list ModelList
}

// NewStaticModels returns rt with Models served from ids.
func NewStaticModels(rt Runtime, ids []string) *StaticModels {
	list := ModelList{Object: "list", Data: make([]Model, 0, len(ids))}
	for _, id := range ids {
		list.Data = append(list.Data, Model{ID: id, Object: "model", OwnedBy: "local"})
	}
	return &StaticModels{Runtime: rt, list: list}
}

// Models implements Runtime.
func (s *StaticModels) Models(_ context.Context) (*types.GatewayResponse, error) {
	return types.NewJSONResponse(http.StatusOK, s.list)
}
