package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// uriScheme is the custom URI scheme for meow resources.
const uriScheme = "meow://"

// statusInfo is the JSON form of the status resource.
type statusInfo struct {
	Records             int            `json:"records"`
	Models              map[string]int `json:"models,omitempty"`
	StorePath           string         `json:"store_path,omitempty"`
	EmbeddingModel      string         `json:"embedding_model,omitempty"`
	LLMModel            string         `json:"llm_model,omitempty"`
	CurrentModelRecords int            `json:"current_model_records"`
	LastRun             *runInfo       `json:"last_run,omitempty"`
}

type runInfo struct {
	ID         string    `json:"id"`
	FinishedAt time.Time `json:"finished_at"`
	Indexed    int       `json:"indexed"`
	Skipped    int       `json:"skipped"`
	Roots      []string  `json:"roots"`
}

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "status",
		Name:        "status",
		Description: "Index size, embedding models and the last indexing run",
		MIMEType:    "application/json",
	}, s.handleStatusResource)
}

// handleStatusResource returns the index status as JSON.
func (s *Server) handleStatusResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Status == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	st, err := s.ports.Status.Status(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading status: %w", err)
	}

	info := statusInfo{
		Records:             st.Store.Records,
		Models:              st.Store.Models,
		StorePath:           st.Store.Path,
		EmbeddingModel:      st.EmbeddingModel,
		LLMModel:            st.LLMModel,
		CurrentModelRecords: st.CurrentModelRecords,
	}
	if st.LastRun != nil {
		info.LastRun = &runInfo{
			ID:         st.LastRun.ID,
			FinishedAt: st.LastRun.FinishedAt,
			Indexed:    st.LastRun.Indexed,
			Skipped:    st.LastRun.Skipped,
			Roots:      st.LastRun.Roots,
		}
	}

	data, err := json.MarshalIndent(info, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling status: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
