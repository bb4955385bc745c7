// Package mcp exposes a loaded source documentation corpus over the Model
// Context Protocol, so editor agents can look up and search API docs.
package mcp

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/portdocs/portdocs/internal/docid"
	"github.com/portdocs/portdocs/internal/markup"
	"github.com/portdocs/portdocs/internal/triple"
)

//go:embed instructions.md
var instructions string

const defaultSearchLimit = 20

type Server struct {
	mcpServer *server.MCPServer
	corpus    *triple.Corpus
}

func NewServer(corpus *triple.Corpus) *Server {
	s := &Server{corpus: corpus}

	mcpServer := server.NewMCPServer(
		"portdocs",
		"0.1.0",
		server.WithInstructions(instructions),
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, false),
	)

	s.registerTools(mcpServer)
	s.registerResources(mcpServer)

	s.mcpServer = mcpServer
	return s
}

func (s *Server) registerTools(mcpServer *server.MCPServer) {
	mcpServer.AddTool(
		mcp.NewTool("lookup_api",
			mcp.WithDescription("Look up the documentation fragment for one API by its DocId identifier (e.g. \"M:System.String.Concat(System.String,System.String)\"). Returns the raw fragment as JSON."),
			mcp.WithString("docid",
				mcp.Description("DocId identifier, including the kind prefix (T:, M:, P:, F:, E:)"),
				mcp.Required(),
			),
		),
		s.handleLookupAPI,
	)

	mcpServer.AddTool(
		mcp.NewTool("search_apis",
			mcp.WithDescription("Search loaded API documentation by identifier substring. Results return csdoc:// URIs that can be read as resources."),
			mcp.WithString("query",
				mcp.Description("Case-insensitive substring of the identifier (type or member name)"),
				mcp.Required(),
			),
			mcp.WithString("kind",
				mcp.Description("Optional kind filter: Type, Method, Constructor, Property, Field, or Event"),
			),
			mcp.WithNumber("limit",
				mcp.Description("Maximum number of results (default 20)"),
			),
		),
		s.handleSearchAPIs,
	)
}

func (s *Server) registerResources(mcpServer *server.MCPServer) {
	mcpServer.AddResourceTemplate(
		mcp.NewResourceTemplate(
			"csdoc://{docid}",
			"API documentation fragment",
			mcp.WithTemplateDescription("Read one API documentation fragment rendered as markdown. Search results return these URIs."),
			mcp.WithTemplateMIMEType("text/markdown"),
		),
		s.handleReadResource,
	)
}

func (s *Server) handleLookupAPI(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	id, _ := args["docid"].(string)
	if id == "" {
		return mcp.NewToolResultError("missing required parameter: docid"), nil
	}

	m, ok := s.corpus.Lookup(id)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("no documentation for %s", id)), nil
	}

	resultJSON, _ := json.MarshalIndent(m, "", "  ")
	return mcp.NewToolResultText(string(resultJSON)), nil
}

type searchHit struct {
	URI     string `json:"uri"`
	DocID   string `json:"docid"`
	Kind    string `json:"kind"`
	Summary string `json:"summary,omitempty"`
}

func (s *Server) handleSearchAPIs(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	query, _ := args["query"].(string)
	if query == "" {
		return mcp.NewToolResultError("missing required parameter: query"), nil
	}
	kind, _ := args["kind"].(string)
	limit := defaultSearchLimit
	if l, ok := args["limit"].(float64); ok && int(l) > 0 {
		limit = int(l)
	}

	query = strings.ToLower(query)
	var hits []searchHit
	for _, m := range s.corpus.All() {
		k := docid.KindOf(m.ID).String()
		if kind != "" && !strings.EqualFold(kind, k) {
			continue
		}
		if !strings.Contains(strings.ToLower(docid.StripPrefix(m.ID)), query) {
			continue
		}
		hits = append(hits, searchHit{
			URI:     "csdoc://" + m.ID,
			DocID:   m.ID,
			Kind:    k,
			Summary: strings.TrimSpace(m.Summary),
		})
	}
	sort.Slice(hits, func(i, j int) bool { return hits[i].DocID < hits[j].DocID })
	if len(hits) > limit {
		hits = hits[:limit]
	}

	resultJSON, _ := json.MarshalIndent(hits, "", "  ")
	return mcp.NewToolResultText(string(resultJSON)), nil
}

func (s *Server) handleReadResource(_ context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	uri := req.Params.URI
	id := strings.TrimPrefix(uri, "csdoc://")
	if id == uri || id == "" {
		return nil, fmt.Errorf("invalid resource URI: %s", uri)
	}

	m, ok := s.corpus.Lookup(id)
	if !ok {
		return nil, fmt.Errorf("no documentation for %s", id)
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "text/markdown",
			Text:     RenderMarkdown(m),
		},
	}, nil
}

// RenderMarkdown renders one fragment as a markdown document.
func RenderMarkdown(m *triple.Member) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n", m.ID)
	if m.Assembly != "" {
		fmt.Fprintf(&b, "\nAssembly: %s\n", m.Assembly)
	}
	section := func(title, text string) {
		if markup.IsEmpty(text) {
			return
		}
		fmt.Fprintf(&b, "\n## %s\n\n%s\n", title, markup.ToMarkdown(strings.TrimSpace(text)))
	}
	section("Summary", m.Summary)
	namedSection := func(title string, params []triple.Param) {
		wrote := false
		for _, p := range params {
			if markup.IsEmpty(p.Text) {
				continue
			}
			if !wrote {
				fmt.Fprintf(&b, "\n## %s\n\n", title)
				wrote = true
			}
			fmt.Fprintf(&b, "- `%s`: %s\n", p.Name, markup.ToMarkdown(strings.TrimSpace(p.Text)))
		}
	}
	namedSection("Type Parameters", m.TypeParams)
	namedSection("Parameters", m.Params)
	section("Returns", m.Returns)
	section("Value", m.Value)
	section("Remarks", m.Remarks)
	if len(m.Exceptions) > 0 {
		b.WriteString("\n## Exceptions\n\n")
		for _, ex := range m.Exceptions {
			fmt.Fprintf(&b, "- `%s`: %s\n", ex.Cref, markup.ToMarkdown(strings.TrimSpace(ex.Text)))
		}
	}
	if m.Inherit != nil {
		if m.Inherit.Cref != "" {
			fmt.Fprintf(&b, "\nInherits documentation from `%s`.\n", m.Inherit.Cref)
		} else {
			b.WriteString("\nInherits documentation from its base.\n")
		}
	}
	return b.String()
}

func (s *Server) Run() error {
	return server.ServeStdio(s.mcpServer)
}
