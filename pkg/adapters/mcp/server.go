package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/turing"
	"github.com/aretw0/turing/internal/presentation/graph"
	"github.com/aretw0/turing/internal/presentation/statetable"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/encoding"
	"github.com/aretw0/turing/pkg/format"
	"github.com/aretw0/turing/pkg/ports"
	"github.com/aretw0/turing/pkg/runner"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"golang.org/x/sync/errgroup"
)

// MachineURI names the resource holding the loaded machine.
const MachineURI = "turing://machine"

// TableURI names the resource holding the loaded machine's state table.
const TableURI = "turing://machine/table"

// ValidateResult is the structured output of the validate tool.
type ValidateResult struct {
	Valid       bool     `json:"valid" jsonschema_description:"True when no problem was found"`
	Missing     []string `json:"missing,omitempty" jsonschema_description:"Undefined (state, symbol) cells"`
	Unreachable []string `json:"unreachable,omitempty" jsonschema_description:"States the start state never reaches"`
	Errors      []string `json:"errors,omitempty"`
}

// Server exposes a turing machine as MCP tools and resources.
type Server struct {
	engine    *turing.Engine
	store     ports.RunStore
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// NewServer creates an MCP server. engine is the machine tools use when the
// caller does not send one; store may be nil.
func NewServer(engine *turing.Engine, store ports.RunStore, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		engine:    engine,
		store:     store,
		logger:    logger,
		mcpServer: server.NewMCPServer("turing-mcp", strings.TrimSpace(turing.Version)),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio serves on stdin and stdout until the client disconnects.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE serves over SSE on addr until ctx is done.
func (s *Server) ServeSSE(ctx context.Context, addr, baseURL string) error {
	sse := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", sse.SSEHandler())
	mux.Handle("/message", sse.MessageHandler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 10 * time.Second}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("mcp server listening (sse)", "address", addr)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool("simulate",
		mcp.WithDescription("Run a turing machine on an input tape until it halts or hits the step limit."),
		mcp.WithString("machine", mcp.Description("Machine source in text or YAML format (optional, defaults to the loaded machine)")),
		mcp.WithString("input", mcp.Description("Whitespace separated input symbols (optional)")),
		mcp.WithNumber("step_limit", mcp.Description("Maximum number of moving transitions (optional)")),
		mcp.WithBoolean("save", mcp.Description("Store the run record (optional)")),
		mcp.WithOutputSchema[domain.RunRecord](),
	), mcp.NewStructuredToolHandler(s.handleSimulate))

	s.mcpServer.AddTool(mcp.NewTool("validate",
		mcp.WithDescription("Check a machine for undefined cells and unreachable states."),
		mcp.WithString("machine", mcp.Description("Machine source (optional)")),
		mcp.WithBoolean("strict", mcp.Description("Treat undefined cells as errors")),
		mcp.WithOutputSchema[ValidateResult](),
	), mcp.NewStructuredToolHandler(s.handleValidate))

	s.mcpServer.AddTool(mcp.NewTool("encode",
		mcp.WithDescription("Encode a complete machine as a binary word."),
		mcp.WithString("machine", mcp.Description("Machine source (optional)")),
	), s.handleEncode)

	s.mcpServer.AddTool(mcp.NewTool("decode",
		mcp.WithDescription("Decode a binary word back into a machine in text format."),
		mcp.WithString("word", mcp.Required(), mcp.Description("The encoded word, space separated or concatenated when symbols are single characters")),
		mcp.WithString("alphabet", mcp.Required(), mcp.Description("Whitespace separated alphabet, blank first")),
	), s.handleDecode)

	s.mcpServer.AddTool(mcp.NewTool("get_table",
		mcp.WithDescription("Render the state table of a machine as Markdown."),
		mcp.WithString("machine", mcp.Description("Machine source (optional)")),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		eng, err := s.machine(request.GetString("machine", ""))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(statetable.Markdown(eng.Machine())), nil
	})

	s.mcpServer.AddTool(mcp.NewTool("get_graph",
		mcp.WithDescription("Render the state diagram of a machine as Mermaid."),
		mcp.WithString("machine", mcp.Description("Machine source (optional)")),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		eng, err := s.machine(request.GetString("machine", ""))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(graph.GenerateMermaid(eng.Machine(), nil)), nil
	})

	if s.store != nil {
		s.mcpServer.AddTool(mcp.NewTool("get_run",
			mcp.WithDescription("Fetch a stored run record."),
			mcp.WithString("id", mcp.Required(), mcp.Description("Run ID")),
		), s.handleGetRun)
	}
}

// machine compiles src, or returns the loaded machine when src is empty.
func (s *Server) machine(src string, opts ...turing.Option) (*turing.Engine, error) {
	if strings.TrimSpace(src) == "" {
		if s.engine == nil {
			return nil, errors.New("no machine given and no machine loaded")
		}
		return s.engine.With(opts...), nil
	}
	return turing.Parse(src, append(opts, turing.WithLogger(s.logger))...)
}

func (s *Server) handleSimulate(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (domain.RunRecord, error) {
	var opts []turing.Option
	if limit := request.GetInt("step_limit", 0); limit > 0 {
		opts = append(opts, turing.WithStepLimit(limit))
	}
	eng, err := s.machine(request.GetString("machine", ""), opts...)
	if err != nil {
		return domain.RunRecord{}, fmt.Errorf("compile failed: %w", err)
	}

	input, err := runner.SanitizeInput(request.GetString("input", ""), eng.Machine().Symbols.Names())
	if err != nil {
		s.logger.Warn("mcp simulate: input rejected", "error", err)
		return domain.RunRecord{}, fmt.Errorf("input rejected: %w", err)
	}

	res, err := eng.Run(ctx, input)
	if err != nil {
		return domain.RunRecord{}, fmt.Errorf("run interrupted: %w", err)
	}
	rec := eng.Record(input, res)

	if request.GetBool("save", false) {
		if s.store == nil {
			return rec, errors.New("no run store configured")
		}
		if err := s.store.Save(ctx, rec); err != nil {
			return rec, fmt.Errorf("save failed: %w", err)
		}
	}
	return rec, nil
}

func (s *Server) handleValidate(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (ValidateResult, error) {
	eng, err := s.machine(request.GetString("machine", ""))
	if err != nil {
		return ValidateResult{}, fmt.Errorf("compile failed: %w", err)
	}
	rep, err := eng.Validate(request.GetBool("strict", false))
	out := ValidateResult{Valid: err == nil, Unreachable: rep.Unreachable}
	for _, c := range rep.Missing {
		out.Missing = append(out.Missing, fmt.Sprintf("(%s, %s)", c.State, c.Symbol))
	}
	for _, e := range domain.Errors(err) {
		out.Errors = append(out.Errors, e.Error())
	}
	return out, nil
}

func (s *Server) handleEncode(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	eng, err := s.machine(request.GetString("machine", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	word, err := eng.Encode()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(strings.Join(word, " ")), nil
}

func (s *Server) handleDecode(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw, err := request.RequireString("word")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	alphabet, err := request.RequireString("alphabet")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	def, err := encoding.Decode(splitWord(raw), strings.Fields(alphabet))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	var buf bytes.Buffer
	if err := format.WriteText(&buf, def); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(buf.String()), nil
}

func (s *Server) handleGetRun(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := request.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	rec, err := s.store.Load(ctx, id)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	jsonBytes, _ := json.Marshal(rec)
	return mcp.NewToolResultText(string(jsonBytes)), nil
}

// splitWord accepts both "0 1 1" and "011".
func splitWord(raw string) []string {
	if fields := strings.Fields(raw); len(fields) > 1 {
		return fields
	}
	out := make([]string, 0, len(raw))
	for _, r := range strings.TrimSpace(raw) {
		out = append(out, string(r))
	}
	return out
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource(MachineURI, "Loaded machine definition",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		if s.engine == nil {
			return nil, errors.New("no machine loaded")
		}
		jsonBytes, _ := json.Marshal(s.engine.Definition())
		return []mcp.ResourceContents{
			mcp.TextResourceContents{URI: MachineURI, MIMEType: "application/json", Text: string(jsonBytes)},
		}, nil
	})

	s.mcpServer.AddResource(mcp.NewResource(TableURI, "Loaded machine state table",
		mcp.WithMIMEType("text/markdown"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		if s.engine == nil {
			return nil, errors.New("no machine loaded")
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{URI: TableURI, MIMEType: "text/markdown", Text: statetable.Markdown(s.engine.Machine())},
		}, nil
	})
}
