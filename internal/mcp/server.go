package mcp

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/docsift/pdf-outliner/internal/batch"
	"github.com/docsift/pdf-outliner/internal/config"
	"github.com/docsift/pdf-outliner/internal/descriptions"
	"github.com/docsift/pdf-outliner/internal/pdf"
)

// Server exposes outline extraction as MCP tools over standard I/O
type Server struct {
	config    *config.Config
	runner    *batch.Runner
	search    *pdf.Search
	log       *slog.Logger
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP server instance
func NewServer(cfg *config.Config, runner *batch.Runner, log *slog.Logger) (*Server, error) {
	if runner == nil {
		return nil, fmt.Errorf("runner cannot be nil")
	}

	mcpServer := server.NewMCPServer(
		cfg.ServerName,
		cfg.Version,
		server.WithToolCapabilities(false),
	)

	s := &Server{
		config:    cfg,
		runner:    runner,
		search:    pdf.NewSearch(cfg.MaxFileSize),
		log:       log,
		mcpServer: mcpServer,
	}

	s.registerTools()

	return s, nil
}

// registerTools registers all available MCP tools
func (s *Server) registerTools() {
	extractOutlineTool := mcp.NewTool(
		"pdf_extract_outline",
		mcp.WithDescription(descriptions.GetToolDescription("pdf_extract_outline")),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Full path to the PDF file"),
		),
	)
	s.mcpServer.AddTool(extractOutlineTool, s.handleExtractOutline)

	validateFileTool := mcp.NewTool(
		"pdf_validate_file",
		mcp.WithDescription(descriptions.GetToolDescription("pdf_validate_file")),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Full path to the PDF file"),
		),
	)
	s.mcpServer.AddTool(validateFileTool, s.handleValidateFile)

	searchDirectoryTool := mcp.NewTool(
		"pdf_search_directory",
		mcp.WithDescription(descriptions.GetToolDescription("pdf_search_directory")),
		mcp.WithString("directory",
			mcp.Description("Directory path to search (uses the configured input directory if empty)"),
		),
		mcp.WithString("query",
			mcp.Description("Optional search query for fuzzy matching"),
		),
	)
	s.mcpServer.AddTool(searchDirectoryTool, s.handleSearchDirectory)
}

// Handler functions

func (s *Server) handleExtractOutline(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	docCtx, cancel := context.WithTimeout(ctx, s.config.Timeout)
	defer cancel()

	record, err := s.runner.ProcessFile(docCtx, path)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	encoded, err := batch.EncodeRecord(record)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(encoded), nil
}

func (s *Server) handleValidateFile(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	doc, err := pdf.Open(path, s.config.MaxFileSize)
	if err != nil {
		return mcp.NewToolResultText(fmt.Sprintf("PDF validation failed for %s: %v", path, err)), nil
	}
	defer doc.Close()

	return mcp.NewToolResultText(fmt.Sprintf("PDF file %s is valid and readable (%d pages)", path, doc.PageCount())), nil
}

func (s *Server) handleSearchDirectory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	directory := s.config.InputDir // default
	if dir, ok := args["directory"].(string); ok && dir != "" {
		directory = dir
	}

	query := ""
	if q, ok := args["query"].(string); ok {
		query = q
	}

	files, err := s.search.SearchDirectory(directory, query)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(s.formatSearchResult(directory, query, files)), nil
}

// formatSearchResult renders a directory listing for tool output
func (s *Server) formatSearchResult(directory, query string, files []pdf.FileInfo) string {
	if len(files) == 0 {
		text := fmt.Sprintf("No PDF files found in directory: %s", directory)
		if query != "" {
			text += fmt.Sprintf(" (searched for: %s)", query)
		}
		return text
	}

	text := fmt.Sprintf("Found %d PDF file(s) in directory: %s\n", len(files), directory)
	if query != "" {
		text += fmt.Sprintf("Search query: %s\n", query)
	}
	text += "\nFiles:\n"

	for i, file := range files {
		text += fmt.Sprintf("%d. %s\n", i+1, file.Name)
		text += fmt.Sprintf("   Path: %s\n", file.Path)
		text += fmt.Sprintf("   Size: %d bytes\n", file.Size)
		text += fmt.Sprintf("   Modified: %s\n", file.ModifiedTime)
		if i < len(files)-1 {
			text += "\n"
		}
	}

	return text
}

// Run serves MCP over standard I/O until the parent process closes stdin
func (s *Server) Run(_ context.Context) error {
	s.log.Debug("starting MCP server in stdio mode", "input_dir", s.config.InputDir)

	if err := server.ServeStdio(s.mcpServer); err != nil {
		return fmt.Errorf("failed to serve stdio: %w", err)
	}
	return nil
}
