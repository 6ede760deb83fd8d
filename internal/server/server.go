package server

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/ironsheep/sky-detect-mcp/internal/imaging"
	"github.com/ironsheep/sky-detect-mcp/internal/sky"
	"github.com/ironsheep/sky-detect-mcp/internal/skycv"
)

// Engine names accepted by the sky tools.
const (
	EngineGo     = "go"
	EngineOpenCV = "opencv"
)

// Server handles MCP protocol communication
type Server struct {
	cache   *imaging.ImageCache
	engines map[string]sky.Engine
	log     zerolog.Logger
	in      io.Reader
	out     io.Writer
	version string
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the server logger. The logger must not write to the
// server's output stream.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Server) {
		s.log = logger
	}
}

// WithIO replaces stdin and stdout as the transport.
func WithIO(in io.Reader, out io.Writer) Option {
	return func(s *Server) {
		s.in = in
		s.out = out
	}
}

// WithEngine registers (or replaces) a detection engine under name.
func WithEngine(name string, engine sky.Engine) Option {
	return func(s *Server) {
		s.engines[name] = engine
	}
}

// WithVersion sets the version reported in serverInfo.
func WithVersion(version string) Option {
	return func(s *Server) {
		s.version = version
	}
}

// MCPRequest represents an incoming JSON-RPC request
type MCPRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      interface{}     `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// MCPResponse represents an outgoing JSON-RPC response
type MCPResponse struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      interface{} `json:"id"`
	Result  interface{} `json:"result,omitempty"`
	Error   *MCPError   `json:"error,omitempty"`
}

// MCPError represents a JSON-RPC error
type MCPError struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// New creates a new MCP server instance with the default engines: the
// pure-Go detector and the OpenCV detector (which reports an error unless
// built with the gocv tag).
func New(opts ...Option) *Server {
	s := &Server{
		cache:   imaging.NewImageCache(),
		engines: make(map[string]sky.Engine),
		log:     zerolog.Nop(),
		in:      os.Stdin,
		out:     os.Stdout,
		version: "0.1.0",
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.With().Str("component", "server").Logger()

	// Default configs always validate
	if _, ok := s.engines[EngineGo]; !ok {
		d, _ := sky.New(sky.DefaultConfig(), sky.WithLogger(s.log))
		s.engines[EngineGo] = d
	}
	if _, ok := s.engines[EngineOpenCV]; !ok {
		d, _ := skycv.New(sky.DefaultConfig())
		s.engines[EngineOpenCV] = d
	}
	return s
}

// Run starts the MCP server, reading requests line by line until the input
// is exhausted
func (s *Server) Run() error {
	scanner := bufio.NewScanner(s.in)
	// Increase buffer size for large requests
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 1024*1024)

	encoder := json.NewEncoder(s.out)

	s.log.Info().Bool("opencv", skycv.Enabled).Msg("server started")

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var req MCPRequest
		if err := json.Unmarshal(line, &req); err != nil {
			s.log.Warn().Err(err).Msg("failed to parse request")
			continue
		}

		s.log.Debug().Str("method", req.Method).Interface("id", req.ID).Msg("request")

		resp := s.handleRequest(&req)
		if resp != nil {
			if err := encoder.Encode(resp); err != nil {
				s.log.Error().Err(err).Msg("failed to encode response")
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("scanner error: %w", err)
	}

	return nil
}

// handleRequest routes requests to appropriate handlers
func (s *Server) handleRequest(req *MCPRequest) *MCPResponse {
	switch req.Method {
	case "initialize":
		return s.handleInitialize(req)
	case "notifications/initialized":
		// Client acknowledgment, no response needed
		return nil
	case "tools/list":
		return s.handleToolsList(req)
	case "tools/call":
		return s.handleToolsCall(req)
	case "ping":
		return &MCPResponse{
			JSONRPC: "2.0",
			ID:      req.ID,
			Result:  map[string]interface{}{},
		}
	default:
		return &MCPResponse{
			JSONRPC: "2.0",
			ID:      req.ID,
			Error: &MCPError{
				Code:    -32601,
				Message: fmt.Sprintf("Method not found: %s", req.Method),
			},
		}
	}
}

// handleInitialize responds to the initialize request
func (s *Server) handleInitialize(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"protocolVersion": "2024-11-05",
			"capabilities": map[string]interface{}{
				"tools": map[string]interface{}{},
			},
			"serverInfo": map[string]interface{}{
				"name":    "sky-detect-mcp",
				"version": s.version,
			},
		},
	}
}
