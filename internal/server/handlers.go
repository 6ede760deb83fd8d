package server

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/ironsheep/sky-detect-mcp/internal/imaging"
	"github.com/ironsheep/sky-detect-mcp/internal/sky"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_load", "sky_detect").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	start := time.Now()
	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		s.log.Warn().Str("tool", params.Name).Err(err).Msg("tool failed")
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}
	s.log.Debug().Str("tool", params.Name).Dur("elapsed", time.Since(start)).Msg("tool complete")

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
//
// Each tool handler:
//  1. Unmarshals arguments from JSON
//  2. Applies default values for optional parameters
//  3. Loads images from cache as needed
//  4. Calls the appropriate imaging or sky function
//  5. Returns the result or error
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Basic Image Information
	case "image_load":
		return s.handleImageLoad(args)
	case "image_dimensions":
		return s.handleImageDimensions(args)
	case "image_sample_color":
		return s.handleImageSampleColor(args)

	// Sky Detection
	case "sky_detect":
		return s.handleSkyDetect(args)
	case "sky_skyline":
		return s.handleSkySkyline(args)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// === Basic Image Information Handlers ===

type imageLoadArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	// A reload always reads the file again
	s.cache.Evict(a.Path)
	return imaging.LoadImageInfo(s.cache, a.Path)
}

func (s *Server) handleImageDimensions(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.GetDimensions(s.cache, a.Path)
}

type imageSampleColorArgs struct {
	Path string `json:"path"`
	X    int    `json:"x"`
	Y    int    `json:"y"`
}

// SampleColorResult is a pixel colour plus its classification by the sky
// colour range.
type SampleColorResult struct {
	*imaging.ColorResult
	InSkyRange bool `json:"in_sky_range"`
}

func (s *Server) handleImageSampleColor(args json.RawMessage) (interface{}, error) {
	var a imageSampleColorArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	c, err := imaging.SampleColor(img, a.X, a.Y)
	if err != nil {
		return nil, err
	}
	return &SampleColorResult{
		ColorResult: c,
		InSkyRange:  sky.DefaultColorRange.Contains(c.HSV),
	}, nil
}

// === Sky Detection Handlers ===

type skyDetectArgs struct {
	Path         string `json:"path"`
	MaxDimension int    `json:"max_dimension"`
	Engine       string `json:"engine"`
}

// SkyDetectResult is the response of the sky_detect tool.
type SkyDetectResult struct {
	Width       int                     `json:"width"`
	Height      int                     `json:"height"`
	Engine      string                  `json:"engine"`
	SkyFraction float64                 `json:"sky_fraction"`
	Skyline     sky.SkylineSummary      `json:"skyline"`
	Outputs     []*imaging.EncodedImage `json:"outputs"`
}

func (s *Server) handleSkyDetect(args json.RawMessage) (interface{}, error) {
	var a skyDetectArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.MaxDimension < 0 {
		return nil, fmt.Errorf("max_dimension must be non-negative, got %d", a.MaxDimension)
	}

	engine, res, err := s.detect(a.Path, a.Engine)
	if err != nil {
		return nil, err
	}

	rows := res.SkyMask.Bounds().Dy()
	out := &SkyDetectResult{
		Width:       res.SkyMask.Bounds().Dx(),
		Height:      rows,
		Engine:      engine,
		SkyFraction: sky.SkyFraction(res.SkyMask),
		Skyline:     sky.Summarize(res.Skyline, rows),
	}
	for _, o := range res.Outputs() {
		enc, err := imaging.EncodePNG(o.Label, o.Image, a.MaxDimension)
		if err != nil {
			return nil, err
		}
		out.Outputs = append(out.Outputs, enc)
	}
	return out, nil
}

type skySkylineArgs struct {
	Path   string `json:"path"`
	Engine string `json:"engine"`
}

// SkylineResult is the response of the sky_skyline tool.
type SkylineResult struct {
	Width   int                `json:"width"`
	Height  int                `json:"height"`
	Engine  string             `json:"engine"`
	Profile []int              `json:"profile"`
	Summary sky.SkylineSummary `json:"summary"`
}

func (s *Server) handleSkySkyline(args json.RawMessage) (interface{}, error) {
	var a skySkylineArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	engine, res, err := s.detect(a.Path, a.Engine)
	if err != nil {
		return nil, err
	}

	rows := res.SkyMask.Bounds().Dy()
	return &SkylineResult{
		Width:   len(res.Skyline),
		Height:  rows,
		Engine:  engine,
		Profile: res.Skyline,
		Summary: sky.Summarize(res.Skyline, rows),
	}, nil
}

// detect loads path through the cache and runs the named engine on it.
// An empty name selects the Go engine.
func (s *Server) detect(path, name string) (string, *sky.Result, error) {
	if name == "" {
		name = EngineGo
	}
	engine, ok := s.engines[name]
	if !ok {
		return "", nil, fmt.Errorf("unknown engine: %s", name)
	}

	img, err := s.cache.Load(path)
	if err != nil {
		return "", nil, err
	}

	res, err := engine.Detect(img)
	if err != nil {
		return "", nil, fmt.Errorf("failed to detect sky: %w", err)
	}
	return name, res, nil
}
