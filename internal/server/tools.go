package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

func pathProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Absolute path to the image file",
	}
}

func engineProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"enum":        []string{EngineGo, EngineOpenCV},
		"description": "Detection engine. \"opencv\" requires a build with the gocv tag. Default \"go\"",
		"default":     EngineGo,
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Basic Image Information
		{
			Name:        "image_load",
			Description: "Load an image file and return its dimensions, format and channel count. The image is cached for subsequent operations.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_dimensions",
			Description: "Get the width and height of an image file.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_sample_color",
			Description: "Get the color at a pixel as hex, RGB, 8-bit HSV (hue 0-179) and luminance, and whether it falls in the sky color range.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"x": map[string]interface{}{
						"type":        "integer",
						"description": "X coordinate (0-based, from left)",
					},
					"y": map[string]interface{}{
						"type":        "integer",
						"description": "Y coordinate (0-based, from top)",
					},
				},
				"required": []string{"path", "x", "y"},
			},
		},

		// Sky Detection
		{
			Name: "sky_detect",
			Description: "Detect the sky region of a photograph. Returns six base64 PNG images in order: " +
				"color mask, filter mask, edge, sky line, sky mask and Sky Identified (sky pixels only), " +
				"plus the fraction of the image classified as sky.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"max_dimension": map[string]interface{}{
						"type":        "integer",
						"description": "Optional longest side of the returned images. Detection always runs at full resolution. Default 0 (no resize)",
						"default":     0,
					},
					"engine": engineProperty(),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "sky_skyline",
			Description: "Compute the skyline profile: for every column, the row where sky ends (the image height when the column is all sky).",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path":   pathProperty(),
					"engine": engineProperty(),
				},
				"required": []string{"path"},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
