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

func cannyThresholdProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "integer",
		"description": "Canny low threshold; the high threshold is twice this value. Default 70",
		"default":     70,
		"minimum":     0,
	}
}

func blurProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "integer",
		"description": "Box blur kernel size applied before edge detection (odd, 3 or more). Default 0 (no blur)",
		"default":     0,
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		{
			Name:        "image_info",
			Description: "Get the dimensions, format, color depth, alpha and file size of an image file.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
				},
				"required": []string{"path"},
			},
		},
		{
			Name: "image_object_properties",
			Description: "Detect objects with Canny edges and external contours, then measure each one: " +
				"centroid, bounding box, area, perimeter, aspect ratio, extent, solidity, equivalent diameter, " +
				"orientation (contours with 5 points or more) and mean intensity.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path":      pathProperty(),
					"threshold": cannyThresholdProperty(),
					"blur":      blurProperty(),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_contours",
			Description: "Return the external contours of the Canny edge map as point lists, compressed to segment end points.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path":      pathProperty(),
					"threshold": cannyThresholdProperty(),
					"blur":      blurProperty(),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_edge_map",
			Description: "Run Canny edge detection and return the binary edge map (white edges on black) as base64-encoded PNG.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path":      pathProperty(),
					"threshold": cannyThresholdProperty(),
					"blur":      blurProperty(),
				},
				"required": []string{"path"},
			},
		},
		{
			Name: "image_laplacian_edges",
			Description: "Median blur, grayscale, absolute Laplacian and inverted threshold. " +
				"Returns dark edges on a white background as base64-encoded PNG.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"threshold": map[string]interface{}{
						"type":        "integer",
						"description": "Laplacian responses above this value become edges (0-255). Default 50",
						"default":     50,
						"minimum":     0,
						"maximum":     255,
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name: "image_object_crop",
			Description: "Detect objects like image_object_properties and return one object's bounding box " +
				"region of the source image as base64-encoded PNG, with its properties.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path":      pathProperty(),
					"threshold": cannyThresholdProperty(),
					"blur":      blurProperty(),
					"object": map[string]interface{}{
						"type":        "integer",
						"description": "Object number as reported by image_object_properties, starting at 1. Default 1",
						"default":     1,
						"minimum":     1,
					},
					"margin": map[string]interface{}{
						"type":        "integer",
						"description": "Pixels added around the bounding box. Default 0",
						"default":     0,
						"minimum":     0,
					},
					"scale": map[string]interface{}{
						"type":        "number",
						"description": "Resize factor for the returned crop. Default 1",
						"default":     1,
					},
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
