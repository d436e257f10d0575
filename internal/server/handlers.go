package server

import (
	"encoding/json"
	"fmt"
	"image"

	"github.com/ironsheep/contour-tools/internal/detection"
	"github.com/ironsheep/contour-tools/internal/imaging"
	"github.com/ironsheep/contour-tools/internal/pipeline"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_info", "image_contours").
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

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

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
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	case "image_info":
		return s.handleImageInfo(args)
	case "image_object_properties":
		return s.handleObjectProperties(args)
	case "image_contours":
		return s.handleContours(args)
	case "image_edge_map":
		return s.handleEdgeMap(args)
	case "image_laplacian_edges":
		return s.handleLaplacianEdges(args)
	case "image_object_crop":
		return s.handleObjectCrop(args)
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
// On marshal failure it returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// pathArgs is shared by every tool; Threshold and Blur are optional.
type pathArgs struct {
	Path      string `json:"path"`
	Threshold *int   `json:"threshold"`
	Blur      int    `json:"blur"`
}

func parseArgs(args json.RawMessage) (*pathArgs, error) {
	var a pathArgs
	if len(args) == 0 {
		return nil, fmt.Errorf("missing arguments")
	}
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Path == "" {
		return nil, fmt.Errorf("path is required")
	}
	return &a, nil
}

func (a *pathArgs) threshold(def int) int {
	if a.Threshold == nil {
		return def
	}
	return *a.Threshold
}

// run executes the object-property pipeline on the image at a.Path.
func (s *Server) run(a *pathArgs) (*pipeline.Result, error) {
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	opts := pipeline.Options{Threshold: a.threshold(imaging.DefaultCannyThreshold), BlurSize: a.Blur}
	return pipeline.New(s.detector, opts).Run(img)
}

func (s *Server) handleImageInfo(args json.RawMessage) (interface{}, error) {
	a, err := parseArgs(args)
	if err != nil {
		return nil, err
	}
	return imaging.LoadImageInfo(a.Path)
}

// ObjectPropertiesResult is returned by image_object_properties.
type ObjectPropertiesResult struct {
	Width       int                          `json:"width"`
	Height      int                          `json:"height"`
	Backend     string                       `json:"backend"`
	Threshold   int                          `json:"threshold"`
	ObjectCount int                          `json:"object_count"`
	Objects     []detection.ObjectProperties `json:"objects"`
}

func (s *Server) handleObjectProperties(args json.RawMessage) (interface{}, error) {
	a, err := parseArgs(args)
	if err != nil {
		return nil, err
	}
	res, err := s.run(a)
	if err != nil {
		return nil, err
	}
	return &ObjectPropertiesResult{
		Width:       res.Edges.Bounds().Dx(),
		Height:      res.Edges.Bounds().Dy(),
		Backend:     res.Backend,
		Threshold:   res.Threshold,
		ObjectCount: len(res.Objects),
		Objects:     res.Objects,
	}, nil
}

// ContoursResult is returned by image_contours.
type ContoursResult struct {
	Threshold    int                 `json:"threshold"`
	ContourCount int                 `json:"contour_count"`
	Contours     []detection.Contour `json:"contours"`
}

func (s *Server) handleContours(args json.RawMessage) (interface{}, error) {
	a, err := parseArgs(args)
	if err != nil {
		return nil, err
	}
	res, err := s.run(a)
	if err != nil {
		return nil, err
	}
	return &ContoursResult{
		Threshold:    res.Threshold,
		ContourCount: len(res.Contours),
		Contours:     res.Contours,
	}, nil
}

// EdgeImageResult carries a binary edge image as base64 PNG.
type EdgeImageResult struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	Threshold   int    `json:"threshold"`
	EdgePixels  int    `json:"edge_pixels"`
	ImageBase64 string `json:"image_base64"`
}

func (s *Server) handleEdgeMap(args json.RawMessage) (interface{}, error) {
	a, err := parseArgs(args)
	if err != nil {
		return nil, err
	}
	res, err := s.run(a)
	if err != nil {
		return nil, err
	}
	return edgeImageResult(res.Edges, res.Threshold, imaging.CountNonZero(res.Edges))
}

func (s *Server) handleLaplacianEdges(args json.RawMessage) (interface{}, error) {
	a, err := parseArgs(args)
	if err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	threshold := a.threshold(pipeline.DefaultLaplaceThreshold)
	edges, err := pipeline.LaplacianEdges(img, threshold)
	if err != nil {
		return nil, err
	}
	// Edges are the dark pixels of the inverted map
	b := edges.Bounds()
	return edgeImageResult(edges, threshold, b.Dx()*b.Dy()-imaging.CountNonZero(edges))
}

func edgeImageResult(edges *image.Gray, threshold, edgePixels int) (*EdgeImageResult, error) {
	encoded, err := imaging.EncodePNGBase64(edges)
	if err != nil {
		return nil, fmt.Errorf("failed to encode edge map: %w", err)
	}
	b := edges.Bounds()
	return &EdgeImageResult{
		Width:       b.Dx(),
		Height:      b.Dy(),
		Threshold:   threshold,
		EdgePixels:  edgePixels,
		ImageBase64: encoded,
	}, nil
}

// ObjectCropResult is returned by image_object_crop.
type ObjectCropResult struct {
	Object *detection.ObjectProperties `json:"object"`
	*imaging.CropResult
}

type objectCropArgs struct {
	Object *int     `json:"object"`
	Margin int      `json:"margin"`
	Scale  *float64 `json:"scale"`
}

func (s *Server) handleObjectCrop(args json.RawMessage) (interface{}, error) {
	a, err := parseArgs(args)
	if err != nil {
		return nil, err
	}
	var c objectCropArgs
	if err := json.Unmarshal(args, &c); err != nil {
		return nil, err
	}
	scale, object := 1.0, 1
	if c.Scale != nil {
		scale = *c.Scale
	}
	if c.Object != nil {
		object = *c.Object
	}

	res, err := s.run(a)
	if err != nil {
		return nil, err
	}
	if object < 1 || object > len(res.Objects) {
		return nil, fmt.Errorf("object %d not found: image has %d objects", object, len(res.Objects))
	}

	obj := res.Objects[object-1]
	crop, err := imaging.Crop(res.Source, obj.BoundingBox.Rect(), c.Margin, scale)
	if err != nil {
		return nil, err
	}
	return &ObjectCropResult{Object: &obj, CropResult: crop}, nil
}
