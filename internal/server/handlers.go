package server

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/ironsheep/image-taker/internal/imaging"
	"github.com/ironsheep/image-taker/internal/loader"
	"github.com/ironsheep/image-taker/internal/taker"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments"`
}

// ToolErrorData is the data attached to a failed tool call. Kind is set for
// load failures: "unreadable_source", "decode_failed", "rotation_failed" or
// "invalid_bounds".
type ToolErrorData struct {
	Message string `json:"message"`
	Kind    string `json:"kind,omitempty"`
}

// handleToolsCall processes a tools/call request. The result is wrapped in
// MCP's content format:
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
		s.logger.Info("tool failed", zap.String("tool", params.Name), zap.Error(err))
		return s.errorResponse(req.ID, -32000, "Tool execution failed", ToolErrorData{
			Message: err.Error(),
			Kind:    loader.Kind(err),
		})
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

func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	if len(args) == 0 {
		args = json.RawMessage("{}")
	}

	switch name {
	// Loading
	case "image_probe":
		return s.handleImageProbe(args)
	case "image_load":
		return s.handleImageLoad(args)

	// Capture and gallery
	case "image_capture_begin":
		return s.handleCaptureBegin(args)
	case "image_capture_complete":
		return s.handleCaptureComplete(args)
	case "image_pick":
		return s.handlePick(args)
	case "image_latest":
		return s.handleLatest(args)

	// Color
	case "image_sample_color":
		return s.handleSampleColor(args)
	case "image_dominant_colors":
		return s.handleDominantColors(args)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

func (s *Server) errorResponse(id interface{}, code int, message string, data interface{}) *MCPResponse {
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

// mustMarshalJSON converts a value to a pretty-printed JSON string, or an
// empty string if it cannot be marshaled.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// imageSummary is the JSON form of a loaded image.
type imageSummary struct {
	Width        int                   `json:"width"`
	Height       int                   `json:"height"`
	Native       loader.Dimensions     `json:"native"`
	SampleFactor int                   `json:"sample_factor"`
	Rotation     int                   `json:"rotation"`
	Recovered    bool                  `json:"recovered"`
	Info         *imaging.ImageInfo    `json:"info"`
	Image        *imaging.EncodedImage `json:"image,omitempty"`
}

func summarize(img *loader.DecodedImage) *imageSummary {
	return &imageSummary{
		Width:        img.Width,
		Height:       img.Height,
		Native:       img.Native,
		SampleFactor: img.SampleFactor,
		Rotation:     int(img.Rotation),
		Recovered:    img.Recovered,
		Info:         imaging.Describe(img.Image, img.Native.Format),
	}
}

// storedPhoto is the JSON form of a taker.Result.
type storedPhoto struct {
	Path      string        `json:"path"`
	SizeBytes int64         `json:"size_bytes"`
	Origin    taker.Origin  `json:"origin"`
	Image     *imageSummary `json:"image"`
}

func newStoredPhoto(res *taker.Result) *storedPhoto {
	return &storedPhoto{
		Path:      res.Path,
		SizeBytes: res.Size,
		Origin:    res.Origin,
		Image:     summarize(res.Image),
	}
}

// === Loading ===

type imagePathArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageProbe(args json.RawMessage) (interface{}, error) {
	var a imagePathArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return s.taker.Probe(a.Path)
}

type imageLoadArgs struct {
	Path         string `json:"path"`
	MaxWidth     int    `json:"max_width"`
	MaxHeight    int    `json:"max_height"`
	IncludeImage bool   `json:"include_image"`
	Format       string `json:"format"`
	Quality      int    `json:"quality"`
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	img, err := s.taker.Load(a.Path, a.MaxWidth, a.MaxHeight)
	if err != nil {
		return nil, err
	}

	sum := summarize(img)
	if a.IncludeImage {
		opts := s.taker.Options()
		format := opts.Format
		if a.Format != "" {
			if format, err = imaging.ParseFormat(a.Format); err != nil {
				return nil, err
			}
		}
		quality := opts.Quality
		if a.Quality != 0 {
			quality = a.Quality
		}
		if sum.Image, err = imaging.EncodeBase64(img.Image, format, quality); err != nil {
			return nil, err
		}
	}
	return sum, nil
}

// === Capture and gallery ===

type captureBeginResult struct {
	CaptureID string `json:"capture_id"`
	Path      string `json:"path"`
}

func (s *Server) handleCaptureBegin(json.RawMessage) (interface{}, error) {
	c, err := s.taker.BeginCapture()
	if err != nil {
		return nil, err
	}

	id := filepath.Base(c.Path)
	s.captures[id] = c
	return &captureBeginResult{CaptureID: id, Path: c.Path}, nil
}

type captureCompleteArgs struct {
	CaptureID string `json:"capture_id"`
	Cancel    bool   `json:"cancel"`
}

func (s *Server) handleCaptureComplete(args json.RawMessage) (interface{}, error) {
	var a captureCompleteArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	c, ok := s.captures[a.CaptureID]
	if !ok {
		return nil, fmt.Errorf("unknown capture: %q", a.CaptureID)
	}

	if a.Cancel {
		delete(s.captures, a.CaptureID)
		if err := s.taker.CancelCapture(c); err != nil {
			return nil, err
		}
		return map[string]interface{}{"capture_id": a.CaptureID, "cancelled": true}, nil
	}

	res, err := s.taker.CompleteCapture(c)
	if err != nil {
		return nil, err
	}
	delete(s.captures, a.CaptureID)
	return newStoredPhoto(res), nil
}

type pickArgs struct {
	Locator string `json:"locator"`
}

func (s *Server) handlePick(args json.RawMessage) (interface{}, error) {
	var a pickArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	res, err := s.taker.Pick(a.Locator)
	if err != nil {
		return nil, err
	}
	return newStoredPhoto(res), nil
}

type latestArgs struct {
	IncludeImage bool `json:"include_image"`
}

type latestResult struct {
	Path        string `json:"path"`
	SizeBytes   int64  `json:"size_bytes"`
	ImageBase64 string `json:"image_base64,omitempty"`
	MimeType    string `json:"mime_type"`
}

func (s *Server) handleLatest(args json.RawMessage) (interface{}, error) {
	var a latestArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	path, err := s.taker.LatestFile()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read latest photo: %w", err)
	}

	res := &latestResult{
		Path:      path,
		SizeBytes: int64(len(data)),
		MimeType:  s.taker.Options().Format.MIMEType(),
	}
	if a.IncludeImage {
		res.ImageBase64 = base64.StdEncoding.EncodeToString(data)
	}
	return res, nil
}

// === Color ===

// loadTarget loads path, or the latest photo when path is empty, at the
// configured probe bounds. Coordinates given to the color tools refer to this
// bounded image.
func (s *Server) loadTarget(path string) (image.Image, error) {
	if path == "" {
		latest, err := s.taker.LatestFile()
		if err != nil {
			return nil, err
		}
		path = latest
	}

	img, err := s.taker.Load(path, 0, 0)
	if err != nil {
		return nil, err
	}
	return img.Image, nil
}

type sampleColorArgs struct {
	Path string `json:"path"`
	X    int    `json:"x"`
	Y    int    `json:"y"`
}

func (s *Server) handleSampleColor(args json.RawMessage) (interface{}, error) {
	var a sampleColorArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	img, err := s.loadTarget(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.SampleColor(img, a.X, a.Y)
}

type dominantColorsArgs struct {
	Path  string `json:"path"`
	Count int    `json:"count"`
	X1    *int   `json:"x1"`
	Y1    *int   `json:"y1"`
	X2    *int   `json:"x2"`
	Y2    *int   `json:"y2"`
}

func (s *Server) handleDominantColors(args json.RawMessage) (interface{}, error) {
	var a dominantColorsArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Count == 0 {
		a.Count = 5
	}

	img, err := s.loadTarget(a.Path)
	if err != nil {
		return nil, err
	}

	var region *image.Rectangle
	if a.X1 != nil && a.Y1 != nil && a.X2 != nil && a.Y2 != nil {
		r := image.Rect(*a.X1, *a.Y1, *a.X2, *a.Y2)
		region = &r
	}
	return imaging.DominantColors(img, a.Count, region)
}
