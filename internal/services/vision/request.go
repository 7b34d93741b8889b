package vision

import (
	"encoding/base64"
	"fmt"
	"time"

	"github.com/leomancini/street-metrics/internal/schema"
)

const (
	// JPEGMediaType is the media type of snapshot images.
	JPEGMediaType = "image/jpeg"

	maxTokens = 1024
)

// Request is the payload of one /v1/messages call.
type Request struct {
	Model      string      `json:"model"`
	MaxTokens  int         `json:"max_tokens"`
	Messages   []Message   `json:"messages"`
	Tools      []Tool      `json:"tools"`
	ToolChoice *ToolChoice `json:"tool_choice,omitempty"`
}

type Message struct {
	Role    string         `json:"role"`
	Content []ContentBlock `json:"content"`
}

// ContentBlock is a single multimodal block of a request message.
type ContentBlock struct {
	Type   string       `json:"type"`
	Source *ImageSource `json:"source,omitempty"`
	Text   string       `json:"text,omitempty"`
}

type ImageSource struct {
	Type      string `json:"type"`
	MediaType string `json:"media_type"`
	Data      string `json:"data"`
}

type Tool struct {
	Name        string           `json:"name"`
	Description string           `json:"description"`
	InputSchema *schema.Property `json:"input_schema"`
}

// ToolChoice with type "tool" forces the model to respond through the named
// tool. This is what turns the open-ended vision call into a
// machine-parseable record with no free-text fallback.
type ToolChoice struct {
	Type string `json:"type"`
	Name string `json:"name"`
}

// RequestBuilder assembles multimodal analysis requests. It is immutable
// after construction, so one builder serves all pipeline runs.
type RequestBuilder struct {
	model string
	loc   *time.Location
}

func NewRequestBuilder(model string, loc *time.Location) *RequestBuilder {
	return &RequestBuilder{model: model, loc: loc}
}

// Build assembles the request for one image: the base64 image block, the
// instruction referencing the filename, and the scene_analysis tool with
// the response mode forced to a structured tool invocation.
func (b *RequestBuilder) Build(imageData []byte, filename string) *Request {
	capture, _ := b.describe(filename)

	instruction := fmt.Sprintf(
		"Analyze this street camera image and provide a structured JSON assessment. %s\n\n"+
			"Carefully observe and estimate all fields. For counts (vehicles, pedestrians, etc.), "+
			"count what you can actually see. For percentages and scores, give your best estimate. "+
			"Be precise and honest - if you can't see something clearly, use your best judgment "+
			"based on available visual cues.",
		capture,
	)

	return &Request{
		Model:     b.model,
		MaxTokens: maxTokens,
		Messages: []Message{{
			Role: "user",
			Content: []ContentBlock{
				{
					Type: "image",
					Source: &ImageSource{
						Type:      "base64",
						MediaType: JPEGMediaType,
						Data:      base64.StdEncoding.EncodeToString(imageData),
					},
				},
				{Type: "text", Text: instruction},
			},
		}},
		Tools: []Tool{{
			Name:        schema.ToolName,
			Description: schema.ToolDescription,
			InputSchema: schema.Definition(),
		}},
		ToolChoice: &ToolChoice{Type: "tool", Name: schema.ToolName},
	}
}

// describe decodes the filename-encoded capture time.
func (b *RequestBuilder) describe(filename string) (string, bool) {
	return DescribeCapture(filename, b.loc)
}
