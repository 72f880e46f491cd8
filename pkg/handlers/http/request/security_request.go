package request

import (
	"errors"
	"fmt"

	"github.com/NeuralTrust/SnippetGate/pkg/domain/security"
	"github.com/valyala/fastjson"
)

var ErrInvalidBody = errors.New("request body must be a JSON object")

// CreateSnippetRequest is a submission plus the caller's override flag.
type CreateSnippetRequest struct {
	security.ScanRequest
	Override bool `json:"override"`
}

type BatchCheckRequest struct {
	Requests []security.ScanRequest `json:"requests"`
}

type RateLimitCheckRequest struct {
	Key             string `json:"key"`
	IsAuthenticated bool   `json:"is_authenticated"`
}

// Bodies are read leniently: string fields that are missing or carry
// another JSON type read as "", boolean flags read as true only for JSON true.

func ParseScanRequest(body []byte) (security.ScanRequest, error) {
	v, err := parseObject(body)
	if err != nil {
		return security.ScanRequest{}, err
	}
	return scanRequestFrom(v), nil
}

func ParseCreateSnippetRequest(body []byte) (CreateSnippetRequest, error) {
	v, err := parseObject(body)
	if err != nil {
		return CreateSnippetRequest{}, err
	}
	return CreateSnippetRequest{
		ScanRequest: scanRequestFrom(v),
		Override:    boolField(v, "override"),
	}, nil
}

func ParseBatchCheckRequest(body []byte) (BatchCheckRequest, error) {
	v, err := parseObject(body)
	if err != nil {
		return BatchCheckRequest{}, err
	}
	items := v.GetArray("requests")
	if items == nil {
		return BatchCheckRequest{}, errors.New("requests must be a JSON array")
	}
	out := BatchCheckRequest{Requests: make([]security.ScanRequest, 0, len(items))}
	for _, item := range items {
		out.Requests = append(out.Requests, scanRequestFrom(item))
	}
	return out, nil
}

func ParseRateLimitCheckRequest(body []byte) (RateLimitCheckRequest, error) {
	v, err := parseObject(body)
	if err != nil {
		return RateLimitCheckRequest{}, err
	}
	req := RateLimitCheckRequest{
		Key:             stringField(v, "key"),
		IsAuthenticated: boolField(v, "is_authenticated"),
	}
	if req.Key == "" {
		return req, errors.New("key is required")
	}
	return req, nil
}

func parseObject(body []byte) (*fastjson.Value, error) {
	var p fastjson.Parser
	v, err := p.ParseBytes(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBody, err)
	}
	if v.Type() != fastjson.TypeObject {
		return nil, ErrInvalidBody
	}
	return v, nil
}

func scanRequestFrom(v *fastjson.Value) security.ScanRequest {
	return security.ScanRequest{
		Title:       stringField(v, "title"),
		Description: stringField(v, "description"),
		Code:        stringField(v, "code"),
		Language:    stringField(v, "language"),
	}
}

func stringField(v *fastjson.Value, key string) string {
	field := v.Get(key)
	if field == nil || field.Type() != fastjson.TypeString {
		return ""
	}
	return string(field.GetStringBytes())
}

func boolField(v *fastjson.Value, key string) bool {
	field := v.Get(key)
	return field != nil && field.Type() == fastjson.TypeTrue
}
