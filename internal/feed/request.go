package feed

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"reflect"
	"strconv"
	"strings"

	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"
)

const (
	contentType     = "application/json"
	contentEncoding = "gzip"
)

// document is the shared feed layout. Older producers publish the list under "items".
type document struct {
	Opportunities []any  `json:"opportunities"`
	Items         []any  `json:"items"`
	LastUpdate    string `json:"last_update"`
}

func (c *Client) fetch(ctx context.Context) ([]byte, error) {
	if !isRemote(c.source) {
		c.logger.Debug("reading feed file")
		return os.ReadFile(strings.TrimPrefix(c.source, "file://"))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.source, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.UserAgent)
	req.Header.Set("Accept", contentType)
	req.Header.Set("Accept-Encoding", contentEncoding)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("bad status: %s", resp.Status)
	}

	var body io.Reader = resp.Body
	if resp.Header.Get("Content-Encoding") == "gzip" {
		gz, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, err
		}
		defer gz.Close()
		body = gz
	}

	return io.ReadAll(body)
}

func isRemote(source string) bool {
	lower := strings.ToLower(source)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

// Decode parses a feed document into opportunities. Malformed optional numbers
// read as unknown; an item that still cannot be decoded is skipped.
func Decode(data []byte) (*Opportunities, error) {
	return decode(data, zap.NewNop())
}

func decode(data []byte, logger *zap.Logger) (*Opportunities, error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}

	raw := doc.Opportunities
	if len(raw) == 0 {
		raw = doc.Items
	}

	items := make([]*Opportunity, 0, len(raw))
	for i, item := range raw {
		o, err := decodeOpportunity(item)
		if err != nil {
			logger.Warn("skipping malformed opportunity", zap.Int("index", i), zap.Error(err))
			continue
		}
		items = append(items, o)
	}

	return &Opportunities{Items: items, LastUpdate: doc.LastUpdate}, nil
}

func decodeOpportunity(raw any) (*Opportunity, error) {
	var o Opportunity
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		WeaklyTypedInput: true,
		DecodeHook:       lenientNumbers,
		Result:           &o,
	})
	if err != nil {
		return nil, err
	}

	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("decode opportunity: %w", err)
	}
	return &o, nil
}

// lenientNumbers maps strings that are not numbers ("n/d", "75.000 €") onto
// unknown: nil for optional fields, zero otherwise.
func lenientNumbers(_ reflect.Type, to reflect.Type, data any) (any, error) {
	s, ok := data.(string)
	if !ok {
		return data, nil
	}

	kind := to.Kind()
	optional := kind == reflect.Ptr
	if optional {
		kind = to.Elem().Kind()
	}
	if !isNumber(kind) {
		return data, nil
	}

	s = strings.TrimSpace(s)
	if _, err := strconv.ParseInt(s, 10, 64); err == nil {
		return s, nil
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f, nil
	}
	if optional {
		return nil, nil
	}
	return 0, nil
}

func isNumber(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}
