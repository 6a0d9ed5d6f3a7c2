package middleware

import (
	"bytes"
	"encoding/json"
	"html"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/microcosm-cc/bluemonday"
)

// SanitizeJSON strips markup from every string in JSON object bodies on
// write methods. Keys listed in skip, and keys ending in "_url", are left
// untouched since they are validated as URLs or tokens. Bodies that are not
// JSON objects pass through so binding can report them. Text outside tags,
// including "&" and "<", is kept as typed.
func SanitizeJSON(skip ...string) gin.HandlerFunc {
	policy := bluemonday.StrictPolicy()
	skipSet := make(map[string]struct{}, len(skip))
	for _, k := range skip {
		skipSet[k] = struct{}{}
	}

	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodPost, http.MethodPut, http.MethodPatch:
		default:
			c.Next()
			return
		}
		if c.Request.Body == nil || !strings.Contains(c.ContentType(), "json") {
			c.Next()
			return
		}

		buf, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.Next()
			return
		}
		// UseNumber keeps prices byte-exact through the round trip
		dec := json.NewDecoder(bytes.NewReader(buf))
		dec.UseNumber()
		var body map[string]any
		if err := dec.Decode(&body); err != nil || dec.More() {
			c.Request.Body = io.NopCloser(bytes.NewReader(buf))
			c.Next()
			return
		}

		for k, v := range body {
			if _, ok := skipSet[k]; ok || strings.HasSuffix(k, "_url") {
				continue
			}
			body[k] = sanitizeValue(policy, v)
		}

		newBody, _ := json.Marshal(body)
		c.Request.Body = io.NopCloser(bytes.NewReader(newBody))
		c.Request.ContentLength = int64(len(newBody))
		c.Next()
	}
}

func sanitizeValue(p *bluemonday.Policy, v any) any {
	switch x := v.(type) {
	case string:
		// Bodies are stored and served as JSON, so entities are decoded back
		return html.UnescapeString(p.Sanitize(x))
	case map[string]any:
		for k, inner := range x {
			x[k] = sanitizeValue(p, inner)
		}
		return x
	case []any:
		for i, inner := range x {
			x[i] = sanitizeValue(p, inner)
		}
		return x
	default:
		return v
	}
}
