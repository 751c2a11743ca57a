package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// Date accepts "2006-01-02" or an RFC 3339 timestamp and renders as a plain
// calendar date.
type Date struct {
	time.Time
}

func (d *Date) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	t, err := parseDate(s)
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.Format(time.DateOnly))
}

func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%q is not a date", s)
	}
	return t.UTC(), nil
}

func (d *Date) ptr() *time.Time {
	if d == nil || d.IsZero() {
		return nil
	}
	t := d.Time
	return &t
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		badRequest(c, "invalid id")
		return 0, false
	}
	return id, true
}

// bindEnvelope decodes a body shaped like {"<key>": {...}} into dst.
func bindEnvelope(c *gin.Context, key string, dst any) bool {
	var envelope map[string]json.RawMessage
	if err := c.ShouldBindJSON(&envelope); err != nil {
		badRequest(c, "malformed JSON body")
		return false
	}
	raw, ok := envelope[key]
	if !ok {
		badRequest(c, fmt.Sprintf("missing %q object", key))
		return false
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		badRequest(c, fmt.Sprintf("invalid %s: %v", key, err))
		return false
	}
	return true
}
