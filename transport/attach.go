package transport

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

const (
	AttachmentResponse = "API Response"
	AttachmentStatus   = "Status Code"
	AttachmentHeaders  = "Headers"
	AttachmentURL      = "URL"
)

func attachResponse(sink Sink, r *Response) {
	if sink == nil {
		return
	}
	var body string
	if r.JSON != nil {
		if pretty, err := json.MarshalIndent(r.JSON, "", "    "); err == nil {
			body = string(pretty)
		}
	}
	if body == "" {
		body = r.Text
	}
	if body == "" {
		body = "Empty response"
	}
	sink.Attach(AttachmentResponse, "text/plain", []byte(body))
	sink.Attach(AttachmentStatus, "text/plain", []byte(strconv.Itoa(r.StatusCode)))
	sink.Attach(AttachmentHeaders, "text/plain", []byte(formatHeaders(r)))
	sink.Attach(AttachmentURL, "text/plain", []byte(r.URL))
}

func formatHeaders(r *Response) string {
	names := make([]string, 0, len(r.Header))
	for name := range r.Header {
		names = append(names, name)
	}
	sort.Strings(names)
	var b strings.Builder
	for _, name := range names {
		fmt.Fprintf(&b, "%s: %s\n", name, strings.Join(r.Header.Values(name), ", "))
	}
	return b.String()
}
