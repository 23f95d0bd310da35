package framework

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggerWithPrefix(t *testing.T) {
	var target CapturingLogger
	LoggerWithPrefix(&target, "[twin] ").Printf("GET %s", "/api/get/1")
	out := target.Output()
	require.Len(t, out, 1)
	assert.Equal(t, "[twin] GET /api/get/1", out[0].Message)

	LoggerWithPrefix(nil, "x").Printf("ignored")
}

func TestCapturedOutputDump(t *testing.T) {
	var l CapturingLogger
	l.Printf("one")
	l.Printf("two %d", 2)
	var buf bytes.Buffer
	l.Output().Dump(&buf, "  DEBUG ")
	lines := bytes.Split(bytes.TrimRight(buf.Bytes(), "\n"), []byte("\n"))
	require.Len(t, lines, 2)
	assert.Contains(t, string(lines[1]), "] two 2")
	assert.True(t, bytes.HasPrefix(lines[0], []byte("  DEBUG [")))
}
