package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	InitWriter(&buf, "warn")
	t.Cleanup(func() { InitWriter(os.Stdout, "info") })

	Infof("hidden %d", 1)
	Warnf("shown %d", 2)

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 1)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &rec))
	assert.Equal(t, "shown 2", rec["msg"])
	assert.Equal(t, "WARN", rec["level"])
}

func TestSetLevel(t *testing.T) {
	t.Cleanup(func() { Init("info") })

	cases := map[string]string{
		"debug":   "debug",
		"WARNING": "warn",
		"error":   "error",
		"bogus":   "info",
	}
	for in, want := range cases {
		SetLevel(in)
		assert.Equal(t, want, GetLevel(), in)
	}
}
