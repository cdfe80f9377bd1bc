package logger

import (
	"bytes"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
)

func TestNewWithConfig(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithConfig(&buf, "dict", log.WarnLevel, false, false, log.JSONFormatter)

	l.Info("hidden")
	l.Warn("shown", "rows", 3)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"msg":"shown"`)
	assert.Contains(t, out, `"prefix":"dict"`)
	assert.Contains(t, out, `"rows":3`)
	assert.NotContains(t, out, `"time"`)
}

func TestNewWithWriterFollowsGlobalLevel(t *testing.T) {
	prev := log.GetLevel()
	defer log.SetLevel(prev)
	log.SetLevel(log.ErrorLevel)

	var buf bytes.Buffer
	l := NewWithWriter(&buf, "")
	l.Warn("quiet")
	l.Error("loud")
	assert.NotContains(t, buf.String(), "quiet")
	assert.Contains(t, buf.String(), "loud")
}
