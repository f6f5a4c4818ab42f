package logger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	SetTestOutput(&buf)
	defer UnsetTestOutput()

	InitLogger("warn")
	Infof("hidden %s", "info")
	Warnf("visible %s", "warning")

	out := buf.String()
	assert.NotContains(t, out, "hidden info")
	assert.Contains(t, out, "visible warning")
}

func TestLoggerFields(t *testing.T) {
	var buf bytes.Buffer
	SetTestOutput(&buf)
	defer UnsetTestOutput()

	InitLogger("info")
	Info("pack discovered", Fields{"pack": "SamplePack"})

	assert.Contains(t, buf.String(), "pack=SamplePack")
}
