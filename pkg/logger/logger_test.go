package logger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyValueRendering(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriterLogger(&buf, false)

	l.Info("venda aberta", "table_id", "m1", "customer_count", 3)
	l.Warn("par incompleto", "sozinho")
	l.Debug("não aparece")

	out := buf.String()
	assert.Contains(t, out, "INFO: venda aberta table_id=m1 customer_count=3")
	assert.Contains(t, out, "WARN: par incompleto extra=sozinho")
	assert.NotContains(t, out, "não aparece")
}

func TestDebugEnabled(t *testing.T) {
	var buf bytes.Buffer
	NewWriterLogger(&buf, true).Debug("detalhe", "k", "v")

	assert.Contains(t, buf.String(), "DEBUG: detalhe k=v")
}
