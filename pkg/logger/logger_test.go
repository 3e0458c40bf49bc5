package logger

import (
	"bytes"
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestFromContext_UsaElLoggerDeLaPeticion(t *testing.T) {
	var buf bytes.Buffer
	reqLog := (&Logger{zl: zerolog.New(&buf)}).With("request_id", "r-42")
	ctx := reqLog.WithContext(context.Background())

	FromContext(ctx, Nop()).Component("ledger.incoming").Info().Msg("entrada creada")

	assert.Contains(t, buf.String(), `"request_id":"r-42"`)
	assert.Contains(t, buf.String(), `"component":"ledger.incoming"`)
}

func TestFromContext_SinLoggerDevuelveFallback(t *testing.T) {
	fallback := Nop()
	assert.Same(t, fallback, FromContext(context.Background(), fallback))
}
