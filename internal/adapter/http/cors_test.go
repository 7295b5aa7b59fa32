package httpadapter

import (
	"context"
	"testing"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

func TestApplyCORSHeaders(t *testing.T) {
	ctx := &app.RequestContext{}
	applyCORSHeaders(ctx)

	if got, want := string(ctx.Response.Header.Peek("Access-Control-Allow-Origin")), "*"; got != want {
		t.Fatalf("allow-origin mismatch: got=%q want=%q", got, want)
	}
	if got, want := string(ctx.Response.Header.Peek("Access-Control-Allow-Methods")), corsAllowMethods; got != want {
		t.Fatalf("allow-methods mismatch: got=%q want=%q", got, want)
	}
	if got, want := string(ctx.Response.Header.Peek("Access-Control-Allow-Headers")), corsAllowHeaders; got != want {
		t.Fatalf("allow-headers mismatch: got=%q want=%q", got, want)
	}
}

func TestCORSMiddleware_ShortCircuitsPreflight(t *testing.T) {
	ctx := &app.RequestContext{}
	ctx.Request.Header.SetMethod(consts.MethodOptions)
	corsMiddleware()(context.Background(), ctx)

	if ctx.Response.StatusCode() != consts.StatusNoContent {
		t.Fatalf("expected 204 for preflight, got %d", ctx.Response.StatusCode())
	}
	if !ctx.IsAborted() {
		t.Fatalf("expected preflight to abort the chain")
	}
}
