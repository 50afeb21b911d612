package observability

import "testing"

func TestParseCloudTraceContext(t *testing.T) {
	spanCtx, ok := parseCloudTraceContext("105445aa7843bc8bf206b12000100000/123456789;o=1")
	if !ok {
		t.Fatal("parseCloudTraceContext = false, want true")
	}
	if got := spanCtx.TraceID().String(); got != "105445aa7843bc8bf206b12000100000" {
		t.Errorf("TraceID = %q", got)
	}
	if got := spanCtx.SpanID().String(); got != "00000000075bcd15" {
		t.Errorf("SpanID = %q, want decimal 123456789 as hex", got)
	}
	if !spanCtx.IsSampled() {
		t.Error("IsSampled() = false, want true")
	}
	if !spanCtx.IsRemote() {
		t.Error("IsRemote() = false, want true")
	}
}

func TestParseCloudTraceContextUnsampled(t *testing.T) {
	spanCtx, ok := parseCloudTraceContext("105445aa7843bc8bf206b12000100000/1")
	if !ok {
		t.Fatal("parseCloudTraceContext = false, want true")
	}
	if spanCtx.IsSampled() {
		t.Error("IsSampled() = true, want false")
	}
}

func TestParseCloudTraceContextRejectsMalformedHeaders(t *testing.T) {
	cases := []string{
		"",
		"105445aa7843bc8bf206b12000100000",
		"not-hex/123",
		"105445aa7843bc8bf206b12000100000/notanumber",
		"105445aa7843bc8bf206b12000100000/0",
		"abc/123",
	}
	for _, header := range cases {
		if _, ok := parseCloudTraceContext(header); ok {
			t.Errorf("parseCloudTraceContext(%q) = true, want false", header)
		}
	}
}
