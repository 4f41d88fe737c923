package telemetry_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/janscope/annotator/internal/telemetry"
)

// providerOnce ensures we only create one Provider per test run to avoid
// duplicate Prometheus metric registration errors from promauto's global registry
var (
	testProvider *telemetry.Provider
	providerOnce sync.Once
)

func getTestProvider(t *testing.T) *telemetry.Provider {
	t.Helper()
	providerOnce.Do(func() {
		testProvider = telemetry.NewProvider()
	})
	return testProvider
}

func TestNewProvider(t *testing.T) {
	provider := getTestProvider(t)
	if provider == nil {
		t.Fatal("expected non-nil provider")
	}
	if provider.Tracer == nil {
		t.Error("expected non-nil tracer")
	}
	if provider.Metrics == nil {
		t.Error("expected non-nil metrics")
	}
	if provider.Handler() == nil {
		t.Error("expected non-nil metrics handler")
	}
}

func TestRecordPost(t *testing.T) {
	provider := getTestProvider(t)

	// Should not panic
	provider.RecordPost("बैठक", "auto_approved", false, "", 12*time.Millisecond)
	provider.RecordPost("आंतरिक सुरक्षा/पुलिस", "pending", true, "security_critical", 8*time.Millisecond)
}

func TestRecordResolution(t *testing.T) {
	provider := getTestProvider(t)

	// Should not panic
	provider.RecordResolution("exact-dictionary")
	provider.RecordResolution("")
	provider.RecordFailure()
	provider.RecordSemanticFailure("timeout")
}

func TestGauges(t *testing.T) {
	provider := getTestProvider(t)

	// Should not panic
	provider.SetGazetteerSize(12, 4, 3)
	provider.SetWindowDepth(2)
}

func TestNilProviderSafe(t *testing.T) {
	var provider *telemetry.Provider

	// Every recorder must be a no-op on a nil provider.
	provider.RecordPost("बैठक", "pending", false, "", time.Millisecond)
	provider.RecordResolution("handle-inference")
	provider.RecordFailure()
	provider.RecordSemanticFailure("unavailable")
	provider.SetGazetteerSize(0, 0, 0)
	provider.SetWindowDepth(0)

	ctx, span := provider.StartSpan(context.Background(), "annotate")
	if ctx == nil {
		t.Fatal("expected context back from nil provider span")
	}
	span.End()
}
