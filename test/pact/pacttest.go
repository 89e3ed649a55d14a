//go:build pact
// +build pact

package pacttest

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

const (
	ProviderName = "storefront-api"
	ConsumerName = "storefront-web"

	StateCatalogSeeded  = "catalog products seeded"
	StateProductMissing = "no product with id 404"
	StateBuyerSession   = "buyer session exists"
	StateOrderExists    = "order with id 1 exists for the buyer"
)

const (
	ExistingProductID int64 = 1
	MissingProductID  int64 = 404

	ExistingOrderID int64 = 1

	// BuyerToken is the opaque bearer token the provider seeds for the
	// contract buyer session.
	BuyerToken = "pact-buyer-session-token"

	BuyerEmail = "anita@example.com"
)

// PactDir returns the workspace-level directory for generated pact files.
func PactDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "pacts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact dir: %v", err)
	}
	return dir
}

// PactFile returns the canonical pact file path for the web consumer.
func PactFile(t testing.TB) string {
	t.Helper()
	return filepath.Join(PactDir(t), ConsumerName+"-"+ProviderName+".json")
}

// LogDir returns the log output directory for pact-go.
func LogDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "bin", "pact-logs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact log dir: %v", err)
	}
	return dir
}

// ExampleCheckoutPayload provides stable test data for order interactions.
func ExampleCheckoutPayload() map[string]any {
	return map[string]any{
		"items": []map[string]any{
			{"product_id": ExistingProductID, "quantity": 2},
		},
		"shipping_details": map[string]any{
			"first_name":    "Anita",
			"last_name":     "Gurung",
			"email":         BuyerEmail,
			"mobile_number": "9801234567",
			"address":       "Lakeside 6",
			"province":      "Gandaki",
			"district":      "Kaski",
			"municipal":     "Pokhara",
		},
		"payment_method": "cash-on-delivery",
	}
}

// projectRoot walks up from this file to the workspace root.
func projectRoot(t testing.TB) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot determine caller for pact paths")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(file), "..", ".."))
}
