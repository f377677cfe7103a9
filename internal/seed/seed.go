// Package seed provides the demo funnel definition used by tests and local
// setups.
package seed

import (
	"context"
	"fmt"

	"github.com/blackroad/journeymap/internal/journey"
)

// StageDef describes one funnel stage to register.
type StageDef struct {
	Name        string
	Position    int
	Description string
	EntryEvent  string
	ExitEvent   string
}

// DemoFunnel is a five-stage e-commerce funnel from first page view to
// checkout.
var DemoFunnel = []StageDef{
	{Name: "Awareness", Position: 1, Description: "First contact with the site", EntryEvent: "page_view", ExitEvent: "search"},
	{Name: "Interest", Position: 2, Description: "Actively searching", EntryEvent: "search", ExitEvent: "product_view"},
	{Name: "Consideration", Position: 3, Description: "Evaluating a product", EntryEvent: "product_view", ExitEvent: "add_to_cart"},
	{Name: "Intent", Position: 4, Description: "Product in cart", EntryEvent: "add_to_cart", ExitEvent: "checkout_start"},
	{Name: "Purchase", Position: 5, Description: "Checkout begun", EntryEvent: "checkout_start", ExitEvent: "order_complete"},
}

// Stages registers the demo funnel through the journey engine.
func Stages(ctx context.Context, m *journey.Mapper) error {
	for _, d := range DemoFunnel {
		if _, err := m.DefineStage(ctx, d.Name, d.Position, d.Description, d.EntryEvent, d.ExitEvent); err != nil {
			return fmt.Errorf("seed stage %q: %w", d.Name, err)
		}
	}
	return nil
}
