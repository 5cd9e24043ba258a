package product

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
)

func TestProduct_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(p *Product)
		wantErr bool
	}{
		{"valid goods", func(p *Product) {}, false},
		{"empty name", func(p *Product) { p.Name = "" }, true},
		{"invalid type", func(p *Product) { p.Type = "subscription" }, true},
		{"negative price", func(p *Product) { p.Price = decimal.NewFromInt(-1) }, true},
		{"negative weight", func(p *Product) { p.Weight = decimal.NewFromInt(-1) }, true},
		{"service with weight", func(p *Product) {
			p.Type = TypeService
			p.Weight = decimal.NewFromFloat(0.5)
		}, true},
		{"service without weight", func(p *Product) { p.Type = TypeService }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewProduct("PRD-001", "Widget", TypeGoods)
			tt.mutate(p)

			err := p.Validate(context.Background())
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr = %v", err, tt.wantErr)
			}
		})
	}
}
