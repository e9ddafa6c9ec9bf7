package cart

import (
	"testing"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestAdd_SameProductIncrements(t *testing.T) {
	c := New()
	for i := 0; i < 3; i++ {
		c.Add("p1", "Coffee", "SKU-1", dec("12.50"))
	}

	items := c.Items()
	if len(items) != 1 {
		t.Fatalf("len=%d, esperaba 1", len(items))
	}
	if !items[0].Quantity.Equal(dec("3")) {
		t.Fatalf("quantity=%s, esperaba 3", items[0].Quantity)
	}
	if !items[0].Total.Equal(dec("37.50")) {
		t.Fatalf("total=%s, esperaba 37.50", items[0].Total)
	}
}

func TestAdd_CapturesPriceAtFirstAdd(t *testing.T) {
	c := New()
	c.Add("p1", "Coffee", "SKU-1", dec("10.00"))
	// price changed in the catalog between adds; the line keeps the first one
	c.Add("p1", "Coffee", "SKU-1", dec("99.00"))

	it := c.Items()[0]
	if !it.UnitPrice.Equal(dec("10.00")) {
		t.Fatalf("unit_price=%s, esperaba 10.00", it.UnitPrice)
	}
	if !it.Total.Equal(dec("20.00")) {
		t.Fatalf("total=%s, esperaba 20.00", it.Total)
	}
}

func TestScenarioA_TwoUnitsAt4990(t *testing.T) {
	c := New()
	c.Add("p1", "Produto", "SKU-1", dec("49.90"))
	c.Add("p1", "Produto", "SKU-1", dec("49.90"))

	if !c.Total().Equal(dec("99.80")) {
		t.Fatalf("total=%s, esperaba 99.80", c.Total())
	}
}

func TestChangeQuantity_FloorsAtZeroAndRemoves(t *testing.T) {
	c := New()
	c.Add("p1", "Coffee", "SKU-1", dec("5.00"))
	c.ChangeQuantity("p1", dec("2")) // qty 3

	if !c.Total().Equal(dec("15.00")) {
		t.Fatalf("total=%s, esperaba 15.00", c.Total())
	}

	c.ChangeQuantity("p1", dec("-10")) // floors at 0 -> removed
	if !c.Empty() {
		t.Fatalf("cart no quedó vacío tras llegar a 0")
	}
	if !c.Total().Equal(decimal.Zero) {
		t.Fatalf("total=%s, esperaba 0", c.Total())
	}
}

func TestChangeQuantity_UnknownIDIsNoop(t *testing.T) {
	c := New()
	c.Add("p1", "Coffee", "SKU-1", dec("5.00"))
	c.ChangeQuantity("missing", dec("1"))

	if c.Len() != 1 || !c.Total().Equal(dec("5.00")) {
		t.Fatalf("no-op esperado, total=%s len=%d", c.Total(), c.Len())
	}
}

func TestSetQuantity(t *testing.T) {
	c := New()
	c.Add("p1", "Rice", "SKU-1", dec("4.25"))

	c.SetQuantity("p1", dec("2.5")) // fractional, sold by weight
	if !c.Total().Equal(dec("10.625")) {
		t.Fatalf("total=%s, esperaba 10.625", c.Total())
	}

	c.SetQuantity("p1", dec("0"))
	if !c.Empty() {
		t.Fatalf("set 0 debía remover la línea")
	}
}

func TestRemove(t *testing.T) {
	c := New()
	c.Add("p1", "A", "S1", dec("1.00"))
	c.Add("p2", "B", "S2", dec("2.00"))

	c.Remove("p1")
	items := c.Items()
	if len(items) != 1 || items[0].ProductID != "p2" {
		t.Fatalf("remove dejó items=%v", items)
	}
	c.Remove("p1") // already gone, no-op
	if c.Len() != 1 {
		t.Fatalf("segundo remove no debía cambiar nada")
	}
}

func TestTotal_NoDriftAcrossMutations(t *testing.T) {
	c := New()
	c.Add("p1", "A", "S1", dec("0.10"))
	c.Add("p2", "B", "S2", dec("0.20"))
	for i := 0; i < 9; i++ {
		c.Add("p1", "A", "S1", dec("0.10"))
	}
	c.ChangeQuantity("p2", dec("4")) // qty 5
	c.SetQuantity("p1", dec("7"))
	c.Remove("p2")

	// 7 * 0.10, recomputed from line totals
	if !c.Total().Equal(dec("0.70")) {
		t.Fatalf("total=%s, esperaba 0.70", c.Total())
	}
	sum := decimal.Zero
	for _, it := range c.Items() {
		sum = sum.Add(it.Total)
	}
	if !sum.Equal(c.Total()) {
		t.Fatalf("total()=%s difiere de la suma de líneas %s", c.Total(), sum)
	}
}

func TestEmptyCart(t *testing.T) {
	c := New()
	if !c.Empty() || !c.Total().Equal(decimal.Zero) {
		t.Fatalf("cart nuevo debía estar vacío con total 0")
	}
}

func TestUnits(t *testing.T) {
	c := New()
	c.Add("p1", "A", "S1", dec("1.00"))
	c.Add("p1", "A", "S1", dec("1.00"))
	c.Add("p2", "B", "S2", dec("2.00"))

	if !c.Units().Equal(dec("3")) {
		t.Fatalf("units=%s, esperaba 3", c.Units())
	}
}
