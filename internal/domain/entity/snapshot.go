package entity

// Snapshot estado completo intercambiado con el almacenamiento.
// Solo los campos fuente son autoritativos; StockReal y DelayDays se recalculan al cargar.
type Snapshot struct {
	Products    []*Product
	Consumption []*ConsumptionRecord
	Orders      []*Order
}

// Clone copia profunda para que el almacenamiento no comparta punteros con el motor.
func (s *Snapshot) Clone() *Snapshot {
	if s == nil {
		return &Snapshot{}
	}
	out := &Snapshot{
		Products:    make([]*Product, 0, len(s.Products)),
		Consumption: make([]*ConsumptionRecord, 0, len(s.Consumption)),
		Orders:      make([]*Order, 0, len(s.Orders)),
	}
	for _, p := range s.Products {
		c := *p
		out.Products = append(out.Products, &c)
	}
	for _, r := range s.Consumption {
		c := *r
		out.Consumption = append(out.Consumption, &c)
	}
	for _, o := range s.Orders {
		out.Orders = append(out.Orders, o.Clone())
	}
	return out
}
