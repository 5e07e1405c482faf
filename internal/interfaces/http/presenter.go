package http

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/colorstock/internal/application/dto"
	"github.com/jhoicas/colorstock/internal/application/inventory"
	"github.com/jhoicas/colorstock/internal/domain"
	"github.com/jhoicas/colorstock/internal/domain/entity"
)

// ── parámetros ───────────────────────────────────────────────────────────────

func kindParam(c *fiber.Ctx) (entity.ProductKind, error) {
	return parseKind(c.Params("kind"))
}

func parseKind(s string) (entity.ProductKind, error) {
	kind, ok := entity.ParseProductKind(s)
	if !ok {
		return "", fmt.Errorf("%w: familia %q desconocida (colorant | auxiliary)", domain.ErrValidation, s)
	}
	return kind, nil
}

func parseStatus(s string) (entity.OrderStatus, error) {
	st, ok := entity.ParseOrderStatus(s)
	if !ok {
		return "", fmt.Errorf("%w: estado %q desconocido", domain.ErrValidation, s)
	}
	return st, nil
}

// intQuery lee un entero de la query; vacío devuelve def.
func intQuery(c *fiber.Ctx, key string, def int) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s debe ser un entero", domain.ErrValidation, key)
	}
	return n, nil
}

// ── mapeo a DTO ──────────────────────────────────────────────────────────────

func toProductResponse(p entity.Product) dto.ProductResponse {
	return dto.ProductResponse{
		Kind:         string(p.Kind),
		KindLabel:    p.Kind.Label(),
		Reference:    p.Reference,
		Name:         p.Name,
		StockInitial: p.StockInitial,
		StockMin:     p.StockMin,
		StockReal:    p.StockReal,
		DateEntered:  entity.FormatDate(p.DateEntered),
		Alert:        inventory.Evaluate(p),
	}
}

func toConsumptionResponse(r entity.ConsumptionRecord, name string) dto.ConsumptionResponse {
	return dto.ConsumptionResponse{
		ID:         r.ID,
		Kind:       string(r.Kind),
		KindLabel:  r.Kind.Label(),
		ProductRef: r.ProductRef,
		Name:       name,
		Date:       entity.FormatDate(r.Date),
		Qty:        r.Qty,
	}
}

func toConsumptionResult(res inventory.ConsumptionResult) dto.ConsumptionResultResponse {
	out := dto.ConsumptionResultResponse{Alert: res.Alert}
	name := ""
	if res.Product != nil {
		p := toProductResponse(*res.Product)
		out.Product = &p
		name = res.Product.Name
	}
	out.Consumption = toConsumptionResponse(res.Record, name)
	return out
}

func toOrderResponse(o *entity.Order) dto.OrderResponse {
	out := dto.OrderResponse{
		Reference:   o.Reference,
		ColorCode:   o.ColorCode,
		DateIn:      entity.FormatDate(o.DateIn),
		DelayDays:   o.DelayDays,
		Status:      string(o.Status),
		StatusLabel: o.Status.Label(),
		Note:        o.Note,
	}
	if o.DateOut != nil {
		s := entity.FormatDate(*o.DateOut)
		out.DateOut = &s
	}
	return out
}

func toAlerts(alerts []inventory.Alert) []dto.AlertResponse {
	out := make([]dto.AlertResponse, 0, len(alerts))
	for _, a := range alerts {
		out = append(out, dto.AlertResponse{
			Kind: string(a.Kind), Reference: a.Reference, Name: a.Name, Current: a.Current, Min: a.Min,
		})
	}
	return out
}

func toRanks(ranks []inventory.ConsumptionRank) []dto.ConsumptionRankResponse {
	out := make([]dto.ConsumptionRankResponse, 0, len(ranks))
	for _, r := range ranks {
		out = append(out, dto.ConsumptionRankResponse{
			Rank:          r.Rank,
			Kind:          string(r.Kind),
			Reference:     r.Reference,
			Name:          r.Name,
			Total:         r.Total,
			Priority:      string(r.Priority),
			PriorityLabel: r.Priority.Label(),
		})
	}
	return out
}

func toReportRows(rows []inventory.ReportRow) []dto.ReportRowResponse {
	out := make([]dto.ReportRowResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.ReportRowResponse{
			Kind:         string(r.Kind),
			Reference:    r.Reference,
			Name:         r.Name,
			StockInitial: r.StockInitial,
			StockReal:    r.StockReal,
			StockMin:     r.StockMin,
			Status:       r.Status,
		})
	}
	return out
}
