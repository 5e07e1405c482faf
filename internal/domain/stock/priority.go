package stock

// Priority nivel de prioridad derivado del puesto en el ranking de consumo.
type Priority string

// Niveles de prioridad.
const (
	PriorityHigh   Priority = "HIGH"
	PriorityMedium Priority = "MEDIUM"
	PriorityLow    Priority = "LOW"
)

// PriorityForRank: puestos 1–3 alta, 4–7 media, 8 en adelante baja.
func PriorityForRank(rank int) Priority {
	switch {
	case rank <= 3:
		return PriorityHigh
	case rank <= 7:
		return PriorityMedium
	default:
		return PriorityLow
	}
}

// Label etiqueta mostrada en el tablero de indicadores.
func (p Priority) Label() string {
	switch p {
	case PriorityHigh:
		return "Élevée"
	case PriorityMedium:
		return "Moyenne"
	case PriorityLow:
		return "Basse"
	}
	return string(p)
}
