package dataset

import (
	"fmt"
	"strconv"
)

// Trend is the direction shown next to a KPI value.
type Trend string

const (
	TrendUp      Trend = "up"
	TrendDown    Trend = "down"
	TrendNeutral Trend = "neutral"
)

// KPI is one dashboard indicator card.
type KPI struct {
	Title      string `json:"title" yaml:"title"`
	Value      string `json:"value" yaml:"value"`
	Trend      Trend  `json:"trend" yaml:"trend"`
	TrendValue string `json:"trendValue,omitempty" yaml:"trendValue,omitempty"`
	Subtitle   string `json:"subtitle,omitempty" yaml:"subtitle,omitempty"`
}

// KPIs returns the indicator cards for a role.
func KPIs(role Role) ([]KPI, error) {
	switch role {
	case RoleMotorista:
		return motoristaKPIs(), nil
	case RoleInvestidor:
		return investidorKPIs(carrosAlugados(), veiculos()), nil
	default:
		return nil, fmt.Errorf("unknown role %q (expected %s or %s)", role, RoleMotorista, RoleInvestidor)
	}
}

func motoristaKPIs() []KPI {
	return []KPI{
		{Title: "Ganhos este mês", Value: "R$ 4.250", Trend: TrendUp, TrendValue: "+12%", Subtitle: "Comparado ao mês anterior"},
		{Title: "Dias trabalhados", Value: "22", Trend: TrendNeutral, Subtitle: "Neste mês"},
		{Title: "Média diária", Value: "R$ 193", Trend: TrendUp, TrendValue: "+8%", Subtitle: "Últimos 30 dias"},
		{Title: "Horas rodadas", Value: "176h", Trend: TrendUp, TrendValue: "+5%", Subtitle: "Este mês"},
	}
}

// investidorKPIs derives the fleet counters from the rental and vehicle
// datasets; the revenue cards are fixed figures.
func investidorKPIs(rentals, fleet Dataset) []KPI {
	active := 0
	for _, r := range rentals.Rows {
		if s, _ := r.Get("status").Str(); s == "Ativo" {
			active++
		}
	}
	return []KPI{
		{Title: "Total de Carros", Value: strconv.Itoa(len(fleet.Rows)), Trend: TrendNeutral, Subtitle: "Frota total"},
		{Title: "Carros Alugados", Value: strconv.Itoa(active), Trend: TrendUp, TrendValue: "+2", Subtitle: "Ativos este mês"},
		{Title: "Receita Mensal", Value: "R$ 15.650", Trend: TrendUp, TrendValue: "+8%", Subtitle: "Dezembro 2024"},
		{Title: "Receita Anual", Value: "R$ 168.750", Trend: TrendUp, TrendValue: "+15%", Subtitle: "2024"},
	}
}
