// Package dataset provides the built-in mock records behind the driver and
// investor dashboards, each paired with the column schema used to show it.
package dataset

import (
	"errors"
	"fmt"
	"sort"

	"github.com/oakwood-commons/frota/internal/render"
	"github.com/oakwood-commons/frota/pkg/tabview"
)

// ErrUnknownDataset is returned by Get for names that are not registered.
var ErrUnknownDataset = errors.New("unknown dataset")

// Role is a dashboard audience.
type Role string

const (
	RoleMotorista  Role = "motorista"
	RoleInvestidor Role = "investidor"
)

// Dataset is a titled row collection with its column schema.
type Dataset struct {
	Name        string
	Title       string
	Role        Role
	Description string
	Columns     []tabview.ColumnSpec
	Rows        []tabview.Row
}

// View builds a fresh view over the dataset.
func (d Dataset) View(opts ...tabview.Option) *tabview.View {
	base := []tabview.Option{
		tabview.WithColumns(d.Columns...),
		tabview.WithData(d.Rows),
		tabview.WithTitle(d.Title),
	}
	return tabview.New(append(base, opts...)...)
}

type builder func() Dataset

var registry = map[string]builder{
	"pagamentos":      pagamentos,
	"carros-alugados": carrosAlugados,
	"receita-mensal":  receitaMensal,
	"veiculos":        veiculos,
	"multas":          multas,
	"manutencoes":     manutencoes,
}

// Names lists the registered datasets in sorted order.
func Names() []string {
	out := make([]string, 0, len(registry))
	for k := range registry {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Get returns a fresh copy of the named dataset.
func Get(name string) (Dataset, error) {
	b, ok := registry[name]
	if !ok {
		return Dataset{}, fmt.Errorf("%w: %q", ErrUnknownDataset, name)
	}
	return b(), nil
}

// All returns every dataset in name order.
func All() []Dataset {
	names := Names()
	out := make([]Dataset, len(names))
	for i, n := range names {
		out[i] = registry[n]()
	}
	return out
}

func rows(records ...map[string]any) []tabview.Row {
	out := make([]tabview.Row, len(records))
	for i, r := range records {
		out[i] = tabview.RowOf(r)
	}
	return out
}

func pagamentos() Dataset {
	return Dataset{
		Name:        "pagamentos",
		Title:       "Histórico de Pagamentos",
		Role:        RoleMotorista,
		Description: "driver payment history",
		Columns: []tabview.ColumnSpec{
			{Key: "data", Label: "Data", Sortable: true, Renderer: render.Date},
			{Key: "periodo", Label: "Período"},
			{Key: "tipo", Label: "Tipo", Sortable: true},
			{Key: "valor", Label: "Valor", Sortable: true, Renderer: render.Currency},
			{Key: "status", Label: "Status", Sortable: true, Renderer: render.Status},
			{Key: "acoes", Label: "Ações", Renderer: render.PaymentActions},
		},
		Rows: rows(
			map[string]any{"id": 1, "data": "2024-12-15", "valor": 850, "status": "Pago", "tipo": "Diária", "periodo": "01-15/12/2024"},
			map[string]any{"id": 2, "data": "2024-12-01", "valor": 850, "status": "Pago", "tipo": "Diária", "periodo": "16-30/11/2024"},
			map[string]any{"id": 3, "data": "2025-01-01", "valor": 850, "status": "Pendente", "tipo": "Diária", "periodo": "16-31/12/2024"},
		),
	}
}

func carrosAlugados() Dataset {
	return Dataset{
		Name:        "carros-alugados",
		Title:       "Carros Alugados",
		Role:        RoleInvestidor,
		Description: "investor fleet rentals",
		Columns: []tabview.ColumnSpec{
			{Key: "veiculo", Label: "Veículo", Sortable: true},
			{Key: "placa", Label: "Placa", Sortable: true},
			{Key: "motorista", Label: "Motorista", Sortable: true},
			{Key: "dataInicio", Label: "Início", Sortable: true, Renderer: render.Date},
			{Key: "dataTermino", Label: "Término", Sortable: true, Renderer: render.Date},
			{Key: "valor", Label: "Valor/Mês", Sortable: true, Renderer: render.Currency},
			{Key: "status", Label: "Status", Sortable: true, Renderer: render.Status},
			{Key: "acoes", Label: "Ações", Renderer: render.DetailsAction},
		},
		Rows: rows(
			map[string]any{"id": 1, "veiculo": "Toyota Corolla 2022", "placa": "ABC-1234", "motorista": "João Silva", "dataInicio": "2024-12-01", "dataTermino": "2024-12-31", "valor": 850, "status": "Ativo"},
			map[string]any{"id": 2, "veiculo": "Honda Civic 2023", "placa": "DEF-5678", "motorista": "Maria Santos", "dataInicio": "2024-12-15", "dataTermino": "2025-01-15", "valor": 900, "status": "Ativo"},
			map[string]any{"id": 3, "veiculo": "Hyundai HB20 2021", "placa": "GHI-9012", "motorista": "Carlos Oliveira", "dataInicio": "2024-12-10", "dataTermino": "2025-01-10", "valor": 750, "status": "Ativo"},
			map[string]any{"id": 4, "veiculo": "Nissan Versa 2022", "placa": "JKL-3456", "motorista": "-", "dataInicio": "-", "dataTermino": "-", "valor": 800, "status": "Disponível"},
		),
	}
}

func receitaMensal() Dataset {
	months := []string{"Jan", "Fev", "Mar", "Abr", "Mai", "Jun", "Jul", "Ago", "Set", "Out", "Nov", "Dez"}
	receita := []int{7200, 7800, 8100, 7500, 8300, 8600, 8200, 8900, 9100, 8800, 9200, 8750}
	recs := make([]map[string]any, len(months))
	for i, m := range months {
		recs[i] = map[string]any{"ordem": i + 1, "mes": m, "receita": receita[i]}
	}
	return Dataset{
		Name:        "receita-mensal",
		Title:       "Receita Mensal",
		Role:        RoleInvestidor,
		Description: "investor monthly revenue for 2024",
		Columns: []tabview.ColumnSpec{
			{Key: "mes", Label: "Mês"},
			{Key: "receita", Label: "Receita", Sortable: true, Renderer: render.Currency},
		},
		Rows: rows(recs...),
	}
}

func veiculos() Dataset {
	return Dataset{
		Name:        "veiculos",
		Title:       "Veículos",
		Role:        RoleInvestidor,
		Description: "fleet vehicles owned by the investor",
		Columns: []tabview.ColumnSpec{
			{Key: "marca", Label: "Marca", Sortable: true},
			{Key: "modelo", Label: "Modelo", Sortable: true},
			{Key: "ano", Label: "Ano", Sortable: true},
			{Key: "placa", Label: "Placa", Sortable: true, Renderer: render.Upper},
			{Key: "cor", Label: "Cor", Sortable: true},
			{Key: "status", Label: "Status", Sortable: true, Renderer: render.Status},
			{Key: "localizacao", Label: "Localização"},
		},
		Rows: rows(
			map[string]any{"id": "v1", "marca": "Toyota", "modelo": "Corolla", "ano": 2022, "placa": "abc-1234", "cor": "Branco", "status": "alugado", "localizacao": "São Paulo", "renavam": nil, "chassi": nil},
			map[string]any{"id": "v2", "marca": "Honda", "modelo": "Civic", "ano": 2023, "placa": "def-5678", "cor": "Prata", "status": "alugado", "localizacao": "São Paulo", "renavam": "00912345678", "chassi": nil},
			map[string]any{"id": "v3", "marca": "Hyundai", "modelo": "HB20", "ano": 2021, "placa": "ghi-9012", "cor": "Preto", "status": "alugado", "localizacao": "Campinas", "renavam": nil, "chassi": nil},
			map[string]any{"id": "v4", "marca": "Nissan", "modelo": "Versa", "ano": 2022, "placa": "jkl-3456", "cor": "Cinza", "status": "disponível", "localizacao": nil, "renavam": nil, "chassi": nil},
		),
	}
}

func multas() Dataset {
	return Dataset{
		Name:        "multas",
		Title:       "Multas",
		Role:        RoleMotorista,
		Description: "traffic fines linked to vehicles and drivers",
		Columns: []tabview.ColumnSpec{
			{Key: "data_multa", Label: "Data", Sortable: true, Renderer: render.Date},
			{Key: "hora_multa", Label: "Hora"},
			{Key: "local_multa", Label: "Local", Sortable: true},
			{Key: "descricao", Label: "Descrição"},
			{Key: "valor", Label: "Valor", Sortable: true, Renderer: render.Currency},
			{Key: "status", Label: "Status", Sortable: true, Renderer: render.Status},
		},
		Rows: rows(
			map[string]any{"id": "m1", "id_veiculo": "v1", "id_motorista": "d1", "data_multa": "2024-11-20", "hora_multa": "14:32", "local_multa": "Av. Paulista", "descricao": "Excesso de velocidade", "valor": 130.16, "status": "Pago"},
			map[string]any{"id": "m2", "id_veiculo": "v2", "id_motorista": "d2", "data_multa": "2024-12-03", "hora_multa": "08:10", "local_multa": "Marginal Tietê", "descricao": "Estacionamento irregular", "valor": 195.23, "status": "Pendente"},
		),
	}
}

func manutencoes() Dataset {
	return Dataset{
		Name:        "manutencoes",
		Title:       "Manutenções",
		Role:        RoleInvestidor,
		Description: "vehicle maintenance log",
		Columns: []tabview.ColumnSpec{
			{Key: "data_inicio", Label: "Início", Sortable: true, Renderer: render.Date},
			{Key: "data_fim", Label: "Fim", Sortable: true, Renderer: render.Date},
			{Key: "tipo_manutencao", Label: "Tipo", Sortable: true},
			{Key: "oficina", Label: "Oficina", Sortable: true},
			{Key: "custo", Label: "Custo", Sortable: true, Renderer: render.Currency},
			{Key: "status", Label: "Status", Sortable: true, Renderer: render.Status},
		},
		Rows: rows(
			map[string]any{"id": "mt1", "id_veiculo": "v1", "data_inicio": "2024-10-02", "data_fim": "2024-10-03", "tipo_manutencao": "Preventiva", "descricao": "Troca de óleo", "custo": 320, "oficina": "Auto Center Sul", "status": "Concluída"},
			map[string]any{"id": "mt2", "id_veiculo": "v3", "data_inicio": "2024-12-18", "data_fim": nil, "tipo_manutencao": "Corretiva", "descricao": "Freios", "custo": 890.5, "oficina": "Oficina Campinas", "status": "Em andamento"},
		),
	}
}
