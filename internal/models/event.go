package models

// TipoEvento identifica o que aconteceu no canal de eventos.
type TipoEvento string

const (
	EventoAnaliseConcluida  TipoEvento = "analise_concluida"
	EventoRankingAtualizado TipoEvento = "ranking_atualizado"
	EventoNovaEmpresa       TipoEvento = "nova_empresa"
	EventoErro              TipoEvento = "erro"
)

// AnalysisEvent é o payload publicado no broker quando uma análise (ou
// empresa) muda de estado.
type AnalysisEvent struct {
	Tipo           TipoEvento    `json:"tipo"`
	AnaliseID      string        `json:"analise_id,omitempty"`
	EmpresaID      string        `json:"empresa_id"`
	EmpresaNome    string        `json:"empresa_nome,omitempty"`
	Status         StatusAnalise `json:"status,omitempty"`
	StatusAnterior StatusAnalise `json:"status_anterior,omitempty"`
	NotaFinal      *float64      `json:"nota_final,omitempty"`
	Timestamp      string        `json:"timestamp,omitempty"`
}
