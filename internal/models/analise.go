package models

type StatusAnalise string

const (
	StatusPendente    StatusAnalise = "pendente"
	StatusProcessando StatusAnalise = "processando"
	StatusConcluida   StatusAnalise = "concluida"
	StatusErro        StatusAnalise = "erro"
	StatusRevisao     StatusAnalise = "revisao"
)

// Terminal indica se o backend não vai mais mudar o status sozinho.
func (s StatusAnalise) Terminal() bool {
	return s == StatusConcluida || s == StatusErro
}

type ClassificacaoRisco string

const (
	ClassificacaoMuitoBaixo ClassificacaoRisco = "muito_baixo"
	ClassificacaoBaixo      ClassificacaoRisco = "baixo"
	ClassificacaoMedio      ClassificacaoRisco = "medio"
	ClassificacaoAlto       ClassificacaoRisco = "alto"
	ClassificacaoMuitoAlto  ClassificacaoRisco = "muito_alto"
)

// Chaves fixas dos doze critérios avaliados, na ordem de exibição.
const (
	CriterioSumarioExecutivo       = "sumario_executivo"
	CriterioPropostaValor          = "proposta_valor"
	CriterioConcorrencia           = "concorrencia"
	CriterioMercadoAlvo            = "mercado_alvo"
	CriterioCanaisDistribuicao     = "canais_distribuicao"
	CriterioRelacionamentoClientes = "relacionamento_clientes"
	CriterioFontesReceita          = "fontes_receita"
	CriterioRecursosPrincipais     = "recursos_principais"
	CriterioAtividadesChave        = "atividades_chave"
	CriterioParceiros              = "parceiros"
	CriterioEstruturaCustos        = "estrutura_custos"
	CriterioReferenciasIndicacao   = "referencias_indicacao"
)

var Criterios = []string{
	CriterioSumarioExecutivo,
	CriterioPropostaValor,
	CriterioConcorrencia,
	CriterioMercadoAlvo,
	CriterioCanaisDistribuicao,
	CriterioRelacionamentoClientes,
	CriterioFontesReceita,
	CriterioRecursosPrincipais,
	CriterioAtividadesChave,
	CriterioParceiros,
	CriterioEstruturaCustos,
	CriterioReferenciasIndicacao,
}

type Diagnostico struct {
	PontosFortes   []string `json:"pontos_fortes"`
	PontosFracos   []string `json:"pontos_fracos"`
	Oportunidades  []string `json:"oportunidades"`
	Ameacas        []string `json:"ameacas"`
	Recomendacoes  []string `json:"recomendacoes"`
	ProximosPassos []string `json:"proximos_passos"`
}

// Analise é o resultado do pipeline de IA para uma empresa.
// Notas vão de 0 a 4; nota_final já vem calculada pelo backend.
type Analise struct {
	ID          string `json:"id"`
	EmpresaID   string `json:"empresa_id"`
	DocumentoID string `json:"documento_id,omitempty"`

	NotaSumarioExecutivo       float64 `json:"nota_sumario_executivo"`
	NotaPropostaValor          float64 `json:"nota_proposta_valor"`
	NotaConcorrencia           float64 `json:"nota_concorrencia"`
	NotaMercadoAlvo            float64 `json:"nota_mercado_alvo"`
	NotaCanaisDistribuicao     float64 `json:"nota_canais_distribuicao"`
	NotaRelacionamentoClientes float64 `json:"nota_relacionamento_clientes"`
	NotaFontesReceita          float64 `json:"nota_fontes_receita"`
	NotaRecursosPrincipais     float64 `json:"nota_recursos_principais"`
	NotaAtividadesChave        float64 `json:"nota_atividades_chave"`
	NotaParceiros              float64 `json:"nota_parceiros"`
	NotaEstruturaCustos        float64 `json:"nota_estrutura_custos"`
	NotaReferenciasIndicacao   float64 `json:"nota_referencias_indicacao"`

	NotaFinal           *float64 `json:"nota_final,omitempty"`
	NotaFinalPercentual *float64 `json:"nota_final_percentual,omitempty"`

	JustificativaSumario        string `json:"justificativa_sumario,omitempty"`
	JustificativaProposta       string `json:"justificativa_proposta,omitempty"`
	JustificativaConcorrencia   string `json:"justificativa_concorrencia,omitempty"`
	JustificativaMercado        string `json:"justificativa_mercado,omitempty"`
	JustificativaCanais         string `json:"justificativa_canais,omitempty"`
	JustificativaRelacionamento string `json:"justificativa_relacionamento,omitempty"`
	JustificativaReceita        string `json:"justificativa_receita,omitempty"`
	JustificativaRecursos       string `json:"justificativa_recursos,omitempty"`
	JustificativaAtividades     string `json:"justificativa_atividades,omitempty"`
	JustificativaParceiros      string `json:"justificativa_parceiros,omitempty"`
	JustificativaCustos         string `json:"justificativa_custos,omitempty"`
	JustificativaReferencias    string `json:"justificativa_referencias,omitempty"`

	Diagnostico     Diagnostico `json:"diagnostico"`
	ResumoExecutivo string      `json:"resumo_executivo,omitempty"`

	ClassificacaoPotencial   ClassificacaoRisco `json:"classificacao_potencial,omitempty"`
	ClassificacaoRisco       ClassificacaoRisco `json:"classificacao_risco,omitempty"`
	RecomendacaoInvestimento string             `json:"recomendacao_investimento,omitempty"`
	PosicaoRankingGeral      *int               `json:"posicao_ranking_geral,omitempty"`
	PosicaoRankingSetor      *int               `json:"posicao_ranking_setor,omitempty"`

	Status    StatusAnalise `json:"status"`
	CreatedAt string        `json:"created_at,omitempty"`
	UpdatedAt string        `json:"updated_at,omitempty"`
}

// Notas devolve as doze notas indexadas pela chave do critério.
func (a *Analise) Notas() map[string]float64 {
	if a == nil {
		return nil
	}
	return map[string]float64{
		CriterioSumarioExecutivo:       a.NotaSumarioExecutivo,
		CriterioPropostaValor:          a.NotaPropostaValor,
		CriterioConcorrencia:           a.NotaConcorrencia,
		CriterioMercadoAlvo:            a.NotaMercadoAlvo,
		CriterioCanaisDistribuicao:     a.NotaCanaisDistribuicao,
		CriterioRelacionamentoClientes: a.NotaRelacionamentoClientes,
		CriterioFontesReceita:          a.NotaFontesReceita,
		CriterioRecursosPrincipais:     a.NotaRecursosPrincipais,
		CriterioAtividadesChave:        a.NotaAtividadesChave,
		CriterioParceiros:              a.NotaParceiros,
		CriterioEstruturaCustos:        a.NotaEstruturaCustos,
		CriterioReferenciasIndicacao:   a.NotaReferenciasIndicacao,
	}
}

func (a *Analise) Justificativas() map[string]string {
	if a == nil {
		return nil
	}
	return map[string]string{
		CriterioSumarioExecutivo:       a.JustificativaSumario,
		CriterioPropostaValor:          a.JustificativaProposta,
		CriterioConcorrencia:           a.JustificativaConcorrencia,
		CriterioMercadoAlvo:            a.JustificativaMercado,
		CriterioCanaisDistribuicao:     a.JustificativaCanais,
		CriterioRelacionamentoClientes: a.JustificativaRelacionamento,
		CriterioFontesReceita:          a.JustificativaReceita,
		CriterioRecursosPrincipais:     a.JustificativaRecursos,
		CriterioAtividadesChave:        a.JustificativaAtividades,
		CriterioParceiros:              a.JustificativaParceiros,
		CriterioEstruturaCustos:        a.JustificativaCustos,
		CriterioReferenciasIndicacao:   a.JustificativaReferencias,
	}
}
