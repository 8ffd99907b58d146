package models

type TipoRanking string

const (
	RankingGeral       TipoRanking = "geral"
	RankingSetor       TipoRanking = "setor"
	RankingCustomizado TipoRanking = "customizado"
)

type RankingItem struct {
	Posicao                *int           `json:"posicao,omitempty"`
	ID                     string         `json:"id"`
	Nome                   string         `json:"nome"`
	Setor                  Setor          `json:"setor"`
	Estagio                EstagioStartup `json:"estagio,omitempty"`
	NotaFinal              float64        `json:"nota_final"`
	NotaFinalPercentual    *float64       `json:"nota_final_percentual,omitempty"`
	ClassificacaoPotencial string         `json:"classificacao_potencial,omitempty"`
	ClassificacaoRisco     string         `json:"classificacao_risco,omitempty"`
	Variacao               *float64       `json:"variacao,omitempty"`
	FaturamentoAnual       *float64       `json:"faturamento_anual,omitempty"`
	Resumo                 string         `json:"resumo,omitempty"`
}

type RankingResponse struct {
	Tipo         TipoRanking          `json:"tipo"`
	Setor        string               `json:"setor,omitempty"`
	Items        []RankingItem        `json:"items"`
	Total        int                  `json:"total"`
	Estatisticas *EstatisticasRanking `json:"estatisticas,omitempty"`
}

type EstatisticasRanking struct {
	Media        float64 `json:"media"`
	Mediana      float64 `json:"mediana"`
	DesvioPadrao float64 `json:"desvio_padrao"`
}

type EstatisticasSetor struct {
	Setor            Setor    `json:"setor"`
	TotalEmpresas    int      `json:"total_empresas"`
	MediaNota        float64  `json:"media_nota"`
	MenorNota        float64  `json:"menor_nota"`
	MaiorNota        float64  `json:"maior_nota"`
	DesvioPadrao     float64  `json:"desvio_padrao"`
	MediaFaturamento *float64 `json:"media_faturamento,omitempty"`
}

type FiltrosRanking struct {
	Setores                []Setor              `json:"setores,omitempty"`
	Estagios               []EstagioStartup     `json:"estagios,omitempty"`
	NotaMinima             *float64             `json:"nota_minima,omitempty"`
	NotaMaxima             *float64             `json:"nota_maxima,omitempty"`
	FaturamentoMinimo      *float64             `json:"faturamento_minimo,omitempty"`
	FaturamentoMaximo      *float64             `json:"faturamento_maximo,omitempty"`
	ClassificacaoPotencial []ClassificacaoRisco `json:"classificacao_potencial,omitempty"`
	ClassificacaoRisco     []ClassificacaoRisco `json:"classificacao_risco,omitempty"`
	OrdenarPor             string               `json:"ordenar_por,omitempty"`
	Direcao                string               `json:"direcao,omitempty"`
	Limite                 int                  `json:"limite,omitempty"`
	Offset                 int                  `json:"offset,omitempty"`
}

// Comparacao é calculada pelo backend; o vencedor por critério usa o sinal
// estrito da diferença.
type Comparacao struct {
	ID              string                         `json:"id,omitempty"`
	EmpresaAID      string                         `json:"empresa_a_id"`
	EmpresaBID      string                         `json:"empresa_b_id"`
	EmpresaA        *Empresa                       `json:"empresa_a,omitempty"`
	EmpresaB        *Empresa                       `json:"empresa_b,omitempty"`
	VencedorID      string                         `json:"vencedor_id,omitempty"`
	MargemDiferenca *float64                       `json:"margem_diferenca,omitempty"`
	Comparativo     map[string]ComparativoCriterio `json:"comparativo"`
	VitoriasA       *int                           `json:"vitorias_a,omitempty"`
	VitoriasB       *int                           `json:"vitorias_b,omitempty"`
	JustificativaIA string                         `json:"justificativa_ia,omitempty"`
	CreatedAt       string                         `json:"created_at,omitempty"`
}

type ComparativoCriterio struct {
	NotaA     float64 `json:"nota_a"`
	NotaB     float64 `json:"nota_b"`
	Diferenca float64 `json:"diferenca"`
	Vencedor  string  `json:"vencedor,omitempty"`
}
