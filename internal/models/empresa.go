package models

type Setor string

const (
	SetorAgritech         Setor = "agritech"
	SetorBiotech          Setor = "biotech"
	SetorConstrutech      Setor = "construtech"
	SetorCosmeticaNatural Setor = "cosmetica_natural"
	SetorCybersecurity    Setor = "cybersecurity"
	SetorEdtech           Setor = "edtech"
	SetorFintech          Setor = "fintech"
	SetorFoodtech         Setor = "foodtech"
	SetorGreentech        Setor = "greentech"
	SetorHealthtech       Setor = "healthtech"
	SetorInsurtech        Setor = "insurtech"
	SetorLegaltech        Setor = "legaltech"
	SetorMartech          Setor = "martech"
	SetorProptech         Setor = "proptech"
	SetorRetailtech       Setor = "retailtech"
	SetorOutro            Setor = "outro"
)

// Setores lista os códigos de setor aceitos pelo backend, na ordem de exibição.
var Setores = []Setor{
	SetorAgritech, SetorBiotech, SetorConstrutech, SetorCosmeticaNatural,
	SetorCybersecurity, SetorEdtech, SetorFintech, SetorFoodtech,
	SetorGreentech, SetorHealthtech, SetorInsurtech, SetorLegaltech,
	SetorMartech, SetorProptech, SetorRetailtech, SetorOutro,
}

func (s Setor) Valid() bool {
	_, ok := SetoresLabels[s]
	return ok
}

type EstagioStartup string

const (
	EstagioIdeacao          EstagioStartup = "ideacao"
	EstagioValidacao        EstagioStartup = "validacao"
	EstagioMVP              EstagioStartup = "mvp"
	EstagioProductMarketFit EstagioStartup = "product_market_fit"
	EstagioEscala           EstagioStartup = "escala"
	EstagioExpansao         EstagioStartup = "expansao"
	EstagioMaduro           EstagioStartup = "maduro"
)

func (e EstagioStartup) Valid() bool {
	_, ok := EstagiosLabels[e]
	return ok
}

// Empresa é a startup cadastrada no backend. O dashboard só guarda cópias
// de leitura enquanto a requisição dura.
type Empresa struct {
	ID                 string         `json:"id"`
	Nome               string         `json:"nome"`
	NomeFantasia       string         `json:"nome_fantasia,omitempty"`
	CNPJ               string         `json:"cnpj,omitempty"`
	Website            string         `json:"website,omitempty"`
	Linkedin           string         `json:"linkedin,omitempty"`
	Setor              Setor          `json:"setor"`
	Subsetor           string         `json:"subsetor,omitempty"`
	Estagio            EstagioStartup `json:"estagio,omitempty"`
	Cidade             string         `json:"cidade,omitempty"`
	Estado             string         `json:"estado,omitempty"`
	Pais               string         `json:"pais,omitempty"`
	AnoFundacao        *int           `json:"ano_fundacao,omitempty"`
	NumeroFuncionarios *int           `json:"numero_funcionarios,omitempty"`
	FaturamentoAnual   *float64       `json:"faturamento_anual,omitempty"`
	FaturamentoMensal  *float64       `json:"faturamento_mensal,omitempty"`
	MRR                *float64       `json:"mrr,omitempty"`
	ARR                *float64       `json:"arr,omitempty"`
	Valuation          *float64       `json:"valuation,omitempty"`
	RunwayMeses        *int           `json:"runway_meses,omitempty"`
	CapitalLevantado   *float64       `json:"capital_levantado,omitempty"`
	RodadaAtual        string         `json:"rodada_atual,omitempty"`
	Investidores       []string       `json:"investidores,omitempty"`
	NumeroClientes     *int           `json:"numero_clientes,omitempty"`
	NumeroUsuarios     *int           `json:"numero_usuarios,omitempty"`
	CAC                *float64       `json:"cac,omitempty"`
	LTV                *float64       `json:"ltv,omitempty"`
	ChurnRate          *float64       `json:"churn_rate,omitempty"`
	NPSScore           *float64       `json:"nps_score,omitempty"`
	Tags               []string       `json:"tags,omitempty"`
	DescricaoCurta     string         `json:"descricao_curta,omitempty"`
	CreatedAt          string         `json:"created_at"`
	UpdatedAt          string         `json:"updated_at"`
}

// DisplayName escolhe o nome a exibir (nome fantasia tem prioridade).
func (e *Empresa) DisplayName() string {
	if e == nil {
		return ""
	}
	if e.NomeFantasia != "" {
		return e.NomeFantasia
	}
	return e.Nome
}

// somente os campos do contrato de criação
type EmpresaCreate struct {
	Nome           string         `json:"nome"`
	Setor          Setor          `json:"setor"`
	NomeFantasia   string         `json:"nome_fantasia,omitempty"`
	CNPJ           string         `json:"cnpj,omitempty"`
	Website        string         `json:"website,omitempty"`
	Linkedin       string         `json:"linkedin,omitempty"`
	Subsetor       string         `json:"subsetor,omitempty"`
	Estagio        EstagioStartup `json:"estagio,omitempty"`
	Cidade         string         `json:"cidade,omitempty"`
	Estado         string         `json:"estado,omitempty"`
	DescricaoCurta string         `json:"descricao_curta,omitempty"`
}

// Update parcial; ponteiros distinguem "omitido" de "informado".
type EmpresaUpdate struct {
	Nome           *string         `json:"nome,omitempty"`
	Setor          *Setor          `json:"setor,omitempty"`
	NomeFantasia   *string         `json:"nome_fantasia,omitempty"`
	CNPJ           *string         `json:"cnpj,omitempty"`
	Website        *string         `json:"website,omitempty"`
	Linkedin       *string         `json:"linkedin,omitempty"`
	Subsetor       *string         `json:"subsetor,omitempty"`
	Estagio        *EstagioStartup `json:"estagio,omitempty"`
	Cidade         *string         `json:"cidade,omitempty"`
	Estado         *string         `json:"estado,omitempty"`
	DescricaoCurta *string         `json:"descricao_curta,omitempty"`
}

type Documento struct {
	ID                string   `json:"id"`
	EmpresaID         string   `json:"empresa_id"`
	NomeArquivo       string   `json:"nome_arquivo"`
	TipoArquivo       string   `json:"tipo_arquivo"`
	TamanhoBytes      int64    `json:"tamanho_bytes"`
	StoragePath       string   `json:"storage_path"`
	Processado        bool     `json:"processado"`
	QualidadeExtracao *float64 `json:"qualidade_extracao,omitempty"`
	NumeroPaginas     *int     `json:"numero_paginas,omitempty"`
	CreatedAt         string   `json:"created_at"`
}
