package models

var SetoresLabels = map[Setor]string{
	SetorAgritech:         "AgriTech",
	SetorBiotech:          "BioTech",
	SetorConstrutech:      "ConsTech",
	SetorCosmeticaNatural: "Cosmética Natural",
	SetorCybersecurity:    "CyberSecurity",
	SetorEdtech:           "EdTech",
	SetorFintech:          "FinTech",
	SetorFoodtech:         "FoodTech",
	SetorGreentech:        "GreenTech",
	SetorHealthtech:       "HealthTech",
	SetorInsurtech:        "InsurTech",
	SetorLegaltech:        "LegalTech",
	SetorMartech:          "MarTech",
	SetorProptech:         "PropTech",
	SetorRetailtech:       "RetailTech",
	SetorOutro:            "Outro",
}

var EstagiosLabels = map[EstagioStartup]string{
	EstagioIdeacao:          "Ideação",
	EstagioValidacao:        "Validação",
	EstagioMVP:              "MVP",
	EstagioProductMarketFit: "Product-Market Fit",
	EstagioEscala:           "Escala",
	EstagioExpansao:         "Expansão",
	EstagioMaduro:           "Maduro",
}

var CriteriosLabels = map[string]string{
	CriterioSumarioExecutivo:       "Sumário Executivo",
	CriterioPropostaValor:          "Proposta de Valor",
	CriterioConcorrencia:           "Concorrência",
	CriterioMercadoAlvo:            "Mercado Alvo",
	CriterioCanaisDistribuicao:     "Canais de Distribuição",
	CriterioRelacionamentoClientes: "Relacionamento",
	CriterioFontesReceita:          "Fontes de Receita",
	CriterioRecursosPrincipais:     "Recursos Principais",
	CriterioAtividadesChave:        "Atividades-Chave",
	CriterioParceiros:              "Parceiros",
	CriterioEstruturaCustos:        "Estrutura de Custos",
	CriterioReferenciasIndicacao:   "Referências",
}

var ClassificacaoLabels = map[ClassificacaoRisco]string{
	ClassificacaoMuitoBaixo: "Muito Baixo",
	ClassificacaoBaixo:      "Baixo",
	ClassificacaoMedio:      "Médio",
	ClassificacaoAlto:       "Alto",
	ClassificacaoMuitoAlto:  "Muito Alto",
}

// SetorLabel cai no próprio código quando o setor não é conhecido.
func SetorLabel(s Setor) string {
	if l, ok := SetoresLabels[s]; ok {
		return l
	}
	return string(s)
}

func CriterioLabel(key string) string {
	if l, ok := CriteriosLabels[key]; ok {
		return l
	}
	return key
}
