package handlers

import (
	"github.com/Werneck0live/vincipitch-dashboard/internal/format"
	"github.com/Werneck0live/vincipitch-dashboard/internal/models"
	"github.com/Werneck0live/vincipitch-dashboard/internal/utils"
)

// EmpresaView acrescenta ao payload do backend os textos já formatados
// que o painel exibe.
type EmpresaView struct {
	*models.Empresa
	Exibicao EmpresaExibicao `json:"exibicao"`
}

type EmpresaExibicao struct {
	Nome         string `json:"nome"`
	Iniciais     string `json:"iniciais"`
	CNPJ         string `json:"cnpj"`
	Setor        string `json:"setor"`
	Estagio      string `json:"estagio"`
	Faturamento  string `json:"faturamento"`
	Valuation    string `json:"valuation"`
	Funcionarios string `json:"funcionarios"`
}

func empresaView(e *models.Empresa) EmpresaView {
	v := EmpresaView{Empresa: e}
	if e == nil {
		return v
	}
	v.Exibicao = EmpresaExibicao{
		Nome:        e.DisplayName(),
		Iniciais:    format.Initials(e.DisplayName()),
		CNPJ:        format.Empty,
		Setor:       models.SetorLabel(e.Setor),
		Estagio:     format.Empty,
		Faturamento: format.Currency(e.FaturamentoAnual),
		Valuation:   format.Currency(e.Valuation),
	}
	if e.CNPJ != "" {
		v.Exibicao.CNPJ = utils.FormatCNPJ(e.CNPJ)
	}
	if l, ok := models.EstagiosLabels[e.Estagio]; ok {
		v.Exibicao.Estagio = l
	}
	var n *float64
	if e.NumeroFuncionarios != nil {
		f := float64(*e.NumeroFuncionarios)
		n = &f
	}
	v.Exibicao.Funcionarios = format.Number(n)
	return v
}

type AnaliseView struct {
	*models.Analise
	Exibicao AnaliseExibicao `json:"exibicao"`
}

type AnaliseExibicao struct {
	NotaFinal    string         `json:"nota_final"`
	Percentual   string         `json:"percentual"`
	CorNota      string         `json:"cor_nota"`
	CorNotaFundo string         `json:"cor_nota_fundo"`
	CorRisco     string         `json:"cor_risco"`
	Criterios    []CriterioView `json:"criterios"`
}

type CriterioView struct {
	Chave         string  `json:"chave"`
	Label         string  `json:"label"`
	Nota          float64 `json:"nota"`
	Cor           string  `json:"cor"`
	Justificativa string  `json:"justificativa,omitempty"`
}

func analiseView(a *models.Analise) AnaliseView {
	v := AnaliseView{Analise: a}
	if a == nil {
		return v
	}
	v.Exibicao = AnaliseExibicao{
		NotaFinal:  format.Nota(a.NotaFinal),
		Percentual: format.Percent(a.NotaFinalPercentual),
		CorRisco:   format.RiscoColor(string(a.ClassificacaoRisco)),
	}
	if a.NotaFinal != nil {
		v.Exibicao.CorNota = format.NotaColor(*a.NotaFinal)
		v.Exibicao.CorNotaFundo = format.NotaBgColor(*a.NotaFinal)
	}

	notas, just := a.Notas(), a.Justificativas()
	v.Exibicao.Criterios = make([]CriterioView, 0, len(models.Criterios))
	for _, key := range models.Criterios {
		v.Exibicao.Criterios = append(v.Exibicao.Criterios, CriterioView{
			Chave:         key,
			Label:         models.CriterioLabel(key),
			Nota:          notas[key],
			Cor:           format.NotaColor(notas[key]),
			Justificativa: just[key],
		})
	}
	return v
}
