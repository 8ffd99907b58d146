package handlers

import "github.com/Werneck0live/vincipitch-dashboard/internal/models"

// somente os campos do contrato de criação
type EmpresaCreateDTO struct {
	Nome           string                `json:"nome"`
	Setor          models.Setor          `json:"setor"`
	NomeFantasia   string                `json:"nome_fantasia"`
	CNPJ           string                `json:"cnpj"`
	Website        string                `json:"website"`
	Linkedin       string                `json:"linkedin"`
	Subsetor       string                `json:"subsetor"`
	Estagio        models.EstagioStartup `json:"estagio"`
	Cidade         string                `json:"cidade"`
	Estado         string                `json:"estado"`
	DescricaoCurta string                `json:"descricao_curta"`
}

func (d EmpresaCreateDTO) model() models.EmpresaCreate {
	return models.EmpresaCreate{
		Nome:           d.Nome,
		Setor:          d.Setor,
		NomeFantasia:   d.NomeFantasia,
		CNPJ:           d.CNPJ,
		Website:        d.Website,
		Linkedin:       d.Linkedin,
		Subsetor:       d.Subsetor,
		Estagio:        d.Estagio,
		Cidade:         d.Cidade,
		Estado:         d.Estado,
		DescricaoCurta: d.DescricaoCurta,
	}
}

// Update parcial; o corpo é o próprio models.EmpresaUpdate.
type EmpresaUpdateDTO = models.EmpresaUpdate

type LoteDTO struct {
	EmpresaIDs []string `json:"empresa_ids"`
}

type CompararDTO struct {
	EmpresaAID string `json:"empresa_a_id"`
	EmpresaBID string `json:"empresa_b_id"`
}
