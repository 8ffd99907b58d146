package handlers

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Werneck0live/vincipitch-dashboard/internal/models"
	"github.com/Werneck0live/vincipitch-dashboard/internal/utils"
)

// validateCreateDTO normaliza o CNPJ e confere os campos obrigatórios.
func validateCreateDTO(d *EmpresaCreateDTO) error {
	d.Nome = strings.TrimSpace(d.Nome)
	if d.Nome == "" {
		return errors.New("nome é obrigatório")
	}
	if d.Setor == "" {
		return errors.New("setor é obrigatório")
	}
	if !d.Setor.Valid() {
		return fmt.Errorf("setor inválido: %q", d.Setor)
	}
	if d.Estagio != "" && !d.Estagio.Valid() {
		return fmt.Errorf("estagio inválido: %q", d.Estagio)
	}
	if d.CNPJ != "" {
		cnpj := utils.SanitizeCNPJ(d.CNPJ)
		if !utils.ValidateCNPJ(cnpj) {
			return errors.New("cnpj inválido")
		}
		d.CNPJ = cnpj
	}
	return nil
}

func validateUpdateDTO(d *EmpresaUpdateDTO) error {
	if d.Nome != nil && strings.TrimSpace(*d.Nome) == "" {
		return errors.New("nome não pode ser vazio")
	}
	if d.Setor != nil && !d.Setor.Valid() {
		return fmt.Errorf("setor inválido: %q", *d.Setor)
	}
	if d.Estagio != nil && *d.Estagio != "" && !d.Estagio.Valid() {
		return fmt.Errorf("estagio inválido: %q", *d.Estagio)
	}
	if d.CNPJ != nil && *d.CNPJ != "" {
		cnpj := utils.SanitizeCNPJ(*d.CNPJ)
		if !utils.ValidateCNPJ(cnpj) {
			return errors.New("cnpj inválido")
		}
		d.CNPJ = &cnpj
	}
	return nil
}

func parseSetor(s string) (models.Setor, error) {
	if s == "" {
		return "", nil
	}
	setor := models.Setor(strings.ToLower(s))
	if !setor.Valid() {
		return "", fmt.Errorf("setor inválido: %q", s)
	}
	return setor, nil
}
