package admin

import (
	"context"
	_ "embed"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"github.com/Werneck0live/vincipitch-dashboard/internal/apiclient"
	"github.com/Werneck0live/vincipitch-dashboard/internal/models"
	"github.com/Werneck0live/vincipitch-dashboard/internal/utils"
)

//go:embed seeds/empresas.json
var empresasJSON []byte

// Seeder é o que o seed precisa do cliente da API.
type Seeder interface {
	ListarEmpresas(ctx context.Context, p apiclient.ListarEmpresasParams) (apiclient.EmpresaPage, error)
	CriarEmpresa(ctx context.Context, in models.EmpresaCreate) (*models.Empresa, error)
}

type SeedReport struct {
	Criadas    int
	Existentes int
	Invalidas  int
}

func loadSeeds(raw []byte) ([]models.EmpresaCreate, error) {
	var items []models.EmpresaCreate
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// Idempotente: cria pelo backend as empresas de demonstração cujo nome
// ainda não existe; as demais são ignoradas.
func SeedEmpresas(ctx context.Context, api Seeder, log *slog.Logger) (SeedReport, error) {
	return seed(ctx, api, empresasJSON, log)
}

func seed(ctx context.Context, api Seeder, raw []byte, log *slog.Logger) (SeedReport, error) {
	var rep SeedReport
	items, err := loadSeeds(raw)
	if err != nil {
		return rep, err
	}

	lctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	page, err := api.ListarEmpresas(lctx, apiclient.ListarEmpresasParams{Limite: 200})
	cancel()
	if err != nil {
		return rep, err
	}
	existing := make(map[string]bool, len(page.Data))
	for _, e := range page.Data {
		existing[strings.ToLower(strings.TrimSpace(e.Nome))] = true
	}

	for _, s := range items {
		key := strings.ToLower(strings.TrimSpace(s.Nome))
		if key == "" || !s.Setor.Valid() {
			log.Warn("seed_skip_invalid", "nome", s.Nome, "setor", s.Setor)
			rep.Invalidas++
			continue
		}
		if s.CNPJ != "" {
			s.CNPJ = utils.SanitizeCNPJ(s.CNPJ)
			if !utils.ValidateCNPJ(s.CNPJ) {
				log.Warn("seed_skip_invalid_cnpj", "nome", s.Nome)
				rep.Invalidas++
				continue
			}
		}
		if existing[key] {
			log.Info("seed_empresa_exists", "nome", s.Nome)
			rep.Existentes++
			continue
		}

		// timeout curto por item pra não travar
		ictx, cancel := context.WithTimeout(ctx, 5*time.Second)
		e, err := api.CriarEmpresa(ictx, s)
		cancel()
		if err != nil {
			return rep, err
		}
		existing[key] = true
		rep.Criadas++
		log.Info("seed_empresa_created", "id", e.ID, "nome", s.Nome)
	}

	log.Info("seed_empresas_done", "criadas", rep.Criadas, "existentes", rep.Existentes, "invalidas", rep.Invalidas)
	return rep, nil
}
