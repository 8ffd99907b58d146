package ranking

import (
	"sort"

	"github.com/Werneck0live/vincipitch-dashboard/internal/models"
)

type DashboardStats struct {
	TotalEmpresas int          `json:"total_empresas"`
	MediaGeral    float64      `json:"media_geral"`
	TopSetor      models.Setor `json:"top_setor,omitempty"`
	Setores       int          `json:"setores"`
}

// Dashboard agrega as estatísticas por setor: a média geral é ponderada
// pelo número de empresas de cada setor.
func Dashboard(stats []models.EstatisticasSetor) DashboardStats {
	d := DashboardStats{Setores: len(stats)}
	weighted := 0.0
	for _, s := range stats {
		d.TotalEmpresas += s.TotalEmpresas
		weighted += s.MediaNota * float64(s.TotalEmpresas)
	}
	if d.TotalEmpresas > 0 {
		d.MediaGeral = weighted / float64(d.TotalEmpresas)
	}

	sorted := append([]models.EstatisticasSetor(nil), stats...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].MediaNota > sorted[j].MediaNota })
	if len(sorted) > 0 {
		d.TopSetor = sorted[0].Setor
	}
	return d
}
