package ranking

import "strings"

const DefaultSectorColor = "#94A3B8"

// Cores fixas por setor, iguais em todas as telas e exportações.
var sectorColors = map[string]string{
	"fintech":     "#00E676",
	"healthtech":  "#38BDF8",
	"edtech":      "#818CF8",
	"retailtech":  "#F472B6",
	"logtech":     "#FB923C",
	"agrotech":    "#A3E635",
	"construtech": "#FACC15",
	"energytech":  "#2DD4BF",
	"hrtech":      "#C084FC",
	"legaltech":   "#F87171",
	"insurtech":   "#4ADE80",
	"proptech":    "#60A5FA",
	"govtech":     "#A78BFA",
	"martech":     "#FB7185",
	"foodtech":    "#34D399",
	"traveltech":  "#FBBF24",
	"sporttech":   "#F97316",
	"autotech":    "#6366F1",
	"cleantech":   "#10B981",
	"biotech":     "#EC4899",
	"outro":       DefaultSectorColor,
}

func SectorColor(setor string) string {
	if c, ok := sectorColors[strings.ToLower(setor)]; ok {
		return c
	}
	return DefaultSectorColor
}

// SectorColors devolve uma cópia da tabela.
func SectorColors() map[string]string {
	out := make(map[string]string, len(sectorColors))
	for k, v := range sectorColors {
		out[k] = v
	}
	return out
}
