package format

// Faixas de nota, da melhor para a pior.
var notaColors = [...]string{"#00E676", "#4ADE80", "#FACC15", "#F97316", "#EF4444"}

// NotaBand devolve 0 (>= 3.5) até 4 (< 0.5).
func NotaBand(nota float64) int {
	switch {
	case nota >= 3.5:
		return 0
	case nota >= 2.5:
		return 1
	case nota >= 1.5:
		return 2
	case nota >= 0.5:
		return 3
	default:
		return 4
	}
}

func NotaColor(nota float64) string { return notaColors[NotaBand(nota)] }

// NotaBgColor é a cor da faixa com 20% de opacidade (#RRGGBBAA).
func NotaBgColor(nota float64) string { return NotaColor(nota) + "33" }

const riscoDefault = "#9CA3AF"

var riscoColors = map[string]string{
	"muito_baixo": notaColors[0],
	"baixo":       notaColors[1],
	"medio":       notaColors[2],
	"alto":        notaColors[3],
	"muito_alto":  notaColors[4],
}

func RiscoColor(risco string) string {
	if c, ok := riscoColors[risco]; ok {
		return c
	}
	return riscoDefault
}
