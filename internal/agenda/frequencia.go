package agenda

// Frequências de recorrência aceitas pela agenda. "avulsa" não gera cadeia.
const (
	FrequenciaSemanal   = "semanal"
	FrequenciaQuinzenal = "quinzenal"
	FrequenciaMensal    = "mensal"
	FrequenciaAvulsa    = "avulsa"
)

func FrequenciaValida(f string) bool {
	switch f {
	case FrequenciaSemanal, FrequenciaQuinzenal, FrequenciaMensal, FrequenciaAvulsa:
		return true
	}
	return false
}

// Recorrente informa se a frequência gera ocorrências futuras.
func Recorrente(f string) bool {
	return f == FrequenciaSemanal || f == FrequenciaQuinzenal || f == FrequenciaMensal
}
