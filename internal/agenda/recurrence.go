package agenda

import "time"

// proximaData calcula a n-ésima ocorrência após a âncora. Para a frequência
// mensal o dia do mês é preservado, recuando para o último dia quando o mês
// destino é mais curto (31/jan -> 28/fev, e não 02/mar).
func proximaData(anchor time.Time, frequencia string, n int) (time.Time, bool) {
	switch frequencia {
	case FrequenciaSemanal:
		return anchor.AddDate(0, 0, 7*n), true
	case FrequenciaQuinzenal:
		return anchor.AddDate(0, 0, 14*n), true
	case FrequenciaMensal:
		return addMonthsClamped(anchor, n), true
	}
	return time.Time{}, false
}

func addMonthsClamped(d time.Time, months int) time.Time {
	y, m, day := d.Date()
	first := time.Date(y, m+time.Month(months), 1, 0, 0, 0, 0, d.Location())
	last := first.AddDate(0, 1, -1).Day()
	if day > last {
		day = last
	}
	return time.Date(first.Year(), first.Month(), day, 0, 0, 0, 0, d.Location())
}

// Expand gera as ocorrências futuras da âncora, estritamente após ela e até
// o limite (inclusive). Frequência avulsa não gera nada.
func Expand(anchor time.Time, frequencia string, limite time.Time) []time.Time {
	var datas []time.Time
	for n := 1; ; n++ {
		d, ok := proximaData(anchor, frequencia, n)
		if !ok || d.After(limite) {
			return datas
		}
		datas = append(datas, d)
	}
}

// ExpandN gera exatamente n ocorrências após a âncora (zero para avulsa).
// Usada pela cascata de frequência, que reencaixa as irmãs existentes na
// nova cadência, e pela renovação de cadeias.
func ExpandN(anchor time.Time, frequencia string, n int) []time.Time {
	datas := make([]time.Time, 0, n)
	for i := 1; i <= n; i++ {
		d, ok := proximaData(anchor, frequencia, i)
		if !ok {
			return nil
		}
		datas = append(datas, d)
	}
	return datas
}
