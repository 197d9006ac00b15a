package salon

import "strings"

// FilterActive mantém só os salões visíveis na listagem pública.
func FilterActive(list []Salon) []Salon {
	out := make([]Salon, 0, len(list))
	for _, s := range list {
		if s.Ativo {
			out = append(out, s)
		}
	}
	return out
}

// Search filtra por nome ou endereço, sem diferenciar maiúsculas.
// Termo vazio devolve a lista inteira.
func Search(list []Salon, term string) []Salon {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return list
	}

	out := make([]Salon, 0, len(list))
	for _, s := range list {
		if strings.Contains(strings.ToLower(s.Nome), term) ||
			strings.Contains(strings.ToLower(s.Endereco), term) {
			out = append(out, s)
		}
	}
	return out
}

func Find(list []Salon, id string) (Salon, bool) {
	for _, s := range list {
		if s.ID == id {
			return s, true
		}
	}
	return Salon{}, false
}
