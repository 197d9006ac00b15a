package timezone

import "time"

// DefaultTimezone é o fuso usado em datas mostradas ao administrador e no
// nome dos arquivos de backup.
const DefaultTimezone = "America/Sao_Paulo"

// Location devolve o fuso pedido, ou o padrão quando tz é vazio ou inválido.
// Sem a base de fusos instalada cai para UTC.
func Location(tz string) *time.Location {
	if tz != "" {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}
	if loc, err := time.LoadLocation(DefaultTimezone); err == nil {
		return loc
	}
	return time.UTC
}

func Now() time.Time {
	return time.Now().In(Location(DefaultTimezone))
}

// FormatDate devolve a data no formato dd/mm/aaaa, no fuso padrão.
func FormatDate(t time.Time) string {
	return t.In(Location(DefaultTimezone)).Format("02/01/2006")
}
