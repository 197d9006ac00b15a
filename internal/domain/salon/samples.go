package salon

// Samples são os salões exibidos na primeira execução, sem banco e sem cache.
func Samples() []Salon {
	return []Salon{
		{
			ID:                   "1",
			Nome:                 "Salão Elegance",
			Endereco:             "Rua das Flores, 123 - Centro",
			Telefone:             "(11) 99999-9999",
			Email:                "contato@salaoelegance.com",
			Logo:                 "/logos/salao1.svg",
			SiteURL:              "https://salaoelegance.com",
			HorarioFuncionamento: "Seg-Sex: 9h às 20h | Sáb: 9h às 18h",
			Servicos:             []string{"Corte", "Coloração", "Tratamentos", "Maquiagem"},
			Descricao:            "Salão especializado em tratamentos capilares e maquiagem profissional",
			Ativo:                true,
		},
		{
			ID:                   "2",
			Nome:                 "Beauty Studio",
			Endereco:             "Av. Paulista, 456 - Bela Vista",
			Telefone:             "(11) 88888-8888",
			Email:                "contato@beautystudio.com",
			Logo:                 "/logos/salao2.svg",
			SiteURL:              "https://beautystudio.com",
			HorarioFuncionamento: "Seg-Sáb: 8h às 19h",
			Servicos:             []string{"Corte", "Coloração", "Tratamentos", "Unhas"},
			Descricao:            "Studio de beleza completo com foco em qualidade e atendimento personalizado",
			Ativo:                true,
		},
		{
			ID:                   "3",
			Nome:                 "Hair & Style",
			Endereco:             "Rua Augusta, 789 - Consolação",
			Telefone:             "(11) 77777-7777",
			Email:                "contato@hairandstyle.com",
			Logo:                 "/logos/salao3.svg",
			SiteURL:              "https://hairandstyle.com",
			HorarioFuncionamento: "Ter-Sáb: 10h às 21h",
			Servicos:             []string{"Corte", "Coloração", "Tratamentos", "Penteado"},
			Descricao:            "Salão especializado em cortes modernos e tendências",
			Ativo:                true,
		},
	}
}
