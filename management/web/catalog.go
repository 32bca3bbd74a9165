package web

// Product is a storefront entry. Prices are in cents.
type Product struct {
	Name        string
	Description string
	Price       int64
}

// Sponsor is shown on the sponsors presentation.
type Sponsor struct {
	Name string
	Tier string
	URL  string
}

var defaultCatalog = []Product{
	{Name: "Revisión completa", Description: "Frenos, luces, neumáticos y transmisión", Price: 4500},
	{Name: "Cambio de aceite", Description: "Aceite 4T y filtro", Price: 2900},
	{Name: "Neumático 10\"", Description: "Montaje incluido", Price: 3500},
	{Name: "Batería de litio", Description: "Diagnóstico y sustitución", Price: 18900},
}

var defaultSponsors = []Sponsor{
	{Name: "Motos del Puerto", Tier: "oro"},
	{Name: "Recambios Levante", Tier: "plata"},
	{Name: "Club Scooter Valencia", Tier: "colaborador"},
}
