package model

// Categories es el conjunto cerrado de categorías que el LLM puede asignar.
// Cualquier valor fuera de esta lista se rechaza como error de parseo.
var Categories = []string{
	"🍽️ Comida",
	"🛒 Supermercado",
	"🚕 Transporte",
	"🏠 Hogar",
	"🎮 Entretenimiento",
	"💊 Salud",
	"👕 Ropa",
	"📚 Educación",
	"✈️ Viajes",
	"📦 Otros",
}

// ValidCategory indica si name pertenece al conjunto cerrado.
func ValidCategory(name string) bool {
	for _, c := range Categories {
		if c == name {
			return true
		}
	}
	return false
}
