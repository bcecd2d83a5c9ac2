package models

// ServiceInfo holds the two display projections of a catalog entry:
// Detailed is used in calendar event titles and descriptions, Friendly
// in customer-facing WhatsApp messages.
type ServiceInfo struct {
	Detailed string
	Friendly string
}

// ServiceCatalog maps the service identifiers accepted by the booking
// form to their display texts. Both the calendar and the notification
// services read from this single table.
var ServiceCatalog = map[string]ServiceInfo{
	"corte-personalizado": {
		Detailed: "Corte de Cabello Personalizado",
		Friendly: "Corte de Cabello Personalizado",
	},
	"corte-barba-diarquia": {
		Detailed: `Corte y Barba "La Diarquía" - Experiencia Premium`,
		Friendly: `Corte y Barba "La Diarquía"`,
	},
	"barba-personalizada": {
		Detailed: "Barba Personalizada con Toallas Calientes",
		Friendly: "Barba Personalizada",
	},
	"limpieza-facial": {
		Detailed: "Limpieza Facial FULL",
		Friendly: "Limpieza Facial FULL",
	},
	"corte-tijeras": {
		Detailed: "Corte sólo a Tijeras",
		Friendly: "Corte sólo a Tijeras",
	},
	"camuflaje-canas": {
		Detailed: "Camuflaje de Canas",
		Friendly: "Camuflaje de Canas",
	},
}

// ServiceDetailed returns the detailed display text for a service id.
// Unknown identifiers pass through verbatim.
func ServiceDetailed(id string) string {
	if info, ok := ServiceCatalog[id]; ok {
		return info.Detailed
	}
	return id
}

// ServiceFriendly returns the friendly display text for a service id.
// Unknown identifiers pass through verbatim.
func ServiceFriendly(id string) string {
	if info, ok := ServiceCatalog[id]; ok {
		return info.Friendly
	}
	return id
}
