// Package inventory contiene lógica de dominio pura del inventario:
// identificadores de ubicación y reglas sobre cantidades.
package inventory

import "strings"

// LocationLogistics bodega de logística (recepción/despacho).
const LocationLogistics = "logistics"

// productionZonePrefix prefijo de las zonas de producción: production_zone_<n>.
const productionZonePrefix = "production_zone_"

// ValidLocation verifica que el identificador de ubicación sea "logistics" o
// "production_zone_<n>" con n numérico.
func ValidLocation(location string) bool {
	if location == LocationLogistics {
		return true
	}
	n, ok := strings.CutPrefix(location, productionZonePrefix)
	if !ok || n == "" {
		return false
	}
	for _, r := range n {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// IsProductionZone indica si la ubicación es una zona de producción.
func IsProductionZone(location string) bool {
	return location != LocationLogistics && ValidLocation(location)
}
