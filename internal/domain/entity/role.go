package entity

// Roles reconocidos en el claim "role" del token. La emisión de sesiones es externa a este servicio.
//   - admin: todo, incluido borrar ítems y definir la jerarquía de almacenamiento.
//   - bodeguero: movimientos, importación y edición de ítems.
//   - consulta: solo lectura.
const (
	RoleAdmin     = "admin"
	RoleBodeguero = "bodeguero"
	RoleConsulta  = "consulta"
)

// ValidRole indica si role es uno de los roles reconocidos.
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleBodeguero, RoleConsulta:
		return true
	}
	return false
}
