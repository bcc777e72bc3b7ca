package entity

// Product representa un producto. El nombre es la clave primaria (sensible a mayúsculas).
type Product struct {
	Name string
}
