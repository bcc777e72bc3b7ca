package entity

// Store representa una tienda. El código es único, lo asigna el backend al registrarla y nunca se reutiliza.
type Store struct {
	Code    int
	Name    string
	Address string
}
