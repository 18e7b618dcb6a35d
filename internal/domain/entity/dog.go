package entity

// Dog representa un perro del catálogo remoto de adopción.
// Es inmutable una vez obtenido; IsFavorite se recalcula desde el almacén de favoritos.
type Dog struct {
	ID         string // identificador opaco, estable entre peticiones
	Name       string
	Breed      string
	Age        int    // años, >= 0
	ZipCode    string // código postal de 5 dígitos
	ImageURL   string
	IsFavorite bool
}

// DogIDs devuelve los identificadores de dogs preservando el orden.
func DogIDs(dogs []Dog) []string {
	ids := make([]string, 0, len(dogs))
	for _, d := range dogs {
		ids = append(ids, d.ID)
	}
	return ids
}
