package model

// CatalogResponse mirrors the partner API envelope: {"success": true, "data": [...]}
type CatalogResponse struct {
	Success bool            `json:"success"`
	Data    []*PropertyItem `json:"data"`
}

// PropertyItem is one listing from the partner catalog. Field names follow the
// upstream Spanish keys. Baños and año arrive under two key spellings
// (accented and plain); the accented field is the canonical one after
// Normalize has run.
type PropertyItem struct {
	ID               int          `json:"id"`
	Propiedad        *string      `json:"propiedad,omitempty"`
	Area             *float64     `json:"area,omitempty"`
	Tipo             *string      `json:"tipo,omitempty"`
	ClaseTipo        *string      `json:"clase_tipo,omitempty"`
	Modelo           *string      `json:"modelo,omitempty"`
	Ubicacion        *string      `json:"ubicacion,omitempty"`
	Estado           *string      `json:"estado,omitempty"`
	FinDeObra        *string      `json:"fin_de_obra,omitempty"`
	Fase             *string      `json:"fase,omitempty"`
	Bloqueo          *string      `json:"bloqueo,omitempty"`
	Precio           *float64     `json:"precio,omitempty"`
	PrecioSugerido   *float64     `json:"precio_sugerido,omitempty"`
	ProyectosID      *int         `json:"proyectos_id,omitempty"`
	Habitaciones     *int         `json:"habitaciones,omitempty"`
	Banos            *float64     `json:"baños,omitempty"`
	BanosPlain       *float64     `json:"banos,omitempty"`
	Parqueos         *int         `json:"parqueos,omitempty"`
	M2Construccion   *float64     `json:"m2construccion,omitempty"`
	Largo            *float64     `json:"largo,omitempty"`
	Ancho            *float64     `json:"ancho,omitempty"`
	Ano              *int         `json:"año,omitempty"`
	AnoPlain         *int         `json:"ano,omitempty"`
	Titulo           *string      `json:"titulo,omitempty"`
	Descripcion      *string      `json:"descripcion,omitempty"`
	Detalles         *string      `json:"detalles,omitempty"`
	DescripcionCorta *string      `json:"descripcion_corta,omitempty"`
	Caracteristicas  *string      `json:"caracteristicas,omitempty"`
	Latitud          *float64     `json:"latitud,omitempty"`
	Longitud         *float64     `json:"longitud,omitempty"`
	CreatedAt        *string      `json:"created_at,omitempty"`
	UpdatedAt        *string      `json:"updated_at,omitempty"`
	Proyecto         *Proyecto    `json:"proyecto,omitempty"`
	Imagenes         []ImagenItem `json:"imagenes,omitempty"`
}

// Proyecto is the development a listing belongs to.
type Proyecto struct {
	ID             int     `json:"id"`
	NombreProyecto *string `json:"nombre_proyecto,omitempty"`
	Direccion      *string `json:"direccion,omitempty"`
	Tipo           *string `json:"tipo,omitempty"`
	Ubicacion      *string `json:"ubicacion,omitempty"`
	Estado         *string `json:"estado,omitempty"`
	CreatedAt      *string `json:"created_at,omitempty"`
	UpdatedAt      *string `json:"updated_at,omitempty"`
}

// ImagenItem is one image descriptor attached to a listing.
type ImagenItem struct {
	Tipo    *string `json:"tipo,omitempty"`
	URL     *string `json:"url,omitempty"`
	Formato *string `json:"formato,omitempty"`
}

// Normalize collapses the two source spellings of baños and año into the
// accented canonical field. When both are present the accented value wins.
// Idempotent; run once per item after each fetch.
func (p *PropertyItem) Normalize() {
	if p.BanosPlain != nil && p.Banos == nil {
		p.Banos = p.BanosPlain
	}
	if p.AnoPlain != nil && p.Ano == nil {
		p.Ano = p.AnoPlain
	}
}

// CanonicalBanos returns the bath count after normalization, preferring the
// accented key when both survived.
func (p *PropertyItem) CanonicalBanos() *float64 {
	if p.Banos != nil {
		return p.Banos
	}
	return p.BanosPlain
}

// CanonicalAno returns the build year, preferring the accented key.
func (p *PropertyItem) CanonicalAno() *int {
	if p.Ano != nil {
		return p.Ano
	}
	return p.AnoPlain
}
