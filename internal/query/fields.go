package query

import (
	"strings"

	"miraiz/internal/model"
)

// simpleFields enumerates every recognized scalar output field. Requested
// names outside this set (and the special cases below) are silently
// ignored.
var simpleFields = map[string]func(p *model.PropertyItem) any{
	"id":             func(p *model.PropertyItem) any { return p.ID },
	"propiedad":      func(p *model.PropertyItem) any { return p.Propiedad },
	"precio":         func(p *model.PropertyItem) any { return p.Precio },
	"area":           func(p *model.PropertyItem) any { return p.Area },
	"tipo":           func(p *model.PropertyItem) any { return p.Tipo },
	"ubicacion":      func(p *model.PropertyItem) any { return p.Ubicacion },
	"estado":         func(p *model.PropertyItem) any { return p.Estado },
	"habitaciones":   func(p *model.PropertyItem) any { return p.Habitaciones },
	"parqueos":       func(p *model.PropertyItem) any { return p.Parqueos },
	"m2construccion": func(p *model.PropertyItem) any { return p.M2Construccion },
	"titulo":         func(p *model.PropertyItem) any { return p.Titulo },
	"descripcion":    func(p *model.PropertyItem) any { return p.Descripcion },
	"latitud":        func(p *model.PropertyItem) any { return p.Latitud },
	"longitud":       func(p *model.PropertyItem) any { return p.Longitud },
	"proyecto":       func(p *model.PropertyItem) any { return p.Proyecto },
}

// ParseFieldMask splits a comma-separated fields parameter into a
// normalized lookup set.
func ParseFieldMask(fields string) map[string]bool {
	mask := make(map[string]bool)
	for _, f := range strings.Split(fields, ",") {
		f = strings.ToLower(strings.TrimSpace(f))
		if f != "" {
			mask[f] = true
		}
	}
	return mask
}

// Project reduces an item to the requested fields. Accented and plain
// spellings of baños/año are accepted in the mask but always emitted under
// the accented key; imagenes are projected to {tipo,url,formato} triples
// only.
func Project(p *model.PropertyItem, mask map[string]bool) map[string]any {
	obj := make(map[string]any)

	for name, value := range simpleFields {
		if mask[name] {
			obj[name] = value(p)
		}
	}

	if mask["baños"] || mask["banos"] {
		obj["baños"] = p.CanonicalBanos()
	}
	if mask["año"] || mask["ano"] {
		obj["año"] = p.CanonicalAno()
	}
	if mask["imagenes.url"] || mask["imagenes"] {
		imgs := make([]model.ImagenItem, 0, len(p.Imagenes))
		for _, img := range p.Imagenes {
			imgs = append(imgs, model.ImagenItem{Tipo: img.Tipo, URL: img.URL, Formato: img.Formato})
		}
		obj["imagenes"] = imgs
	}

	return obj
}
