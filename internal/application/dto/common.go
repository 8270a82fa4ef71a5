package dto

// PageRequest paginación para listados.
type PageRequest struct {
	Limit  int `query:"limit" validate:"min=1,max=100"`
	Offset int `query:"offset" validate:"min=0"`
}

// DefaultPage aplica valores por defecto si Limit/Offset son cero.
func (p *PageRequest) DefaultPage() {
	if p.Limit <= 0 {
		p.Limit = 20
	}
	if p.Limit > 100 {
		p.Limit = 100
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}

// PageResponse metadatos de página en respuestas.
type PageResponse struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
	Total  int `json:"total"`
}

// ErrorResponse cuerpo de error HTTP.
// Details lista los ítems rechazados de un lote; Available/Step acompañan a los errores de cantidad.
type ErrorResponse struct {
	Code      string         `json:"code"`
	Message   string         `json:"message"`
	Available string         `json:"available,omitempty"`
	Step      string         `json:"step,omitempty"`
	Details   []ItemErrorDTO `json:"details,omitempty"`
}

// ItemErrorDTO ítem inválido dentro de un lote.
type ItemErrorDTO struct {
	Index     int    `json:"index"`
	ProductID string `json:"product_id"`
	Code      string `json:"code"`
	Message   string `json:"message"`
	Available string `json:"available,omitempty"`
	Step      string `json:"step,omitempty"`
}
