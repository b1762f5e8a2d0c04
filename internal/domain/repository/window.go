package repository

// Window ventana de paginación para listados (Page es 1-based).
type Window struct {
	Page  int
	Limit int
}

// Normalize aplica valores por defecto y cotas.
func (w *Window) Normalize() {
	if w.Page < 1 {
		w.Page = 1
	}
	if w.Limit <= 0 {
		w.Limit = 20
	}
	if w.Limit > 100 {
		w.Limit = 100
	}
}

// Offset derivado: (page-1) * limit.
func (w Window) Offset() int {
	return (w.Page - 1) * w.Limit
}

// TotalPages calcula ceil(total/limit) para el total retornado por el store.
func (w Window) TotalPages(total int) int {
	if total == 0 {
		return 0
	}
	return (total + w.Limit - 1) / w.Limit
}
