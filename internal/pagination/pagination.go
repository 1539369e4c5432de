package pagination

import "gorm.io/gorm"

// Bounds for the limit query parameter.
const (
	DefaultLimit = 100
	MaxLimit     = 1000
)

// PageRequest holds offset pagination parameters parsed from query strings.
type PageRequest struct {
	Skip  int `form:"skip,default=0" binding:"min=0"`
	Limit int `form:"limit,default=100" binding:"min=0,max=1000"`
}

// NewPageRequest returns a PageRequest with the given offset and page size,
// clamped to the accepted bounds.
func NewPageRequest(skip, limit int) PageRequest {
	p := PageRequest{Skip: skip, Limit: limit}
	p.Clamp()
	return p
}

// Clamp keeps Skip and Limit inside the accepted bounds.
func (p *PageRequest) Clamp() {
	if p.Skip < 0 {
		p.Skip = 0
	}
	if p.Limit < 0 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
}

// Paginate returns a GORM scope that applies OFFSET and LIMIT for the given page request.
func Paginate(req PageRequest) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		req.Clamp()
		return db.Offset(req.Skip).Limit(req.Limit)
	}
}
