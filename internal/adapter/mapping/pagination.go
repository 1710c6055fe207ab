package mapping

import (
	"github.com/eslsoft/studyhub/internal/entity"
	"github.com/eslsoft/studyhub/internal/repository"
)

// PageLimits bounds skip/limit pagination on every list surface.
type PageLimits struct {
	Default int
	Max     int
}

// Page converts optional skip/limit inputs. A missing limit takes the default,
// larger limits are capped, and negative values are rejected.
func (l PageLimits) Page(skip, limit *int) (repository.Pagination, error) {
	p := repository.Pagination{Limit: l.Default}
	if skip != nil {
		p.Skip = *skip
	}
	if limit != nil {
		p.Limit = *limit
	}
	if p.Skip < 0 || p.Limit < 0 {
		return repository.Pagination{}, entity.ErrInvalidPagination
	}
	if l.Max > 0 && p.Limit > l.Max {
		p.Limit = l.Max
	}
	return p, nil
}
