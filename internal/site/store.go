// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package site

import "context"

// Repository defines the data access contract for sites.
type Repository interface {
	Create(context context.Context, site *Site) error
	// List returns one page of sites and the total number matching filter.
	List(context context.Context, filter Filter, limit, offset int) ([]*Site, int, error)
	FindByID(context context.Context, id string) (*Site, error)
	// Update writes every mutable column of site and refreshes UpdatedAt.
	Update(context context.Context, site *Site) error
	Delete(context context.Context, id string) error
}
