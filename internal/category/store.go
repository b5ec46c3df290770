// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package category

import "context"

// Repository defines the data access contract for categories.
type Repository interface {

	/*
		Create inserts a category.

		Returns:
		  - error: Conflict if the name is taken
	*/
	Create(context context.Context, category *Category) error

	// List returns every category ordered by name.
	List(context context.Context) ([]*Category, error)

	/*
		FindByID retrieves a category by its UUID.

		Returns:
		  - error: NotFound if missing
	*/
	FindByID(context context.Context, id string) (*Category, error)

	/*
		Delete removes a category.

		Returns:
		  - error: NotFound if no row matched
	*/
	Delete(context context.Context, id string) error
}
