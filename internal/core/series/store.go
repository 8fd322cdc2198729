// Copyright (c) 2026 Mangacal. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package series

import "context"

// Repository defines the data access contract for the licensing database.
type Repository interface {

	/*
		List returns the series matching filter.

		Ordering: status (enum order), then publisher id, then name.

		Parameters:
		  - context: context.Context
		  - filter: Filter

		Returns:
		  - []*Series: cover and timestamp already resolved
		  - error: Database retrieval failures
	*/
	List(context context.Context, filter Filter) ([]*Series, error)

	/*
		Get returns one series with its publications and license.

		Parameters:
		  - context: context.Context
		  - id: int64

		Returns:
		  - *Detail: publications ordered by volume asc, edition desc
		  - error: ErrNotFound if missing
	*/
	Get(context context.Context, id int64) (*Detail, error)

	/*
		IDs returns the id and name of every series.

		Parameters:
		  - context: context.Context

		Returns:
		  - []Ref
		  - error: Database retrieval failures
	*/
	IDs(context context.Context) ([]Ref, error)
}
