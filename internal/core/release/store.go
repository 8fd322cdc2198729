// Copyright (c) 2026 Mangacal. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package release

import "context"

// Repository defines the data access contract for publications.
type Repository interface {

	/*
		ListEntries returns publications matching query.

		Ordering: date (query.Ascending), then name ascending, then
		edition descending. Postgres sorts NULL first under DESC, so the
		regular printing precedes its special editions.

		Parameters:
		  - context: context.Context
		  - query: Query

		Returns:
		  - []*Publication
		  - error: Database retrieval failures
	*/
	ListEntries(context context.Context, query Query) ([]*Publication, error)
}
