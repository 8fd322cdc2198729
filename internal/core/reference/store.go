// Copyright (c) 2026 Mangacal. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package reference

import "context"

// # Reference Data Access

// Repository defines the data access contract for reference data.
type Repository interface {

	// ## Publisher Data Access

	/*
		ListPublishers retrieves every publisher ordered by name.

		Parameters:
		  - context: context.Context

		Returns:
		  - []*Publisher
		  - error: Database retrieval failures
	*/
	ListPublishers(context context.Context) ([]*Publisher, error)

	/*
		GetPublisher fetches a single publisher by its identifier.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - *Publisher
		  - error: ErrNotFound if missing
	*/
	GetPublisher(context context.Context, id string) (*Publisher, error)

	// ## Type Data Access

	/*
		ListTypes retrieves every book type ordered by name.

		Parameters:
		  - context: context.Context

		Returns:
		  - []*Type
		  - error: Database retrieval failures
	*/
	ListTypes(context context.Context) ([]*Type, error)

	/*
		GetType fetches a single book type by its identifier.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - *Type
		  - error: ErrNotFound if missing
	*/
	GetType(context context.Context, id string) (*Type, error)
}
