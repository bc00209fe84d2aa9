// Package store provides an in-memory entity collection with immutable updates.
//
// An [EntityStore] holds an ordered list of uniquely identified entities plus
// optional [Pagination] metadata. Every mutating call replaces the current
// [State] with a new value, so a snapshot taken before a mutation is never
// changed by it.
//
// # Entities
//
// An entity is any struct, pointer to struct or string-keyed map. The
// identifier is read from the attribute named by the id key (default "_id"),
// resolved the same way attributevalue names attributes:
//
//	type Task struct {
//	    ID   string `dynamodbav:"_id"`
//	    Name string `dynamodbav:"name"`
//	}
//
//	tasks := store.MustNew[Task](nil)
//	tasks.Add(Task{ID: "1", Name: "task 1"})
//
// Use [WithIDKey] for entities keyed by another attribute:
//
//	users, err := store.New[User](nil, store.WithIDKey("uid"))
//
// # Pagination
//
// Removing entities keeps [Pagination.Count] in step with the number removed
// and shrinks [Pagination.PageCount] when the new count needs fewer pages.
// Add and update never touch pagination.
//
// # Errors
//
//   - [ErrIDKeyRequired] - the resolved id key is empty
//
// The store is not safe for concurrent use. Callers serialize access; see the
// stream package for an example.
package store
