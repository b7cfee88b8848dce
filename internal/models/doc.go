// Package models defines the core domain models for Biblioteca.
//
// # Catalog
//
// The catalog is made of three record types:
//   - Category: a named shelf grouping, holding at most MaxBooksPerCategory books
//   - Author: a named writer with a biography
//   - Book: a catalog entry optionally linked to one Category and one Author
//
// # Circulation
//
//   - Loan: a Book lent to a User until a due date
//
// # Accounts
//
//   - User: a registered account; staff accounts are privileged
//   - Actor: the identity resolved for a single request (possibly anonymous)
//
// # Design Principles
//
// 1. **Plain data**: models carry no behavior beyond small accessors
// 2. **IDs, not pointers**: relationships are expressed by ID fields so that
// deleting a referenced record never leaves a dangling pointer in memory
// 3. **Civil dates**: publication, start and due dates are calendar dates (Date),
// never instants
package models
