// Package models defines the core domain entities for libris.
//
// # Entities
//
// Four aggregate families are persisted:
//   - Author: a book author, shared by id across items
//   - Item: a library item (currently only the Book kind)
//   - User: a registered library user
//   - LoanRecord: one borrow/return cycle of an item by a user
//
// # Design Principles
//
//  1. **Value semantics**: entities are plain structs copied on load and save.
//     Mutating a loaded entity never changes stored state until it is saved back.
//  2. **Constructor invariants**: NewAuthor, NewBook, NewUser and NewLoanRecord
//     validate their inputs and return ErrInvalidArgument on violation.
//     Storage backends rehydrate structs directly and apply their own
//     lenient parse policies instead.
//  3. **Avoid aliasing**: Author is treated as an immutable value everywhere;
//     renaming an author requires an explicit SaveAuthor call. No backend
//     hands out references into its internal state.
//  4. **Tagged item kinds**: Item carries an ItemType discriminator instead of
//     an interface hierarchy, keeping clones cheap value copies.
package models
