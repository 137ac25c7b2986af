// Package console holds the client side core of the digital wallet console:
// the auth session, the resource stores that emulate the wallet API and the
// navigation guard that gates every route by role.
//
// Session lifecycle:
//   - Session is created empty, hydrated from a KeyValueStore (auth_token,
//     auth_role) and only mutated by Login, Logout and Expire. The Resource
//     Client calls Expire when the API answers 401.
//
// Stores:
//   - Store[T] keeps an insertion ordered collection plus loading/error state.
//     FetchAll fully replaces the collection from a Source; Create, Update and
//     Delete are local mutations. Update and Delete on unknown ids are no-ops.
//
// Navigation:
//   - Router resolves paths against the route table and runs Guard before each
//     transition, following redirects. Guard denies by role, bounces signed in
//     users away from the login page and sends anonymous users to it.
package console
