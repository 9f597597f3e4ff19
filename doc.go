// Package folio unifies the content of a review site from three stores
// into one read API.
//
// Documents come from the editor working copy, the local content tree and
// a remote product catalog. When more than one store holds the same slug,
// or the same product id, the editor wins over local files and local files
// win over the catalog. Lists are returned newest first.
//
// A store that fails is logged and left out; the build goes on with the
// rest.
//
// Usage:
//
//	svc, err := folio.New(
//		folio.WithContentDir("./content"),
//		folio.WithEditor("./outstatic/content"),
//	)
//
//	reviews, err := svc.Reviews(ctx)
package folio
