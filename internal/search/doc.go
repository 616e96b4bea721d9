// Package search drives the result-assembly pipeline behind the search form.
//
// A request walks a fallback ladder of progressively looser discover filters
// until enough unwatched results accumulate, annotates a bounded prefix of
// them with dog-safety data, applies actor exclusion via credit lookups, and
// ranks the survivors. Secondary lookups fail soft: an unresolved actor name
// is dropped, a failed safety check stays unknown, and a failed cast lookup
// keeps the movie. Only the primary discover call is allowed to fail the
// request.
package search
