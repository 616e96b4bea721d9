// Package tmdb provides the TMDB API client used for movie discovery.
//
// It exposes filtered discover queries with multi-page merging, movie detail
// and credit lookups, IMDb id resolution, person search, and the genre list
// for the filter form. Responses are strongly typed so the search pipeline can
// filter and rank them. Options allow tests to supply custom HTTP clients
// without modifying production code.
//
// The client performs no caching; every call hits TMDB fresh.
package tmdb
