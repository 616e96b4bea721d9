// Package dtdd answers one question about a movie: is the "does the dog die"
// topic known to be safe, unsafe, or unknown, using the doesthedogdie.com API.
//
// Search and media payloads are cached in an injected TTL cache so repeated
// searches do not hammer the API; the key is the normalized title, or
// "imdb:<id>" when an IMDb id is available for a more precise lookup.
//
// The API key is optional. Without one the client stays constructible and
// every classification resolves to unknown, so the rest of the pipeline never
// has to care.
package dtdd
