package usecase

// DefaultMaxEntries bounds the journal size accepted per request.
const DefaultMaxEntries = 10000
