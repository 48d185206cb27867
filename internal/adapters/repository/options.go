package repository

type openOptions struct {
	path            string
	mongoURI        string
	mongoDatabase   string
	mongoCollection string
}

// Option applies a configuration option to Open.
type Option func(*openOptions)

// WithPath sets the badger directory or the sqlite file.
func WithPath(path string) Option {
	return func(o *openOptions) {
		o.path = path
	}
}

// WithMongo sets the mongo connection and target collection.
func WithMongo(uri, database, collection string) Option {
	return func(o *openOptions) {
		if uri != "" {
			o.mongoURI = uri
		}
		if database != "" {
			o.mongoDatabase = database
		}
		if collection != "" {
			o.mongoCollection = collection
		}
	}
}
