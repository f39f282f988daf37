package db

import (
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Q holds all information necessary to execute a query
type Q struct {
	filter any // should be bson.D or bson.M
	sort   []string
	skip   int
	limit  int
}

// Query creates a db.Q for the given MongoDB query. The filter
// can be a struct, bson.D, bson.M, nil, etc.
func Query(filter any) Q {
	if filter == nil {
		filter = bson.M{}
	}
	return Q{filter: filter}
}

// Sort takes keys in order of precedence; a key prefixed with "-"
// sorts descending.
func (q Q) Sort(sort []string) Q {
	q.sort = sort
	return q
}

func (q Q) Skip(skip int) Q {
	q.skip = skip
	return q
}

func (q Q) Limit(limit int) Q {
	q.limit = limit
	return q
}

func (q Q) GetFilter() any { return q.filter }

// findOptions converts the query modifiers into driver options. Zero
// values leave the driver defaults in place.
func (q Q) findOptions() *options.FindOptions {
	opts := options.Find()
	if len(q.sort) > 0 {
		opts.SetSort(sortDocument(q.sort))
	}
	if q.skip > 0 {
		opts.SetSkip(int64(q.skip))
	}
	if q.limit > 0 {
		opts.SetLimit(int64(q.limit))
	}

	return opts
}

func (q Q) findOneOptions() *options.FindOneOptions {
	opts := options.FindOne()
	if len(q.sort) > 0 {
		opts.SetSort(sortDocument(q.sort))
	}
	if q.skip > 0 {
		opts.SetSkip(int64(q.skip))
	}

	return opts
}

func sortDocument(keys []string) bson.D {
	sort := bson.D{}
	for _, k := range keys {
		if k == "" {
			continue
		}
		if strings.HasPrefix(k, "-") {
			sort = append(sort, bson.E{Key: k[1:], Value: -1})
		} else {
			sort = append(sort, bson.E{Key: strings.TrimPrefix(k, "+"), Value: 1})
		}
	}

	return sort
}
