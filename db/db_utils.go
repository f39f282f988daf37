package db

import (
	"context"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Insert inserts the specified item into the specified collection.
func Insert(ctx context.Context, db *mongo.Database, collection string, item any) error {
	_, err := db.Collection(collection).InsertOne(ctx, item)
	return errors.Wrapf(errors.WithStack(err), "inserting document")
}

// FindOneQ runs a Q query against the given collection, applying the
// result to "out." Only reads one document from the DB; a query that
// matches nothing returns an error for which ResultsNotFound is true.
func FindOneQ(ctx context.Context, db *mongo.Database, collection string, q Q, out any) error {
	err := db.Collection(collection).FindOne(ctx, q.filter, q.findOneOptions()).Decode(out)
	return errors.WithStack(err)
}

// FindAllQ runs a Q query against the given collection, applying the results to "out."
func FindAllQ(ctx context.Context, db *mongo.Database, collection string, q Q, out any) error {
	cursor, err := db.Collection(collection).Find(ctx, q.filter, q.findOptions())
	if err != nil {
		return errors.Wrapf(err, "querying collection '%s'", collection)
	}

	return errors.Wrap(cursor.All(ctx, out), "reading query results")
}

// UpdateIdAndFind applies update to the document with the given _id and
// decodes the document as it is after the update into out.
func UpdateIdAndFind(ctx context.Context, db *mongo.Database, collection string, id, update, out any) error {
	res := db.Collection(collection).FindOneAndUpdate(ctx,
		bson.D{{Key: "_id", Value: id}},
		update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)

	return errors.WithStack(res.Decode(out))
}

// RemoveId removes the document with the given _id, returning the number
// of documents deleted.
func RemoveId(ctx context.Context, db *mongo.Database, collection string, id any) (int, error) {
	res, err := db.Collection(collection).DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		return 0, errors.Wrap(err, "deleting document")
	}

	return int(res.DeletedCount), nil
}

// Count run a count command with the specified query against the collection.
func Count(ctx context.Context, db *mongo.Database, collection string, query any) (int, error) {
	if query == nil {
		query = bson.M{}
	}
	res, err := db.Collection(collection).CountDocuments(ctx, query)
	return int(res), errors.WithStack(err)
}

// CountQ runs a Q count query against the given collection.
func CountQ(ctx context.Context, db *mongo.Database, collection string, q Q) (int, error) {
	return Count(ctx, db, collection, q.filter)
}

// =============================================
// ============ Test only functions ============
// =============================================

// ClearCollections clears all documents from all the specified collections,
// returning an error immediately if clearing any one of them fails.
func ClearCollections(ctx context.Context, db *mongo.Database, collections ...string) error {
	for _, collection := range collections {
		if _, err := db.Collection(collection).DeleteMany(ctx, bson.M{}); err != nil {
			return errors.Wrapf(err, "Couldn't clear collection '%v'", collection)
		}
	}
	return nil
}
