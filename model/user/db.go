package user

import (
	"context"
	"regexp"

	"github.com/evergreen-ci/restapp/db"
	"github.com/mongodb/anser/bsonutil"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const Collection = "users"

var (
	IdKey        = bsonutil.MustHaveTag(User{}, "Id")
	UsernameKey  = bsonutil.MustHaveTag(User{}, "Username")
	FirstNameKey = bsonutil.MustHaveTag(User{}, "FirstName")
	LastNameKey  = bsonutil.MustHaveTag(User{}, "LastName")
	EmailKey     = bsonutil.MustHaveTag(User{}, "Email")
	PasswordKey  = bsonutil.MustHaveTag(User{}, "Password")
)

// Keys lists the typed fields of a user document.
func Keys() []string {
	return []string{IdKey, UsernameKey, FirstNameKey, LastNameKey, EmailKey, PasswordKey}
}

func ById(id primitive.ObjectID) db.Q {
	return db.Query(bson.M{IdKey: id})
}

var All = db.Query(nil)

func BySearch(opts SearchOptions) db.Q {
	filter := bson.M{}
	if opts.Username != "" {
		filter[UsernameKey] = containsPattern(opts.Username)
	}
	if opts.Email != "" {
		filter[EmailKey] = containsPattern(opts.Email)
	}
	if opts.Search != "" {
		pattern := containsPattern(opts.Search)
		filter["$or"] = []bson.M{
			{UsernameKey: pattern},
			{FirstNameKey: pattern},
			{LastNameKey: pattern},
			{EmailKey: pattern},
		}
	}

	return db.Query(filter).Sort([]string{IdKey}).Skip(max(opts.Skip, 0)).Limit(max(opts.Limit, 0))
}

func containsPattern(s string) primitive.Regex {
	return primitive.Regex{Pattern: regexp.QuoteMeta(s), Options: "i"}
}

// SetDefaults assigns an id if the user has none and drops unknown fields
// that cannot be stored.
func (u *User) SetDefaults() {
	if u.Id.IsZero() {
		u.Id = primitive.NewObjectID()
	}
	u.Extra = db.CleanInlineFields(u.Extra, Keys()...)
}

// Insert assigns defaults and stores the user.
func (u *User) Insert(ctx context.Context, d *mongo.Database) error {
	u.SetDefaults()
	return errors.Wrap(db.Insert(ctx, d, Collection, u), "inserting user")
}

func Find(ctx context.Context, d *mongo.Database, q db.Q) ([]User, error) {
	out := []User{}
	if err := db.FindAllQ(ctx, d, Collection, q, &out); err != nil {
		return nil, errors.Wrap(err, "finding users")
	}

	return out, nil
}

// FindOne returns the first user matching q, or nil if there is none.
func FindOne(ctx context.Context, d *mongo.Database, q db.Q) (*User, error) {
	u := &User{}
	err := db.FindOneQ(ctx, d, Collection, q, u)
	if db.ResultsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "finding user")
	}

	return u, nil
}

// UpdateOne sets the fields named by update and returns the user as it is
// afterwards, or nil if no user has that id.
func UpdateOne(ctx context.Context, d *mongo.Database, id primitive.ObjectID, update Update) (*User, error) {
	set := update.setDoc()
	if len(set) == 0 {
		return FindOne(ctx, d, ById(id))
	}

	u := &User{}
	err := db.UpdateIdAndFind(ctx, d, Collection, id, bson.M{"$set": set}, u)
	if db.ResultsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "updating user '%s'", id.Hex())
	}

	return u, nil
}

func Remove(ctx context.Context, d *mongo.Database, id primitive.ObjectID) error {
	_, err := db.RemoveId(ctx, d, Collection, id)
	return errors.Wrapf(err, "removing user '%s'", id.Hex())
}

func Count(ctx context.Context, d *mongo.Database) (int, error) {
	return db.CountQ(ctx, d, Collection, All)
}

func (update Update) setDoc() bson.M {
	set := bson.M{}
	for k, v := range db.CleanInlineFields(update.Extra, Keys()...) {
		set[k] = v
	}
	for key, val := range map[string]*string{
		UsernameKey:  update.Username,
		FirstNameKey: update.FirstName,
		LastNameKey:  update.LastName,
		EmailKey:     update.Email,
		PasswordKey:  update.Password,
	} {
		if val != nil {
			set[key] = *val
		}
	}

	return set
}
