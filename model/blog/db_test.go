package blog

import (
	"context"
	"testing"
	"time"

	"github.com/evergreen-ci/restapp/db"
	"github.com/evergreen-ci/restapp/testutil"
	"github.com/evergreen-ci/utility"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestBySearch(t *testing.T) {
	t.Run("Empty", func(t *testing.T) {
		q := BySearch(SearchOptions{})
		assert.Equal(t, bson.M{}, q.GetFilter())
	})
	t.Run("QuotesInput", func(t *testing.T) {
		q := BySearch(SearchOptions{Author: "a.b*"})
		filter, ok := q.GetFilter().(bson.M)
		require.True(t, ok)
		assert.Equal(t, primitive.Regex{Pattern: `a\.b\*`, Options: "i"}, filter[AuthorKey])
	})
	t.Run("SearchMatchesAnyTextField", func(t *testing.T) {
		q := BySearch(SearchOptions{Search: "go", Title: "intro"})
		filter, ok := q.GetFilter().(bson.M)
		require.True(t, ok)

		pattern := primitive.Regex{Pattern: "go", Options: "i"}
		assert.Equal(t, []bson.M{{AuthorKey: pattern}, {TitleKey: pattern}, {BodyKey: pattern}}, filter["$or"])
		assert.Equal(t, primitive.Regex{Pattern: "intro", Options: "i"}, filter[TitleKey])
	})
}

func TestUpdateSetDoc(t *testing.T) {
	t.Run("OnlyNamedFields", func(t *testing.T) {
		set := Update{Title: utility.ToStringPtr("new title")}.setDoc()
		assert.Equal(t, bson.M{TitleKey: "new title"}, set)
	})
	t.Run("TypedFieldsWinOverExtra", func(t *testing.T) {
		set := Update{
			Body:  utility.ToStringPtr("body"),
			Extra: map[string]any{"body": "shadow", "tags": []any{"x"}, "$inc": 1, "_id": "nope"},
		}.setDoc()
		assert.Equal(t, bson.M{BodyKey: "body", "tags": []any{"x"}}, set)
	})
	t.Run("CommentsGetIds", func(t *testing.T) {
		kept := primitive.NewObjectID()
		comments := []Comment{{Id: kept, Body: "first"}, {Body: "second"}}
		set := Update{Comments: &comments}.setDoc()

		stored, ok := set[CommentsKey].([]Comment)
		require.True(t, ok)
		require.Len(t, stored, 2)
		assert.Equal(t, kept, stored[0].Id)
		assert.False(t, stored[1].Id.IsZero())
		assert.NotEqual(t, stored[0].Id, stored[1].Id)
	})
	t.Run("EmptyCommentList", func(t *testing.T) {
		comments := []Comment{}
		set := Update{Comments: &comments}.setDoc()
		assert.Equal(t, []Comment{}, set[CommentsKey])
	})
}

func TestBlogDB(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	env := testutil.NewDBEnvironment(ctx, t)
	d := env.DB()

	for tName, tCase := range map[string]func(t *testing.T){
		"InsertAssignsDefaults": func(t *testing.T) {
			b := &Blog{Author: "superblogger", Title: "hello", Body: "world", Comments: []Comment{{Body: "nice"}}}
			require.NoError(t, b.Insert(ctx, d))

			assert.False(t, b.Id.IsZero())
			assert.WithinDuration(t, time.Now(), b.CreatedAt, time.Minute)
			require.Len(t, b.Comments, 1)
			assert.False(t, b.Comments[0].Id.IsZero())

			found, err := FindOne(ctx, d, ById(b.Id))
			require.NoError(t, err)
			require.NotNil(t, found)
			assert.Equal(t, b.Author, found.Author)
			assert.Equal(t, b.Title, found.Title)
			assert.Equal(t, b.Body, found.Body)
			assert.True(t, b.CreatedAt.Equal(found.CreatedAt))
			assert.Equal(t, b.Comments[0].Id, found.Comments[0].Id)
		},
		"InsertWithoutComments": func(t *testing.T) {
			b := &Blog{Title: "bare"}
			require.NoError(t, b.Insert(ctx, d))

			found, err := FindOne(ctx, d, ById(b.Id))
			require.NoError(t, err)
			require.NotNil(t, found)
			assert.NotNil(t, found.Comments)
			assert.Empty(t, found.Comments)
		},
		"ExtraFieldsRoundTrip": func(t *testing.T) {
			b := &Blog{Title: "extra", Extra: map[string]any{"tags": []any{"go"}, "meta": map[string]any{"views": int32(3)}}}
			require.NoError(t, b.Insert(ctx, d))

			found, err := FindOne(ctx, d, ById(b.Id))
			require.NoError(t, err)
			require.NotNil(t, found)
			assert.Equal(t, "extra", found.Title)
			assert.Contains(t, found.Extra, "tags")
			assert.Equal(t, bson.M{"views": int32(3)}, found.Extra["meta"])
		},
		"FindOneMissing": func(t *testing.T) {
			found, err := FindOne(ctx, d, ById(primitive.NewObjectID()))
			assert.NoError(t, err)
			assert.Nil(t, found)
		},
		"FindEmpty": func(t *testing.T) {
			blogs, err := Find(ctx, d, All)
			require.NoError(t, err)
			assert.NotNil(t, blogs)
			assert.Empty(t, blogs)
		},
		"FindSkipLimit": func(t *testing.T) {
			ids := []primitive.ObjectID{}
			for _, title := range []string{"zero", "one", "two", "three"} {
				b := &Blog{Title: title}
				require.NoError(t, b.Insert(ctx, d))
				ids = append(ids, b.Id)
			}

			blogs, err := Find(ctx, d, BySearch(SearchOptions{Skip: 1, Limit: 1}))
			require.NoError(t, err)
			require.Len(t, blogs, 1)
			assert.Equal(t, ids[1], blogs[0].Id)

			blogs, err = Find(ctx, d, BySearch(SearchOptions{}))
			require.NoError(t, err)
			assert.Len(t, blogs, 4)
		},
		"FindSortsById": func(t *testing.T) {
			early, late := primitive.NewObjectID(), primitive.NewObjectID()
			require.NoError(t, (&Blog{Id: late, Title: "late"}).Insert(ctx, d))
			require.NoError(t, (&Blog{Id: early, Title: "early"}).Insert(ctx, d))

			blogs, err := Find(ctx, d, BySearch(SearchOptions{}))
			require.NoError(t, err)
			require.Len(t, blogs, 2)
			assert.Equal(t, early, blogs[0].Id)
			assert.Equal(t, late, blogs[1].Id)
		},
		"FindSearch": func(t *testing.T) {
			require.NoError(t, (&Blog{Author: "Alice", Title: "Go tips"}).Insert(ctx, d))
			require.NoError(t, (&Blog{Author: "bob", Title: "Cooking", Body: "no GOLANG here"}).Insert(ctx, d))
			require.NoError(t, (&Blog{Author: "carol", Title: "Gardening"}).Insert(ctx, d))

			blogs, err := Find(ctx, d, BySearch(SearchOptions{Author: "ali"}))
			require.NoError(t, err)
			require.Len(t, blogs, 1)
			assert.Equal(t, "Alice", blogs[0].Author)

			blogs, err = Find(ctx, d, BySearch(SearchOptions{Search: "go"}))
			require.NoError(t, err)
			assert.Len(t, blogs, 2)

			blogs, err = Find(ctx, d, BySearch(SearchOptions{Title: "(.*)"}))
			require.NoError(t, err)
			assert.Empty(t, blogs)
		},
		"UpdateOne": func(t *testing.T) {
			b := &Blog{Author: "superblogger", Title: "before"}
			require.NoError(t, b.Insert(ctx, d))

			comments := []Comment{{Body: "first"}, {Body: "second"}}
			updated, err := UpdateOne(ctx, d, b.Id, Update{Title: utility.ToStringPtr("after"), Comments: &comments})
			require.NoError(t, err)
			require.NotNil(t, updated)

			assert.Equal(t, b.Id, updated.Id)
			assert.Equal(t, "after", updated.Title)
			assert.Equal(t, "superblogger", updated.Author)
			require.Len(t, updated.Comments, 2)
			assert.NotEqual(t, updated.Comments[0].Id, updated.Comments[1].Id)
		},
		"UpdateNothing": func(t *testing.T) {
			b := &Blog{Title: "same"}
			require.NoError(t, b.Insert(ctx, d))

			updated, err := UpdateOne(ctx, d, b.Id, Update{})
			require.NoError(t, err)
			require.NotNil(t, updated)
			assert.Equal(t, "same", updated.Title)
		},
		"UpdateMissing": func(t *testing.T) {
			updated, err := UpdateOne(ctx, d, primitive.NewObjectID(), Update{Title: utility.ToStringPtr("x")})
			assert.NoError(t, err)
			assert.Nil(t, updated)
		},
		"RemoveTwice": func(t *testing.T) {
			b := &Blog{Title: "doomed"}
			require.NoError(t, b.Insert(ctx, d))

			require.NoError(t, Remove(ctx, d, b.Id))
			require.NoError(t, Remove(ctx, d, b.Id))

			found, err := FindOne(ctx, d, ById(b.Id))
			require.NoError(t, err)
			assert.Nil(t, found)

			count, err := Count(ctx, d)
			require.NoError(t, err)
			assert.Zero(t, count)
		},
	} {
		t.Run(tName, func(t *testing.T) {
			require.NoError(t, db.ClearCollections(ctx, d, Collection))
			defer func() {
				assert.NoError(t, db.ClearCollections(ctx, d, Collection))
			}()
			tCase(t)
		})
	}
}
