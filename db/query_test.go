package db

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"go.mongodb.org/mongo-driver/bson"
)

func TestQueryBuilding(t *testing.T) {
	Convey("With a query", t, func() {
		Convey("a nil filter should match everything", func() {
			q := Query(nil)
			So(q.GetFilter(), ShouldResemble, bson.M{})
		})

		Convey("modifiers should not mutate the original query", func() {
			base := Query(bson.M{"author": "alice"})
			limited := base.Limit(5).Skip(10)

			So(base.limit, ShouldEqual, 0)
			So(base.skip, ShouldEqual, 0)
			So(limited.limit, ShouldEqual, 5)
			So(limited.skip, ShouldEqual, 10)
			So(limited.GetFilter(), ShouldResemble, bson.M{"author": "alice"})
		})

		Convey("sort keys should map to directions in order", func() {
			So(sortDocument([]string{"-created_at", "title", "+author", ""}), ShouldResemble, bson.D{
				{Key: "created_at", Value: -1},
				{Key: "title", Value: 1},
				{Key: "author", Value: 1},
			})
		})

		Convey("find options should only carry the modifiers that were set", func() {
			opts := Query(nil).findOptions()
			So(opts.Skip, ShouldBeNil)
			So(opts.Limit, ShouldBeNil)
			So(opts.Sort, ShouldBeNil)

			opts = Query(nil).Skip(3).Limit(7).Sort([]string{"-_id"}).findOptions()
			So(*opts.Skip, ShouldEqual, 3)
			So(*opts.Limit, ShouldEqual, 7)
			So(opts.Sort, ShouldResemble, bson.D{{Key: "_id", Value: -1}})
		})

		Convey("find one options should ignore the limit", func() {
			opts := Query(nil).Skip(2).Limit(9).findOneOptions()
			So(*opts.Skip, ShouldEqual, 2)
		})
	})
}
