package data

import (
	"context"
	"maps"
	"strings"
	"sync"

	"github.com/evergreen-ci/restapp/model/blog"
	"github.com/evergreen-ci/restapp/model/user"
)

// MockConnector is an in-memory Connector for route tests. Documents are
// kept in insertion order and callers only ever see copies of them.
// Setting Unavailable makes every call fail the way DBConnector does when
// the database is unreachable, and a non-nil StoredError is classified
// like a store error and returned from every call instead.
type MockConnector struct {
	Blogs       []blog.Blog
	Users       []user.User
	Unavailable bool
	StoredError error

	mu sync.Mutex
}

func (mc *MockConnector) check() error {
	if mc.StoredError != nil {
		return storeError(mc.StoredError, "querying mock store")
	}
	if mc.Unavailable {
		return unavailableError("not connected")
	}
	return nil
}

func copyBlog(b blog.Blog) blog.Blog {
	b.Extra = maps.Clone(b.Extra)
	if b.Date != nil {
		date := *b.Date
		b.Date = &date
	}
	if b.Comments != nil {
		comments := make([]blog.Comment, len(b.Comments))
		for idx, c := range b.Comments {
			c.Extra = maps.Clone(c.Extra)
			comments[idx] = c
		}
		b.Comments = comments
	}
	return b
}

func copyUser(u user.User) user.User {
	u.Extra = maps.Clone(u.Extra)
	return u
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

func window[T any](in []T, skip, limit int) []T {
	if skip > 0 {
		if skip >= len(in) {
			return []T{}
		}
		in = in[skip:]
	}
	if limit > 0 && limit < len(in) {
		in = in[:limit]
	}
	return in
}

func (mc *MockConnector) FindBlogs(_ context.Context, opts blog.SearchOptions) ([]blog.Blog, error) {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	if err := mc.check(); err != nil {
		return nil, err
	}

	out := []blog.Blog{}
	for _, b := range mc.Blogs {
		if opts.Author != "" && !containsFold(b.Author, opts.Author) {
			continue
		}
		if opts.Title != "" && !containsFold(b.Title, opts.Title) {
			continue
		}
		if opts.Search != "" && !containsFold(b.Author, opts.Search) &&
			!containsFold(b.Title, opts.Search) && !containsFold(b.Body, opts.Search) {
			continue
		}
		out = append(out, copyBlog(b))
	}

	return window(out, opts.Skip, opts.Limit), nil
}

func (mc *MockConnector) findBlog(id string) (int, error) {
	oid, err := ParseId("blog", id)
	if err != nil {
		return -1, err
	}
	if err = mc.check(); err != nil {
		return -1, err
	}
	for idx := range mc.Blogs {
		if mc.Blogs[idx].Id == oid {
			return idx, nil
		}
	}
	return -1, nil
}

func (mc *MockConnector) FindBlogById(_ context.Context, id string) (*blog.Blog, error) {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	idx, err := mc.findBlog(id)
	if err != nil || idx < 0 {
		return nil, err
	}
	b := copyBlog(mc.Blogs[idx])
	return &b, nil
}

func (mc *MockConnector) CreateBlog(_ context.Context, b *blog.Blog) error {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	if err := mc.check(); err != nil {
		return err
	}

	b.SetDefaults()
	mc.Blogs = append(mc.Blogs, copyBlog(*b))
	return nil
}

func (mc *MockConnector) UpdateBlog(_ context.Context, id string, u blog.Update) (*blog.Blog, error) {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	idx, err := mc.findBlog(id)
	if err != nil || idx < 0 {
		return nil, err
	}
	b := copyBlog(mc.Blogs[idx])
	u.Apply(&b)
	mc.Blogs[idx] = copyBlog(b)
	return &b, nil
}

func (mc *MockConnector) DeleteBlog(_ context.Context, id string) error {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	idx, err := mc.findBlog(id)
	if err != nil || idx < 0 {
		return err
	}
	mc.Blogs = append(mc.Blogs[:idx], mc.Blogs[idx+1:]...)
	return nil
}

func (mc *MockConnector) FindUsers(_ context.Context, opts user.SearchOptions) ([]user.User, error) {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	if err := mc.check(); err != nil {
		return nil, err
	}

	out := []user.User{}
	for _, u := range mc.Users {
		if opts.Username != "" && !containsFold(u.Username, opts.Username) {
			continue
		}
		if opts.Email != "" && !containsFold(u.Email, opts.Email) {
			continue
		}
		if opts.Search != "" && !containsFold(u.Username, opts.Search) && !containsFold(u.FirstName, opts.Search) &&
			!containsFold(u.LastName, opts.Search) && !containsFold(u.Email, opts.Search) {
			continue
		}
		out = append(out, copyUser(u))
	}

	return window(out, opts.Skip, opts.Limit), nil
}

func (mc *MockConnector) findUser(id string) (int, error) {
	oid, err := ParseId("user", id)
	if err != nil {
		return -1, err
	}
	if err = mc.check(); err != nil {
		return -1, err
	}
	for idx := range mc.Users {
		if mc.Users[idx].Id == oid {
			return idx, nil
		}
	}
	return -1, nil
}

func (mc *MockConnector) FindUserById(_ context.Context, id string) (*user.User, error) {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	idx, err := mc.findUser(id)
	if err != nil || idx < 0 {
		return nil, err
	}
	u := copyUser(mc.Users[idx])
	return &u, nil
}

func (mc *MockConnector) CreateUser(_ context.Context, u *user.User) error {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	if err := mc.check(); err != nil {
		return err
	}

	u.SetDefaults()
	mc.Users = append(mc.Users, copyUser(*u))
	return nil
}

func (mc *MockConnector) UpdateUser(_ context.Context, id string, update user.Update) (*user.User, error) {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	idx, err := mc.findUser(id)
	if err != nil || idx < 0 {
		return nil, err
	}
	u := copyUser(mc.Users[idx])
	update.Apply(&u)
	mc.Users[idx] = copyUser(u)
	return &u, nil
}

func (mc *MockConnector) DeleteUser(_ context.Context, id string) error {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	idx, err := mc.findUser(id)
	if err != nil || idx < 0 {
		return err
	}
	mc.Users = append(mc.Users[:idx], mc.Users[idx+1:]...)
	return nil
}
