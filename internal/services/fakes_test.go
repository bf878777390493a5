package services

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/sagrop_cms/internal/models"
	"github.com/sagrop_cms/internal/repositories"
)

var errBoom = errors.New("boom")

type fakeArticleRepo struct {
	articles map[int64]models.Article
	nextID   int64
	err      error
	deleted  []int64
}

func newFakeArticleRepo(articles ...models.Article) *fakeArticleRepo {
	r := &fakeArticleRepo{articles: map[int64]models.Article{}}
	for _, a := range articles {
		r.articles[a.ID] = a
		if a.ID > r.nextID {
			r.nextID = a.ID
		}
	}
	return r
}

func (r *fakeArticleRepo) Create(_ context.Context, a *models.Article) (*models.Article, error) {
	if r.err != nil {
		return nil, r.err
	}
	r.nextID++
	a.ID = r.nextID
	r.articles[a.ID] = *a
	return a, nil
}

func (r *fakeArticleRepo) GetByID(_ context.Context, id int64) (*models.Article, error) {
	if r.err != nil {
		return nil, r.err
	}
	a, ok := r.articles[id]
	if !ok {
		return nil, repositories.ErrRecordNotFound
	}
	return &a, nil
}

func (r *fakeArticleRepo) List(context.Context) ([]models.Article, error) {
	if r.err != nil {
		return nil, r.err
	}
	out := []models.Article{}
	for _, a := range r.articles {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *fakeArticleRepo) Update(_ context.Context, id int64, upd models.ArticleUpdate) (*models.Article, error) {
	if r.err != nil {
		return nil, r.err
	}
	a, ok := r.articles[id]
	if !ok {
		return nil, repositories.ErrRecordNotFound
	}
	if upd.Title != nil {
		a.Title = *upd.Title
	}
	if upd.Content != nil {
		a.Content = *upd.Content
	}
	if upd.PublicationDate != nil {
		a.PublicationDate = *upd.PublicationDate
	}
	if upd.ImageURL != nil {
		a.ImageURL = upd.ImageURL
	}
	r.articles[id] = a
	return &a, nil
}

func (r *fakeArticleRepo) Delete(_ context.Context, id int64) (*models.Article, error) {
	if r.err != nil {
		return nil, r.err
	}
	a, ok := r.articles[id]
	if !ok {
		return nil, repositories.ErrRecordNotFound
	}
	delete(r.articles, id)
	r.deleted = append(r.deleted, id)
	return &a, nil
}

func (r *fakeArticleRepo) Renumber(context.Context) error { return r.err }

type fakeImageRemover struct {
	removed []string
	err     error
}

func (f *fakeImageRemover) Remove(url string) error {
	if f.err != nil {
		return f.err
	}
	f.removed = append(f.removed, url)
	return nil
}

type fakeCommodityRepo struct {
	items  map[int64]models.Commodity
	nextID int64
	err    error
}

func newFakeCommodityRepo() *fakeCommodityRepo {
	return &fakeCommodityRepo{items: map[int64]models.Commodity{}}
}

func (r *fakeCommodityRepo) Create(_ context.Context, c *models.Commodity) (*models.Commodity, error) {
	if r.err != nil {
		return nil, r.err
	}
	r.nextID++
	c.ID = r.nextID
	r.items[c.ID] = *c
	return c, nil
}

func (r *fakeCommodityRepo) List(context.Context) ([]models.Commodity, error) {
	if r.err != nil {
		return nil, r.err
	}
	out := []models.Commodity{}
	for _, c := range r.items {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeCommodityRepo) Update(_ context.Context, c *models.Commodity) (*models.Commodity, error) {
	if r.err != nil {
		return nil, r.err
	}
	if _, ok := r.items[c.ID]; !ok {
		return nil, repositories.ErrRecordNotFound
	}
	r.items[c.ID] = *c
	return c, nil
}

func (r *fakeCommodityRepo) Delete(_ context.Context, id int64) error {
	if r.err != nil {
		return r.err
	}
	if _, ok := r.items[id]; !ok {
		return repositories.ErrRecordNotFound
	}
	delete(r.items, id)
	return nil
}

type fakeMailingRepo struct {
	emails []string
	err    error
}

func (r *fakeMailingRepo) Add(_ context.Context, email string) (*models.MailingListEntry, error) {
	if r.err != nil {
		return nil, r.err
	}
	for _, e := range r.emails {
		if e == email {
			return nil, repositories.ErrDuplicateEmail
		}
	}
	r.emails = append(r.emails, email)
	return &models.MailingListEntry{ID: int64(len(r.emails)), Email: email}, nil
}

func (r *fakeMailingRepo) ListEmails(context.Context) ([]string, error) {
	return r.emails, r.err
}

type sentMail struct {
	to, subject, body string
}

type fakeMailer struct {
	mu     sync.Mutex
	sent   []sentMail
	failOn map[string]bool
}

func (m *fakeMailer) Send(_ context.Context, to, subject, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failOn[to] {
		return errBoom
	}
	m.sent = append(m.sent, sentMail{to: to, subject: subject, body: body})
	return nil
}

type fakeUserRepo struct {
	users map[string]*models.User
	err   error
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	u, ok := r.users[email]
	if !ok {
		return nil, repositories.ErrRecordNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) Create(_ context.Context, u *models.User) error {
	r.users[u.Email] = u
	return nil
}
