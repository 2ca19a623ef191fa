// Package testkit provides in-memory repositories for service and handler tests.
// They mirror the constraints the PostgreSQL schema enforces: unique email,
// unique bootcamp name, one review per (bootcamp, user) and cascading deletes.
package testkit

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/oksasatya/bootcamp-directory/internal/domain/entity"
	"github.com/oksasatya/bootcamp-directory/internal/domain/repository"
	"github.com/oksasatya/bootcamp-directory/pkg/geocoder"
)

// Store holds every table behind one mutex.
type Store struct {
	mu        sync.Mutex
	users     map[string]entity.User
	bootcamps map[string]entity.Bootcamp
	courses   map[string]entity.Course
	reviews   map[string]entity.Review
	seq       int
}

func NewStore() *Store {
	return &Store{
		users:     map[string]entity.User{},
		bootcamps: map[string]entity.Bootcamp{},
		courses:   map[string]entity.Course{},
		reviews:   map[string]entity.Review{},
	}
}

func (s *Store) Users() *Users         { return &Users{s: s} }
func (s *Store) Bootcamps() *Bootcamps { return &Bootcamps{s: s} }
func (s *Store) Courses() *Courses     { return &Courses{s: s} }
func (s *Store) Reviews() *Reviews     { return &Reviews{s: s} }

// stamp returns strictly increasing timestamps so list order is stable.
func (s *Store) stamp() time.Time {
	s.seq++
	return time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(s.seq) * time.Millisecond)
}

func sortByCreated[T any](items []T, created func(T) time.Time) []T {
	sort.Slice(items, func(i, j int) bool { return created(items[i]).Before(created(items[j])) })
	return items
}

// Users implements repository.UserRepository.
type Users struct{ s *Store }

func (r *Users) emailTaken(email, exceptID string) bool {
	for id, u := range r.s.users {
		if id != exceptID && u.Email == email {
			return true
		}
	}
	return false
}

func (r *Users) Create(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	if r.emailTaken(u.Email, "") {
		return repository.ErrDuplicate
	}
	u.ID = uuid.NewString()
	u.CreatedAt = r.s.stamp()
	u.UpdatedAt = u.CreatedAt
	r.s.users[u.ID] = *u
	return nil
}

func (r *Users) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

func (r *Users) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	email = strings.ToLower(strings.TrimSpace(email))
	for _, u := range r.s.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *Users) List(_ context.Context) ([]entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]entity.User, 0, len(r.s.users))
	for _, u := range r.s.users {
		out = append(out, u)
	}
	return sortByCreated(out, func(u entity.User) time.Time { return u.CreatedAt }), nil
}

func (r *Users) Update(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.users[u.ID]
	if !ok {
		return repository.ErrNotFound
	}
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	if r.emailTaken(u.Email, u.ID) {
		return repository.ErrDuplicate
	}
	cur.Name, cur.Email, cur.Role = u.Name, u.Email, u.Role
	cur.UpdatedAt = r.s.stamp()
	u.UpdatedAt = cur.UpdatedAt
	r.s.users[u.ID] = cur
	return nil
}

func (r *Users) UpdatePassword(_ context.Context, id, hash string) error {
	return r.mutate(id, func(u *entity.User) { u.Password = hash })
}

func (r *Users) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.users, id)
	for bid, b := range r.s.bootcamps {
		if b.OwnerID == id {
			r.s.deleteBootcampLocked(bid)
		}
	}
	for cid, c := range r.s.courses {
		if c.OwnerID == id {
			delete(r.s.courses, cid)
		}
	}
	for rid, rv := range r.s.reviews {
		if rv.UserID == id {
			delete(r.s.reviews, rid)
		}
	}
	return nil
}

func (r *Users) SetResetToken(_ context.Context, id, tokenHash string, expire time.Time) error {
	return r.mutate(id, func(u *entity.User) {
		u.ResetPasswordToken = tokenHash
		u.ResetPasswordExpire = &expire
	})
}

func (r *Users) ClearResetToken(_ context.Context, id string) error {
	return r.mutate(id, func(u *entity.User) {
		u.ResetPasswordToken = ""
		u.ResetPasswordExpire = nil
	})
}

func (r *Users) GetByResetToken(_ context.Context, tokenHash string, now time.Time) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.ResetPasswordToken != "" && u.ResetPasswordToken == tokenHash &&
			u.ResetPasswordExpire != nil && u.ResetPasswordExpire.After(now) {
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *Users) ResetPassword(_ context.Context, id, hash string) error {
	return r.mutate(id, func(u *entity.User) {
		u.Password = hash
		u.ResetPasswordToken = ""
		u.ResetPasswordExpire = nil
	})
}

func (r *Users) mutate(id string, fn func(u *entity.User)) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	fn(&u)
	r.s.users[id] = u
	return nil
}

// Bootcamps implements repository.BootcampRepository.
type Bootcamps struct{ s *Store }

func (r *Bootcamps) nameTaken(name, exceptID string) bool {
	for id, b := range r.s.bootcamps {
		if id != exceptID && b.Name == name {
			return true
		}
	}
	return false
}

func (r *Bootcamps) Create(_ context.Context, b *entity.Bootcamp) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[b.OwnerID]; !ok {
		return repository.ErrNotFound
	}
	if r.nameTaken(b.Name, "") {
		return repository.ErrDuplicate
	}
	b.ID = uuid.NewString()
	b.Photo = entity.DefaultPhoto
	b.AverageRating, b.AverageCost = nil, nil
	b.CreatedAt = r.s.stamp()
	b.UpdatedAt = b.CreatedAt
	r.s.bootcamps[b.ID] = *b
	return nil
}

func (r *Bootcamps) GetByID(_ context.Context, id string) (*entity.Bootcamp, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	b, ok := r.s.bootcamps[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &b, nil
}

func (r *Bootcamps) List(_ context.Context) ([]entity.Bootcamp, error) {
	return r.filter(func(entity.Bootcamp) bool { return true }), nil
}

func (r *Bootcamps) filter(keep func(entity.Bootcamp) bool) []entity.Bootcamp {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []entity.Bootcamp{}
	for _, b := range r.s.bootcamps {
		if keep(b) {
			out = append(out, b)
		}
	}
	return sortByCreated(out, func(b entity.Bootcamp) time.Time { return b.CreatedAt })
}

func (r *Bootcamps) CountByOwner(_ context.Context, ownerID string) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n := 0
	for _, b := range r.s.bootcamps {
		if b.OwnerID == ownerID {
			n++
		}
	}
	return n, nil
}

func (r *Bootcamps) Update(_ context.Context, b *entity.Bootcamp) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.bootcamps[b.ID]
	if !ok {
		return repository.ErrNotFound
	}
	if r.nameTaken(b.Name, b.ID) {
		return repository.ErrDuplicate
	}
	// derived and system fields stay as stored
	next := *b
	next.OwnerID = cur.OwnerID
	next.Photo = cur.Photo
	next.AverageRating = cur.AverageRating
	next.AverageCost = cur.AverageCost
	next.CreatedAt = cur.CreatedAt
	next.UpdatedAt = r.s.stamp()
	b.UpdatedAt = next.UpdatedAt
	r.s.bootcamps[b.ID] = next
	return nil
}

func (r *Bootcamps) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.bootcamps[id]; !ok {
		return repository.ErrNotFound
	}
	r.s.deleteBootcampLocked(id)
	return nil
}

func (s *Store) deleteBootcampLocked(id string) {
	delete(s.bootcamps, id)
	for cid, c := range s.courses {
		if c.BootcampID == id {
			delete(s.courses, cid)
		}
	}
	for rid, rv := range s.reviews {
		if rv.BootcampID == id {
			delete(s.reviews, rid)
		}
	}
}

func (r *Bootcamps) WithinRadius(_ context.Context, lat, lng, radiusKm float64) ([]entity.Bootcamp, error) {
	return r.filter(func(b entity.Bootcamp) bool {
		return geocoder.DistanceKm(lat, lng, b.Latitude, b.Longitude) <= radiusKm
	}), nil
}

func (r *Bootcamps) SetPhoto(_ context.Context, id, photo string) error {
	return r.mutate(id, func(b *entity.Bootcamp) { b.Photo = photo })
}

func (r *Bootcamps) SetAverageRating(_ context.Context, id string, avg *float64) error {
	return r.mutate(id, func(b *entity.Bootcamp) { b.AverageRating = avg })
}

func (r *Bootcamps) SetAverageCost(_ context.Context, id string, avg *float64) error {
	return r.mutate(id, func(b *entity.Bootcamp) { b.AverageCost = avg })
}

func (r *Bootcamps) mutate(id string, fn func(b *entity.Bootcamp)) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	b, ok := r.s.bootcamps[id]
	if !ok {
		return repository.ErrNotFound
	}
	fn(&b)
	r.s.bootcamps[id] = b
	return nil
}

// Courses implements repository.CourseRepository.
type Courses struct{ s *Store }

func (r *Courses) Create(_ context.Context, c *entity.Course) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.bootcamps[c.BootcampID]; !ok {
		return repository.ErrNotFound
	}
	c.ID = uuid.NewString()
	c.CreatedAt = r.s.stamp()
	r.s.courses[c.ID] = *c
	return nil
}

func (r *Courses) GetByID(_ context.Context, id string) (*entity.Course, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.courses[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &c, nil
}

func (r *Courses) List(_ context.Context) ([]entity.Course, error) {
	return r.filter(func(entity.Course) bool { return true }), nil
}

func (r *Courses) ListByBootcamp(_ context.Context, bootcampID string) ([]entity.Course, error) {
	return r.filter(func(c entity.Course) bool { return c.BootcampID == bootcampID }), nil
}

func (r *Courses) filter(keep func(entity.Course) bool) []entity.Course {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []entity.Course{}
	for _, c := range r.s.courses {
		if keep(c) {
			out = append(out, c)
		}
	}
	return sortByCreated(out, func(c entity.Course) time.Time { return c.CreatedAt })
}

func (r *Courses) Update(_ context.Context, c *entity.Course) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.courses[c.ID]
	if !ok {
		return repository.ErrNotFound
	}
	cur.Title, cur.Description, cur.Weeks = c.Title, c.Description, c.Weeks
	cur.Tuition, cur.MinimumSkill, cur.ScholarshipAvailable = c.Tuition, c.MinimumSkill, c.ScholarshipAvailable
	r.s.courses[c.ID] = cur
	return nil
}

func (r *Courses) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.courses[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.courses, id)
	return nil
}

func (r *Courses) AverageTuition(_ context.Context, bootcampID string) (float64, int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sum, n := 0.0, 0
	for _, c := range r.s.courses {
		if c.BootcampID == bootcampID {
			sum += c.Tuition
			n++
		}
	}
	if n == 0 {
		return 0, 0, nil
	}
	return sum / float64(n), n, nil
}

// Reviews implements repository.ReviewRepository.
type Reviews struct{ s *Store }

func (r *Reviews) Create(_ context.Context, rv *entity.Review) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.bootcamps[rv.BootcampID]; !ok {
		return repository.ErrNotFound
	}
	for _, other := range r.s.reviews {
		if other.BootcampID == rv.BootcampID && other.UserID == rv.UserID {
			return repository.ErrDuplicate
		}
	}
	rv.ID = uuid.NewString()
	rv.CreatedAt = r.s.stamp()
	r.s.reviews[rv.ID] = *rv
	return nil
}

func (r *Reviews) GetByID(_ context.Context, id string) (*entity.Review, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rv, ok := r.s.reviews[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &rv, nil
}

func (r *Reviews) List(_ context.Context) ([]entity.Review, error) {
	return r.filter(func(entity.Review) bool { return true }), nil
}

func (r *Reviews) ListByBootcamp(_ context.Context, bootcampID string) ([]entity.Review, error) {
	return r.filter(func(rv entity.Review) bool { return rv.BootcampID == bootcampID }), nil
}

func (r *Reviews) filter(keep func(entity.Review) bool) []entity.Review {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []entity.Review{}
	for _, rv := range r.s.reviews {
		if keep(rv) {
			out = append(out, rv)
		}
	}
	return sortByCreated(out, func(rv entity.Review) time.Time { return rv.CreatedAt })
}

func (r *Reviews) Update(_ context.Context, rv *entity.Review) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.reviews[rv.ID]
	if !ok {
		return repository.ErrNotFound
	}
	cur.Title, cur.Text, cur.Rating = rv.Title, rv.Text, rv.Rating
	r.s.reviews[rv.ID] = cur
	return nil
}

func (r *Reviews) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.reviews[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.reviews, id)
	return nil
}

func (r *Reviews) AverageRating(_ context.Context, bootcampID string) (float64, int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sum, n := 0, 0
	for _, rv := range r.s.reviews {
		if rv.BootcampID == bootcampID {
			sum += rv.Rating
			n++
		}
	}
	if n == 0 {
		return 0, 0, nil
	}
	return float64(sum) / float64(n), n, nil
}

var (
	_ repository.UserRepository     = (*Users)(nil)
	_ repository.BootcampRepository = (*Bootcamps)(nil)
	_ repository.CourseRepository   = (*Courses)(nil)
	_ repository.ReviewRepository   = (*Reviews)(nil)
)
