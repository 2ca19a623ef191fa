package testkit

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"

	"github.com/oksasatya/bootcamp-directory/internal/domain/entity"
	"github.com/oksasatya/bootcamp-directory/pkg/geocoder"
	"github.com/oksasatya/bootcamp-directory/pkg/mailer"
)

// Geocoder resolves zipcodes from a fixed table.
type Geocoder map[string]geocoder.Location

func (g Geocoder) Geocode(_ context.Context, zipcode string) (geocoder.Location, error) {
	loc, ok := g[zipcode]
	if !ok {
		return geocoder.Location{}, geocoder.ErrNoResult
	}
	return loc, nil
}

// Mailbox records delivered messages. When Err is set every delivery fails.
type Mailbox struct {
	mu   sync.Mutex
	Sent []mailer.Message
	Err  error
}

func (m *Mailbox) Deliver(_ context.Context, msg mailer.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.Sent = append(m.Sent, msg)
	return nil
}

func (m *Mailbox) Last() (mailer.Message, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Sent) == 0 {
		return mailer.Message{}, false
	}
	return m.Sent[len(m.Sent)-1], true
}

// Files keeps uploaded files in memory and serves them from /uploads.
type Files struct {
	mu    sync.Mutex
	Saved map[string][]byte
	Err   error
}

func (f *Files) Save(_ context.Context, name, _ string, r io.Reader) (string, error) {
	if f.Err != nil {
		return "", f.Err
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Saved == nil {
		f.Saved = map[string][]byte{}
	}
	f.Saved[name] = b
	return "/uploads/" + name, nil
}

// Index is a substring search over bootcamp names and descriptions.
type Index struct {
	mu   sync.Mutex
	docs map[string]entity.Bootcamp
	ids  []string
}

func (x *Index) Index(_ context.Context, b *entity.Bootcamp) error {
	x.mu.Lock()
	defer x.mu.Unlock()
	if x.docs == nil {
		x.docs = map[string]entity.Bootcamp{}
	}
	if _, ok := x.docs[b.ID]; !ok {
		x.ids = append(x.ids, b.ID)
	}
	x.docs[b.ID] = *b
	return nil
}

func (x *Index) Remove(_ context.Context, id string) error {
	x.mu.Lock()
	defer x.mu.Unlock()
	delete(x.docs, id)
	return nil
}

func (x *Index) Search(_ context.Context, q string, size int) ([]string, error) {
	x.mu.Lock()
	defer x.mu.Unlock()
	if size <= 0 {
		return nil, errors.New("size must be positive")
	}
	q = strings.ToLower(q)
	out := []string{}
	for _, id := range x.ids {
		b, ok := x.docs[id]
		if !ok {
			continue
		}
		if strings.Contains(strings.ToLower(b.Name+" "+b.Description), q) {
			out = append(out, id)
		}
		if len(out) == size {
			break
		}
	}
	return out, nil
}
