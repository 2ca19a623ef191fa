package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/bootcamp-directory/internal/domain/entity"
	"github.com/oksasatya/bootcamp-directory/internal/domain/policy"
	repo "github.com/oksasatya/bootcamp-directory/internal/domain/repository"
	"github.com/oksasatya/bootcamp-directory/pkg/apperror"
	"github.com/oksasatya/bootcamp-directory/pkg/geocoder"
	"github.com/oksasatya/bootcamp-directory/pkg/storage"
)

// BootcampIndex is the full-text search index over bootcamps.
type BootcampIndex interface {
	Index(ctx context.Context, b *entity.Bootcamp) error
	Remove(ctx context.Context, id string) error
	// Search returns the ids of matching bootcamps, best match first.
	Search(ctx context.Context, q string, size int) ([]string, error)
}

const searchSize = 25

type BootcampService struct {
	Bootcamps     repo.BootcampRepository
	Geocoder      geocoder.Geocoder
	Storage       storage.FileStorage
	Index         BootcampIndex
	Logger        *logrus.Logger
	MaxFileUpload int64
}

func NewBootcampService(bootcamps repo.BootcampRepository, geo geocoder.Geocoder, files storage.FileStorage, index BootcampIndex, logger *logrus.Logger, maxUpload int64) *BootcampService {
	return &BootcampService{
		Bootcamps:     bootcamps,
		Geocoder:      geo,
		Storage:       files,
		Index:         index,
		Logger:        logger,
		MaxFileUpload: maxUpload,
	}
}

type CreateBootcampInput struct {
	Name          string
	Description   string
	Website       string
	Phone         string
	Email         string
	Address       string
	Zipcode       string
	Careers       []string
	Housing       bool
	JobAssistance bool
	JobGuarantee  bool
	AcceptGI      bool
}

// UpdateBootcampInput is a partial update; nil fields are left unchanged.
type UpdateBootcampInput struct {
	Name          *string
	Description   *string
	Website       *string
	Phone         *string
	Email         *string
	Address       *string
	Zipcode       *string
	Careers       []string
	Housing       *bool
	JobAssistance *bool
	JobGuarantee  *bool
	AcceptGI      *bool
}

// PhotoUpload is a file received from a multipart form.
type PhotoUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

func (s *BootcampService) List(ctx context.Context) ([]entity.Bootcamp, error) {
	out, err := s.Bootcamps.List(ctx)
	if err != nil {
		return nil, storeErr(err, "", "")
	}
	return out, nil
}

func (s *BootcampService) Get(ctx context.Context, id string) (*entity.Bootcamp, error) {
	b, err := s.Bootcamps.GetByID(ctx, id)
	if err != nil {
		return nil, storeErr(err, notFoundMsg("bootcamp", id), "")
	}
	return b, nil
}

// Create publishes a bootcamp owned by actor. Non-admins may own one bootcamp.
func (s *BootcampService) Create(ctx context.Context, actor *entity.User, in CreateBootcampInput) (*entity.Bootcamp, error) {
	owned, err := s.Bootcamps.CountByOwner(ctx, actor.ID)
	if err != nil {
		return nil, storeErr(err, "", "")
	}
	if err := policy.EnsureCanPublishBootcamp(actor, owned); err != nil {
		return nil, err
	}
	loc, err := s.geocode(ctx, in.Zipcode)
	if err != nil {
		return nil, err
	}
	careers := in.Careers
	if careers == nil {
		careers = []string{}
	}
	b := &entity.Bootcamp{
		OwnerID:       actor.ID,
		Name:          strings.TrimSpace(in.Name),
		Slug:          Slugify(in.Name),
		Description:   in.Description,
		Website:       in.Website,
		Phone:         in.Phone,
		Email:         in.Email,
		Address:       in.Address,
		Zipcode:       in.Zipcode,
		Latitude:      loc.Latitude,
		Longitude:     loc.Longitude,
		Careers:       careers,
		Housing:       in.Housing,
		JobAssistance: in.JobAssistance,
		JobGuarantee:  in.JobGuarantee,
		AcceptGI:      in.AcceptGI,
	}
	if err := s.Bootcamps.Create(ctx, b); err != nil {
		return nil, storeErr(err, notFoundMsg("user", actor.ID), "a bootcamp with that name already exists")
	}
	s.index(ctx, b)
	return b, nil
}

func (s *BootcampService) Update(ctx context.Context, actor *entity.User, id string, in UpdateBootcampInput) (*entity.Bootcamp, error) {
	b, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := policy.EnsureCanModify(actor, b.OwnerID, "bootcamp"); err != nil {
		return nil, err
	}
	if in.Name != nil {
		b.Name = strings.TrimSpace(*in.Name)
		b.Slug = Slugify(b.Name)
	}
	if in.Zipcode != nil && *in.Zipcode != b.Zipcode {
		loc, err := s.geocode(ctx, *in.Zipcode)
		if err != nil {
			return nil, err
		}
		b.Zipcode = *in.Zipcode
		b.Latitude, b.Longitude = loc.Latitude, loc.Longitude
	}
	setString(&b.Description, in.Description)
	setString(&b.Website, in.Website)
	setString(&b.Phone, in.Phone)
	setString(&b.Email, in.Email)
	setString(&b.Address, in.Address)
	if in.Careers != nil {
		b.Careers = in.Careers
	}
	setBool(&b.Housing, in.Housing)
	setBool(&b.JobAssistance, in.JobAssistance)
	setBool(&b.JobGuarantee, in.JobGuarantee)
	setBool(&b.AcceptGI, in.AcceptGI)

	if err := s.Bootcamps.Update(ctx, b); err != nil {
		return nil, storeErr(err, notFoundMsg("bootcamp", id), "a bootcamp with that name already exists")
	}
	s.index(ctx, b)
	return b, nil
}

// Delete removes the bootcamp; its courses and reviews go with it.
func (s *BootcampService) Delete(ctx context.Context, actor *entity.User, id string) error {
	b, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := policy.EnsureCanModify(actor, b.OwnerID, "bootcamp"); err != nil {
		return err
	}
	if err := s.Bootcamps.Delete(ctx, id); err != nil {
		return storeErr(err, notFoundMsg("bootcamp", id), "")
	}
	if s.Index != nil {
		if err := s.Index.Remove(ctx, id); err != nil {
			s.warn(err, id, "search index remove failed")
		}
	}
	return nil
}

// WithinRadius lists bootcamps within distanceKm of the zipcode's location.
func (s *BootcampService) WithinRadius(ctx context.Context, zipcode string, distanceKm float64) ([]entity.Bootcamp, error) {
	if distanceKm < 0 {
		return nil, apperror.Validation("distance must not be negative")
	}
	loc, err := s.geocode(ctx, zipcode)
	if err != nil {
		return nil, err
	}
	out, err := s.Bootcamps.WithinRadius(ctx, loc.Latitude, loc.Longitude, distanceKm)
	if err != nil {
		return nil, storeErr(err, "", "")
	}
	return out, nil
}

// UploadPhoto stores an image as photo_<id><ext> and records its URL.
func (s *BootcampService) UploadPhoto(ctx context.Context, actor *entity.User, id string, up PhotoUpload) (*entity.Bootcamp, error) {
	b, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := policy.EnsureCanModify(actor, b.OwnerID, "bootcamp"); err != nil {
		return nil, err
	}
	if !strings.HasPrefix(up.ContentType, "image") {
		return nil, apperror.Validation("please upload an image file")
	}
	if s.MaxFileUpload > 0 && up.Size > s.MaxFileUpload {
		return nil, apperror.Validation(fmt.Sprintf("please upload an image less than %d bytes", s.MaxFileUpload))
	}
	if s.Storage == nil {
		return nil, apperror.Upstream("problem with file upload", errors.New("file storage not configured"))
	}
	name := "photo_" + b.ID + strings.ToLower(filepath.Ext(up.Filename))
	url, err := s.Storage.Save(ctx, name, up.ContentType, up.Body)
	if err != nil {
		return nil, apperror.Upstream("problem with file upload", err)
	}
	if err := s.Bootcamps.SetPhoto(ctx, b.ID, url); err != nil {
		return nil, storeErr(err, notFoundMsg("bootcamp", id), "")
	}
	b.Photo = url
	s.index(ctx, b)
	return b, nil
}

// Search runs a full-text query. Without an index it finds nothing.
func (s *BootcampService) Search(ctx context.Context, q string) ([]entity.Bootcamp, error) {
	out := []entity.Bootcamp{}
	q = strings.TrimSpace(q)
	if q == "" || s.Index == nil {
		return out, nil
	}
	ids, err := s.Index.Search(ctx, q, searchSize)
	if err != nil {
		return nil, apperror.Upstream("search is unavailable", err)
	}
	for _, id := range ids {
		b, err := s.Bootcamps.GetByID(ctx, id)
		if errors.Is(err, repo.ErrNotFound) {
			continue // index lags behind a delete
		}
		if err != nil {
			return nil, storeErr(err, "", "")
		}
		out = append(out, *b)
	}
	return out, nil
}

func (s *BootcampService) geocode(ctx context.Context, zipcode string) (geocoder.Location, error) {
	if s.Geocoder == nil {
		return geocoder.Location{}, apperror.Upstream("could not geocode zipcode", errors.New("geocoder not configured"))
	}
	loc, err := s.Geocoder.Geocode(ctx, zipcode)
	if err != nil {
		return geocoder.Location{}, apperror.Upstream("could not geocode zipcode "+zipcode, err)
	}
	return loc, nil
}

func (s *BootcampService) index(ctx context.Context, b *entity.Bootcamp) {
	if s.Index == nil {
		return
	}
	if err := s.Index.Index(ctx, b); err != nil {
		s.warn(err, b.ID, "search index failed")
	}
}

func (s *BootcampService) warn(err error, id, msg string) {
	if s.Logger != nil {
		s.Logger.WithError(err).WithField("bootcamp_id", id).Warn(msg)
	}
}

// Slugify lowercases name and joins its alphanumeric runs with dashes.
func Slugify(name string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if dash && b.Len() > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(r)
			dash = false
			continue
		}
		dash = true
	}
	return b.String()
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}
