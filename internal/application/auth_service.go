package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/bootcamp-directory/internal/domain/entity"
	repo "github.com/oksasatya/bootcamp-directory/internal/domain/repository"
	"github.com/oksasatya/bootcamp-directory/pkg/apperror"
	"github.com/oksasatya/bootcamp-directory/pkg/helpers"
	"github.com/oksasatya/bootcamp-directory/pkg/mailer"
	tpl "github.com/oksasatya/bootcamp-directory/pkg/mailer/templates"
)

// AuthService implements registration, login, session verification and the
// password reset flow.
type AuthService struct {
	Users    repo.UserRepository
	JWT      *helpers.JWTManager
	Mail     mailer.Sender
	Logger   *logrus.Logger
	Now      func() time.Time
	ResetURL string
	Branding tpl.Branding
}

func NewAuthService(users repo.UserRepository, jwt *helpers.JWTManager, mail mailer.Sender, logger *logrus.Logger, resetURL string, branding tpl.Branding) *AuthService {
	return &AuthService{
		Users:    users,
		JWT:      jwt,
		Mail:     mail,
		Logger:   logger,
		Now:      time.Now,
		ResetURL: strings.TrimRight(resetURL, "/"),
		Branding: branding,
	}
}

// Session is a signed token and the moment it stops being accepted.
type Session struct {
	Token     string
	ExpiresAt time.Time
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     entity.Role
}

type UpdateDetailsInput struct {
	Name  string
	Email string
}

func (s *AuthService) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

func (s *AuthService) log() *logrus.Logger {
	if s.Logger == nil {
		return helpers.NopLogger()
	}
	return s.Logger
}

// Register creates a user with role user or publisher and signs them in.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*entity.User, Session, error) {
	role := in.Role
	if role == "" {
		role = entity.RoleUser
	}
	if role != entity.RoleUser && role != entity.RolePublisher {
		return nil, Session{}, apperror.Validation("role must be user or publisher")
	}
	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return nil, Session{}, apperror.Wrap(apperror.KindInternal, "could not hash password", err)
	}
	u := &entity.User{Name: in.Name, Email: in.Email, Role: role, Password: hash}
	if err := s.Users.Create(ctx, u); err != nil {
		return nil, Session{}, storeErr(err, "user not found", "email is already registered")
	}
	sess, err := s.IssueSession(u)
	if err != nil {
		return nil, Session{}, err
	}
	s.log().WithFields(logrus.Fields{"user_id": u.ID, "role": u.Role}).Info("user registered")
	return u, sess, nil
}

// Login verifies credentials. Unknown email and wrong password are indistinguishable.
func (s *AuthService) Login(ctx context.Context, email, password string) (*entity.User, Session, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return nil, Session{}, apperror.Validation("please provide an email and password")
	}
	u, err := s.Users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, Session{}, apperror.Unauthenticated("invalid credentials")
		}
		return nil, Session{}, storeErr(err, "", "")
	}
	if !helpers.CompareHashAndPassword(u.Password, password) {
		return nil, Session{}, apperror.Unauthenticated("invalid credentials")
	}
	sess, err := s.IssueSession(u)
	if err != nil {
		return nil, Session{}, err
	}
	return u, sess, nil
}

// IssueSession signs a session token for u.
func (s *AuthService) IssueSession(u *entity.User) (Session, error) {
	token, exp, err := s.JWT.GenerateToken(u.ID)
	if err != nil {
		return Session{}, apperror.Wrap(apperror.KindInternal, "could not sign session token", err)
	}
	return Session{Token: token, ExpiresAt: exp}, nil
}

// Identify resolves a session token to its user. Every failure returns the
// same Unauthenticated error so callers cannot tell the causes apart.
func (s *AuthService) Identify(ctx context.Context, token string) (*entity.User, error) {
	if token == "" {
		return nil, apperror.Unauthenticated(MsgNotAuthorized)
	}
	claims, err := s.JWT.ParseToken(token)
	if err != nil {
		return nil, apperror.Wrap(apperror.KindUnauthenticated, MsgNotAuthorized, err)
	}
	u, err := s.Users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, apperror.Wrap(apperror.KindUnauthenticated, MsgNotAuthorized, err)
		}
		return nil, storeErr(err, "", "")
	}
	return u, nil
}

func (s *AuthService) Me(ctx context.Context, id string) (*entity.User, error) {
	u, err := s.Users.GetByID(ctx, id)
	if err != nil {
		return nil, storeErr(err, notFoundMsg("user", id), "")
	}
	return u, nil
}

// UpdateDetails changes the actor's name and email; empty fields are kept.
func (s *AuthService) UpdateDetails(ctx context.Context, actor *entity.User, in UpdateDetailsInput) (*entity.User, error) {
	u, err := s.Me(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	if in.Name != "" {
		u.Name = in.Name
	}
	if in.Email != "" {
		u.Email = in.Email
	}
	if err := s.Users.Update(ctx, u); err != nil {
		return nil, storeErr(err, notFoundMsg("user", u.ID), "email is already registered")
	}
	return u, nil
}

// UpdatePassword replaces the actor's password after checking the current one
// and issues a fresh session.
func (s *AuthService) UpdatePassword(ctx context.Context, actor *entity.User, current, next string) (*entity.User, Session, error) {
	u, err := s.Me(ctx, actor.ID)
	if err != nil {
		return nil, Session{}, err
	}
	if !helpers.CompareHashAndPassword(u.Password, current) {
		return nil, Session{}, apperror.Unauthenticated("password is incorrect")
	}
	hash, err := helpers.HashPassword(next)
	if err != nil {
		return nil, Session{}, apperror.Wrap(apperror.KindInternal, "could not hash password", err)
	}
	if err := s.Users.UpdatePassword(ctx, u.ID, hash); err != nil {
		return nil, Session{}, storeErr(err, notFoundMsg("user", u.ID), "")
	}
	u.Password = hash
	sess, err := s.IssueSession(u)
	if err != nil {
		return nil, Session{}, err
	}
	return u, sess, nil
}

// ForgotPassword stores a fresh reset token and emails its plaintext to the
// user. If the email cannot be sent the token is cleared again.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	u, err := s.Users.GetByEmail(ctx, email)
	if err != nil {
		return storeErr(err, "there is no user with that email", "")
	}
	plain, hashed, err := helpers.NewResetToken()
	if err != nil {
		return apperror.Wrap(apperror.KindInternal, "could not create reset token", err)
	}
	now := s.now()
	expire := now.Add(helpers.ResetTokenTTL)
	if err := s.Users.SetResetToken(ctx, u.ID, hashed, expire); err != nil {
		return storeErr(err, notFoundMsg("user", u.ID), "")
	}

	data := tpl.NewForgotPasswordData(s.Branding, u.Name, u.Email,
		tpl.WithResetURL(s.ResetURL+"/"+plain),
		tpl.WithExpiresAt(expire),
		tpl.WithTime(now),
	)
	subject, text, html, err := tpl.Render(tpl.ForgotPassword, data)
	if err == nil {
		err = s.Mail.Deliver(ctx, mailer.Message{To: u.Email, Subject: subject, Text: text, HTML: html})
	}
	if err != nil {
		s.log().WithError(err).WithField("user_id", u.ID).Error("reset email failed")
		if cErr := s.Users.ClearResetToken(ctx, u.ID); cErr != nil {
			s.log().WithError(cErr).WithField("user_id", u.ID).Error("clear reset token failed")
		}
		return apperror.Upstream("email could not be sent", err)
	}
	return nil
}

// ResetPassword consumes a reset token. Unknown, used and expired tokens all
// yield InvalidToken.
func (s *AuthService) ResetPassword(ctx context.Context, token, password string) (*entity.User, Session, error) {
	u, err := s.Users.GetByResetToken(ctx, helpers.HashResetToken(token), s.now())
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, Session{}, apperror.InvalidToken("invalid token")
		}
		return nil, Session{}, storeErr(err, "", "")
	}
	hash, err := helpers.HashPassword(password)
	if err != nil {
		return nil, Session{}, apperror.Wrap(apperror.KindInternal, "could not hash password", err)
	}
	if err := s.Users.ResetPassword(ctx, u.ID, hash); err != nil {
		return nil, Session{}, storeErr(err, notFoundMsg("user", u.ID), "")
	}
	u.Password = hash
	u.ResetPasswordToken = ""
	u.ResetPasswordExpire = nil
	sess, err := s.IssueSession(u)
	if err != nil {
		return nil, Session{}, err
	}
	return u, sess, nil
}
