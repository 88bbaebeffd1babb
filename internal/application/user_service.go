package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/workspace-hub/internal/domain/entity"
	repo "github.com/oksasatya/workspace-hub/internal/domain/repository"
	"github.com/oksasatya/workspace-hub/pkg/apperror"
	"github.com/oksasatya/workspace-hub/pkg/helpers"
	"github.com/oksasatya/workspace-hub/pkg/mailer"
	"github.com/oksasatya/workspace-hub/pkg/validation"
)

// JobPublisher puts background jobs on a queue.
type JobPublisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// WelcomeMail configures the email queued after a registration.
type WelcomeMail struct {
	Enabled   bool
	AppName   string
	SignInURL string
}

type UserService struct {
	Repo   repo.UserRepository
	Logger *logrus.Logger
	Jobs   JobPublisher
	Mail   WelcomeMail
	now    func() time.Time
}

func NewUserService(r repo.UserRepository, logger *logrus.Logger, jobs JobPublisher, mail WelcomeMail) *UserService {
	return &UserService{
		Repo:   r,
		Logger: logger,
		Jobs:   jobs,
		Mail:   mail,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// fail converts a repository error into a service failure. Unknown errors
// are logged with op and surfaced as Internal.
func (s *UserService) fail(op string, err error, fields logrus.Fields) error {
	switch {
	case errors.Is(err, repo.ErrNotFound):
		return apperror.New(apperror.NotFound, "user not found")
	case errors.Is(err, repo.ErrEmailInUse):
		return &apperror.Error{
			Code:    apperror.EmailInUse,
			Message: "email already in use",
			Fields:  map[string]string{"email": "email already in use"},
		}
	case errors.Is(err, repo.ErrAlreadyInactive):
		return apperror.New(apperror.AlreadyInactive, "user is already inactive")
	}
	var ae *apperror.Error
	if errors.As(err, &ae) {
		return ae
	}
	if fields == nil {
		fields = logrus.Fields{}
	}
	fields["op"] = op
	helpers.LogError(s.Logger, "user service failure", err, fields)
	return apperror.Wrap(err)
}

func checkID(id string) error {
	if strings.TrimSpace(id) == "" {
		return apperror.Invalid("user id is required", map[string]string{"id": "is required"})
	}
	if _, err := uuid.Parse(id); err != nil {
		return apperror.Invalid("invalid user id", map[string]string{"id": "must be a valid UUID"})
	}
	return nil
}

// Create validates a raw registration record and inserts the user.
func (s *UserService) Create(ctx context.Context, input map[string]any) (UserDTO, error) {
	nu, errs := validation.ValidateCreateUser(input)
	if errs != nil {
		return UserDTO{}, apperror.Invalid("validation failed", errs)
	}

	meta := map[string]any{entity.MetaTermsAcceptedAt: s.now().Format(time.RFC3339)}
	if nu.Phone != "" {
		meta[entity.MetaPhone] = nu.Phone
	}
	nu.ProfileMetadata = meta

	u, err := s.Repo.Create(ctx, nu)
	if err != nil {
		return UserDTO{}, s.fail("create", err, logrus.Fields{"email": nu.Email})
	}
	s.queueWelcome(ctx, u)
	return ToDTO(u), nil
}

// queueWelcome publishes the welcome email job. Failures are logged only.
func (s *UserService) queueWelcome(ctx context.Context, u *entity.User) {
	if !s.Mail.Enabled || s.Jobs == nil {
		return
	}
	job := mailer.NewWelcomeJob(u.Email, u.Name, s.Mail.AppName, s.Mail.SignInURL)
	if err := s.Jobs.PublishJSON(ctx, job); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Warn("publish welcome email failed")
	}
}

func (s *UserService) GetByID(ctx context.Context, id string) (UserDTO, error) {
	if err := checkID(id); err != nil {
		return UserDTO{}, err
	}
	u, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return UserDTO{}, s.fail("get_by_id", err, logrus.Fields{"user_id": id})
	}
	return ToDTO(u), nil
}

func (s *UserService) GetByEmail(ctx context.Context, email string) (UserDTO, error) {
	u, err := s.GetForAuth(ctx, email)
	if err != nil {
		return UserDTO{}, err
	}
	return ToDTO(u), nil
}

// GetForAuth returns the stored user including the password hash.
func (s *UserService) GetForAuth(ctx context.Context, email string) (*entity.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, apperror.Invalid("email is required", map[string]string{"email": "is required"})
	}
	u, err := s.Repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, s.fail("get_for_auth", err, nil)
	}
	return u, nil
}

// Authenticate checks credentials of an active user and stamps the login time.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (UserDTO, error) {
	invalid := apperror.New(apperror.Unauthorized, "invalid credentials")
	u, err := s.GetForAuth(ctx, email)
	if err != nil {
		if apperror.Is(err, apperror.NotFound) || apperror.Is(err, apperror.Validation) {
			return UserDTO{}, invalid
		}
		return UserDTO{}, err
	}
	if !u.IsActive || !helpers.CompareHashAndPassword(u.PasswordHash, password) {
		return UserDTO{}, invalid
	}
	return s.UpdateLastLogin(ctx, u.ID)
}

// Update applies a partial update. At least one field must be provided.
func (s *UserService) Update(ctx context.Context, id string, in validation.UpdateUserInput) (UserDTO, error) {
	if err := checkID(id); err != nil {
		return UserDTO{}, err
	}
	if errs := validation.ValidateUpdateUser(&in); errs != nil {
		return UserDTO{}, apperror.Invalid("validation failed", errs)
	}
	upd := entity.UserUpdate{
		Name:            in.Name,
		Email:           in.Email,
		Password:        in.Password,
		IsActive:        in.IsActive,
		ProfileMetadata: in.ProfileMetadata,
	}
	return s.apply(ctx, "update", id, upd)
}

func (s *UserService) apply(ctx context.Context, op, id string, upd entity.UserUpdate) (UserDTO, error) {
	if upd.Empty() {
		return UserDTO{}, apperror.Invalid("no fields provided for update", nil)
	}
	u, err := s.Repo.Update(ctx, id, upd)
	if err != nil {
		return UserDTO{}, s.fail(op, err, logrus.Fields{"user_id": id})
	}
	return ToDTO(u), nil
}

// ProfileInput is a self-service profile change. Metadata is merged into the
// stored document rather than replacing it.
type ProfileInput struct {
	Name     *string        `json:"name"`
	Phone    *string        `json:"phone"`
	Metadata map[string]any `json:"profileMetadata"`
}

func (s *UserService) UpdateProfile(ctx context.Context, id string, in ProfileInput) (UserDTO, error) {
	if err := checkID(id); err != nil {
		return UserDTO{}, err
	}
	if errs := validation.ValidateUpdateUser(&validation.UpdateUserInput{Name: in.Name}); errs != nil {
		return UserDTO{}, apperror.Invalid("validation failed", errs)
	}

	upd := entity.UserUpdate{Name: in.Name}
	patch := map[string]any{}
	for k, v := range in.Metadata {
		patch[k] = v
	}
	// an empty phone leaves the stored one alone
	if in.Phone != nil && *in.Phone != "" {
		if msg, ok := validation.ValidatePhone(*in.Phone); !ok {
			return UserDTO{}, apperror.Invalid("validation failed", map[string]string{"phone": msg})
		}
		patch[entity.MetaPhone] = *in.Phone
	}
	if in.Name == nil && len(patch) == 0 {
		return UserDTO{}, apperror.Invalid("no fields provided for update", nil)
	}
	patch[entity.MetaUpdatedAt] = s.now().Format(time.RFC3339)
	upd.MetadataPatch = patch

	return s.apply(ctx, "update_profile", id, upd)
}

func (s *UserService) UpdateLastLogin(ctx context.Context, id string) (UserDTO, error) {
	if err := checkID(id); err != nil {
		return UserDTO{}, err
	}
	u, err := s.Repo.UpdateLastLogin(ctx, id)
	if err != nil {
		return UserDTO{}, s.fail("update_last_login", err, logrus.Fields{"user_id": id})
	}
	return ToDTO(u), nil
}

// Delete removes the user row permanently.
func (s *UserService) Delete(ctx context.Context, id string) (UserDTO, error) {
	if err := checkID(id); err != nil {
		return UserDTO{}, err
	}
	u, err := s.Repo.Delete(ctx, id)
	if err != nil {
		return UserDTO{}, s.fail("delete", err, logrus.Fields{"user_id": id})
	}
	return ToDTO(u), nil
}

// Deactivate soft deletes an active user.
func (s *UserService) Deactivate(ctx context.Context, id string) (UserDTO, error) {
	if err := checkID(id); err != nil {
		return UserDTO{}, err
	}
	u, err := s.Repo.SoftDelete(ctx, id)
	if err != nil {
		return UserDTO{}, s.fail("deactivate", err, logrus.Fields{"user_id": id})
	}
	return ToDTO(u), nil
}

func (s *UserService) Reactivate(ctx context.Context, id string) (UserDTO, error) {
	if err := checkID(id); err != nil {
		return UserDTO{}, err
	}
	active := true
	return s.apply(ctx, "reactivate", id, entity.UserUpdate{IsActive: &active})
}
