package user

import (
	"context"
	"crypto/subtle"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

var (
	// errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrMissingYearGroup   = errors.New("please select a year group")
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrUnknownYearGroup   = errors.New("unknown year group")
)

type (
	Repository interface {
		// QueryAllCredentials returns every registered credential, in registration order.
		QueryAllCredentials(ctx context.Context) ([]Credential, error)
		AppendCredential(ctx context.Context, cred Credential) error
	}

	Service struct {
		repo          Repository
		validate      *validator.Validate
		adminPassword string
	}
)

func NewService(repo Repository, validate *validator.Validate, adminPassword string) *Service {
	return &Service{
		repo:          repo,
		validate:      validate,
		adminPassword: adminPassword,
	}
}

// Login checks a login request and returns the Session it grants.
//
// Admins share a single password and pick the year group they manage; the password is checked first.
// Students are matched on username and password; if several credentials match, the first registered wins.
func (svc *Service) Login(ctx context.Context, lr LoginRequest) (Session, error) {
	lr.Clean()

	switch lr.Role {
	case RoleAdmin:
		if subtle.ConstantTimeCompare([]byte(lr.Password), []byte(svc.adminPassword)) != 1 {
			return nil, ErrInvalidCredentials
		}
		if lr.YearGroup == "" {
			return nil, ErrMissingYearGroup
		}
		if !IsYearGroup(lr.YearGroup) {
			return nil, ErrUnknownYearGroup
		}
		return AdminSession{Group: lr.YearGroup}, nil

	case RoleStudent:
		creds, err := svc.repo.QueryAllCredentials(ctx)
		if err != nil {
			return nil, errors.Wrap(err, "querying credentials")
		}
		for _, c := range creds {
			if c.Username == lr.Username && c.Password == lr.Password {
				return StudentSession{Name: c.Username, Group: c.YearGroup}, nil
			}
		}
		return nil, ErrInvalidCredentials

	default:
		return nil, ErrInvalidCredentials
	}
}

// Register validates and stores a new student credential. It does not log the student in.
func (svc *Service) Register(ctx context.Context, ns NewStudent) (Credential, error) {
	if err := ns.Validate(svc.validate); err != nil {
		return Credential{}, err
	}
	cred := Credential{
		Username:  ns.Username,
		Password:  ns.Password,
		YearGroup: ns.YearGroup,
		Role:      RoleStudent,
	}
	if err := svc.repo.AppendCredential(ctx, cred); err != nil {
		return Credential{}, errors.Wrap(err, "appending credential")
	}
	return cred, nil
}

// CountStudents returns the number of credentials registered for a year group.
func (svc *Service) CountStudents(ctx context.Context, yearGroup string) (int, error) {
	creds, err := svc.repo.QueryAllCredentials(ctx)
	if err != nil {
		return 0, errors.Wrap(err, "querying credentials")
	}
	var n int
	for _, c := range creds {
		if c.YearGroup == yearGroup {
			n++
		}
	}
	return n, nil
}
