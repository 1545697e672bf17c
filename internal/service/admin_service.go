package service

import (
	"context"

	"golang.org/x/sync/errgroup"

	"devchatClient/internal/models"
)

type AdminDashboard struct {
	Pending []models.User
	Users   []models.User
}

type AdminService interface {
	// Dashboard loads pending users and the user listing. SUPERADMIN sees the
	// full admin listing, other admins the public one.
	Dashboard(ctx context.Context, role models.Role) (*AdminDashboard, error)
	Pending(ctx context.Context) ([]models.User, error)
	Users(ctx context.Context, role models.Role) ([]models.User, error)
	Verify(ctx context.Context, userID int64) error
}

type adminService struct {
	gateway Gateway
}

func NewAdminService(gateway Gateway) AdminService {
	return &adminService{gateway: gateway}
}

func (s *adminService) Dashboard(ctx context.Context, role models.Role) (*AdminDashboard, error) {
	dash := &AdminDashboard{}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		dash.Pending, err = s.gateway.PendingUsers(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		dash.Users, err = s.Users(gctx, role)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return dash, nil
}

func (s *adminService) Pending(ctx context.Context) ([]models.User, error) {
	return s.gateway.PendingUsers(ctx)
}

func (s *adminService) Users(ctx context.Context, role models.Role) ([]models.User, error) {
	if role == models.RoleSuperAdmin {
		return s.gateway.AllUsers(ctx)
	}
	return s.gateway.ListUsers(ctx)
}

func (s *adminService) Verify(ctx context.Context, userID int64) error {
	return s.gateway.VerifyUser(ctx, userID)
}

// MarkVerified moves userID from the pending list into the user listing,
// mirroring a successful Verify without reloading.
func (d *AdminDashboard) MarkVerified(userID int64) {
	for i, u := range d.Pending {
		if u.ID != userID {
			continue
		}
		d.Pending = append(d.Pending[:i:i], d.Pending[i+1:]...)
		u.Verified = true
		for j := range d.Users {
			if d.Users[j].ID == userID {
				d.Users[j] = u
				return
			}
		}
		d.Users = append(d.Users, u)
		return
	}
}
