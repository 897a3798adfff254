package services

import (
	"context"

	"github.com/yigit/scholarship/internal/app/models"
	"golang.org/x/sync/errgroup"
)

// NotificationLimit is how many notifications the panel shows
const NotificationLimit = 10

// PanelService assembles the student dashboard
type PanelService struct {
	userRepo    UserRepository
	studentRepo StudentRepository
	panelRepo   PanelRepository
}

// NewPanelService creates a new PanelService
func NewPanelService(userRepo UserRepository, studentRepo StudentRepository, panelRepo PanelRepository) *PanelService {
	return &PanelService{
		userRepo:    userRepo,
		studentRepo: studentRepo,
		panelRepo:   panelRepo,
	}
}

// Get loads the caller's dashboard. The independent reads run concurrently
// and the first failure cancels the rest.
func (s *PanelService) Get(ctx context.Context, userID int64) (*models.Panel, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	student, err := s.studentRepo.GetStudentByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	panel := &models.Panel{User: user, Student: student}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		panel.Scholarship, err = s.panelRepo.CurrentScholarship(gctx, student.ID)
		return err
	})
	g.Go(func() (err error) {
		panel.Applications, err = s.panelRepo.ApplicationStats(gctx, student.ID)
		return err
	})
	g.Go(func() (err error) {
		panel.Documents, err = s.panelRepo.DocumentStats(gctx, student.ID)
		return err
	})
	g.Go(func() (err error) {
		panel.Notifications, err = s.panelRepo.RecentNotifications(gctx, user.ID, NotificationLimit)
		return err
	})
	g.Go(func() (err error) {
		panel.FollowUps, err = s.panelRepo.FollowUps(gctx, student.ID)
		return err
	})
	g.Go(func() (err error) {
		panel.Renewals, err = s.panelRepo.Renewals(gctx, student.ID)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return panel, nil
}
