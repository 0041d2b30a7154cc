// Package dashboard builds the summary screens shown right after login.
package dashboard

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/eldad2003/pharmverse-edu-hub/core/conference"
	"github.com/eldad2003/pharmverse-edu-hub/core/material"
	"github.com/eldad2003/pharmverse-edu-hub/core/timetable"
	"github.com/eldad2003/pharmverse-edu-hub/core/user"
)

var nowFunc = time.Now // mockable

type (
	AdminDashboard struct {
		Role         string `json:"role"`
		Username     string `json:"username"`
		YearGroup    string `json:"yearGroup"`
		Students     int    `json:"students"`
		Materials    int    `json:"materials"`
		ClassesToday int    `json:"classesToday"`
		LiveSessions int    `json:"liveSessions"`
	}

	StudentDashboard struct {
		Role          string            `json:"role"`
		Username      string            `json:"username"`
		YearGroup     string            `json:"yearGroup"`
		Today         string            `json:"today"`
		TodaysClasses []timetable.Entry `json:"todaysClasses"`
		Materials     int               `json:"materials"`
		LiveSessions  int               `json:"liveSessions"`
	}
)

type Service struct {
	users     *user.Service
	timetable *timetable.Service
	materials *material.Service
}

func NewService(users *user.Service, tt *timetable.Service, materials *material.Service) *Service {
	return &Service{users: users, timetable: tt, materials: materials}
}

// For returns the dashboard of the session's role: an AdminDashboard or a StudentDashboard.
func (svc *Service) For(ctx context.Context, sess user.Session) (interface{}, error) {
	switch s := sess.(type) {
	case user.AdminSession:
		return svc.admin(ctx, s)
	case user.StudentSession:
		return svc.student(ctx, s)
	default:
		return nil, errors.Errorf("unexpected session type %T", sess)
	}
}

func (svc *Service) admin(ctx context.Context, s user.AdminSession) (AdminDashboard, error) {
	students, err := svc.users.CountStudents(ctx, s.YearGroup())
	if err != nil {
		return AdminDashboard{}, err
	}
	materials, err := svc.materials.Count(ctx, s.YearGroup())
	if err != nil {
		return AdminDashboard{}, err
	}
	classes, err := svc.timetable.CountToday(ctx, s.YearGroup())
	if err != nil {
		return AdminDashboard{}, err
	}
	return AdminDashboard{
		Role:         s.Role(),
		Username:     s.Username(),
		YearGroup:    s.YearGroup(),
		Students:     students,
		Materials:    materials,
		ClassesToday: classes,
		LiveSessions: conference.LiveSessions,
	}, nil
}

func (svc *Service) student(ctx context.Context, s user.StudentSession) (StudentDashboard, error) {
	classes, err := svc.timetable.Today(ctx, s)
	if err != nil {
		return StudentDashboard{}, err
	}
	materials, err := svc.materials.Count(ctx, s.YearGroup())
	if err != nil {
		return StudentDashboard{}, err
	}
	return StudentDashboard{
		Role:          s.Role(),
		Username:      s.Username(),
		YearGroup:     s.YearGroup(),
		Today:         nowFunc().Format("Monday, January 2, 2006"),
		TodaysClasses: classes,
		Materials:     materials,
		LiveSessions:  conference.LiveSessions,
	}, nil
}
