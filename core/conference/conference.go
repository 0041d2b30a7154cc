// Package conference announces and joins a year group's live session.
// No media session is ever established: both actions only produce an acknowledgement.
package conference

import (
	"github.com/eldad2003/pharmverse-edu-hub/core"
	"github.com/eldad2003/pharmverse-edu-hub/core/user"
)

// LiveSessions is the number of conference rooms a year group has.
const LiveSessions = 1

type Service struct {
	notifier core.Notifier
}

func NewService(notifier core.Notifier) *Service {
	return &Service{notifier: notifier}
}

func (svc *Service) Announce(sess user.Session) (core.Ack, error) {
	if _, ok := sess.(user.AdminSession); !ok {
		return core.Ack{}, core.ErrPermissionDenied
	}
	ack := core.Ack{
		Kind:        "conference",
		Title:       "Conference Starting",
		Description: "Video conference link has been generated for your year group",
	}
	svc.notifier.Notify(sess.YearGroup(), ack)
	return ack, nil
}

func (svc *Service) Join(sess user.Session) (core.Ack, error) {
	if _, ok := sess.(user.StudentSession); !ok {
		return core.Ack{}, core.ErrPermissionDenied
	}
	ack := core.Ack{
		Kind:        "conference",
		Title:       "Joining Conference",
		Description: "Connecting you to the live session...",
	}
	svc.notifier.Notify(sess.Username(), ack)
	return ack, nil
}
