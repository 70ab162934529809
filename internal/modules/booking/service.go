package booking

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"campusbook/internal/domain"
	"campusbook/internal/repository"
)

// WindowConfig holds the booking window limits, normally taken from
// config.Config.
type WindowConfig struct {
	MinLeadDays   int
	MaxWindowDays int
}

type Service struct {
	bookings  BookingRepository
	resources ResourceReader
	slots     SlotReader
	notifs    Notifier
	window    WindowConfig
}

func NewService(
	bookings BookingRepository,
	resources ResourceReader,
	slots SlotReader,
	notifs Notifier,
	window WindowConfig,
) *Service {
	return &Service{
		bookings:  bookings,
		resources: resources,
		slots:     slots,
		notifs:    notifs,
		window:    window,
	}
}

// ServerRules returns the validation rule set the server applies for a kind.
// RequireTerms stays false: the consent checkbox is collected and checked by
// the client and never travels over the wire.
func (s *Service) ServerRules(kind domain.ResourceKind) Rules {
	return Rules{
		RequireEnd:    kind != domain.KindLab,
		RequireTerms:  false,
		MinLeadDays:   s.window.MinLeadDays,
		MaxWindowDays: s.window.MaxWindowDays,
	}
}

func (s *Service) CreateBooking(ctx context.Context, kind domain.ResourceKind, userID int64, req CreateBookingRequest) (*domain.Booking, error) {
	res, err := s.resources.GetByID(ctx, req.ResourceID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if res.Kind != kind || !res.IsActive {
		return nil, ErrNotFound
	}

	form := buildForm(kind, req)
	if errs := Validate(s.ServerRules(kind), form, time.Now().UTC()); len(errs) > 0 {
		return nil, &ValidationError{Fields: errs}
	}

	var start, end time.Time
	var slotID *int64

	if kind == domain.KindLab {
		slot, verr := s.resolveSlot(ctx, res.ID, req.TimeSlotID)
		if verr != nil {
			return nil, verr
		}
		start, err = Combine(req.Date, slot.StartTime)
		if err == nil {
			end, err = Combine(req.Date, slot.EndTime)
		}
		if err != nil {
			return nil, &ValidationError{Fields: FieldErrors{FieldTimeSlot: "Time slot has an invalid window"}}
		}
		slotID = &slot.ID
	} else {
		start = req.StartTime.UTC()
		end = req.EndTime.UTC()
	}

	status := domain.BookingApproved
	if res.RequiresApproval {
		status = domain.BookingPending
	}

	b := &domain.Booking{
		Reference:  newReference(kind),
		ResourceID: res.ID,
		Kind:       kind,
		UserID:     userID,
		StartTime:  start,
		EndTime:    end,
		TimeSlotID: slotID,
		Purpose:    req.Purpose,
		Status:     status,
	}

	if err := s.bookings.Create(ctx, b); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" && pgErr.ConstraintName == "idx_bookings_reference" {
			b.Reference = newReference(kind)
			err = s.bookings.Create(ctx, b)
		}
		if err != nil {
			return nil, err
		}
	}

	if s.notifs != nil {
		_ = s.notifs.BookingCreated(ctx, b)
	}

	return b, nil
}

// resolveSlot picks the requested slot, or the lab's first slot when the
// request names none.
func (s *Service) resolveSlot(ctx context.Context, resourceID int64, slotID *int64) (*domain.TimeSlot, error) {
	if slotID != nil {
		slot, err := s.slots.GetByID(ctx, *slotID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, &ValidationError{Fields: FieldErrors{FieldTimeSlot: "Unknown time slot"}}
			}
			return nil, err
		}
		if slot.ResourceID != resourceID {
			return nil, &ValidationError{Fields: FieldErrors{FieldTimeSlot: "Time slot does not belong to this lab"}}
		}
		return slot, nil
	}

	slot, err := s.slots.FirstForResource(ctx, resourceID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, &ValidationError{Fields: FieldErrors{FieldTimeSlot: "No time slots are defined for this lab"}}
		}
		return nil, err
	}
	return slot, nil
}

func (s *Service) ListMyBookings(ctx context.Context, kind domain.ResourceKind, userID int64) ([]BookingListItem, error) {
	rows, err := s.bookings.ListByUser(ctx, kind, userID)
	if err != nil {
		return nil, err
	}

	out := make([]BookingListItem, 0, len(rows))
	for _, r := range rows {
		out = append(out, BookingListItem{
			ID:               r.ID,
			Reference:        r.Reference,
			ResourceID:       r.ResourceID,
			ResourceName:     r.ResourceName,
			ResourceLocation: r.ResourceLocation,
			StartTime:        r.StartTime,
			EndTime:          r.EndTime,
			Purpose:          r.Purpose,
			Status:           r.Status,
			CreatedAt:        r.CreatedAt,
		})
	}
	return out, nil
}

func (s *Service) UpdateStatus(ctx context.Context, kind domain.ResourceKind, bookingID int64, actor domain.Session, newStatus domain.BookingStatus) (*domain.Booking, error) {
	if actor.Role != domain.RoleAdmin {
		return nil, ErrForbidden
	}

	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if b.Kind != kind {
		return nil, ErrNotFound
	}

	if !transitionAllowed(b.Status, newStatus) {
		return nil, ErrInvalidStatusTransition
	}

	if err := s.bookings.UpdateStatus(ctx, bookingID, newStatus); err != nil {
		return nil, err
	}
	b.Status = newStatus

	if s.notifs != nil {
		_ = s.notifs.BookingDecided(ctx, b)
	}

	return b, nil
}

func transitionAllowed(from, to domain.BookingStatus) bool {
	switch from {
	case domain.BookingPending:
		return to == domain.BookingApproved || to == domain.BookingRejected
	case domain.BookingApproved:
		return to == domain.BookingCompleted
	}
	return false
}

func buildForm(kind domain.ResourceKind, req CreateBookingRequest) Form {
	f := Form{Purpose: req.Purpose}

	if kind == domain.KindLab {
		f.Date = req.Date
		return f
	}

	if req.StartTime != nil {
		start := req.StartTime.UTC()
		f.Date = start.Format(dateLayout)
		f.StartTimeOfDay = start.Format(timeLayout)
	}
	if req.EndTime != nil {
		end := req.EndTime.UTC()
		f.EndDate = end.Format(dateLayout)
		f.EndTimeOfDay = end.Format(timeLayout)
	}
	return f
}

var kindPrefixes = map[domain.ResourceKind]string{
	domain.KindEquipment: "EQ",
	domain.KindLab:       "LB",
	domain.KindRoom:      "RM",
}

func newReference(kind domain.ResourceKind) string {
	return fmt.Sprintf("%s-%s-%04d", kindPrefixes[kind], time.Now().UTC().Format("20060102"), rand.IntN(10000))
}
