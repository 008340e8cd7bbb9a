// Package fsledger журнал бронирований и кошельки поверх Firestore
// Альтернативный бэкенд хранилища (storage.driver = "firestore"),
// повторяющий схему коллекций исходного развертывания
package fsledger

import (
	"context"
	"fmt"
	"sort"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/m04kA/STS-BookingService/internal/domain"
	"github.com/m04kA/STS-BookingService/pkg/types"
)

const reservationsCollection = "bookings"

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// reservationDoc документ бронирования
// Временные метки хранятся строками ISO-8601, как в исходной коллекции
type reservationDoc struct {
	UserID          string `firestore:"userId"`
	UserName        string `firestore:"userName"`
	UserEmail       string `firestore:"userEmail"`
	SunbedID        string `firestore:"sunbedId"`
	SunbedName      string `firestore:"sunbedName"`
	Date            string `firestore:"date"`
	Time            string `firestore:"time"`
	DurationMinutes int    `firestore:"duration"`
	Status          string `firestore:"status"`
	CreatedAt       string `firestore:"createdAt"`
	UpdatedAt       string `firestore:"updatedAt"`
}

func (d *reservationDoc) toDomain(id string) *domain.Reservation {
	createdAt, _ := time.Parse(time.RFC3339, d.CreatedAt)
	updatedAt, _ := time.Parse(time.RFC3339, d.UpdatedAt)
	return &domain.Reservation{
		ID:              id,
		UserID:          d.UserID,
		UserName:        d.UserName,
		UserEmail:       d.UserEmail,
		SunbedID:        d.SunbedID,
		SunbedName:      d.SunbedName,
		Date:            d.Date,
		Slot:            types.TimeString(d.Time),
		DurationMinutes: d.DurationMinutes,
		Status:          domain.ReservationStatus(d.Status),
		CreatedAt:       createdAt,
		UpdatedAt:       updatedAt,
	}
}

// ReservationLedger журнал бронирований в Firestore
type ReservationLedger struct {
	client *firestore.Client
	log    Logger
}

// NewReservationLedger создает журнал поверх клиента Firestore
func NewReservationLedger(client *firestore.Client, log Logger) *ReservationLedger {
	return &ReservationLedger{client: client, log: log}
}

func (l *ReservationLedger) col() *firestore.CollectionRef {
	return l.client.Collection(reservationsCollection)
}

func confirmedByDateQuery(col *firestore.CollectionRef, date string) firestore.Query {
	return col.
		Where("date", "==", date).
		Where("status", "==", string(domain.StatusConfirmed))
}

// Create создает новое бронирование; ID присваивает Firestore
func (l *ReservationLedger) Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	now := time.Now().UTC()
	res.CreatedAt = now
	res.UpdatedAt = now

	doc := reservationDoc{
		UserID:          res.UserID,
		UserName:        res.UserName,
		UserEmail:       res.UserEmail,
		SunbedID:        res.SunbedID,
		SunbedName:      res.SunbedName,
		Date:            res.Date,
		Time:            res.Slot.String(),
		DurationMinutes: res.DurationMinutes,
		Status:          string(res.Status),
		CreatedAt:       now.Format(time.RFC3339),
		UpdatedAt:       now.Format(time.RFC3339),
	}

	ref := l.col().NewDoc()
	if _, err := ref.Create(ctx, doc); err != nil {
		return nil, fmt.Errorf("%w: Create: %v", ErrQuery, err)
	}

	res.ID = ref.ID
	return res, nil
}

// GetByID получает бронирование по ID документа
func (l *ReservationLedger) GetByID(ctx context.Context, id string) (*domain.Reservation, error) {
	snap, err := l.col().Doc(id).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID: %v", ErrQuery, err)
	}

	var doc reservationDoc
	if err := snap.DataTo(&doc); err != nil {
		return nil, fmt.Errorf("%w: GetByID - decode: %v", ErrQuery, err)
	}
	return doc.toDomain(snap.Ref.ID), nil
}

// GetConfirmedByDate получает все подтвержденные бронирования на дату
func (l *ReservationLedger) GetConfirmedByDate(ctx context.Context, date string) ([]*domain.Reservation, error) {
	snaps, err := confirmedByDateQuery(l.col(), date).Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("%w: GetConfirmedByDate: %v", ErrQuery, err)
	}
	return decodeSnapshots(snaps)
}

// FindConflict ищет подтвержденное бронирование на (солярий, дата, слот)
// Возвращает nil, если слот свободен.
// Firestore не дает блокировки читаемых по запросу строк, поэтому здесь
// остается окно check-then-insert; оно принято как допустимое для этого
// бэкенда (см. DESIGN.md)
func (l *ReservationLedger) FindConflict(ctx context.Context, sunbedID, date string, slot types.TimeString) (*domain.Reservation, error) {
	snaps, err := l.col().
		Where("date", "==", date).
		Where("time", "==", slot.String()).
		Where("sunbedId", "==", sunbedID).
		Where("status", "==", string(domain.StatusConfirmed)).
		Limit(1).
		Documents(ctx).
		GetAll()
	if err != nil {
		return nil, fmt.Errorf("%w: FindConflict: %v", ErrQuery, err)
	}
	if len(snaps) == 0 {
		return nil, nil
	}

	var doc reservationDoc
	if err := snaps[0].DataTo(&doc); err != nil {
		return nil, fmt.Errorf("%w: FindConflict - decode: %v", ErrQuery, err)
	}
	return doc.toDomain(snaps[0].Ref.ID), nil
}

// GetByUserID получает бронирования пользователя, исключая отмененные
// Запрос по одному полю, фильтрация и сортировка в коде - коллекции
// достаточно одиночного индекса userId
func (l *ReservationLedger) GetByUserID(ctx context.Context, userID string) ([]*domain.Reservation, error) {
	snaps, err := l.col().Where("userId", "==", userID).Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID: %v", ErrQuery, err)
	}

	all, err := decodeSnapshots(snaps)
	if err != nil {
		return nil, err
	}

	reservations := make([]*domain.Reservation, 0, len(all))
	for _, r := range all {
		if !r.IsCancelled() {
			reservations = append(reservations, r)
		}
	}

	sort.Slice(reservations, func(i, j int) bool {
		if reservations[i].Date != reservations[j].Date {
			return reservations[i].Date > reservations[j].Date
		}
		return reservations[i].Slot.IsAfter(reservations[j].Slot)
	})

	return reservations, nil
}

// UpdateStatus обновляет статус бронирования
func (l *ReservationLedger) UpdateStatus(ctx context.Context, id string, newStatus domain.ReservationStatus) error {
	_, err := l.col().Doc(id).Update(ctx, []firestore.Update{
		{Path: "status", Value: string(newStatus)},
		{Path: "updatedAt", Value: time.Now().UTC().Format(time.RFC3339)},
	})
	if status.Code(err) == codes.NotFound {
		return ErrReservationNotFound
	}
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus: %v", ErrQuery, err)
	}
	return nil
}

func decodeSnapshots(snaps []*firestore.DocumentSnapshot) ([]*domain.Reservation, error) {
	reservations := make([]*domain.Reservation, 0, len(snaps))
	for _, snap := range snaps {
		var doc reservationDoc
		if err := snap.DataTo(&doc); err != nil {
			return nil, fmt.Errorf("%w: decode document %s: %v", ErrQuery, snap.Ref.ID, err)
		}
		reservations = append(reservations, doc.toDomain(snap.Ref.ID))
	}
	return reservations, nil
}
