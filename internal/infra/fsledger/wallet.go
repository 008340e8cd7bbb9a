package fsledger

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/m04kA/STS-BookingService/internal/domain"
)

const (
	usersCollection     = "users"
	purchasesCollection = "purchases"
)

// walletDoc документ кошелька в коллекции users
// Повторяет поля исходного пользовательского документа
type walletDoc struct {
	Email              string  `firestore:"email"`
	DisplayName        string  `firestore:"displayName"`
	RemainingHours     float64 `firestore:"remaining"`
	HoursUsedThisMonth float64 `firestore:"hoursUsedThisMonth"`
	CreatedAt          string  `firestore:"createdAt"`
	LastUpdated        string  `firestore:"lastUpdated"`
}

func (d *walletDoc) toDomain(userID string) *domain.Wallet {
	createdAt, _ := time.Parse(time.RFC3339, d.CreatedAt)
	updatedAt, _ := time.Parse(time.RFC3339, d.LastUpdated)
	return &domain.Wallet{
		UserID:             userID,
		Email:              d.Email,
		DisplayName:        d.DisplayName,
		RemainingHours:     d.RemainingHours,
		HoursUsedThisMonth: d.HoursUsedThisMonth,
		CreatedAt:          createdAt,
		UpdatedAt:          updatedAt,
	}
}

type purchaseDoc struct {
	Hours     float64 `firestore:"hours"`
	Amount    float64 `firestore:"amount"`
	CreatedAt string  `firestore:"createdAt"`
}

// WalletStore кошельки предоплаченных часов в Firestore
type WalletStore struct {
	client *firestore.Client
	log    Logger
}

// NewWalletStore создает хранилище кошельков поверх клиента Firestore
func NewWalletStore(client *firestore.Client, log Logger) *WalletStore {
	return &WalletStore{client: client, log: log}
}

func (s *WalletStore) doc(userID string) *firestore.DocumentRef {
	return s.client.Collection(usersCollection).Doc(userID)
}

// GetByUserID получает кошелек пользователя
func (s *WalletStore) GetByUserID(ctx context.Context, userID string) (*domain.Wallet, error) {
	snap, err := s.doc(userID).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, ErrWalletNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: wallet GetByUserID: %v", ErrQuery, err)
	}

	var doc walletDoc
	if err := snap.DataTo(&doc); err != nil {
		return nil, fmt.Errorf("%w: wallet GetByUserID - decode: %v", ErrQuery, err)
	}
	return doc.toDomain(userID), nil
}

// CreateIfMissing заводит кошелек с нулевым балансом при первом обращении
func (s *WalletStore) CreateIfMissing(ctx context.Context, userID, email, displayName string) error {
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.doc(userID).Create(ctx, walletDoc{
		Email:       email,
		DisplayName: displayName,
		CreatedAt:   now,
		LastUpdated: now,
	})
	if status.Code(err) == codes.AlreadyExists {
		return nil
	}
	if err != nil {
		return fmt.Errorf("%w: wallet CreateIfMissing: %v", ErrQuery, err)
	}
	return nil
}

// Deduct списывает hours часов с кошелька
// Выполняется в транзакции Firestore: баланс не уходит в минус
func (s *WalletStore) Deduct(ctx context.Context, userID string, hours float64) error {
	ref := s.doc(userID)

	err := s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		snap, err := tx.Get(ref)
		if status.Code(err) == codes.NotFound {
			return ErrWalletNotFound
		}
		if err != nil {
			return err
		}

		var doc walletDoc
		if err := snap.DataTo(&doc); err != nil {
			return err
		}
		if doc.RemainingHours < hours {
			return ErrInsufficientBalance
		}

		return tx.Update(ref, []firestore.Update{
			{Path: "remaining", Value: doc.RemainingHours - hours},
			{Path: "hoursUsedThisMonth", Value: doc.HoursUsedThisMonth + hours},
			{Path: "lastUpdated", Value: time.Now().UTC().Format(time.RFC3339)},
		})
	})

	if err == ErrWalletNotFound || err == ErrInsufficientBalance {
		return err
	}
	if err != nil {
		return fmt.Errorf("%w: wallet Deduct: %v", ErrQuery, err)
	}
	return nil
}

// AddHours пополняет баланс кошелька
func (s *WalletStore) AddHours(ctx context.Context, userID string, hours float64) error {
	ref := s.doc(userID)

	err := s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		snap, err := tx.Get(ref)
		if status.Code(err) == codes.NotFound {
			return ErrWalletNotFound
		}
		if err != nil {
			return err
		}

		var doc walletDoc
		if err := snap.DataTo(&doc); err != nil {
			return err
		}

		return tx.Update(ref, []firestore.Update{
			{Path: "remaining", Value: doc.RemainingHours + hours},
			{Path: "lastUpdated", Value: time.Now().UTC().Format(time.RFC3339)},
		})
	})

	if err == ErrWalletNotFound {
		return err
	}
	if err != nil {
		return fmt.Errorf("%w: wallet AddHours: %v", ErrQuery, err)
	}
	return nil
}

// CreatePurchase записывает покупку часов в подколлекцию purchases
func (s *WalletStore) CreatePurchase(ctx context.Context, p *domain.Purchase) (*domain.Purchase, error) {
	now := time.Now().UTC()
	ref := s.doc(p.UserID).Collection(purchasesCollection).NewDoc()

	_, err := ref.Create(ctx, purchaseDoc{
		Hours:     p.Hours,
		Amount:    p.Amount,
		CreatedAt: now.Format(time.RFC3339),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: wallet CreatePurchase: %v", ErrQuery, err)
	}

	p.ID = ref.ID
	p.CreatedAt = now
	return p, nil
}

// GetPurchases получает историю покупок пользователя, сначала новые
func (s *WalletStore) GetPurchases(ctx context.Context, userID string) ([]*domain.Purchase, error) {
	snaps, err := s.doc(userID).Collection(purchasesCollection).
		OrderBy("createdAt", firestore.Desc).
		Documents(ctx).
		GetAll()
	if err != nil {
		return nil, fmt.Errorf("%w: wallet GetPurchases: %v", ErrQuery, err)
	}

	purchases := make([]*domain.Purchase, 0, len(snaps))
	for _, snap := range snaps {
		var doc purchaseDoc
		if err := snap.DataTo(&doc); err != nil {
			return nil, fmt.Errorf("%w: wallet GetPurchases - decode: %v", ErrQuery, err)
		}
		createdAt, _ := time.Parse(time.RFC3339, doc.CreatedAt)
		purchases = append(purchases, &domain.Purchase{
			ID:        snap.Ref.ID,
			UserID:    userID,
			Hours:     doc.Hours,
			Amount:    doc.Amount,
			CreatedAt: createdAt,
		})
	}

	return purchases, nil
}
