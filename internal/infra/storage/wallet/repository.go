package wallet

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/STS-BookingService/internal/domain"
	"github.com/m04kA/STS-BookingService/pkg/dbmetrics"
	"github.com/m04kA/STS-BookingService/pkg/psqlbuilder"
)

// Repository репозиторий кошельков предоплаченных часов в Postgres
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория кошельков
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByUserID получает кошелек пользователя
func (r *Repository) GetByUserID(ctx context.Context, userID string) (*domain.Wallet, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"user_id",
		"email",
		"display_name",
		"remaining_hours",
		"hours_used_month",
		"created_at",
		"updated_at",
	).
		From("user_wallets").
		Where(squirrel.Eq{"user_id": userID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - build select query: %v", ErrBuildQuery, err)
	}

	var w domain.Wallet
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&w.UserID,
		&w.Email,
		&w.DisplayName,
		&w.RemainingHours,
		&w.HoursUsedThisMonth,
		&createdAt,
		&updatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrWalletNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - scan wallet: %v", ErrScanRow, err)
	}

	w.CreatedAt = createdAt.Time
	w.UpdatedAt = updatedAt.Time

	return &w, nil
}

// CreateIfMissing заводит кошелек с нулевым балансом при первом обращении
// Повторные вызовы безопасны (ON CONFLICT DO NOTHING)
func (r *Repository) CreateIfMissing(ctx context.Context, userID, email, displayName string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("user_wallets").
		Columns("user_id", "email", "display_name", "remaining_hours", "hours_used_month").
		Values(userID, email, displayName, 0, 0).
		Suffix("ON CONFLICT (user_id) DO NOTHING").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: CreateIfMissing - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: CreateIfMissing - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// Deduct списывает hours часов с кошелька
// Условное обновление не дает балансу уйти в минус: при нехватке средств
// возвращается ErrInsufficientBalance без изменения строки
func (r *Repository) Deduct(ctx context.Context, userID string, hours float64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("user_wallets").
		Set("remaining_hours", squirrel.Expr("remaining_hours - ?", hours)).
		Set("hours_used_month", squirrel.Expr("hours_used_month + ?", hours)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"user_id": userID}).
		Where(squirrel.GtOrEq{"remaining_hours": hours}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Deduct - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Deduct - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Deduct - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		// Строка не обновилась: либо кошелька нет, либо не хватило часов
		if _, err := r.GetByUserID(ctx, userID); err != nil {
			return err
		}
		return ErrInsufficientBalance
	}

	return nil
}

// AddHours пополняет баланс кошелька
func (r *Repository) AddHours(ctx context.Context, userID string, hours float64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("user_wallets").
		Set("remaining_hours", squirrel.Expr("remaining_hours + ?", hours)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"user_id": userID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: AddHours - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: AddHours - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: AddHours - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrWalletNotFound
	}

	return nil
}

// CreatePurchase записывает покупку часов в историю
func (r *Repository) CreatePurchase(ctx context.Context, p *domain.Purchase) (*domain.Purchase, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if p.ID == "" {
		p.ID = uuid.NewString()
	}

	query, args, err := psqlbuilder.Insert("wallet_purchases").
		Columns("id", "user_id", "hours", "amount").
		Values(p.ID, p.UserID, p.Hours, p.Amount).
		Suffix("RETURNING created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CreatePurchase - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&createdAt); err != nil {
		return nil, fmt.Errorf("%w: CreatePurchase - execute insert: %v", ErrExecQuery, err)
	}

	p.CreatedAt = createdAt.Time
	return p, nil
}

// GetPurchases получает историю покупок пользователя, сначала новые
func (r *Repository) GetPurchases(ctx context.Context, userID string) ([]*domain.Purchase, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "user_id", "hours", "amount", "created_at").
		From("wallet_purchases").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("created_at DESC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetPurchases - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetPurchases - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	purchases := make([]*domain.Purchase, 0)
	for rows.Next() {
		var p domain.Purchase
		var createdAt sql.NullTime
		if err := rows.Scan(&p.ID, &p.UserID, &p.Hours, &p.Amount, &createdAt); err != nil {
			return nil, fmt.Errorf("%w: GetPurchases - scan row: %v", ErrScanRow, err)
		}
		p.CreatedAt = createdAt.Time
		purchases = append(purchases, &p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetPurchases - rows error: %v", ErrScanRow, err)
	}

	return purchases, nil
}
