package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ds124wfegd/boxoffice/internal/entity"

	"github.com/lib/pq"
)

const uniqueViolation = "23505"

type saleRepository struct {
	db *sql.DB
}

func NewSaleRepository(db *sql.DB) SaleRepository {
	return &saleRepository{db: db}
}

func (r *saleRepository) Create(ctx context.Context, sale *entity.SaleReceipt) error {
	query := `
		INSERT INTO sales (
			id, item_code, item_name, customer_id, quantity,
			unit_price, gross_amount, net_amount,
			discount_applied, premium_upgrade, scheduled_at, sold_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := r.db.ExecContext(ctx, query,
		sale.ID,
		sale.ItemCode,
		sale.ItemName,
		sale.CustomerID,
		sale.Quantity,
		entity.RoundMoney(sale.UnitPrice),
		entity.RoundMoney(sale.GrossAmount),
		entity.RoundMoney(sale.NetAmount),
		sale.DiscountApplied,
		sale.PremiumUpgrade,
		sale.ScheduledAt,
		sale.SoldAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return fmt.Errorf("%w: %s", entity.ErrDuplicateSale, sale.ID)
		}
		return err
	}
	return nil
}

func (r *saleRepository) GetByCustomer(ctx context.Context, customerID string) ([]*entity.SaleReceipt, error) {
	query := `
		SELECT
			id, item_code, item_name, customer_id, quantity,
			unit_price, gross_amount, net_amount,
			discount_applied, premium_upgrade, scheduled_at, sold_at
		FROM sales
		WHERE customer_id = $1
		ORDER BY sold_at, id
	`

	rows, err := r.db.QueryContext(ctx, query, customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sales []*entity.SaleReceipt
	for rows.Next() {
		var sale entity.SaleReceipt
		err := rows.Scan(
			&sale.ID,
			&sale.ItemCode,
			&sale.ItemName,
			&sale.CustomerID,
			&sale.Quantity,
			&sale.UnitPrice,
			&sale.GrossAmount,
			&sale.NetAmount,
			&sale.DiscountApplied,
			&sale.PremiumUpgrade,
			&sale.ScheduledAt,
			&sale.SoldAt,
		)
		if err != nil {
			return nil, err
		}
		sales = append(sales, &sale)
	}

	return sales, rows.Err()
}

func (r *saleRepository) Totals(ctx context.Context) (*entity.LedgerTotals, error) {
	query := `
		SELECT
			COUNT(*),
			COALESCE(SUM(quantity), 0),
			COALESCE(SUM(net_amount), 0)
		FROM sales
	`

	var totals entity.LedgerTotals
	err := r.db.QueryRowContext(ctx, query).Scan(
		&totals.Sales,
		&totals.Tickets,
		&totals.Revenue,
	)
	if err != nil {
		return nil, err
	}
	return &totals, nil
}
